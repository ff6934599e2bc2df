//go:build integration

package stocks

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library/internal/stocks/repository"
	"library/pkg/client"
	"library/pkg/model"
	"library/test/integration/testutil"
)

func TestCreateAndFetchStock(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	mongo.InsertBooks(t, model.Book{ID: 1, Title: "The Go Programming Language"})

	resp, err := api.Create(ctx, &model.StockRequest{ID: "S-001", BookID: 1, Price: 3800})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.ToString())

	resp, err = api.GetByID(ctx, "S-001")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stock, err := api.DecodeStock(resp)
	require.NoError(t, err)
	assert.Equal(t, 3800, stock.Price)

	assert.Equal(t, int64(1), mongo.CountDocuments(t, repository.StockCollectionName))
}

func TestCreateStock_UnknownBook(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp, err := api.Create(context.Background(), &model.StockRequest{BookID: 42})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "BookMst record not found.", client.GetErrorMessage(resp))
	assert.Zero(t, mongo.CountDocuments(t, repository.StockCollectionName))
}

func TestCreateStock_DuplicateID(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	mongo.InsertBooks(t, model.Book{ID: 1, Title: "Go"})
	resp, err := api.Create(ctx, &model.StockRequest{ID: "S-001", BookID: 1, Price: 100})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = api.Create(ctx, &model.StockRequest{ID: "S-001", BookID: 1, Price: 999})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Stock record already exists.", client.GetErrorMessage(resp))

	resp, err = api.GetByID(ctx, "S-001")
	require.NoError(t, err)
	stock, err := api.DecodeStock(resp)
	require.NoError(t, err)
	assert.Equal(t, 100, stock.Price)
}

func TestUpdateStock_MakesUnavailable(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	mongo.InsertBooks(t, model.Book{ID: 1, Title: "Go"})
	_, err := api.Create(ctx, &model.StockRequest{ID: "S-001", BookID: 1})
	require.NoError(t, err)

	resp, err := api.Update(ctx, "S-001", &model.StockRequest{BookID: 1, Status: model.StockUnavailable, Price: 10})
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = api.GetAll(ctx, true)
	require.NoError(t, err)
	stocks, err := api.DecodeStocks(resp)
	require.NoError(t, err)
	assert.Empty(t, stocks)
}

func TestCalendar_RentalBlocksDays(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, api := env.Setup(t)
	defer env.Cleanup(t, mongo)
	ctx := context.Background()

	mongo.InsertBooks(t, model.Book{ID: 1, Title: "Go"})
	for _, id := range []string{"S-001", "S-002"} {
		resp, err := api.Create(ctx, &model.StockRequest{ID: id, BookID: 1})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	mongo.InsertRentals(t, model.Rental{
		ID:               "R-1",
		StockID:          "S-001",
		Status:           model.RentalRented,
		ExpectedRentalOn: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		ExpectedReturnOn: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
	})

	resp, err := api.Calendar(ctx, 2024, 2)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.ToString())

	cal, err := api.DecodeCalendar(resp)
	require.NoError(t, err)
	require.Len(t, cal.DaysOfWeek, 29)
	require.Len(t, cal.Values, 1)

	detail := cal.Values[0].DailyDetail
	assert.Equal(t, 2, cal.Values[0].TotalCount)
	assert.Equal(t, 2, detail[8].LendableCount)
	assert.Equal(t, 1, detail[9].LendableCount)
	assert.Equal(t, "S-002", *detail[9].StockID)
	assert.Equal(t, 1, detail[11].LendableCount)
	assert.Equal(t, 2, detail[12].LendableCount)
}
