package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "library/pkg/errors"
	"library/pkg/client"
	"library/pkg/logger"
	"library/pkg/model"
)

type mockStockService struct {
	findAllFunc          func(ctx context.Context) ([]*model.Stock, error)
	findAvailableAllFunc func(ctx context.Context) ([]*model.Stock, error)
	findByIDFunc         func(ctx context.Context, id string) (*model.Stock, error)
	saveFunc             func(ctx context.Context, req *model.StockRequest) (*model.Stock, error)
	updateFunc           func(ctx context.Context, id string, req *model.StockRequest) error
	generateValuesFunc   func(ctx context.Context, year, month, days int) ([]*model.CalendarSummary, error)

	daysRequested int
}

func (m *mockStockService) FindAll(ctx context.Context) ([]*model.Stock, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Stock{}, nil
}

func (m *mockStockService) FindAvailableAll(ctx context.Context) ([]*model.Stock, error) {
	if m.findAvailableAllFunc != nil {
		return m.findAvailableAllFunc(ctx)
	}
	return []*model.Stock{}, nil
}

func (m *mockStockService) FindByID(ctx context.Context, id string) (*model.Stock, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockStockService) Save(ctx context.Context, req *model.StockRequest) (*model.Stock, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, req)
	}
	return &model.Stock{ID: req.ID, BookID: req.BookID}, nil
}

func (m *mockStockService) Update(ctx context.Context, id string, req *model.StockRequest) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return nil
}

func (m *mockStockService) GenerateValues(ctx context.Context, year, month, days int) ([]*model.CalendarSummary, error) {
	if m.generateValuesFunc != nil {
		return m.generateValuesFunc(ctx, year, month, days)
	}
	return []*model.CalendarSummary{}, nil
}

func (m *mockStockService) GenerateDaysOfWeek(year, month, days int) ([]string, error) {
	m.daysRequested = days
	labels := make([]string, days)
	for i := range labels {
		labels[i] = "d"
	}
	return labels, nil
}

func newTestServer(t *testing.T, svc *mockStockService) *client.StockClient {
	t.Helper()

	router := httprouter.New()
	NewStockHandler(svc, time.UTC, logger.Discard()).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return client.NewStockClient(srv.URL)
}

func TestGetAll_AvailableFilter(t *testing.T) {
	var calledAll, calledAvailable bool
	svc := &mockStockService{
		findAllFunc: func(context.Context) ([]*model.Stock, error) {
			calledAll = true
			return []*model.Stock{{ID: "S-1"}, {ID: "S-2"}}, nil
		},
		findAvailableAllFunc: func(context.Context) ([]*model.Stock, error) {
			calledAvailable = true
			return []*model.Stock{{ID: "S-1"}}, nil
		},
	}
	c := newTestServer(t, svc)
	ctx := context.Background()

	resp, err := c.GetAll(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	stocks, err := c.DecodeStocks(resp)
	require.NoError(t, err)
	assert.Len(t, stocks, 2)

	resp, err = c.GetAll(ctx, true)
	require.NoError(t, err)
	stocks, err = c.DecodeStocks(resp)
	require.NoError(t, err)
	assert.Len(t, stocks, 1)

	assert.True(t, calledAll)
	assert.True(t, calledAvailable)
}

func TestGetByID(t *testing.T) {
	svc := &mockStockService{
		findByIDFunc: func(_ context.Context, id string) (*model.Stock, error) {
			if id == "S-1" {
				return &model.Stock{ID: "S-1", BookID: 3, Price: 800}, nil
			}
			return nil, nil
		},
	}
	c := newTestServer(t, svc)
	ctx := context.Background()

	resp, err := c.GetByID(ctx, "S-1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stock, err := c.DecodeStock(resp)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stock.BookID)

	resp, err = c.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Stock record not found.", client.GetErrorMessage(resp))
}

func TestCreate(t *testing.T) {
	var received *model.StockRequest
	svc := &mockStockService{
		saveFunc: func(_ context.Context, req *model.StockRequest) (*model.Stock, error) {
			received = req
			return &model.Stock{ID: "S-9", BookID: req.BookID, Price: req.Price}, nil
		},
	}
	c := newTestServer(t, svc)

	resp, err := c.Create(context.Background(), &model.StockRequest{BookID: 4, Price: 1200})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	stock, err := c.DecodeStock(resp)
	require.NoError(t, err)
	assert.Equal(t, "S-9", stock.ID)
	require.NotNil(t, received)
	assert.Equal(t, int64(4), received.BookID)
}

func TestCreate_InvalidBody(t *testing.T) {
	c := newTestServer(t, &mockStockService{})

	resp, err := c.CreateRaw(context.Background(), []byte(`{"book_id":`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "book not found",
			err:        apperrors.NotFoundWithID("BookMst", "99", "BookMst record not found."),
			wantStatus: http.StatusNotFound,
			wantMsg:    "BookMst record not found.",
		},
		{
			name:       "validation",
			err:        apperrors.Validation("Stock validation failed", nil),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "Stock validation failed",
		},
		{
			name:       "duplicate id",
			err:        apperrors.Conflict("Stock", "S-1", "Stock record already exists."),
			wantStatus: http.StatusConflict,
			wantMsg:    "Stock record already exists.",
		},
		{
			name:       "store failure is hidden",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockStockService{
				saveFunc: func(context.Context, *model.StockRequest) (*model.Stock, error) {
					return nil, tt.err
				},
			}
			c := newTestServer(t, svc)

			resp, err := c.Create(context.Background(), &model.StockRequest{BookID: 99})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantMsg, client.GetErrorMessage(resp))
		})
	}
}

func TestUpdate(t *testing.T) {
	var gotID string
	svc := &mockStockService{
		updateFunc: func(_ context.Context, id string, req *model.StockRequest) error {
			gotID = id
			if id == "missing" {
				return apperrors.NotFoundWithID("Stock", id, "Stock record not found.")
			}
			return nil
		},
	}
	c := newTestServer(t, svc)
	ctx := context.Background()

	resp, err := c.Update(ctx, "S-1", &model.StockRequest{BookID: 1, Status: model.StockUnavailable})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "S-1", gotID)

	resp, err = c.Update(ctx, "missing", &model.StockRequest{BookID: 1})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCalendar(t *testing.T) {
	one := "S-1"
	svc := &mockStockService{
		generateValuesFunc: func(_ context.Context, year, month, days int) ([]*model.CalendarSummary, error) {
			detail := make([]model.DailyAvailable, days)
			for i := range detail {
				detail[i] = model.DailyAvailable{
					Date:          time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, time.UTC),
					LendableCount: 1,
					StockID:       &one,
				}
			}
			return []*model.CalendarSummary{{Title: "Go", TotalCount: 1, DailyDetail: detail}}, nil
		},
	}
	c := newTestServer(t, svc)

	resp, err := c.Calendar(context.Background(), 2024, 2)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cal, err := c.DecodeCalendar(resp)
	require.NoError(t, err)
	assert.Equal(t, 29, svc.daysRequested)
	assert.Len(t, cal.DaysOfWeek, 29)
	require.Len(t, cal.Values, 1)
	assert.Len(t, cal.Values[0].DailyDetail, 29)
	assert.Equal(t, "S-1", *cal.Values[0].DailyDetail[0].StockID)
}

func TestCalendar_InvalidMonth(t *testing.T) {
	c := newTestServer(t, &mockStockService{})

	resp, err := c.Calendar(context.Background(), 2024, 13)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
