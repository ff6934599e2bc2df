package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"library/pkg/model"
)

type StockClient struct {
	httpClient *HttpClient
}

func NewStockClient(baseUrl string) *StockClient {
	return &StockClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *StockClient) Create(ctx context.Context, req *model.StockRequest) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/stocks", req)
}

func (c *StockClient) CreateRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, "/api/v1/stocks", rawBody)
}

func (c *StockClient) GetAll(ctx context.Context, availableOnly bool) (*Response, error) {
	path := "/api/v1/stocks"
	if availableOnly {
		path += "?available=true"
	}
	return c.httpClient.GET(ctx, path)
}

func (c *StockClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/stocks/id/"+url.PathEscape(id))
}

func (c *StockClient) Update(ctx context.Context, id string, req *model.StockRequest) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/stocks/id/"+url.PathEscape(id), req)
}

func (c *StockClient) Calendar(ctx context.Context, year, month int) (*Response, error) {
	q := url.Values{}
	q.Set("year", fmt.Sprintf("%d", year))
	q.Set("month", fmt.Sprintf("%d", month))
	return c.httpClient.GET(ctx, "/api/v1/stocks/calendar?"+q.Encode())
}

func (c *StockClient) DecodeStock(resp *Response) (*model.Stock, error) {
	var stock model.Stock
	if err := decodeData(resp, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (c *StockClient) DecodeStocks(resp *Response) ([]*model.Stock, error) {
	var stocks []*model.Stock
	if err := decodeData(resp, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (c *StockClient) DecodeCalendar(resp *Response) (*model.Calendar, error) {
	var cal model.Calendar
	if err := decodeData(resp, &cal); err != nil {
		return nil, err
	}
	return &cal, nil
}

func decodeData(resp *Response, target any) error {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return fmt.Errorf("could not decode response wrapper:\n%s\n%w", resp.ToString(), err)
	}
	if err := json.Unmarshal(wrapper.Data, target); err != nil {
		return fmt.Errorf("could not decode response data:\n%s\n%w", resp.ToString(), err)
	}
	return nil
}
