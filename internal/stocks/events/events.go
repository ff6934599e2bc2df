package events

import (
	"context"
	"time"

	"library/pkg/kafka"
	"library/pkg/logger"
	"library/pkg/model"
)

const (
	EventStockCreated = "stock.created"
	EventStockUpdated = "stock.updated"

	schemaVersion = "1"
)

type StockEvent struct {
	StockID    string            `json:"stock_id"`
	BookID     int64             `json:"book_id"`
	Status     model.StockStatus `json:"status"`
	Price      int               `json:"price"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type Publisher interface {
	StockCreated(ctx context.Context, stock *model.Stock) error
	StockUpdated(ctx context.Context, stock *model.Stock) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *kafkaPublisher) StockCreated(ctx context.Context, stock *model.Stock) error {
	return p.publish(ctx, EventStockCreated, stock)
}

func (p *kafkaPublisher) StockUpdated(ctx context.Context, stock *model.Stock) error {
	return p.publish(ctx, EventStockUpdated, stock)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, stock *model.Stock) error {
	msg, err := kafka.NewMessage().
		WithKey(stock.ID).
		WithValue(StockEvent{
			StockID:    stock.ID,
			BookID:     stock.BookID,
			Status:     stock.Status,
			Price:      stock.Price,
			OccurredAt: stock.UpdatedAt,
		}).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		WithCorrelationID(logger.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

type noopPublisher struct{}

// NewNoopPublisher is used when Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) StockCreated(context.Context, *model.Stock) error { return nil }

func (noopPublisher) StockUpdated(context.Context, *model.Stock) error { return nil }
