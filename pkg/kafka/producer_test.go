package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("S-001").
		WithValue(map[string]any{"id": "S-001"}).
		WithEventType("stock.created").
		Build()
	require.NoError(t, err)
	return msg
}

func TestProducer_Publish(t *testing.T) {
	w := &mockWriter{}
	p := NewProducerWithWriter(w, "library.stocks")

	require.NoError(t, p.Publish(context.Background(), buildMessage(t)))

	require.Len(t, w.written, 1)
	assert.Equal(t, "S-001", string(w.written[0].Key))
	assert.JSONEq(t, `{"id":"S-001"}`, string(w.written[0].Value))

	headers := map[string]string{}
	for _, h := range w.written[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "stock.created", headers[HeaderEventType])
	assert.NotEmpty(t, headers[HeaderEventID])
}

func TestProducer_Publish_RejectsInvalidMessages(t *testing.T) {
	p := NewProducerWithWriter(&mockWriter{}, "library.stocks")

	err := p.Publish(context.Background(), Message{Value: []byte(`{}`)})
	assert.ErrorIs(t, err, ErrEmptyKey)

	err = p.Publish(context.Background(), Message{Key: "k"})
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := NewProducerWithWriter(&mockWriter{}, "library.stocks")

	var calls []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			calls = append(calls, name)
			assert.Equal(t, "library.stocks", msg.Topic)
			return next(ctx, msg)
		})
	}

	require.NoError(t, p.Publish(context.Background(), buildMessage(t)))
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

func TestProducer_WriterErrorIsReturned(t *testing.T) {
	writeErr := errors.New("broker down")
	p := NewProducerWithWriter(&mockWriter{err: writeErr}, "library.stocks")

	err := p.Publish(context.Background(), buildMessage(t))
	assert.ErrorIs(t, err, writeErr)
}

func TestProducer_Close(t *testing.T) {
	w := &mockWriter{}
	p := NewProducerWithWriter(w, "library.stocks")

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)

	err := p.Publish(context.Background(), buildMessage(t))
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestMessageBuilder_InvalidValue(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}
