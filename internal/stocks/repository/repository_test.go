package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeSession struct {
	mongo.Session
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	ctx, cancel := withTimeout(context.Background(), time.Second)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 100*time.Millisecond)
}

func TestWithTimeout_KeepsEarlierDeadline(t *testing.T) {
	parent, parentCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer parentCancel()
	want, _ := parent.Deadline()

	ctx, cancel := withTimeout(parent, time.Minute)
	defer cancel()

	got, ok := ctx.Deadline()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestWithTimeout_TransactionKeepsSession(t *testing.T) {
	sess := &fakeSession{}
	txCtx := mongo.NewSessionContext(context.Background(), sess)

	ctx, cancel := withTimeout(txCtx, time.Second)
	defer cancel()

	assert.Same(t, sess, mongo.SessionFromContext(ctx))
	_, ok := ctx.Deadline()
	assert.True(t, ok)

	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.NoError(t, txCtx.Err())
}
