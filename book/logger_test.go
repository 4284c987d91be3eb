package book

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger_ReplacesPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil)))

	pool := newOrderPool()
	for i := 0; i < nodeBlockSize+1; i++ {
		pool.construct(Order{ID: uint64(i)})
	}

	assert.Contains(t, buf.String(), "order pool grew")
}

func TestSetLogger_LogsPriceLevelEviction(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(slog.New(slog.NewJSONHandler(bytes.NewBuffer(nil), nil)))

	ob := NewOrderBook(DefaultConfig(), nil)
	ob.Add(limitOrder(1, Buy, 10.00, 5))
	ob.Cancel(1)

	assert.Contains(t, buf.String(), "price level evicted")
}
