package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacentio/items/api"
	"github.com/jacentio/items/internal/app"
	"github.com/jacentio/items/internal/config"
	"github.com/jacentio/items/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewStore_Memory(t *testing.T) {
	s, err := app.NewStore(context.Background(), &config.Config{StoreBackend: config.BackendMemory}, discard())
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)
}

func TestNewStore_Dynamo(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	cfg := &config.Config{
		StoreBackend: config.BackendDynamoDB,
		StackName:    "dev",
		Region:       "ap-northeast-1",
		Endpoint:     "http://localhost:8000",
	}
	s, err := app.NewStore(context.Background(), cfg, discard())
	require.NoError(t, err)

	ds, ok := s.(*store.DynamoStore)
	require.True(t, ok, "expected *store.DynamoStore, got %T", s)
	assert.Equal(t, "dev-items", ds.TableName())
}

func TestNewStore_Unknown(t *testing.T) {
	_, err := app.NewStore(context.Background(), &config.Config{StoreBackend: "postgres"}, discard())
	assert.Error(t, err)
}

func TestNewRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := app.NewRouter(store.NewMemory(), reg, discard())

	resp := r.Dispatch(context.Background(), api.Request{Method: http.MethodGet, Path: "/items"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	count, err := testutil.GatherAndCount(reg, "items_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewRouter_NoMetrics(t *testing.T) {
	r := app.NewRouter(store.NewMemory(), nil, discard())
	resp := r.Dispatch(context.Background(), api.Request{Method: http.MethodGet, Path: "/items"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
