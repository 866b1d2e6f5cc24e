// Package app wires configuration into the stores and routers shared by the
// items binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jacentio/items/api"
	"github.com/jacentio/items/internal/config"
	"github.com/jacentio/items/store"
)

// NewDynamoClient builds a DynamoDB client for cfg.Region, pointed at
// cfg.Endpoint when one is set (e.g. DynamoDB Local).
func NewDynamoClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewStore returns the store selected by cfg.StoreBackend.
func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (api.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return store.NewMemory(), nil
	case config.BackendDynamoDB, "":
		client, err := NewDynamoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		storeCfg := store.DefaultConfig()
		storeCfg.TableName = cfg.Table()
		storeCfg.ScanPageSize = cfg.ScanPageSize
		logger.Info("using DynamoDB store",
			"table", storeCfg.TableName,
			"region", cfg.Region,
		)
		return store.NewDynamo(client, storeCfg), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// NewRouter builds the service and router over s. When reg is non-nil the
// router records request metrics in it.
func NewRouter(s api.Store, reg prometheus.Registerer, logger *slog.Logger) *api.Router {
	svc := api.NewService(s, api.WithLogger(logger))
	opts := []api.RouterOption{api.WithRouterLogger(logger)}
	if reg != nil {
		opts = append(opts, api.WithMetrics(api.NewMetrics(reg)))
	}
	return api.NewRouter(svc, opts...)
}
