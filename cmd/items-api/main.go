// Command items-api is the AWS Lambda entry point for the items REST API
// behind API Gateway.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/items/internal/apigw"
	"github.com/jacentio/items/internal/app"
	"github.com/jacentio/items/internal/config"
	"github.com/jacentio/items/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "items-api: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	s, err := app.NewStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to create store", "error", err)
		os.Exit(1)
	}

	// Lambda metrics come from CloudWatch; no Prometheus registry here.
	h := apigw.NewHandler(app.NewRouter(s, nil, logger), logger, cfg.BasePath)

	if cfg.APIPayloadFormat == "v2" {
		lambda.Start(h.HandleV2)
		return
	}
	lambda.Start(h.Handle)
}
