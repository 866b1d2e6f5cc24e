// Command items-stream is the AWS Lambda entry point consuming the items
// table's DynamoDB stream.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/items/internal/config"
	"github.com/jacentio/items/internal/logging"
	"github.com/jacentio/items/stream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "items-stream: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	h := stream.NewHandler(stream.NewLogSink(logger), logger)
	lambda.Start(h.HandleChanges)
}
