// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/conf/v3"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds all configuration for the items binaries.
type Config struct {
	// DynamoDB
	TableName string `conf:"env:ITEMS_TABLE"`
	StackName string `conf:"default:items,env:AWS_STACK_NAME"`
	Region    string `conf:"default:ap-northeast-1,env:AWS_REGION"`
	Endpoint  string `conf:"env:DYNAMODB_ENDPOINT"`

	// ScanPageSize caps items per Scan page; 0 lets DynamoDB decide.
	ScanPageSize int32 `conf:"default:0,env:SCAN_PAGE_SIZE"`

	StoreBackend string `conf:"default:dynamodb,env:STORE_BACKEND" validate:"oneof=dynamodb memory"`

	// API Gateway
	APIPayloadFormat string `conf:"default:v1,env:API_PAYLOAD_FORMAT" validate:"oneof=v1 v2"`
	BasePath         string `conf:"env:API_BASE_PATH"`

	// Local HTTP server
	HTTPAddr string `conf:"default::8080,env:HTTP_ADDR"`

	// Logging
	LogLevel  string `conf:"default:info,env:LOG_LEVEL"`
	LogFormat string `conf:"default:json,env:LOG_FORMAT" validate:"oneof=json text"`
}

// Load reads configuration from a .env file, if present, and the
// environment. Values already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := conf.Parse("", &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil, err
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Table returns the items table name. An explicit ITEMS_TABLE wins;
// otherwise the name is derived from the stack as "<stack>-items".
func (c *Config) Table() string {
	if c.TableName != "" {
		return c.TableName
	}
	return c.StackName + "-items"
}
