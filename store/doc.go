// Package store provides the item persistence backends used by the api
// package.
//
// Two implementations are available:
//
//   - [DynamoStore] keeps each item as a single DynamoDB item keyed by "id".
//     Conditional writes give atomic create-if-absent and replace/delete
//     only-if-present semantics.
//   - [MemoryStore] keeps items in a mutex-guarded map. It is used by tests
//     and by the local development server.
//
// # Configuration
//
// Use [DefaultConfig] and override the table name:
//
//	cfg := store.DefaultConfig()
//	cfg.TableName = "prod-items"
//	s := store.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg)
//
// # Errors
//
// Both stores report failures with the types from the item package:
//
//   - [item.ErrConflict] - Put with ifNotExists found an existing item
//   - [*item.NotFoundError] - Get, Replace or Delete on a missing id
//   - [item.ErrStoreUnavailable] - wraps every other DynamoDB failure
package store
