package store

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/items/item"
)

// API is the subset of *dynamodb.Client used by DynamoStore.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.ScanAPIClient
}

// Condition expressions guarding writes on the "id" partition key.
const (
	condAbsent  = "attribute_not_exists(id)"
	condPresent = "attribute_exists(id)"
)

// DynamoStore persists items in a single DynamoDB table.
type DynamoStore struct {
	client API
	config Config
}

// NewDynamo creates a new DynamoStore.
func NewDynamo(client API, config Config) *DynamoStore {
	config.validate()
	return &DynamoStore{
		client: client,
		config: config,
	}
}

// TableName returns the table the store reads and writes.
func (s *DynamoStore) TableName() string {
	return s.config.TableName
}

// Put writes it under id. With ifNotExists the write is conditional on the
// id being absent and fails with item.ErrConflict otherwise.
func (s *DynamoStore) Put(ctx context.Context, id string, it item.Item, ifNotExists bool) error {
	av, err := marshalItem(id, it)
	if err != nil {
		return err
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.config.TableName),
		Item:      av,
	}
	if ifNotExists {
		input.ConditionExpression = aws.String(condAbsent)
	}

	_, err = s.client.PutItem(ctx, input)
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return item.ErrConflict
		}
		return unavailable("put", err)
	}
	return nil
}

// Get retrieves the item stored under id.
func (s *DynamoStore) Get(ctx context.Context, id string) (item.Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.config.TableName),
		Key:            key(id),
		ConsistentRead: aws.Bool(!s.config.EventuallyConsistentReads),
	})
	if err != nil {
		return item.Item{}, unavailable("get", err)
	}
	if result.Item == nil {
		return item.Item{}, &item.NotFoundError{ID: id}
	}
	return unmarshalItem(result.Item)
}

// Replace overwrites the item stored under id. It fails with
// *item.NotFoundError if no such item exists. The write is unconditional
// otherwise, so concurrent replaces are last-writer-wins.
func (s *DynamoStore) Replace(ctx context.Context, id string, it item.Item) error {
	av, err := marshalItem(id, it)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.config.TableName),
		Item:                av,
		ConditionExpression: aws.String(condPresent),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return &item.NotFoundError{ID: id}
		}
		return unavailable("replace", err)
	}
	return nil
}

// Delete removes the item stored under id, failing with *item.NotFoundError
// if it does not exist.
func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.config.TableName),
		Key:                 key(id),
		ConditionExpression: aws.String(condPresent),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return &item.NotFoundError{ID: id}
		}
		return unavailable("delete", err)
	}
	return nil
}

// ScanAll returns every item in the table, paging through Scan results as
// the sequence is consumed. A failure is yielded once as the error element
// and ends the sequence.
func (s *DynamoStore) ScanAll(ctx context.Context) iter.Seq2[item.Item, error] {
	return func(yield func(item.Item, error) bool) {
		input := &dynamodb.ScanInput{
			TableName: aws.String(s.config.TableName),
		}
		if s.config.ScanPageSize > 0 {
			input.Limit = aws.Int32(s.config.ScanPageSize)
		}

		paginator := dynamodb.NewScanPaginator(s.client, input)
		for paginator.HasMorePages() {
			page, err := paginator.NextPage(ctx)
			if err != nil {
				yield(item.Item{}, unavailable("scan", err))
				return
			}
			for _, raw := range page.Items {
				it, err := unmarshalItem(raw)
				if !yield(it, err) || err != nil {
					return
				}
			}
		}
	}
}

// key returns the primary key for id.
func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// marshalItem converts it to a DynamoDB item keyed by id.
func marshalItem(id string, it item.Item) (map[string]types.AttributeValue, error) {
	it.ID = id
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return nil, fmt.Errorf("marshal item %q: %w", id, err)
	}
	return av, nil
}

// unmarshalItem converts a DynamoDB item to an item.Item.
func unmarshalItem(raw map[string]types.AttributeValue) (item.Item, error) {
	var it item.Item
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return item.Item{}, fmt.Errorf("%w: unmarshal item: %w", item.ErrStoreUnavailable, err)
	}
	return it, nil
}

// unavailable wraps an unexpected DynamoDB failure.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", item.ErrStoreUnavailable, op, err)
}
