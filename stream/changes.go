// Package stream provides a DynamoDB Streams handler that turns item table
// records into change events.
package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/items/item"
)

// Kind is the type of change recorded in a stream record.
type Kind string

const (
	KindInsert Kind = "INSERT"
	KindModify Kind = "MODIFY"
	KindRemove Kind = "REMOVE"
)

// Change is a decoded stream record. Old is nil for inserts and New is nil
// for removals, or when the stream view type omits that image.
type Change struct {
	EventID string
	Kind    Kind
	ID      string
	Old     *item.Item
	New     *item.Item
}

// Sink receives decoded changes.
type Sink interface {
	Consume(ctx context.Context, change Change) error
}

// Handler processes DynamoDB stream events for the items table.
type Handler struct {
	sink   Sink
	logger *slog.Logger
}

// NewHandler creates a new stream handler.
func NewHandler(sink Sink, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		sink:   sink,
		logger: logger,
	}
}

// HandleChanges decodes every record and passes it to the sink.
// This function is designed to be used as an AWS Lambda handler.
func (h *Handler) HandleChanges(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		change, ok := h.decode(record)
		if !ok {
			continue
		}
		if err := h.sink.Consume(ctx, change); err != nil {
			h.logger.Error("failed to process record",
				"eventID", record.EventID,
				"id", change.ID,
				"error", err,
			)
			return fmt.Errorf("consume %s: %w", record.EventID, err) // Will retry, eventually DLQ
		}
	}
	return nil
}

// decode converts a stream record into a Change. Records of unknown kind or
// without an id key are skipped.
func (h *Handler) decode(record events.DynamoDBEventRecord) (Change, bool) {
	kind := Kind(record.EventName)
	switch kind {
	case KindInsert, KindModify, KindRemove:
	default:
		h.logger.Warn("skipping record with unknown event name",
			"eventID", record.EventID,
			"eventName", record.EventName,
		)
		return Change{}, false
	}

	id := getStringAttr(record.Change.Keys, "id")
	if id == "" {
		h.logger.Warn("skipping record without id key",
			"eventID", record.EventID,
		)
		return Change{}, false
	}

	return Change{
		EventID: record.EventID,
		Kind:    kind,
		ID:      id,
		Old:     imageToItem(id, record.Change.OldImage),
		New:     imageToItem(id, record.Change.NewImage),
	}, true
}

// imageToItem converts a stream image to an item. It returns nil for an
// empty image.
func imageToItem(id string, image map[string]events.DynamoDBAttributeValue) *item.Item {
	if len(image) == 0 {
		return nil
	}
	return &item.Item{
		ID:          id,
		Name:        getStringAttr(image, "name"),
		Description: getStringAttr(image, "description"),
		CreatedAt:   getTimeAttr(image, "created_at"),
		UpdatedAt:   getTimeAttr(image, "updated_at"),
	}
}

// getStringAttr extracts a string attribute from a DynamoDB stream image.
func getStringAttr(image map[string]events.DynamoDBAttributeValue, key string) string {
	if v, ok := image[key]; ok && v.DataType() == events.DataTypeString {
		return v.String()
	}
	return ""
}

// getTimeAttr extracts an RFC 3339 timestamp from a DynamoDB stream image.
// Missing or malformed values yield the zero time.
func getTimeAttr(image map[string]events.DynamoDBAttributeValue, key string) time.Time {
	s := getStringAttr(image, key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
