package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Op is the operation a payload is validated for.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
)

// Field length limits, counted in runes.
const (
	MaxNameLength        = 256
	MaxDescriptionLength = 4096
)

// Input holds the client-settable fields of an item after validation.
// The max tags must equal MaxNameLength and MaxDescriptionLength.
type Input struct {
	Name        string `json:"name" validate:"required,max=256"`   // MaxNameLength
	Description string `json:"description" validate:"max=4096"` // MaxDescriptionLength
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// DecodePayload parses a request body into the untyped payload Validate
// expects. Malformed JSON and non-object bodies are reported as a
// ValidationError on the "body" field.
func DecodePayload(body []byte) (map[string]any, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Reason: "request body is required"}}}
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Reason: "invalid JSON"}}}
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Fields: []FieldError{{Field: "body", Reason: "must be a JSON object"}}}
	}
	return payload, nil
}

// Validate checks payload against the item rules and returns the
// normalized input. Every violated field is reported in a single
// *ValidationError. Fields other than name and description are ignored,
// including "id". Create and update apply the same rules; op only labels
// unexpected validator failures.
func Validate(payload map[string]any, op Op) (Input, error) {
	var in Input
	failed := make(map[string]string)

	switch v := payload["name"].(type) {
	case nil:
		failed["name"] = "is required"
	case string:
		in.Name = strings.TrimSpace(v)
	default:
		failed["name"] = "must be a string"
	}

	switch v := payload["description"].(type) {
	case nil:
	case string:
		in.Description = v
	default:
		failed["description"] = "must be a string"
	}

	if err := validate.Struct(&in); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return Input{}, fmt.Errorf("items: validate %s payload: %w", op, err)
		}
		for _, fe := range ve {
			if _, seen := failed[fe.Field()]; !seen {
				failed[fe.Field()] = reason(fe)
			}
		}
	}

	if len(failed) == 0 {
		return in, nil
	}
	verr := &ValidationError{Fields: make([]FieldError, 0, len(failed))}
	for field, why := range failed {
		verr.Fields = append(verr.Fields, FieldError{Field: field, Reason: why})
	}
	sort.Slice(verr.Fields, func(i, j int) bool {
		return verr.Fields[i].Field < verr.Fields[j].Field
	})
	return Input{}, verr
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}
