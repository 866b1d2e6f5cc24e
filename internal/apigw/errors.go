package apigw

import "github.com/jacentio/items/item"

func invalidBody() error {
	return &item.ValidationError{Fields: []item.FieldError{
		{Field: "body", Reason: "invalid base64 encoding"},
	}}
}
