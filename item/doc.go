// Package item defines the item record, its input validation, and the error
// taxonomy shared by the request handlers and the store implementations.
//
// # Item
//
// An [Item] is keyed by a server-generated ID. Name is required and
// Description defaults to the empty string. CreatedAt is set once; UpdatedAt
// is refreshed on every update and never precedes CreatedAt.
//
// # Validation
//
// [Validate] accepts the untyped payload decoded from a request body and
// returns a typed [Input] or a [*ValidationError] listing every failing field:
//
//	payload, err := item.DecodePayload(body)
//	if err != nil {
//	    return err
//	}
//	in, err := item.Validate(payload, item.OpCreate)
//
// Unknown fields are ignored and any "id" in the body is never read.
//
// # Errors
//
//   - [*ValidationError] - payload malformed or a field rule failed
//   - [*NotFoundError] - no item with the given ID; matches [ErrNotFound]
//   - [ErrConflict] - conditional create found the ID already present
//   - [ErrStoreUnavailable] - the backing store failed unexpectedly
package item
