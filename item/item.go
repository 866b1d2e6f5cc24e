package item

import "time"

// Item is the single record kind managed by the service.
type Item struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// New builds a fresh item from validated input. CreatedAt and UpdatedAt are
// both set to now.
func New(id string, in Input, now time.Time) Item {
	now = now.UTC()
	return Item{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply returns a copy of it with the input fields replaced and UpdatedAt
// refreshed. ID and CreatedAt are preserved. UpdatedAt never moves before
// CreatedAt, even if the clock went backwards.
func (it Item) Apply(in Input, now time.Time) Item {
	now = now.UTC()
	if now.Before(it.CreatedAt) {
		now = it.CreatedAt
	}
	it.Name = in.Name
	it.Description = in.Description
	it.UpdatedAt = now
	return it
}
