package models

import "encoding/json"

// Optional is a JSON field that tracks presence. Set is true when the key
// appeared in the document, Null when its value was the literal null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Present reports whether the field was supplied with a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// UnmarshalJSON records presence and decodes the value unless it is null.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// MarshalJSON writes null for a Null field and the value otherwise.
// Unset fields are dropped by the omitzero tag on the containing struct.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	DueDate     Optional[string] `json:"due_date,omitzero"`
}

// UpdateTodoRequest is the body of PUT /todos/{id}. Any subset of the
// fields may be sent.
type UpdateTodoRequest struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	DueDate     Optional[string] `json:"due_date,omitzero"`
	Completed   Optional[bool]   `json:"completed,omitzero"`
}

// TodoResponse is returned by the create, update and complete endpoints.
type TodoResponse struct {
	Message string `json:"message"`
	Todo    Todo   `json:"todo"`
}

// MessageResponse is returned by the delete endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
