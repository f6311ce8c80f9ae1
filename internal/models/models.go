// Package models defines the core data structures for to-do items and users.
package models

// User represents an account allowed to call the API.
type User struct {
	// Username is the login name sent in the Basic credentials.
	Username string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}

// Todo is a single to-do item.
type Todo struct {
	// ID is assigned by the repository on creation and never reused.
	ID int64 `json:"id"`
	// Title is the required, non-empty summary of the item.
	Title string `json:"title"`
	// Description is free text; empty when not provided.
	Description string `json:"description"`
	// DueDate is the calendar day the item is due.
	DueDate Date `json:"due_date"`
	// Completed reports whether the item has been done.
	Completed bool `json:"completed"`
}

// TodoPatch carries a partial update. Nil fields keep their stored value.
type TodoPatch struct {
	Title       *string
	Description *string
	DueDate     *Date
	Completed   *bool
}

// Empty reports whether the patch changes nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Completed == nil
}
