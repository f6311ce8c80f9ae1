// Package repository provides persistence implementations for to-do items
// and the static credential table.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/todokeeper/internal/models"
)

const todoColumns = `id, title, description, due_date, completed`

// SQLTodoRepository stores to-do items in the todos table. Queries use
// numbered placeholders, which both PostgreSQL and SQLite accept.
type SQLTodoRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewSQLTodoRepository creates a SQLTodoRepository using the provided *sql.DB.
// The todos table must already exist.
func NewSQLTodoRepository(db *sql.DB) *SQLTodoRepository {
	return &SQLTodoRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var (
		todo        models.Todo
		description sql.NullString
	)
	if err := row.Scan(&todo.ID, &todo.Title, &description, &todo.DueDate, &todo.Completed); err != nil {
		return models.Todo{}, err
	}
	todo.Description = description.String
	return todo, nil
}

// Create inserts todo and returns it with its newly assigned ID.
func (r *SQLTodoRepository) Create(ctx context.Context, todo models.Todo) (models.Todo, error) {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO todos (title, description, due_date, completed)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, todo.Title, todo.Description, todo.DueDate, todo.Completed).Scan(&todo.ID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("insert todo: %w", err)
	}
	return todo, nil
}

// List returns every to-do item ordered by ID.
func (r *SQLTodoRepository) List(ctx context.Context) ([]models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// GetByID fetches a single to-do item. It returns models.ErrNotFound if no
// row has the given ID.
func (r *SQLTodoRepository) GetByID(ctx context.Context, id int64) (models.Todo, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, models.ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return todo, nil
}

// Update applies patch to the item with the given ID in a single statement
// and returns the merged row. Nil patch fields are bound as NULL, so
// COALESCE keeps the stored value for them.
func (r *SQLTodoRepository) Update(ctx context.Context, id int64, patch models.TodoPatch) (models.Todo, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE todos SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			due_date = COALESCE($3, due_date),
			completed = COALESCE($4, completed)
		WHERE id = $5
		RETURNING `+todoColumns,
		patch.Title, patch.Description, patch.DueDate, patch.Completed, id)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, models.ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("update todo %d: %w", id, err)
	}
	return todo, nil
}

// Complete marks the item as completed. Completing an already completed
// item succeeds and leaves it unchanged.
func (r *SQLTodoRepository) Complete(ctx context.Context, id int64) (models.Todo, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE todos SET completed = TRUE
		WHERE id = $1
		RETURNING `+todoColumns, id)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, models.ErrNotFound
	}
	if err != nil {
		return models.Todo{}, fmt.Errorf("complete todo %d: %w", id, err)
	}
	return todo, nil
}

// Delete permanently removes the item with the given ID.
func (r *SQLTodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}
