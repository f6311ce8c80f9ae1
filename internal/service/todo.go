package service

import (
	"context"
	"errors"

	"github.com/atinyakov/todokeeper/internal/models"
)

const dueDateReason = "must be a date in YYYY-MM-DD format"

// TodoRepository defines the persistence operations needed by the
// TodoService.
type TodoRepository interface {
	// Create stores todo and returns it with its assigned ID.
	Create(ctx context.Context, todo models.Todo) (models.Todo, error)
	// List returns all items in a stable order.
	List(ctx context.Context) ([]models.Todo, error)
	// GetByID returns the item or models.ErrNotFound.
	GetByID(ctx context.Context, id int64) (models.Todo, error)
	// Update applies patch and returns the merged item, or models.ErrNotFound.
	Update(ctx context.Context, id int64, patch models.TodoPatch) (models.Todo, error)
	// Complete sets completed to true, or returns models.ErrNotFound.
	Complete(ctx context.Context, id int64) (models.Todo, error)
	// Delete removes the item, or returns models.ErrNotFound.
	Delete(ctx context.Context, id int64) error
}

// TodoService validates requests and applies them through a TodoRepository.
type TodoService struct {
	// repo is the underlying persistence repository.
	repo TodoRepository
}

// NewTodoService constructs a TodoService with the provided repository.
func NewTodoService(repo TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// Create validates req and stores a new item. Title and due_date are
// required; description defaults to "" and completed to false.
func (s *TodoService) Create(ctx context.Context, req models.CreateTodoRequest) (models.Todo, error) {
	if !req.Title.Present() {
		return models.Todo{}, models.NewValidationError("title", "is required")
	}
	if req.Title.Value == "" {
		return models.Todo{}, models.NewValidationError("title", "must not be empty")
	}
	if !req.DueDate.Present() {
		return models.Todo{}, models.NewValidationError("due_date", "is required")
	}
	due, err := models.ParseDate(req.DueDate.Value)
	if err != nil {
		return models.Todo{}, models.NewValidationError("due_date", dueDateReason)
	}

	return s.repo.Create(ctx, models.Todo{
		Title:       req.Title.Value,
		Description: req.Description.Value,
		DueDate:     due,
	})
}

// List returns every stored item.
func (s *TodoService) List(ctx context.Context) ([]models.Todo, error) {
	return s.repo.List(ctx)
}

// Get returns the item with the given ID.
func (s *TodoService) Get(ctx context.Context, id int64) (models.Todo, error) {
	return s.repo.GetByID(ctx, id)
}

// Update merges the supplied fields of req into the stored item. Null
// values keep the stored value, except due_date, which must be a valid
// date whenever the key is sent. A missing item is reported before a
// validation failure.
func (s *TodoService) Update(ctx context.Context, id int64, req models.UpdateTodoRequest) (models.Todo, error) {
	patch, err := buildPatch(req)
	if err != nil {
		if _, getErr := s.repo.GetByID(ctx, id); getErr != nil {
			return models.Todo{}, getErr
		}
		return models.Todo{}, err
	}
	if patch.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

func buildPatch(req models.UpdateTodoRequest) (models.TodoPatch, error) {
	var patch models.TodoPatch

	if req.Title.Present() {
		if req.Title.Value == "" {
			return models.TodoPatch{}, models.NewValidationError("title", "must not be empty")
		}
		patch.Title = &req.Title.Value
	}
	if req.Description.Present() {
		patch.Description = &req.Description.Value
	}
	if req.DueDate.Set {
		if req.DueDate.Null {
			return models.TodoPatch{}, models.NewValidationError("due_date", dueDateReason)
		}
		due, err := models.ParseDate(req.DueDate.Value)
		if err != nil {
			return models.TodoPatch{}, models.NewValidationError("due_date", dueDateReason)
		}
		patch.DueDate = &due
	}
	if req.Completed.Present() {
		patch.Completed = &req.Completed.Value
	}
	return patch, nil
}

// Complete marks the item as completed. It is idempotent.
func (s *TodoService) Complete(ctx context.Context, id int64) (models.Todo, error) {
	return s.repo.Complete(ctx, id)
}

// Delete permanently removes the item.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var verr *models.ValidationError
	return errors.As(err, &verr)
}
