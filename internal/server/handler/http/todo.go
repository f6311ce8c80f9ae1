// Package http provides HTTP handlers for the to-do API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/atinyakov/todokeeper/internal/middleware"
	"github.com/atinyakov/todokeeper/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgCreated   = "To-do item created successfully."
	msgUpdated   = "To-do item updated successfully."
	msgDeleted   = "To-do item deleted successfully."
	msgCompleted = "To-do item marked as completed."
)

// TodoService defines the to-do operations required by the HTTP handlers.
type TodoService interface {
	Create(ctx context.Context, req models.CreateTodoRequest) (models.Todo, error)
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, id int64) (models.Todo, error)
	Update(ctx context.Context, id int64, req models.UpdateTodoRequest) (models.Todo, error)
	Complete(ctx context.Context, id int64) (models.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// TodoHandler handles HTTP requests for to-do items.
type TodoHandler struct {
	// TodoService performs the underlying operations.
	TodoService TodoService
	// Logger receives unexpected service errors. May be nil.
	Logger *zap.Logger
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req *models.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.TodoService.Create(r.Context(), *req)
	if err != nil {
		h.writeServiceError(w, r, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, models.TodoResponse{Message: msgCreated, Todo: todo})
}

// List handles GET /todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.TodoService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// Get handles GET /todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	todo, err := h.TodoService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// Update handles PUT /todos/{id}. Any subset of title, description,
// due_date and completed may be sent.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	var req *models.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req == nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.TodoService.Update(r.Context(), id, *req)
	if err != nil {
		h.writeServiceError(w, r, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, models.TodoResponse{Message: msgUpdated, Todo: todo})
}

// Delete handles DELETE /todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	if err := h.TodoService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, models.MessageResponse{Message: msgDeleted})
}

// Complete handles PATCH /todos/{id}/complete.
func (h *TodoHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	todo, err := h.TodoService.Complete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "complete", err)
		return
	}
	writeJSON(w, http.StatusOK, models.TodoResponse{Message: msgCompleted, Todo: todo})
}

// todoID parses the {id} path segment. Anything that is not a base-10
// int64 cannot name a stored item and is answered with 404.
func todoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, models.ErrNotFound.Error())
		return 0, false
	}
	return id, true
}

// writeServiceError maps service failures to status codes. Anything that
// is neither a validation failure nor a missing item is logged and
// reported as 400 with a generic message.
func (h *TodoHandler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, models.ErrNotFound.Error())
	default:
		if h.Logger != nil {
			h.Logger.Error("todo operation failed",
				zap.String("op", op),
				zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())),
				zap.Error(err),
			)
		}
		writeError(w, http.StatusBadRequest, "failed to "+op+" to-do item")
	}
}
