package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atinyakov/todokeeper/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeTodoService implements TodoService for testing.
type fakeTodoService struct {
	todo    models.Todo
	todos   []models.Todo
	err     error
	gotID   int64
	created models.CreateTodoRequest
	updated models.UpdateTodoRequest
}

func (f *fakeTodoService) Create(_ context.Context, req models.CreateTodoRequest) (models.Todo, error) {
	f.created = req
	return f.todo, f.err
}
func (f *fakeTodoService) List(context.Context) ([]models.Todo, error) {
	return f.todos, f.err
}
func (f *fakeTodoService) Get(_ context.Context, id int64) (models.Todo, error) {
	f.gotID = id
	return f.todo, f.err
}
func (f *fakeTodoService) Update(_ context.Context, id int64, req models.UpdateTodoRequest) (models.Todo, error) {
	f.gotID = id
	f.updated = req
	return f.todo, f.err
}
func (f *fakeTodoService) Complete(_ context.Context, id int64) (models.Todo, error) {
	f.gotID = id
	return f.todo, f.err
}
func (f *fakeTodoService) Delete(_ context.Context, id int64) error {
	f.gotID = id
	return f.err
}

func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body.Error
}

var sampleTodo = models.Todo{ID: 3, Title: "Buy milk", DueDate: models.NewDate(2024, time.January, 1)}

func TestTodoHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeTodoService
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeTodoService{},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid request body",
		},
		{
			name:         "null body",
			body:         `null`,
			service:      &fakeTodoService{},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid request body",
		},
		{
			name:         "validation error",
			body:         `{"due_date":"2024-01-01"}`,
			service:      &fakeTodoService{err: models.NewValidationError("title", "is required")},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "title is required",
		},
		{
			name:         "unexpected error",
			body:         `{"title":"x","due_date":"2024-01-01"}`,
			service:      &fakeTodoService{err: errors.New("disk I/O error at page 7")},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "failed to create to-do item",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/todos", bytes.NewBufferString(tt.body))
			h := &TodoHandler{TodoService: tt.service}
			h.Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if got := decodeError(t, rec); got != tt.expectedErr {
				t.Errorf("error = %q; want %q", got, tt.expectedErr)
			}
		})
	}
}

func TestTodoHandler_CreateSuccess(t *testing.T) {
	svc := &fakeTodoService{todo: sampleTodo}
	h := &TodoHandler{TodoService: svc}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/todos", bytes.NewBufferString(`{"title":"Buy milk","due_date":"2024-01-01"}`))
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q; want %q", ct, "application/json")
	}
	var resp models.TodoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if resp.Message != msgCreated || resp.Todo != sampleTodo {
		t.Errorf("unexpected response: %+v", resp)
	}
	if svc.created.Title.Value != "Buy milk" || svc.created.DueDate.Value != "2024-01-01" {
		t.Errorf("service received %+v", svc.created)
	}
}

func TestTodoHandler_IDParsing(t *testing.T) {
	svc := &fakeTodoService{todo: sampleTodo}
	h := &TodoHandler{TodoService: svc}

	for _, id := range []string{"abc", "", "1.5", "99999999999999999999"} {
		rec := httptest.NewRecorder()
		h.Get(rec, withID(httptest.NewRequest("GET", "/todos/x", nil), id))
		if rec.Code != http.StatusNotFound {
			t.Errorf("id %q: expected 404, got %d", id, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.Get(rec, withID(httptest.NewRequest("GET", "/todos/3", nil), "3"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotID != 3 {
		t.Errorf("service received id %d; want 3", svc.gotID)
	}
}

func TestTodoHandler_NotFoundMapping(t *testing.T) {
	svc := &fakeTodoService{err: models.ErrNotFound}
	h := &TodoHandler{TodoService: svc}

	calls := map[string]func(http.ResponseWriter, *http.Request){
		"get":      h.Get,
		"delete":   h.Delete,
		"complete": h.Complete,
	}
	for name, call := range calls {
		rec := httptest.NewRecorder()
		call(rec, withID(httptest.NewRequest("GET", "/todos/9999", nil), "9999"))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", name, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.Update(rec, withID(httptest.NewRequest("PUT", "/todos/9999", bytes.NewBufferString(`{"completed":true}`)), "9999"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("update: expected 404, got %d", rec.Code)
	}
}

func TestTodoHandler_UpdateBadBody(t *testing.T) {
	h := &TodoHandler{TodoService: &fakeTodoService{todo: sampleTodo}}

	for _, body := range []string{`{"completed":"yes"}`, `[1,2]`, ``} {
		rec := httptest.NewRecorder()
		h.Update(rec, withID(httptest.NewRequest("PUT", "/todos/3", bytes.NewBufferString(body)), "3"))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestTodoHandler_UnexpectedErrorLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := &TodoHandler{TodoService: &fakeTodoService{err: errors.New("database is locked")}, Logger: zap.New(core)}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest("GET", "/todos", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "failed to list to-do item" {
		t.Errorf("error = %q", got)
	}
	entries := logs.FilterMessage("todo operation failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["op"] != "list" {
		t.Errorf("unexpected log fields: %v", entries[0].ContextMap())
	}
}

func TestTodoHandler_DeleteAndComplete(t *testing.T) {
	done := sampleTodo
	done.Completed = true
	svc := &fakeTodoService{todo: done}
	h := &TodoHandler{TodoService: svc}

	rec := httptest.NewRecorder()
	h.Delete(rec, withID(httptest.NewRequest("DELETE", "/todos/3", nil), "3"))
	var msg models.MessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || msg.Message != msgDeleted {
		t.Errorf("delete: status %d message %q", rec.Code, msg.Message)
	}

	rec = httptest.NewRecorder()
	h.Complete(rec, withID(httptest.NewRequest("PATCH", "/todos/3/complete", nil), "3"))
	var resp models.TodoResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || resp.Message != msgCompleted || !resp.Todo.Completed {
		t.Errorf("complete: status %d response %+v", rec.Code, resp)
	}
}
