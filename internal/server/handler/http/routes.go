package http

import (
	"net/http"

	"github.com/atinyakov/todokeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the to-do
// API.
//
// Parameters:
//
//	todoHandler - handler for the /todos endpoints
//	auth        - credential check used by Basic authentication
//	logger      - structured logger for request logging middleware
//
// Routes:
//
//	POST   /todos                → todoHandler.Create
//	GET    /todos                → todoHandler.List
//	GET    /todos/{id}           → todoHandler.Get
//	PUT    /todos/{id}           → todoHandler.Update
//	DELETE /todos/{id}           → todoHandler.Delete
//	PATCH  /todos/{id}/complete  → todoHandler.Complete
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger)          logs every request, assigns request ids
//  2. Recoverer                           turns handler panics into 500s
//  3. BasicAuth(auth, logger)             rejects unauthenticated requests with 401
//  4. AllowContentType("application/json") rejects non-JSON bodies with 415
//
// Authentication wraps the whole mux, so unknown paths also answer 401
// until valid credentials are sent.
func NewRouter(
	todoHandler *TodoHandler,
	auth middleware.Authenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.BasicAuth(auth, logger))
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Route("/todos", func(r chi.Router) {
		r.Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", todoHandler.Get)
			r.Put("/", todoHandler.Update)
			r.Delete("/", todoHandler.Delete)
			r.Patch("/complete", todoHandler.Complete)
		})
	})

	return r
}
