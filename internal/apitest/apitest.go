// Package apitest wires the complete API over an in-memory SQLite
// database for use in tests.
package apitest

import (
	"net/http"
	"testing"

	"github.com/atinyakov/todokeeper/internal/db"
	"github.com/atinyakov/todokeeper/internal/repository"
	handler "github.com/atinyakov/todokeeper/internal/server/handler/http"
	"github.com/atinyakov/todokeeper/internal/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Credentials accepted by the router returned from NewRouter.
const (
	Username = "admin"
	Password = "password"
)

// NewRouter returns the production router backed by a fresh in-memory
// database. The database is closed when the test ends.
func NewRouter(t testing.TB) http.Handler {
	t.Helper()

	conn, err := db.InitSQLite(":memory:")
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	admin, err := service.NewUser(Username, Password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}

	auth := service.NewAuthService(repository.NewStaticCredentialRepository(admin))
	todos := service.NewTodoService(repository.NewSQLTodoRepository(conn))
	h := &handler.TodoHandler{TodoService: todos, Logger: zap.NewNop()}

	return handler.NewRouter(h, auth, zap.NewNop())
}
