// Package api is the JSON HTTP surface over the session, inventory and task
// stores.
package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/tarsalgabko/logitrack/internal/inventory"
	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/session"
	"github.com/tarsalgabko/logitrack/internal/task"
)

// Deps are the collaborators the API serves.
type Deps struct {
	DB        *sql.DB
	JWTSecret string
	Session   *session.Store
	Inventory *inventory.Store
	Tasks     *task.Store
	Now       func() time.Time
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: d.DB, JWTSecret: d.JWTSecret, Session: d.Session}
	itemsHandler := &ItemsHandler{Inventory: d.Inventory}
	inventoryHandler := &InventoryHandler{Inventory: d.Inventory}
	tasksHandler := &TasksHandler{Tasks: d.Tasks, SKUs: d.Inventory, Users: d.Session.Directory()}
	dashboardHandler := &DashboardHandler{Inventory: d.Inventory, Tasks: d.Tasks, Now: d.Now}
	exportHandler := &ExportHandler{Inventory: d.Inventory, Tasks: d.Tasks, Directory: d.Session.Directory()}

	authMW := AuthMiddleware(d.JWTSecret, d.DB, d.Session)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Session.
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", authMW(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PATCH /api/auth/me", authMW(http.HandlerFunc(authHandler.UpdateMe)))
	mux.Handle("GET /api/users", authMW(http.HandlerFunc(authHandler.Users)))

	// Items: read (all roles), write (manager+).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireManager(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PATCH /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Update))))
	mux.Handle("DELETE /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Delete))))
	mux.Handle("PUT /api/items/{id}/image", authMW(requireManager(http.HandlerFunc(itemsHandler.UploadImage))))
	mux.Handle("GET /api/items/{id}/image", authMW(http.HandlerFunc(itemsHandler.GetImage)))

	// Inventory view state (all roles).
	mux.Handle("GET /api/inventory/filter", authMW(http.HandlerFunc(inventoryHandler.GetFilter)))
	mux.Handle("PUT /api/inventory/filter", authMW(http.HandlerFunc(inventoryHandler.PutFilter)))
	mux.Handle("GET /api/inventory/filtered", authMW(http.HandlerFunc(inventoryHandler.Filtered)))
	mux.Handle("GET /api/inventory/categories", authMW(http.HandlerFunc(inventoryHandler.Categories)))
	mux.Handle("POST /api/inventory/refresh", authMW(http.HandlerFunc(inventoryHandler.Refresh)))

	// Tasks: all roles work the queue, deletion is manager+.
	mux.Handle("GET /api/tasks", authMW(http.HandlerFunc(tasksHandler.List)))
	mux.Handle("POST /api/tasks", authMW(http.HandlerFunc(tasksHandler.Create)))
	mux.Handle("POST /api/tasks/refresh", authMW(http.HandlerFunc(tasksHandler.Refresh)))
	mux.Handle("GET /api/tasks/{id}", authMW(http.HandlerFunc(tasksHandler.Get)))
	mux.Handle("PATCH /api/tasks/{id}", authMW(http.HandlerFunc(tasksHandler.Update)))
	mux.Handle("DELETE /api/tasks/{id}", authMW(requireManager(http.HandlerFunc(tasksHandler.Delete))))
	mux.Handle("POST /api/tasks/{id}/start", authMW(http.HandlerFunc(tasksHandler.Start)))
	mux.Handle("POST /api/tasks/{id}/complete", authMW(http.HandlerFunc(tasksHandler.Complete)))
	mux.Handle("POST /api/tasks/{id}/cancel", authMW(http.HandlerFunc(tasksHandler.Cancel)))

	// Overview and exports.
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(dashboardHandler.Get)))
	mux.Handle("GET /api/export/inventory.csv", authMW(http.HandlerFunc(exportHandler.InventoryCSV)))
	mux.Handle("GET /api/export/tasks.csv", authMW(http.HandlerFunc(exportHandler.TasksCSV)))

	return mux
}
