package api

import (
	"log/slog"
	"net/http"

	"github.com/tarsalgabko/logitrack/internal/export"
	"github.com/tarsalgabko/logitrack/internal/inventory"
	"github.com/tarsalgabko/logitrack/internal/session"
	"github.com/tarsalgabko/logitrack/internal/task"
)

// ExportHandler serves CSV downloads.
type ExportHandler struct {
	Inventory *inventory.Store
	Tasks     *task.Store
	Directory *session.Directory
}

// InventoryCSV handles GET /api/export/inventory.csv. The query parameters of
// GET /api/items narrow the export.
func (h *ExportHandler) InventoryCSV(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	csvHeaders(w, "inventory.csv")
	if err := export.WriteItemsCSV(w, h.Inventory.Query(f)); err != nil {
		slog.Error("exporting inventory", "error", err)
	}
}

// TasksCSV handles GET /api/export/tasks.csv.
func (h *ExportHandler) TasksCSV(w http.ResponseWriter, r *http.Request) {
	names := func(id string) string {
		for _, u := range h.Directory.Users() {
			if u.ID == id {
				return u.Name
			}
		}
		return ""
	}

	csvHeaders(w, "tasks.csv")
	if err := export.WriteTasksCSV(w, h.Tasks.Tasks(), names); err != nil {
		slog.Error("exporting tasks", "error", err)
	}
}

func csvHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}
