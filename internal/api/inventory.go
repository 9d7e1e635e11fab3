package api

import (
	"log/slog"
	"net/http"

	"github.com/tarsalgabko/logitrack/internal/inventory"
	"github.com/tarsalgabko/logitrack/internal/model"
)

// InventoryHandler exposes the store's shared filtered view.
type InventoryHandler struct {
	Inventory *inventory.Store
}

type filterRequest struct {
	Search   string `json:"searchTerm"`
	Category string `json:"filterCategory"`
	Status   string `json:"filterStatus" validate:"omitempty,oneof=in-stock low-stock out-of-stock"`
}

// GetFilter handles GET /api/inventory/filter.
func (h *InventoryHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Inventory.Filter())
}

// PutFilter handles PUT /api/inventory/filter.
func (h *InventoryHandler) PutFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Inventory.SetFilter(inventory.Filter{
		Search:   req.Search,
		Category: req.Category,
		Status:   model.StockStatus(req.Status),
	})
	jsonResponse(w, http.StatusOK, h.Inventory.Filter())
}

// Filtered handles GET /api/inventory/filtered.
func (h *InventoryHandler) Filtered(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Inventory.FilteredItems())
}

// Categories handles GET /api/inventory/categories.
func (h *InventoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := h.Inventory.Categories()
	if categories == nil {
		categories = []string{}
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Refresh handles POST /api/inventory/refresh.
func (h *InventoryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Inventory.Fetch(r.Context()); err != nil {
		slog.Warn("refreshing inventory", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "refresh interrupted")
		return
	}
	jsonResponse(w, http.StatusOK, h.Inventory.Items())
}
