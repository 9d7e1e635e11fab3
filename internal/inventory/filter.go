package inventory

import (
	"strings"

	"github.com/tarsalgabko/logitrack/internal/model"
)

// Filter holds the three criteria of the filtered catalog view. An empty
// criterion matches everything.
type Filter struct {
	Search   string            `json:"searchTerm"`
	Category string            `json:"filterCategory"`
	Status   model.StockStatus `json:"filterStatus"`
}

// Match reports whether item satisfies all criteria. Search is a
// case-insensitive substring of the name, the SKU or zone+rack; category
// and status match exactly.
func (f Filter) Match(item model.InventoryItem) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.Name), term) &&
			!strings.Contains(strings.ToLower(item.SKU), term) &&
			!strings.Contains(strings.ToLower(item.Location.Zone+item.Location.Rack), term) {
			return false
		}
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.Status != "" && item.Status() != f.Status {
		return false
	}
	return true
}
