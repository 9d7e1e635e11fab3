package api

import (
	"net/http"
	"time"

	"github.com/tarsalgabko/logitrack/internal/inventory"
	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/task"
)

// DashboardHandler serves the overview KPIs.
type DashboardHandler struct {
	Inventory *inventory.Store
	Tasks     *task.Store
	Now       func() time.Time
}

type taskCounts struct {
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	CompletedToday int `json:"completedToday"`
	Urgent         int `json:"urgent"`
}

type dashboardResponse struct {
	Inventory inventory.Summary     `json:"inventory"`
	Tasks     taskCounts            `json:"tasks"`
	Attention []model.InventoryItem `json:"attention"`
	MyTasks   []model.Task          `json:"myTasks"`
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	resp := dashboardResponse{
		Inventory: h.Inventory.Summary(),
		Tasks: taskCounts{
			Pending:        len(h.Tasks.ByStatus(model.TaskPending)),
			InProgress:     len(h.Tasks.ByStatus(model.TaskInProgress)),
			CompletedToday: len(h.Tasks.CompletedOn(now())),
		},
		Attention: h.Inventory.Query(inventory.Filter{Status: model.StockLow}),
		MyTasks:   []model.Task{},
	}
	resp.Attention = append(resp.Attention, h.Inventory.Query(inventory.Filter{Status: model.StockOutOfStock})...)

	for _, t := range h.Tasks.Tasks() {
		if t.Priority == model.PriorityUrgent && !t.Status.Terminal() {
			resp.Tasks.Urgent++
		}
	}
	if user, ok := CurrentUser(r.Context()); ok {
		for _, t := range h.Tasks.ByAssignee(user.ID) {
			if !t.Status.Terminal() {
				resp.MyTasks = append(resp.MyTasks, t)
			}
		}
	}

	jsonResponse(w, http.StatusOK, resp)
}
