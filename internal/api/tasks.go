package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/task"
)

// TasksHandler handles task queue endpoints.
type TasksHandler struct {
	Tasks *task.Store
	SKUs  task.SKUResolver
	Users task.AssigneeResolver
}

type lineLocationRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type taskLineRequest struct {
	SKU      string               `json:"sku" validate:"required"`
	Name     string               `json:"name"`
	Quantity int                  `json:"quantity" validate:"gte=1"`
	Location *lineLocationRequest `json:"location"`
}

func taskLines(in []taskLineRequest) []model.TaskLine {
	if in == nil {
		return nil
	}
	out := make([]model.TaskLine, len(in))
	for i, l := range in {
		out[i] = model.TaskLine{SKU: l.SKU, Name: l.Name, Quantity: l.Quantity}
		if l.Location != nil {
			out[i].Location = &model.LineLocation{From: l.Location.From, To: l.Location.To}
		}
	}
	return out
}

type createTaskRequest struct {
	Type          string            `json:"type" validate:"required,oneof=receive putaway pick move dispatch"`
	Title         string            `json:"title" validate:"required"`
	Description   string            `json:"description"`
	Priority      string            `json:"priority" validate:"required,oneof=low medium high urgent"`
	AssignedTo    string            `json:"assignedTo"`
	DueDate       *time.Time        `json:"dueDate"`
	Items         []taskLineRequest `json:"items" validate:"dive"`
	Instructions  string            `json:"instructions"`
	EstimatedTime int               `json:"estimatedTime" validate:"gte=0"`
}

type updateTaskRequest struct {
	Type          *string           `json:"type" validate:"omitempty,oneof=receive putaway pick move dispatch"`
	Title         *string           `json:"title" validate:"omitempty,min=1"`
	Description   *string           `json:"description"`
	Priority      *string           `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo    *string           `json:"assignedTo"`
	DueDate       *time.Time        `json:"dueDate"`
	Items         []taskLineRequest `json:"items" validate:"omitempty,dive"`
	Instructions  *string           `json:"instructions"`
	EstimatedTime *int              `json:"estimatedTime" validate:"omitempty,gte=0"`
}

func (req updateTaskRequest) patch() task.TaskPatch {
	p := task.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		AssignedTo:    req.AssignedTo,
		DueDate:       req.DueDate,
		Items:         taskLines(req.Items),
		Instructions:  req.Instructions,
		EstimatedTime: req.EstimatedTime,
	}
	if req.Type != nil {
		t := model.TaskType(*req.Type)
		p.Type = &t
	}
	if req.Priority != nil {
		pr := model.TaskPriority(*req.Priority)
		p.Priority = &pr
	}
	return p
}

// List handles GET /api/tasks.
func (h *TasksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := model.TaskStatus(q.Get("status"))
	if status != "" && !status.Valid() {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}
	assignee := q.Get("assignee")
	if assignee == "me" {
		user, _ := CurrentUser(r.Context())
		assignee = user.ID
	}

	var tasks []model.Task
	switch {
	case status != "" && assignee != "":
		for _, t := range h.Tasks.ByStatus(status) {
			if t.AssignedTo == assignee {
				tasks = append(tasks, t)
			}
		}
	case status != "":
		tasks = h.Tasks.ByStatus(status)
	case assignee != "":
		tasks = h.Tasks.ByAssignee(assignee)
	default:
		tasks = h.Tasks.Tasks()
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	jsonResponse(w, http.StatusOK, tasks)
}

// Create handles POST /api/tasks.
func (h *TasksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := taskLines(req.Items)
	if err := task.ValidateRefs(req.AssignedTo, lines, h.SKUs, h.Users); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	t := h.Tasks.Add(task.NewTask{
		Type:          model.TaskType(req.Type),
		Title:         req.Title,
		Description:   req.Description,
		Priority:      model.TaskPriority(req.Priority),
		AssignedTo:    req.AssignedTo,
		DueDate:       req.DueDate,
		Items:         lines,
		Instructions:  req.Instructions,
		EstimatedTime: req.EstimatedTime,
	})

	slog.Info("task created", "id", t.ID, "type", t.Type, "assignee", t.AssignedTo)
	jsonResponse(w, http.StatusCreated, t)
}

// Get handles GET /api/tasks/{id}.
func (h *TasksHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, ok := h.Tasks.Get(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "task not found")
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

// Update handles PATCH /api/tasks/{id}.
func (h *TasksHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := req.patch()
	var assignee string
	if patch.AssignedTo != nil {
		assignee = *patch.AssignedTo
	}
	if err := task.ValidateRefs(assignee, patch.Items, h.SKUs, h.Users); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	t, ok := h.Tasks.Update(r.PathValue("id"), patch)
	if !ok {
		jsonError(w, http.StatusNotFound, "task not found")
		return
	}
	jsonResponse(w, http.StatusOK, t)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TasksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.Tasks.Delete(id) {
		jsonError(w, http.StatusNotFound, "task not found")
		return
	}
	slog.Info("task deleted", "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

// Start handles POST /api/tasks/{id}/start.
func (h *TasksHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Tasks.Start)
}

// Complete handles POST /api/tasks/{id}/complete.
func (h *TasksHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Tasks.Complete)
}

// Cancel handles POST /api/tasks/{id}/cancel.
func (h *TasksHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Tasks.Cancel)
}

func (h *TasksHandler) transition(w http.ResponseWriter, r *http.Request, op func(string) (model.Task, error)) {
	t, err := op(r.PathValue("id"))
	switch {
	case errors.Is(err, task.ErrNotFound):
		jsonError(w, http.StatusNotFound, "task not found")
		return
	case errors.Is(err, task.ErrIllegalTransition):
		jsonError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, _ := CurrentUser(r.Context())
	slog.Info("task status changed", "id", t.ID, "status", t.Status, "by", user.Email)
	jsonResponse(w, http.StatusOK, t)
}

// Refresh handles POST /api/tasks/refresh.
func (h *TasksHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.Fetch(r.Context()); err != nil {
		slog.Warn("refreshing tasks", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "refresh interrupted")
		return
	}
	jsonResponse(w, http.StatusOK, h.Tasks.Tasks())
}
