// Package export writes the inventory and task lists as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tarsalgabko/logitrack/internal/model"
)

// ItemColumns is the header row of the inventory export.
var ItemColumns = []string{
	"SKU", "Name", "Description", "Quantity", "Min Quantity", "Price", "Currency",
	"Location", "Status", "Category", "Supplier", "Last Updated",
}

// TaskColumns is the header row of the task export.
var TaskColumns = []string{
	"ID", "Title", "Description", "Type", "Status", "Priority", "Assigned To",
	"Created At", "Due Date", "Completed At",
}

// WriteItemsCSV writes one row per item after a header row.
func WriteItemsCSV(w io.Writer, items []model.InventoryItem) error {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.SKU,
			item.Name,
			item.Description,
			strconv.Itoa(item.Quantity),
			strconv.Itoa(item.MinQuantity),
			item.Price.StringFixed(2),
			item.Currency,
			item.Location.Code(),
			string(item.Status()),
			item.Category,
			item.Supplier,
			formatTime(&item.LastUpdated),
		})
	}
	return write(w, ItemColumns, rows)
}

// WriteTasksCSV writes one row per task after a header row. Assignees are
// written as names when names resolves them.
func WriteTasksCSV(w io.Writer, tasks []model.Task, names func(userID string) string) error {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		assignee := t.AssignedTo
		if names != nil {
			if n := names(t.AssignedTo); n != "" {
				assignee = n
			}
		}
		rows = append(rows, []string{
			t.ID,
			t.Title,
			t.Description,
			string(t.Type),
			string(t.Status),
			string(t.Priority),
			assignee,
			formatTime(&t.CreatedAt),
			formatTime(t.DueDate),
			formatTime(t.CompletedAt),
		})
	}
	return write(w, TaskColumns, rows)
}

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
