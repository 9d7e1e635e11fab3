// Package seed holds the demo data the stores start from on every boot.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarsalgabko/logitrack/internal/model"
)

// SharedPassword is the credential every demo identity signs in with.
const SharedPassword = "password"

// Users returns the known identities.
func Users() []model.User {
	return []model.User{
		{ID: "1", Email: "admin@logitrack.com", Name: "Admin User", Role: model.RoleAdmin},
		{ID: "2", Email: "manager@logitrack.com", Name: "Manager User", Role: model.RoleManager},
		{ID: "3", Email: "worker@logitrack.com", Name: "Worker User", Role: model.RoleWorker},
	}
}

// Items returns the starting catalog.
func Items() []model.InventoryItem {
	return []model.InventoryItem{
		{
			ID:          "1",
			SKU:         "SKU-001",
			Name:        "Laptop Dell XPS 13",
			Description: "High-performance laptop for business use",
			Quantity:    15,
			MinQuantity: 5,
			Price:       decimal.RequireFromString("1299.99"),
			Currency:    "EUR",
			Location:    model.Location{Zone: "A", Rack: "A1", Level: 2, Bin: "A1-2-03"},
			LastUpdated: date(2024, 1, 15, 0, 0),
			Category:    "Electronics",
			Supplier:    "Dell Inc.",
		},
		{
			ID:          "2",
			SKU:         "SKU-002",
			Name:        "Wireless Mouse",
			Description: "Ergonomic wireless mouse with USB receiver",
			Quantity:    3,
			MinQuantity: 10,
			Price:       decimal.RequireFromString("29.99"),
			Currency:    "EUR",
			Location:    model.Location{Zone: "B", Rack: "B2", Level: 1, Bin: "B2-1-05"},
			LastUpdated: date(2024, 1, 14, 0, 0),
			Category:    "Accessories",
			Supplier:    "Logitech",
		},
		{
			ID:          "3",
			SKU:         "SKU-003",
			Name:        "Office Chair",
			Description: "Ergonomic office chair with lumbar support",
			Quantity:    0,
			MinQuantity: 2,
			Price:       decimal.RequireFromString("199.99"),
			Currency:    "EUR",
			Location:    model.Location{Zone: "C", Rack: "C1", Level: 1, Bin: "C1-1-01"},
			LastUpdated: date(2024, 1, 13, 0, 0),
			Category:    "Furniture",
			Supplier:    "Herman Miller",
		},
		{
			ID:          "4",
			SKU:         "SKU-004",
			Name:        `Monitor 27" 4K`,
			Description: "27-inch 4K UHD monitor with HDR support",
			Quantity:    8,
			MinQuantity: 3,
			Price:       decimal.RequireFromString("399.99"),
			Currency:    "EUR",
			Location:    model.Location{Zone: "A", Rack: "A2", Level: 3, Bin: "A2-3-02"},
			LastUpdated: date(2024, 1, 16, 0, 0),
			Category:    "Electronics",
			Supplier:    "Samsung",
		},
	}
}

// Tasks returns the starting task queue.
func Tasks() []model.Task {
	return []model.Task{
		{
			ID:          "1",
			Type:        model.TaskReceive,
			Title:       "Receive Dell Laptops",
			Description: "Process incoming shipment of Dell XPS 13 laptops",
			Priority:    model.PriorityHigh,
			Status:      model.TaskPending,
			AssignedTo:  "3",
			CreatedAt:   date(2024, 1, 16, 9, 0),
			DueDate:     ptr(date(2024, 1, 16, 17, 0)),
			Items: []model.TaskLine{
				{SKU: "SKU-001", Name: "Laptop Dell XPS 13", Quantity: 10},
			},
			Instructions:  "Check serial numbers and verify condition",
			EstimatedTime: 45,
		},
		{
			ID:          "2",
			Type:        model.TaskPick,
			Title:       "Pick Items for Order #12345",
			Description: "Collect items for customer order",
			Priority:    model.PriorityMedium,
			Status:      model.TaskInProgress,
			AssignedTo:  "3",
			CreatedAt:   date(2024, 1, 16, 10, 30),
			DueDate:     ptr(date(2024, 1, 16, 14, 0)),
			Items: []model.TaskLine{
				{SKU: "SKU-002", Name: "Wireless Mouse", Quantity: 2, Location: &model.LineLocation{From: "B2-1-05"}},
				{SKU: "SKU-004", Name: `Monitor 27" 4K`, Quantity: 1, Location: &model.LineLocation{From: "A2-3-02"}},
			},
			Instructions:  "Pack items carefully and verify quantities",
			EstimatedTime: 30,
		},
		{
			ID:          "3",
			Type:        model.TaskPutaway,
			Title:       "Store New Monitors",
			Description: "Place new monitors in designated locations",
			Priority:    model.PriorityLow,
			Status:      model.TaskCompleted,
			AssignedTo:  "3",
			CreatedAt:   date(2024, 1, 15, 14, 0),
			CompletedAt: ptr(date(2024, 1, 15, 15, 30)),
			Items: []model.TaskLine{
				{SKU: "SKU-004", Name: `Monitor 27" 4K`, Quantity: 5, Location: &model.LineLocation{To: "A2-3-02"}},
			},
			EstimatedTime: 60,
		},
	}
}

func date(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}
