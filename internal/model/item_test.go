package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestStockStatusFor(t *testing.T) {
	tests := []struct {
		quantity, minQuantity int
		expected              StockStatus
	}{
		{15, 5, StockInStock},
		{3, 10, StockLow},
		{0, 2, StockOutOfStock},
		{5, 5, StockLow},
		{6, 5, StockInStock},
		{1, 0, StockInStock},
		{-1, 0, StockOutOfStock},
	}

	for _, tt := range tests {
		got := StockStatusFor(tt.quantity, tt.minQuantity)
		if got != tt.expected {
			t.Errorf("StockStatusFor(%d, %d) = %q, want %q", tt.quantity, tt.minQuantity, got, tt.expected)
		}
	}
}

func TestLocationCode(t *testing.T) {
	loc := Location{Zone: "A", Rack: "A1", Level: 2, Bin: "A1-2-03"}
	if got := loc.Code(); got != "AA1-2-A1-2-03" {
		t.Errorf("expected 'AA1-2-A1-2-03', got %q", got)
	}
}

func TestItemJSONCarriesDerivedStatus(t *testing.T) {
	item := InventoryItem{
		ID:          "2",
		SKU:         "SKU-002",
		Price:       decimal.RequireFromString("29.99"),
		Quantity:    3,
		MinQuantity: 10,
		LastUpdated: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["status"] != string(StockLow) {
		t.Errorf("expected status 'low-stock', got %v", decoded["status"])
	}
	if decoded["minQuantity"] != float64(10) {
		t.Errorf("expected minQuantity 10, got %v", decoded["minQuantity"])
	}
}

func TestItemCloneDetachesExpiry(t *testing.T) {
	exp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	item := InventoryItem{ExpiryDate: &exp}

	clone := item.Clone()
	*clone.ExpiryDate = clone.ExpiryDate.AddDate(1, 0, 0)

	if !item.ExpiryDate.Equal(exp) {
		t.Errorf("expected original expiry unchanged, got %v", item.ExpiryDate)
	}
}
