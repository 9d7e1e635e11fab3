package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus classifies an item's quantity against its reorder threshold.
type StockStatus string

// Stock statuses.
const (
	StockInStock    StockStatus = "in-stock"
	StockLow        StockStatus = "low-stock"
	StockOutOfStock StockStatus = "out-of-stock"
)

// StockStatusFor derives the stock status from quantity and minQuantity.
func StockStatusFor(quantity, minQuantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOutOfStock
	case quantity <= minQuantity:
		return StockLow
	default:
		return StockInStock
	}
}

// Valid reports whether s is a known stock status.
func (s StockStatus) Valid() bool {
	switch s {
	case StockInStock, StockLow, StockOutOfStock:
		return true
	}
	return false
}

// Location is a physical storage address inside the warehouse.
// Bin is conventionally "{rack}-{level}-{binNumber}".
type Location struct {
	Zone  string `json:"zone"`
	Rack  string `json:"rack"`
	Level int    `json:"level"`
	Bin   string `json:"bin"`
}

// Code returns the composed location string zone+rack-level-bin.
func (l Location) Code() string {
	return fmt.Sprintf("%s%s-%d-%s", l.Zone, l.Rack, l.Level, l.Bin)
}

// InventoryItem is a stock-keeping unit held in the catalog.
type InventoryItem struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Supplier    string          `json:"supplier"`
	Image       string          `json:"image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	Location    Location        `json:"location"`
	BatchNumber string          `json:"batchNumber,omitempty"`
	ExpiryDate  *time.Time      `json:"expiryDate,omitempty"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// Status is computed from Quantity and MinQuantity on every call.
func (i InventoryItem) Status() StockStatus {
	return StockStatusFor(i.Quantity, i.MinQuantity)
}

// Clone returns a copy that shares no pointers with i.
func (i InventoryItem) Clone() InventoryItem {
	if i.ExpiryDate != nil {
		exp := *i.ExpiryDate
		i.ExpiryDate = &exp
	}
	return i
}

// MarshalJSON adds the derived status to the encoded item.
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type plain InventoryItem
	return json.Marshal(struct {
		plain
		Status StockStatus `json:"status"`
	}{plain: plain(i), Status: i.Status()})
}
