// Package inventory is the in-memory stock catalog with its filtered view.
package inventory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tarsalgabko/logitrack/internal/metrics"
	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/notify"
)

// ErrNotFound is returned when an operation targets an unknown item id.
var ErrNotFound = errors.New("item not found")

// DefaultFetchLatency is the simulated latency of Fetch.
const DefaultFetchLatency = time.Second

// NewItem holds the caller-supplied fields of an item. The store assigns the
// id and the timestamp.
type NewItem struct {
	SKU         string
	Name        string
	Description string
	Category    string
	Supplier    string
	Image       string
	Price       decimal.Decimal
	Currency    string
	Quantity    int
	MinQuantity int
	Location    model.Location
	BatchNumber string
	ExpiryDate  *time.Time
}

// ItemPatch lists the fields Update may change. Nil fields are left as they
// are.
type ItemPatch struct {
	SKU         *string
	Name        *string
	Description *string
	Category    *string
	Supplier    *string
	Image       *string
	Price       *decimal.Decimal
	Currency    *string
	Quantity    *int
	MinQuantity *int
	Location    *model.Location
	BatchNumber *string
	ExpiryDate  *time.Time
}

func (p ItemPatch) apply(item *model.InventoryItem) {
	setString(&item.SKU, p.SKU)
	setString(&item.Name, p.Name)
	setString(&item.Description, p.Description)
	setString(&item.Category, p.Category)
	setString(&item.Supplier, p.Supplier)
	setString(&item.Image, p.Image)
	setString(&item.Currency, p.Currency)
	setString(&item.BatchNumber, p.BatchNumber)
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.MinQuantity != nil {
		item.MinQuantity = *p.MinQuantity
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.ExpiryDate != nil {
		exp := *p.ExpiryDate
		item.ExpiryDate = &exp
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Photo is a processed item image.
type Photo struct {
	Data []byte
	MIME string
}

// Summary aggregates the catalog for the dashboard.
type Summary struct {
	Items      int             `json:"items"`
	TotalUnits int             `json:"totalUnits"`
	InStock    int             `json:"inStock"`
	LowStock   int             `json:"lowStock"`
	OutOfStock int             `json:"outOfStock"`
	StockValue decimal.Decimal `json:"stockValue"`
	Categories int             `json:"categories"`
}

// Store owns the catalog. All readers receive copies.
type Store struct {
	mu      sync.RWMutex
	items   []model.InventoryItem
	filter  Filter
	photos  map[string]Photo
	loading int

	now     func() time.Time
	newID   func() string
	latency time.Duration
	hub     notify.Hub
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for lastUpdated.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source for new items.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithFetchLatency sets the simulated latency of Fetch.
func WithFetchLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// New creates a store holding a copy of seed.
func New(seed []model.InventoryItem, opts ...Option) *Store {
	s := &Store{
		items:   make([]model.InventoryItem, 0, len(seed)),
		photos:  make(map[string]Photo),
		now:     time.Now,
		newID:   uuid.NewString,
		latency: DefaultFetchLatency,
	}
	for _, item := range seed {
		s.items = append(s.items, item.Clone())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new item with a fresh id and the current time.
func (s *Store) Add(in NewItem) model.InventoryItem {
	item := model.InventoryItem{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Supplier:    in.Supplier,
		Image:       in.Image,
		Price:       in.Price,
		Currency:    in.Currency,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		Location:    in.Location,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
	}
	item = item.Clone()

	s.mu.Lock()
	item.ID = s.newID()
	item.LastUpdated = s.now()
	s.items = append(s.items, item)
	s.mu.Unlock()

	metrics.CatalogMutationsTotal.WithLabelValues("add").Inc()
	s.hub.Publish()
	return item.Clone()
}

// Update merges patch into the item with the given id and refreshes its
// timestamp. It reports false when no such item exists.
func (s *Store) Update(id string, patch ItemPatch) (model.InventoryItem, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return model.InventoryItem{}, false
	}
	patch.apply(&s.items[i])
	s.items[i].LastUpdated = s.now()
	updated := s.items[i].Clone()
	s.mu.Unlock()

	metrics.CatalogMutationsTotal.WithLabelValues("update").Inc()
	s.hub.Publish()
	return updated, true
}

// Delete removes the item with the given id. It reports false when no such
// item exists.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	delete(s.photos, id)
	s.mu.Unlock()

	metrics.CatalogMutationsTotal.WithLabelValues("delete").Inc()
	s.hub.Publish()
	return true
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (model.InventoryItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.InventoryItem{}, false
	}
	return s.items[i].Clone(), true
}

// Items returns the whole catalog in insertion order.
func (s *Store) Items() []model.InventoryItem {
	return s.Query(Filter{})
}

// HasSKU reports whether some item carries sku. It lets the store act as
// the SKU resolver for tasks.
func (s *Store) HasSKU(sku string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.SKU == sku {
			return true
		}
	}
	return false
}

// SetSearchTerm replaces the search criterion of the filtered view.
func (s *Store) SetSearchTerm(term string) {
	s.setFilter(func(f *Filter) { f.Search = term })
}

// SetFilterCategory replaces the category criterion of the filtered view.
func (s *Store) SetFilterCategory(category string) {
	s.setFilter(func(f *Filter) { f.Category = category })
}

// SetFilterStatus replaces the stock status criterion of the filtered view.
func (s *Store) SetFilterStatus(status model.StockStatus) {
	s.setFilter(func(f *Filter) { f.Status = status })
}

// SetFilter replaces all three criteria at once.
func (s *Store) SetFilter(f Filter) {
	s.setFilter(func(cur *Filter) { *cur = f })
}

func (s *Store) setFilter(fn func(*Filter)) {
	s.mu.Lock()
	fn(&s.filter)
	s.mu.Unlock()
	s.hub.Publish()
}

// Filter returns the current criteria of the filtered view.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// FilteredItems returns the items matching the store's current criteria,
// recomputed on every call.
func (s *Store) FilteredItems() []model.InventoryItem {
	return s.Query(s.Filter())
}

// Query returns the items matching f without touching the store's own
// criteria.
func (s *Store) Query(f Filter) []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if f.Match(item) {
			out = append(out, item.Clone())
		}
	}
	return out
}

// Categories returns the distinct categories in order of first appearance.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, item := range s.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Summary aggregates quantities and stock statuses across the catalog.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum Summary
	categories := make(map[string]bool)
	for _, item := range s.items {
		sum.Items++
		sum.TotalUnits += item.Quantity
		sum.StockValue = sum.StockValue.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		categories[item.Category] = true
		switch item.Status() {
		case model.StockInStock:
			sum.InStock++
		case model.StockLow:
			sum.LowStock++
		case model.StockOutOfStock:
			sum.OutOfStock++
		}
	}
	sum.Categories = len(categories)
	return sum
}

// SetPhoto stores a processed image for the item and points its image
// reference at ref.
func (s *Store) SetPhoto(id string, photo Photo, ref string) (model.InventoryItem, bool) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return model.InventoryItem{}, false
	}
	s.photos[id] = Photo{Data: append([]byte(nil), photo.Data...), MIME: photo.MIME}
	s.items[i].Image = ref
	s.items[i].LastUpdated = s.now()
	updated := s.items[i].Clone()
	s.mu.Unlock()

	metrics.CatalogMutationsTotal.WithLabelValues("photo").Inc()
	s.hub.Publish()
	return updated, true
}

// Photo returns the stored image for the item.
func (s *Store) Photo(id string) (Photo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[id]
	return p, ok
}

// Fetch simulates loading the catalog from a backend: Loading reports true
// for the configured latency. It returns early with ctx's error if ctx ends.
func (s *Store) Fetch(ctx context.Context) error {
	s.setLoading(1)
	defer s.setLoading(-1)

	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Loading reports whether any Fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// setLoading adjusts the in-flight Fetch count by delta.
func (s *Store) setLoading(delta int) {
	s.mu.Lock()
	s.loading += delta
	s.mu.Unlock()
	s.hub.Publish()
}

// Subscribe registers fn to run after every change to the store.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
