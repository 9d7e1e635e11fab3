package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarsalgabko/logitrack/internal/model"
	"github.com/tarsalgabko/logitrack/internal/seed"
)

var fixedNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 100
	return New(seed.Items(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { n++; return fmt.Sprint(n) }),
		WithFetchLatency(10*time.Millisecond),
	)
}

func skus(items []model.InventoryItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.SKU
	}
	return out
}

func TestLowStockFilter(t *testing.T) {
	s := newTestStore(t)
	s.SetFilterStatus(model.StockLow)

	got := s.FilteredItems()
	if len(got) != 1 || got[0].SKU != "SKU-002" {
		t.Fatalf("expected only SKU-002, got %v", skus(got))
	}
	if got[0].Status() != model.StockLow {
		t.Errorf("expected low-stock, got %s", got[0].Status())
	}
}

func TestEmptyFilterReturnsAllInOrder(t *testing.T) {
	s := newTestStore(t)
	want := []string{"SKU-001", "SKU-002", "SKU-003", "SKU-004"}
	if got := skus(s.FilteredItems()); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	s.SetSearchTerm("mouse")
	s.SetSearchTerm("")
	if got := skus(s.FilteredItems()); !slices.Equal(got, want) {
		t.Errorf("expected %v after clearing search, got %v", want, got)
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"LAPTOP", []string{"SKU-001"}},
		{"sku-003", []string{"SKU-003"}},
		{"bb2", []string{"SKU-002"}},
		{"aa", []string{"SKU-001", "SKU-004"}},
		{"nothing", nil},
	}
	s := newTestStore(t)
	for _, tt := range tests {
		s.SetSearchTerm(tt.term)
		got := skus(s.FilteredItems())
		if !slices.Equal(got, tt.want) {
			t.Errorf("search %q: expected %v, got %v", tt.term, tt.want, got)
		}
	}
}

func TestFiltersConjoin(t *testing.T) {
	s := newTestStore(t)
	s.SetFilterCategory("Electronics")
	if got := skus(s.FilteredItems()); !slices.Equal(got, []string{"SKU-001", "SKU-004"}) {
		t.Fatalf("expected SKU-001 and SKU-004, got %v", got)
	}
	s.SetSearchTerm("monitor")
	if got := skus(s.FilteredItems()); !slices.Equal(got, []string{"SKU-004"}) {
		t.Fatalf("expected SKU-004, got %v", got)
	}
	s.SetFilterStatus(model.StockOutOfStock)
	if got := s.FilteredItems(); len(got) != 0 {
		t.Errorf("expected no items, got %v", skus(got))
	}
}

func TestFilterIsRecomputedAfterMutation(t *testing.T) {
	s := newTestStore(t)
	s.SetFilterStatus(model.StockOutOfStock)
	if got := skus(s.FilteredItems()); !slices.Equal(got, []string{"SKU-003"}) {
		t.Fatalf("expected SKU-003, got %v", got)
	}

	qty := 50
	if _, ok := s.Update("3", ItemPatch{Quantity: &qty}); !ok {
		t.Fatal("expected update to find item 3")
	}
	if got := s.FilteredItems(); len(got) != 0 {
		t.Errorf("expected no out-of-stock items, got %v", skus(got))
	}
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)
	item := s.Add(NewItem{
		SKU:         "SKU-005",
		Name:        "USB-C Cable",
		Category:    "Accessories",
		Price:       decimal.RequireFromString("9.99"),
		Currency:    "EUR",
		Quantity:    40,
		MinQuantity: 20,
		Location:    model.Location{Zone: "B", Rack: "B1", Level: 1, Bin: "B1-1-01"},
	})

	if item.ID != "101" {
		t.Errorf("expected id 101, got %s", item.ID)
	}
	if !item.LastUpdated.Equal(fixedNow) {
		t.Errorf("expected lastUpdated %v, got %v", fixedNow, item.LastUpdated)
	}
	items := s.Items()
	if len(items) != 5 || items[4].SKU != "SKU-005" {
		t.Fatalf("expected SKU-005 appended, got %v", skus(items))
	}
	if !s.HasSKU("SKU-005") {
		t.Error("expected HasSKU to see the new item")
	}
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	s := New(nil)
	a := s.Add(NewItem{SKU: "A"})
	b := s.Add(NewItem{SKU: "B"})
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
}

func TestUpdateMergesAndRefreshesTimestamp(t *testing.T) {
	s := newTestStore(t)
	name := "Wireless Mouse M705"
	got, ok := s.Update("2", ItemPatch{Name: &name})
	if !ok {
		t.Fatal("expected update to find item 2")
	}
	if got.Name != name {
		t.Errorf("expected name %q, got %q", name, got.Name)
	}
	if got.SKU != "SKU-002" || got.Quantity != 3 {
		t.Errorf("expected other fields unchanged, got %+v", got)
	}
	if !got.LastUpdated.Equal(fixedNow) {
		t.Errorf("expected lastUpdated %v, got %v", fixedNow, got.LastUpdated)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestStore(t)
	before := s.Items()
	name := "x"
	if _, ok := s.Update("999", ItemPatch{Name: &name}); ok {
		t.Fatal("expected update of unknown id to report not found")
	}
	if got := s.Items(); !slices.EqualFunc(got, before, func(a, b model.InventoryItem) bool {
		return a.ID == b.ID && a.Name == b.Name
	}) {
		t.Error("expected catalog unchanged")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	s.SetPhoto("2", Photo{Data: []byte{1}, MIME: "image/jpeg"}, "/api/items/2/image")

	if !s.Delete("2") {
		t.Fatal("expected delete to find item 2")
	}
	if got := skus(s.Items()); !slices.Equal(got, []string{"SKU-001", "SKU-003", "SKU-004"}) {
		t.Errorf("expected SKU-002 removed, got %v", got)
	}
	if _, ok := s.Photo("2"); ok {
		t.Error("expected photo removed with its item")
	}
	if s.Delete("2") {
		t.Error("expected second delete to report not found")
	}
}

func TestReadersReturnCopies(t *testing.T) {
	s := newTestStore(t)
	items := s.Items()
	items[0].Name = "mutated"
	items[0].Location.Zone = "Z"

	got, _ := s.Get("1")
	if got.Name != "Laptop Dell XPS 13" || got.Location.Zone != "A" {
		t.Errorf("expected stored item untouched, got %+v", got)
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	s := newTestStore(t)
	want := []string{"Electronics", "Accessories", "Furniture"}
	if got := s.Categories(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSummary(t *testing.T) {
	s := newTestStore(t)
	sum := s.Summary()

	if sum.Items != 4 {
		t.Errorf("expected 4 items, got %d", sum.Items)
	}
	if sum.TotalUnits != 26 {
		t.Errorf("expected 26 units, got %d", sum.TotalUnits)
	}
	if sum.InStock != 2 || sum.LowStock != 1 || sum.OutOfStock != 1 {
		t.Errorf("expected 2/1/1 status counts, got %d/%d/%d", sum.InStock, sum.LowStock, sum.OutOfStock)
	}
	// 15*1299.99 + 3*29.99 + 8*399.99
	want := decimal.RequireFromString("22789.74")
	if !sum.StockValue.Equal(want) {
		t.Errorf("expected stock value %s, got %s", want, sum.StockValue)
	}
	if sum.Categories != 3 {
		t.Errorf("expected 3 categories, got %d", sum.Categories)
	}
}

func TestSetPhoto(t *testing.T) {
	s := newTestStore(t)
	data := []byte{0xff, 0xd8}
	item, ok := s.SetPhoto("1", Photo{Data: data, MIME: "image/jpeg"}, "/api/items/1/image")
	if !ok {
		t.Fatal("expected SetPhoto to find item 1")
	}
	if item.Image != "/api/items/1/image" {
		t.Errorf("expected image ref set, got %q", item.Image)
	}
	data[0] = 0

	p, ok := s.Photo("1")
	if !ok {
		t.Fatal("expected stored photo")
	}
	if p.Data[0] != 0xff || p.MIME != "image/jpeg" {
		t.Errorf("expected stored copy, got %v %s", p.Data, p.MIME)
	}
	if _, ok := s.SetPhoto("999", Photo{}, ""); ok {
		t.Error("expected SetPhoto on unknown id to report not found")
	}
}

func TestFetchTogglesLoading(t *testing.T) {
	s := newTestStore(t)
	var seen []bool
	unsubscribe := s.Subscribe(func() { seen = append(seen, s.Loading()) })
	defer unsubscribe()

	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !slices.Equal(seen, []bool{true, false}) {
		t.Errorf("expected loading true then false, got %v", seen)
	}
	if s.Loading() {
		t.Error("expected loading cleared after fetch")
	}
}

func TestFetchCancelled(t *testing.T) {
	s := New(nil, WithFetchLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.Loading() {
		t.Error("expected loading cleared after cancelled fetch")
	}
}

func TestOverlappingFetchesKeepLoading(t *testing.T) {
	s := New(nil, WithFetchLatency(time.Hour))
	started := make(chan struct{}, 1)
	defer s.Subscribe(func() {
		select {
		case started <- struct{}{}:
		default:
		}
	})()

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	done := make(chan error, 1)
	go func() { done <- s.Fetch(ctxA) }()
	<-started

	// A second fetch finishing first must not clear the first one's flag.
	ctxB, cancelB := context.WithCancel(context.Background())
	cancelB()
	if err := s.Fetch(ctxB); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !s.Loading() {
		t.Error("expected loading while the first fetch is in flight")
	}

	cancelA()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.Loading() {
		t.Error("expected loading cleared after both fetches")
	}
}

func TestSubscribeNotifiedOnMutation(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.Add(NewItem{SKU: "X"})
	s.SetSearchTerm("x")
	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}
	unsubscribe()
	s.Delete("1")
	if calls != 2 {
		t.Errorf("expected no notification after unsubscribe, got %d", calls)
	}
}
