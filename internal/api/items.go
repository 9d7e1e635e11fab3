package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarsalgabko/logitrack/internal/imaging"
	"github.com/tarsalgabko/logitrack/internal/inventory"
	"github.com/tarsalgabko/logitrack/internal/model"
)

// ItemsHandler handles catalog endpoints.
type ItemsHandler struct {
	Inventory *inventory.Store
}

type locationRequest struct {
	Zone  string `json:"zone" validate:"required"`
	Rack  string `json:"rack" validate:"required"`
	Level int    `json:"level" validate:"gte=0"`
	Bin   string `json:"bin" validate:"required"`
}

func (l locationRequest) model() model.Location {
	return model.Location{Zone: l.Zone, Rack: l.Rack, Level: l.Level, Bin: l.Bin}
}

type createItemRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required"`
	Supplier    string          `json:"supplier"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	MinQuantity int             `json:"minQuantity" validate:"gte=0"`
	Location    locationRequest `json:"location"`
	BatchNumber string          `json:"batchNumber"`
	ExpiryDate  *time.Time      `json:"expiryDate"`
}

type updateItemRequest struct {
	SKU         *string          `json:"sku" validate:"omitempty,min=1"`
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,min=1"`
	Supplier    *string          `json:"supplier"`
	Image       *string          `json:"image"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency" validate:"omitempty,len=3"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
	MinQuantity *int             `json:"minQuantity" validate:"omitempty,gte=0"`
	Location    *locationRequest `json:"location"`
	BatchNumber *string          `json:"batchNumber"`
	ExpiryDate  *time.Time       `json:"expiryDate"`
}

func (req updateItemRequest) patch() inventory.ItemPatch {
	p := inventory.ItemPatch{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Supplier:    req.Supplier,
		Image:       req.Image,
		Price:       req.Price,
		Currency:    req.Currency,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		BatchNumber: req.BatchNumber,
		ExpiryDate:  req.ExpiryDate,
	}
	if req.Location != nil {
		loc := req.Location.model()
		p.Location = &loc
	}
	return p
}

// filterFromQuery reads the search, category and status query parameters.
func filterFromQuery(r *http.Request) (inventory.Filter, error) {
	q := r.URL.Query()
	f := inventory.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   model.StockStatus(q.Get("status")),
	}
	if f.Status != "" && !f.Status.Valid() {
		return inventory.Filter{}, errors.New("invalid status")
	}
	return f, nil
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	jsonResponse(w, http.StatusOK, h.Inventory.Query(f))
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price.IsNegative() {
		jsonError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if req.Currency == "" {
		req.Currency = "EUR"
	}

	item := h.Inventory.Add(inventory.NewItem{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Supplier:    req.Supplier,
		Image:       req.Image,
		Price:       req.Price,
		Currency:    req.Currency,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Location:    req.Location.model(),
		BatchNumber: req.BatchNumber,
		ExpiryDate:  req.ExpiryDate,
	})

	slog.Info("item created", "id", item.ID, "sku", item.SKU)
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.Inventory.Get(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PATCH /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		jsonError(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	item, ok := h.Inventory.Update(r.PathValue("id"), req.patch())
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.Inventory.Delete(id) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	slog.Info("item deleted", "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := h.Inventory.Get(id); !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file, imaging.MaxSide)
	switch {
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		jsonError(w, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	case errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	case err != nil:
		slog.Warn("processing item image", "id", id, "error", err)
		jsonError(w, http.StatusBadRequest, "invalid image")
		return
	}

	item, ok := h.Inventory.SetPhoto(id, inventory.Photo{Data: photo.Data, MIME: photo.MIME}, "/api/items/"+id+"/image")
	if !ok {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	photo, ok := h.Inventory.Photo(r.PathValue("id"))
	if !ok {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", photo.MIME)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(photo.Data)
}
