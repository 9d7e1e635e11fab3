package task

import (
	"errors"
	"testing"

	"github.com/tarsalgabko/logitrack/internal/model"
)

type skuSet map[string]bool

func (s skuSet) HasSKU(sku string) bool { return s[sku] }

type userSet map[string]bool

func (u userSet) HasUser(id string) bool { return u[id] }

func TestValidateRefs(t *testing.T) {
	skus := skuSet{"SKU-001": true, "SKU-002": true}
	users := userSet{"3": true}

	tests := []struct {
		name       string
		assignedTo string
		lines      []model.TaskLine
		wantSKU    bool
		wantUser   bool
	}{
		{"valid", "3", []model.TaskLine{{SKU: "SKU-001"}, {SKU: "SKU-002"}}, false, false},
		{"unassigned", "", nil, false, false},
		{"unknown sku", "3", []model.TaskLine{{SKU: "SKU-404"}}, true, false},
		{"unknown user", "9", []model.TaskLine{{SKU: "SKU-001"}}, false, true},
		{"both", "9", []model.TaskLine{{SKU: "SKU-404"}}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRefs(tt.assignedTo, tt.lines, skus, users)
			if got := errors.Is(err, ErrUnknownSKU); got != tt.wantSKU {
				t.Errorf("expected ErrUnknownSKU %v, got %v (%v)", tt.wantSKU, got, err)
			}
			if got := errors.Is(err, ErrUnknownAssignee); got != tt.wantUser {
				t.Errorf("expected ErrUnknownAssignee %v, got %v (%v)", tt.wantUser, got, err)
			}
		})
	}
}
