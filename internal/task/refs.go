package task

import (
	"errors"
	"fmt"

	"github.com/tarsalgabko/logitrack/internal/model"
)

var (
	// ErrUnknownSKU is returned when a task line names a SKU missing from
	// the catalog.
	ErrUnknownSKU = errors.New("unknown sku")
	// ErrUnknownAssignee is returned when a task is assigned to an unknown
	// user id.
	ErrUnknownAssignee = errors.New("unknown assignee")
)

// SKUResolver reports whether a SKU exists in the catalog.
type SKUResolver interface {
	HasSKU(sku string) bool
}

// AssigneeResolver reports whether a user id exists.
type AssigneeResolver interface {
	HasUser(id string) bool
}

// ValidateRefs checks the soft references of a task against the catalog and
// the user directory. Every broken reference is reported.
func ValidateRefs(assignedTo string, lines []model.TaskLine, skus SKUResolver, users AssigneeResolver) error {
	var errs []error
	if assignedTo != "" && !users.HasUser(assignedTo) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownAssignee, assignedTo))
	}
	for _, line := range lines {
		if !skus.HasSKU(line.SKU) {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownSKU, line.SKU))
		}
	}
	return errors.Join(errs...)
}
