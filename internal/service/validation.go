package service

import (
	"strconv"

	"github.com/maxviazov/accounts-service/internal/repository"
)

const (
	// DefaultOffset and DefaultRecordCount apply when the caller omits the parameter.
	DefaultOffset      = 0
	DefaultRecordCount = 1000
)

// validatePage rejects windows the store would otherwise answer silently
// (negative offsets, empty or oversized pages). maxRecordCount <= 0 means no cap.
func validatePage(offset, recordCount, maxRecordCount int) (repository.Page, error) {
	var ferrs []FieldError
	if offset < 0 {
		ferrs = append(ferrs, FieldError{Field: "offset", Message: "must be >= 0"})
	}
	switch {
	case recordCount <= 0:
		ferrs = append(ferrs, FieldError{Field: "record_count", Message: "must be > 0"})
	case maxRecordCount > 0 && recordCount > maxRecordCount:
		ferrs = append(ferrs, FieldError{Field: "record_count", Message: "must be <= " + strconv.Itoa(maxRecordCount)})
	}
	if err := NewInvalidInput(ferrs); err != nil {
		return repository.Page{}, err
	}
	return repository.Page{Limit: recordCount, Offset: offset}, nil
}
