package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/accounts-service/internal/service"
)

func TestNewInvalidInput_EmptyIsNil(t *testing.T) {
	if err := service.NewInvalidInput(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestFieldErrors_SurvivesWrapping(t *testing.T) {
	err := service.NewInvalidInput([]service.FieldError{{Field: "offset", Message: "must be >= 0"}})
	wrapped := fmt.Errorf("handler: %w", err)

	if !errors.Is(wrapped, service.ErrInvalidInput) {
		t.Fatalf("expected wrapped error to match ErrInvalidInput")
	}
	fe := service.FieldErrors(wrapped)
	if len(fe) != 1 || fe[0].Field != "offset" {
		t.Fatalf("unexpected field errors: %+v", fe)
	}
}

func TestFieldErrors_OtherErrors(t *testing.T) {
	if fe := service.FieldErrors(errors.New("x")); fe != nil {
		t.Fatalf("expected nil, got %+v", fe)
	}
	if fe := service.FieldErrors(service.ErrInvalidInput); fe != nil {
		t.Fatalf("bare marker carries no fields, got %+v", fe)
	}
}
