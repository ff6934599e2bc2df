package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "Stock record not found.",
			},
			expected: "NOT_FOUND: Stock record not found.",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("errors.Is should reach the original error")
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Stock", "S-001", "Stock record not found.")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Message != "Stock record not found." {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["id"] != "S-001" {
		t.Errorf("expected id 'S-001', got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Stock" {
		t.Errorf("expected resource 'Stock', got %v", err.Details["resource"])
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("Stock", "S-001", "Stock record already exists.")

	if err.Code != CodeConflict {
		t.Errorf("expected code %s, got %s", CodeConflict, err.Code)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, err.HTTPStatus)
	}
	if err.Details["id"] != "S-001" {
		t.Errorf("expected id 'S-001', got %v", err.Details["id"])
	}
}

func TestValidation(t *testing.T) {
	err := Validation("validation failed", map[string]any{"field": "price"})

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
	if err.Details["field"] != "price" {
		t.Errorf("expected field 'price', got %v", err.Details["field"])
	}
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("month must be between 1 and 12")

	if err.Code != CodeInvalidInput {
		t.Errorf("expected code %s, got %s", CodeInvalidInput, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("Stock store")

	if err.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, err.HTTPStatus)
	}
	if err.Message != "Stock store is temporarily unavailable" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestIsNotFound(t *testing.T) {
	notFound := NotFoundWithID("Book", "1", "BookMst record not found.")
	wrapped := fmt.Errorf("transaction failed: %w", notFound)

	if !IsNotFound(notFound) {
		t.Errorf("IsNotFound() should be true for a not-found AppError")
	}
	if !IsNotFound(wrapped) {
		t.Errorf("IsNotFound() should see through wrapping")
	}
	if IsNotFound(InvalidInput("bad")) {
		t.Errorf("IsNotFound() should be false for other codes")
	}
	if IsNotFound(errors.New("plain")) {
		t.Errorf("IsNotFound() should be false for plain errors")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFoundWithID("Stock", "S-1", "Stock record not found.")
	regularErr := errors.New("regular error")

	if result := AsAppError(appErr); result != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	if result := AsAppError(fmt.Errorf("ctx: %w", appErr)); result != appErr {
		t.Errorf("AsAppError() should unwrap to the AppError")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	jsonStr := string(NotFoundWithID("Stock", "S-1", "Stock record not found.").ToJSON())

	if !strings.Contains(jsonStr, CodeNotFound) {
		t.Errorf("ToJSON() should contain error code, got %s", jsonStr)
	}
	if !strings.Contains(jsonStr, "Stock record not found.") {
		t.Errorf("ToJSON() should contain error message, got %s", jsonStr)
	}
}
