package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := fmt.Errorf("create: %w", NewValidationError("name is required"))

	if !errors.Is(err, ErrValidationFailed) {
		t.Fatal("wrapped validation error should match ErrValidationFailed")
	}
	if got := MessageOf(err, "fallback"); got != "name is required" {
		t.Fatalf("MessageOf = %q", got)
	}
}

func TestMessageOfFallback(t *testing.T) {
	err := fmt.Errorf("%w: listing courses: connection refused", ErrRetrievalFailed)

	if got := MessageOf(err, "Failed to fetch courses"); got != "Failed to fetch courses" {
		t.Fatalf("MessageOf = %q", got)
	}
	if !Is(err, ErrWriteFailed, ErrRetrievalFailed) {
		t.Fatal("Is should match any listed target")
	}
	if Is(err, ErrWriteFailed) {
		t.Fatal("Is matched the wrong sentinel")
	}
}
