package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCustomErrorUnwrapsToKind(t *testing.T) {
	err := InvalidTeacherf("teacher %d is not qualified", 7)

	if !errors.Is(err, ErrInvalidTeacher) {
		t.Fatalf("expected ErrInvalidTeacher, got %v", err)
	}
	if errors.Is(err, ErrInvalidGroup) {
		t.Error("did not expect ErrInvalidGroup")
	}
	if err.Error() != "teacher 7 is not qualified" {
		t.Errorf("unexpected message %q", err.Error())
	}

	wrapped := fmt.Errorf("adding lecture: %w", err)
	if !errors.Is(wrapped, ErrInvalidTeacher) {
		t.Error("kind lost after wrapping")
	}

	var custom *CustomError
	if !errors.As(wrapped, &custom) {
		t.Fatal("expected a CustomError in the chain")
	}
}

func TestIsMatchesAnyOfList(t *testing.T) {
	err := HasReferencef("faculty with id %d has classrooms", 1)
	if !Is(err, ErrResourceNotFound, ErrInvalidField, ErrHasReference) {
		t.Error("expected a match in the list")
	}
	if Is(err, ErrResourceNotFound, ErrInvalidField) {
		t.Error("did not expect a match")
	}
}

func TestCustomErrorFallbackMessage(t *testing.T) {
	err := &CustomError{Err: ErrInvalidField}
	if err.Error() != ErrInvalidField.Error() {
		t.Errorf("expected fallback to wrapped message, got %q", err.Error())
	}
	if (&CustomError{}).Error() != "unknown error" {
		t.Error("expected unknown error for empty CustomError")
	}
}
