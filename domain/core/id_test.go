package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestRunIDIsEmpty tests run ID emptiness check
func TestRunIDIsEmpty(t *testing.T) {
	if !RunID("").IsEmpty() {
		t.Error("Expected empty run ID to be empty")
	}
	if NewRunID().IsEmpty() {
		t.Error("Expected generated run ID to not be empty")
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	valid := NewRunID().String()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, test := range tests {
		result, err := ParseRunID(test.input)
		if test.hasError {
			if err == nil {
				t.Errorf("Expected error for input '%s', got nil", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result.String() != test.input {
			t.Errorf("Expected %s, got %s", test.input, result)
		}
	}
}

// TestErrorClassification tests the sentinel error helpers
func TestErrorClassification(t *testing.T) {
	if !IsConfigurationError(ErrNoTestColumns) {
		t.Error("ErrNoTestColumns should be a configuration error")
	}
	if !IsConfigurationError(NewColumnNotFoundError("x")) {
		t.Error("missing column should be a configuration error")
	}
	if !IsNotFoundError(NewColumnNotFoundError("x")) {
		t.Error("missing column should be a not-found error")
	}
	if IsConfigurationError(ErrCanceled) {
		t.Error("cancellation is not a configuration error")
	}
	if !errors.Is(NewValidationError("confidence", "too large"), ErrInvalidJob) {
		t.Error("validation errors should wrap ErrInvalidJob")
	}
}
