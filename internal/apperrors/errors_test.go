package apperrors

import (
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"not found", NotFound("account not found"), KindNotFound},
		{"invalid argument", InvalidArgument("invalid event type"), KindInvalidArgument},
		{"validation", Validation("amount is required"), KindValidation},
		{"plain error", fmt.Errorf("boom"), KindUnexpected},
		{"wrapped tagged error", fmt.Errorf("processing failed: %w", NotFound("account not found")), KindNotFound},
		{"nil", nil, KindUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if kind := KindOf(tt.err); kind != tt.expected {
				t.Errorf("expected kind %v, got %v", tt.expected, kind)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := InvalidArgument("amount must be higher than 0")
	if err.Error() != "amount must be higher than 0" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(NotFound("gone")) {
		t.Error("expected IsNotFound to report true for a NotFound error")
	}
	if IsNotFound(InvalidArgument("nope")) {
		t.Error("expected IsNotFound to report false for other kinds")
	}
}
