package application

import (
	"errors"
	"testing"
)

func TestValidateRequired_EmptyValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired("channelID", tt.value)
			if err == nil {
				t.Fatalf("expected error for %q", tt.value)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != "channelID" {
				t.Errorf("expected field channelID, got %s", verr.Field)
			}
		})
	}
}

func TestValidateRequired_ValidValue(t *testing.T) {
	if err := ValidateRequired("channelID", "C024BE91L"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRequired_ReadableFieldNames(t *testing.T) {
	err := ValidateRequired("messageID", "")
	if err == nil {
		t.Fatal("expected error")
	}
	expected := "messageID: message ID is required"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
