package validation

import (
	"strings"
	"testing"
)

func TestValidateAndNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+251 911-234 567", "+251911234567", false},
		{"0911234567", "0911234567", false},
		{"(09) 1123 4567", "0911234567", false},
		{"", "", true},
		{"12345", "", true},
		{"09112abc67", "", true},
		{"+1234567890123456", "", true},
	}
	for _, tt := range tests {
		got, err := ValidateAndNormalizePhone(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ValidateAndNormalizePhone(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ValidateAndNormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateFullName(t *testing.T) {
	if err := ValidateFullName("አበበ ቢቂላ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateFullName(""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := ValidateFullName(strings.Repeat("ሀ", 121)); err == nil {
		t.Fatal("expected error for long name")
	}
}
