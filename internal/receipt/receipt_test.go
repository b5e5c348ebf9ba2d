package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/argab/lottery/internal/models"
)

func TestRender(t *testing.T) {
	app := &models.Application{
		ID:               3,
		FullName:         "Abebe Kebede",
		Phone:            "+251911234567",
		Draw:             42,
		ConfirmationCode: "ABCDEFGHIJK",
		PaymentMethod:    models.PaymentTelebirr,
		TransactionID:    "TBR99988877",
		Status:           models.StatusPending,
		TicketPrice:      models.TicketPrice,
		CreatedAt:        time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
	}

	pdf, filename, err := Render(app, Issuer{Organization: "ማህበረ አርጋብ", TelebirrOwner: "+251936114505"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", pdf[:min(len(pdf), 16)])
	}
	if filename != "RECEIPT_ABCDEFGHIJK_42.pdf" {
		t.Fatalf("filename = %q", filename)
	}
}

func TestLatin(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Abebe Kebede", "Abebe Kebede"},
		{"  TBR1  ", "TBR1"},
		{"አበበ ከበደ", "-"},
		{"Abebe ከበደ", "Abebe ???"},
		{"", "-"},
	}
	for _, tt := range tests {
		if got := latin(tt.in, "-"); got != tt.want {
			t.Errorf("latin(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
