// Package receipt renders the PDF an applicant keeps as proof of their ticket.
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/phpdave11/gofpdf"

	"github.com/argab/lottery/internal/models"
)

// Issuer is printed in the receipt header.
type Issuer struct {
	Organization  string
	TelebirrOwner string
}

// Render returns the receipt PDF for app and its file name.
func Render(app *models.Application, issuer Issuer) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Lottery ticket receipt", false)
	pdf.SetCreator(latin(issuer.Organization, "lottery"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "LOTTERY TICKET RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Confirmation code : %s", app.ConfirmationCode),
		fmt.Sprintf("Draw number       : %d", app.Draw),
		fmt.Sprintf("Name              : %s", latin(app.FullName, "-")),
		fmt.Sprintf("Phone             : %s", app.Phone),
		fmt.Sprintf("Payment method    : %s", paymentMethodLabel(app.PaymentMethod)),
		fmt.Sprintf("Transaction       : %s", latin(app.TransactionID, "-")),
		fmt.Sprintf("Ticket price      : %d ETB", app.TicketPrice),
		fmt.Sprintf("Status            : %s", strings.ToUpper(string(app.Status))),
		fmt.Sprintf("Submitted         : %s", app.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	note := "Keep this receipt and your confirmation code until the draw results are announced."
	if issuer.TelebirrOwner != "" && app.Status == models.StatusPending {
		note += fmt.Sprintf(" Pay %d ETB via TeleBirr to %s.", app.TicketPrice, issuer.TelebirrOwner)
	}
	pdf.MultiCell(0, 5, note, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render receipt: %w", err)
	}

	filename := fmt.Sprintf("RECEIPT_%s_%d.pdf", app.ConfirmationCode, app.Draw)
	return buf.Bytes(), filename, nil
}

func paymentMethodLabel(m models.PaymentMethod) string {
	switch m {
	case models.PaymentTelebirr:
		return "TeleBirr"
	case models.PaymentCBEMobile:
		return "CBE Mobile"
	}
	return "Other"
}

// latin keeps what the core PDF fonts can draw. Text with nothing printable
// left (for example an Amharic name) is replaced by fallback.
func latin(s, fallback string) string {
	var b strings.Builder
	printable := false
	for _, r := range strings.TrimSpace(s) {
		if r < unicode.MaxASCII && unicode.IsPrint(r) {
			b.WriteRune(r)
			if r != ' ' {
				printable = true
			}
			continue
		}
		b.WriteRune('?')
	}
	if !printable {
		return fallback
	}
	return b.String()
}
