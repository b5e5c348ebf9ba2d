package http_api

import (
	"embed"
	"html/template"
	"time"

	"github.com/argab/lottery/internal/models"
	"github.com/argab/lottery/pkg/validation"
)

//go:embed templates/*.html
var templatesFS embed.FS

var statusLabels = map[models.Status]string{
	models.StatusPending:   "በመጠባበቅ ላይ",
	models.StatusVerified:  "ተረጋግጧል",
	models.StatusPaid:      "ተከፍሏል",
	models.StatusCancelled: "ተሰርዟል",
}

var paymentLabels = map[models.PaymentMethod]string{
	models.PaymentTelebirr:  "TeleBirr",
	models.PaymentCBEMobile: "CBE Mobile",
	models.PaymentOther:     "ሌላ",
}

var templateFuncs = template.FuncMap{
	"statusLabel": func(s models.Status) string {
		if label, ok := statusLabels[s]; ok {
			return label
		}
		return string(s)
	},
	"paymentLabel": func(m models.PaymentMethod) string {
		if label, ok := paymentLabels[m]; ok {
			return label
		}
		return string(m)
	},
	"transactionHint": validation.TransactionHint,
	"formatTime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}
