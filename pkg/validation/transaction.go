package validation

import (
	"fmt"
	"strings"
)

// transactionRule describes the shape of a payment reference for one payment method.
type transactionRule struct {
	Prefix      string
	MinLength   int
	Placeholder string
	Hint        string
}

// transactionRules are keyed by payment method. Methods without a rule have
// no recognized reference format.
var transactionRules = map[string]transactionRule{
	"telebirr": {
		Prefix:      "TBR",
		MinLength:   10,
		Placeholder: "TBR123456789",
		Hint:        "የTeleBirr ትራንዛክሽን ቁጥሮች አብዛኛውን ጊዜ በ 'TBR' ይጀምራሉ።",
	},
	"cbe_mobile": {
		Prefix:      "CBE",
		MinLength:   10,
		Placeholder: "CBE123456789",
		Hint:        "የCBE Mobile ትራንዛክሽን ቁጥሮች አብዛኛውን ጊዜ በ 'CBE' ይጀምራሉ።",
	},
}

// FormatError is returned when a transaction reference does not match the
// payment method's expected shape. Hint is empty for methods without a format.
type FormatError struct {
	Method string
	Reason string
	Hint   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s transaction reference: %s", e.Method, e.Reason)
}

// NormalizeTransactionID trims and upper-cases a transaction reference.
func NormalizeTransactionID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// ValidateTransactionID checks the format of an already normalized reference
// against the rule for method.
func ValidateTransactionID(id, method string) error {
	rule, ok := transactionRules[method]
	if !ok {
		return &FormatError{Method: method, Reason: "no recognized reference format"}
	}
	if !strings.HasPrefix(id, rule.Prefix) {
		return &FormatError{Method: method, Reason: fmt.Sprintf("expected prefix %s", rule.Prefix), Hint: rule.Hint}
	}
	if len(id) < rule.MinLength {
		return &FormatError{Method: method, Reason: fmt.Sprintf("expected at least %d characters, got %d", rule.MinLength, len(id)), Hint: rule.Hint}
	}
	// Example value copied from the payment instructions.
	if id == rule.Placeholder {
		return &FormatError{Method: method, Reason: "placeholder reference", Hint: rule.Hint}
	}
	return nil
}

// ValidateAndNormalizeTransactionID normalizes id and validates it for method.
func ValidateAndNormalizeTransactionID(id, method string) (string, error) {
	normalized := NormalizeTransactionID(id)
	if err := ValidateTransactionID(normalized, method); err != nil {
		return "", err
	}
	return normalized, nil
}

// TransactionHint returns the format hint shown for method, if any.
func TransactionHint(method string) string {
	return transactionRules[method].Hint
}
