package models

import (
	"context"
	"fmt"
)

// LotteryI is the ticket allocation and payment verification engine.
type LotteryI interface {
	// AvailableDraws returns the draw numbers not held by an active application.
	// The result is advisory; Apply is the authoritative check.
	AvailableDraws(ctx context.Context) ([]int, error)

	// Apply creates a pending application and notifies the applicant.
	Apply(ctx context.Context, req ApplyRequest) (*Application, error)

	GetApplication(ctx context.Context, id int64) (*Application, error)
	GetApplicationByCode(ctx context.Context, code string) (*Application, error)
	ListApplications(ctx context.Context) ([]*Application, error)

	// VerifyPayment, MarkPaid and Cancel move an application through the
	// payment lifecycle. Callers must have passed the admin auth gate.
	VerifyPayment(ctx context.Context, id int64) (*Application, error)
	MarkPaid(ctx context.Context, id int64) (*Application, error)
	Cancel(ctx context.Context, id int64) (*Application, error)

	// ValidateTransaction checks a payment reference and marks it used.
	ValidateTransaction(ctx context.Context, transactionID string, method PaymentMethod) ValidationResult

	Ping(ctx context.Context) error
}

// ApplyRequest is the applicant's submission.
type ApplyRequest struct {
	FullName      string
	Phone         string
	Draw          int
	PaymentMethod PaymentMethod
	TransactionID string
}

// ValidationReason classifies the outcome of a transaction validation.
type ValidationReason string

const (
	ReasonNone          ValidationReason = ""
	ReasonInvalidFormat ValidationReason = "invalid_format"
	ReasonAlreadyUsed   ValidationReason = "already_used"
	ReasonUnassociated  ValidationReason = "unassociated"
	ReasonInternal      ValidationReason = "internal"
)

// ValidationResult is returned by transaction validation.
type ValidationResult struct {
	Valid       bool             `json:"valid"`
	Reason      ValidationReason `json:"reason,omitempty"`
	Message     string           `json:"message"`
	Suggestions []string         `json:"suggestions"`
}

// Err maps the result to the matching sentinel error, or nil when valid.
func (r ValidationResult) Err() error {
	switch r.Reason {
	case ReasonNone:
		return nil
	case ReasonInvalidFormat:
		return ErrInvalidTransactionFormat
	case ReasonAlreadyUsed:
		return ErrTransactionAlreadyUsed
	case ReasonUnassociated:
		return ErrTransactionUnassociated
	}
	return fmt.Errorf("transaction validation failed: %s", r.Message)
}
