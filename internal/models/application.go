package models

import "time"

const (
	// MinDraw and MaxDraw bound the draw numbers that can be sold.
	MinDraw = 1
	MaxDraw = 300

	// TicketPrice is the price of one ticket in ETB.
	TicketPrice = 10
)

// Status is the payment status of an application.
type Status string

const (
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// transitions lists, for every status, the statuses an admin may move it to.
// paid and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:  {StatusVerified, StatusCancelled},
	StatusVerified: {StatusPaid, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an application in status s may be moved to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentMethod is the channel the applicant paid through.
type PaymentMethod string

const (
	PaymentTelebirr  PaymentMethod = "telebirr"
	PaymentCBEMobile PaymentMethod = "cbe_mobile"
	PaymentOther     PaymentMethod = "other"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentTelebirr, PaymentCBEMobile, PaymentOther:
		return true
	}
	return false
}

// Application is a ticket application for a single draw.
type Application struct {
	// ID is assigned by the store.
	ID int64 `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	// FullName is the applicant's name.
	FullName string `json:"full_name" gorm:"column:full_name;not null"`
	// Phone is where notifications are sent.
	Phone string `json:"phone" gorm:"column:phone;not null"`
	// Draw is the chosen draw number. Only one non-cancelled application may hold a draw.
	Draw int `json:"draw" gorm:"column:draw;not null;uniqueIndex:idx_applications_active_draw,where:status <> 'cancelled'"`
	// ConfirmationCode is handed to the applicant as proof of submission.
	ConfirmationCode string `json:"confirmation_code" gorm:"column:confirmation_code;size:32;not null;uniqueIndex:idx_applications_confirmation_code"`
	// PaymentMethod is telebirr, cbe_mobile or other.
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"column:payment_method;size:32;not null"`
	// TransactionID is the payment reference entered by the applicant, upper-cased.
	// Once validated for one application it can never be validated again.
	TransactionID string `json:"transaction_id" gorm:"column:transaction_id;size:64;index;uniqueIndex:idx_applications_validated_transaction,where:transaction_validated = true"`
	// TransactionValidated is set once an admin validated TransactionID.
	TransactionValidated bool `json:"transaction_validated" gorm:"column:transaction_validated;not null;default:false"`
	// Status is the payment status.
	Status Status `json:"status" gorm:"column:status;size:16;not null;default:pending;index"`
	// TicketPrice is fixed at creation.
	TicketPrice int `json:"ticket_price" gorm:"column:ticket_price;not null;default:10"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;index"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName specifies the table name for GORM
func (Application) TableName() string {
	return "applications"
}
