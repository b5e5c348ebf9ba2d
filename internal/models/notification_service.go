package models

import "context"

// NotificationService delivers a text message to a phone number.
// Send never panics; any failure is reported as false.
type NotificationService interface {
	Send(ctx context.Context, phone, message string) bool
}
