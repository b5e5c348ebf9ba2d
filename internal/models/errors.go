package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDrawTaken is returned when the draw already belongs to an active application.
	ErrDrawTaken = errors.New("draw already taken")
	// ErrDuplicateCode is returned when no free confirmation code was found within the retry bound.
	ErrDuplicateCode = errors.New("confirmation code collision")
	// ErrInvalidTransactionFormat is returned for references that do not match the payment method.
	ErrInvalidTransactionFormat = errors.New("invalid transaction format")
	// ErrTransactionAlreadyUsed is returned when the reference was already validated.
	ErrTransactionAlreadyUsed = errors.New("transaction already used")
	// ErrTransactionUnassociated is returned when no application carries the reference.
	ErrTransactionUnassociated = errors.New("transaction not associated with any application")
	// ErrUnauthorized is returned for admin operations without an authorized session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned for unknown applications.
	ErrNotFound = errors.New("not found")
	// ErrIllegalTransition is returned when a status change is not allowed by the lifecycle.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// ValidationError describes a rejected applicant input field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// TransitionError carries the statuses of a rejected transition. It matches ErrIllegalTransition.
type TransitionError struct {
	From Status
	To   Status
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.From, e.To)
}

func (e TransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}
