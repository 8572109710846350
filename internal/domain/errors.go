package domain

import "fmt"

// InvalidRequestError marks a caller-correctable input problem: a
// method/date combination that breaks the booking rules, an unknown
// slot or reservation id, or a slot that does not match the request.
// It is always surfaced with its reason and never retried internally.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string { return e.Reason }

// NewInvalidRequest builds an InvalidRequestError with a formatted reason.
func NewInvalidRequest(format string, args ...any) *InvalidRequestError {
	return &InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}

// SlotAlreadyReservedError is the losing side of a reservation race
// or an attempt on a slot that was already taken. It is a legitimate
// outcome rather than a defect, and is kept distinct from
// InvalidRequestError so callers can offer "pick another slot".
type SlotAlreadyReservedError struct {
	SlotID int64
}

func (e *SlotAlreadyReservedError) Error() string {
	return fmt.Sprintf("time slot %d is already reserved", e.SlotID)
}
