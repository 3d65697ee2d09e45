package queue

import (
	"errors"
	"fmt"
)

// ErrTicketNotFound is returned when an operation references a
// position with no matching active ticket.
var ErrTicketNotFound = errors.New("queue: no active ticket at position")

// ValidationError reports malformed input before it reaches the
// store. It is the only other error kind this package produces.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("queue: invalid %v: %v", e.Field, e.Detail)
}
