package queue

import (
	"time"

	"github.com/google/uuid"
)

type TicketId string

// Class decides where a ticket is slotted into the line at insertion
// time. It has no effect after that.
type Class string

const (
	ClassNormal   Class = "N"
	ClassPriority Class = "P"
)

// MaxNameLength is the longest accepted ticket name, in runes.
const MaxNameLength = 20

type Ticket struct {
	// Internal handle so the hub and event payloads can refer to a
	// ticket while its position keeps shifting. Never an API lookup
	// key.
	TicketId TicketId

	Name string

	Class Class

	// Position in line. 1-based for tickets still waiting. 0 means
	// the ticket is not actively queued anymore (it has been served).
	Position int

	// The time when the ticket was created. UTC, immutable.
	ArrivalTime time.Time

	// True once the ticket has completed service.
	Served bool
}

func newTicket(name string, class Class, position int) *Ticket {
	return &Ticket{
		TicketId:    TicketId(uuid.NewString()),
		Name:        name,
		Class:       class,
		Position:    position,
		ArrivalTime: time.Now().UTC(),
	}
}

func (t *Ticket) active() bool {
	return !t.Served
}
