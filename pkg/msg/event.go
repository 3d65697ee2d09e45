package msg

import "time"

type EventCode uint

const (
	SnapshotCode      EventCode = 2000
	TicketAddedCode   EventCode = 2001
	QueueAdvancedCode EventCode = 2002
	TicketRemovedCode EventCode = 2003
)

// TicketView is the public shape of a waiting ticket, shared by the
// HTTP list/get responses and the ws snapshot event.
type TicketView struct {
	Position    int       `json:"position"`
	Name        string    `json:"name"`
	ArrivalTime time.Time `json:"arrivalTime"`
}

type SnapshotEvent struct {
	// Tickets in insertion order, not position order.
	Tickets []TicketView `json:"tickets"`
}

type TicketAddedEvent struct {
	Name          string `json:"name"`
	PriorityClass string `json:"priorityClass"`
	Position      int    `json:"position"`
}

type QueueAdvancedEvent struct {
	Changed int `json:"changed"`
}

type TicketRemovedEvent struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}
