package queue

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Store owns the line. Every positional mutation lives here so the
// dense-position rule holds after each call: active tickets always
// occupy positions 1..K with no gaps or duplicates. Priority tickets
// cluster together from the point the first one arrives; see Add for
// the anchoring rule.
type Store struct {
	// All tickets, served ones included until removed. Implemented as
	// linkedhashmap since we want to find a ticket through ticketId,
	// but at the same time we want to record the insert order of the
	// ticket. Position is a field on the ticket, not the map order.
	// Key value: ticketId -> ticket.
	tickets *linkedhashmap.Map

	// Guards every read and mutation. One lock, one line; the map and
	// the position fields inside tickets must never be observed
	// half-reindexed.
	mu sync.RWMutex
}

// Stats is a snapshot of derived counts. All values fall out of the
// dense-position rule, nothing is tracked separately.
type Stats struct {
	Active   int `json:"active"`
	Priority int `json:"priority"`
	Normal   int `json:"normal"`
	Served   int `json:"served"`
}

func ProvideStore() *Store {
	return &Store{
		tickets: linkedhashmap.New(),
	}
}

// Add creates a ticket and slots it into the line, returning the
// assigned position.
//
// A normal ticket always appends to the tail. A priority ticket is
// inserted right after the last active priority ticket, shifting the
// normal tickets behind that point up by one. When no priority ticket
// is active yet there is nothing to anchor against, so the first
// priority ticket also appends to the tail; it does not jump ahead of
// normal tickets already waiting.
func (s *Store) Add(name string, class Class) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.maxActivePosition() + 1

	if class == ClassPriority {
		if lastPriorityPos := s.lastPriorityPosition(); lastPriorityPos > 0 {
			it := s.tickets.Iterator()
			for it.Begin(); it.Next(); {
				ticket := it.Value().(*Ticket)
				if ticket.active() && ticket.Class == ClassNormal && ticket.Position > lastPriorityPos {
					ticket.Position++
				}
			}
			target = lastPriorityPos + 1
		}
	}

	ticket := newTicket(name, class, target)
	s.tickets.Put(ticket.TicketId, ticket)
	return target
}

// Advance serves the front of the line and moves everyone else up by
// one. Returns how many tickets were touched (served plus shifted).
//
// Two phases on purpose: the head must be marked served before the
// rest decrement, otherwise a ticket dropping into position 1 in the
// same pass would be decremented again.
func (s *Store) Advance() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0

	it := s.tickets.Iterator()
	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if ticket.active() && ticket.Position == 1 {
			ticket.Served = true
			ticket.Position = 0
			changed++
		}
	}

	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if ticket.active() && ticket.Position > 1 {
			ticket.Position--
			changed++
		}
	}

	return changed
}

// Remove drops the active ticket at the given position from storage
// entirely and closes the gap it leaves behind. Returns the removed
// ticket, or ErrTicketNotFound.
func (s *Store) Remove(position int) (*Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.findActive(position)
	if removed == nil {
		return nil, ErrTicketNotFound
	}
	s.tickets.Remove(removed.TicketId)

	it := s.tickets.Iterator()
	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if ticket.active() && ticket.Position > position {
			ticket.Position--
		}
	}

	out := *removed
	return &out, nil
}

// ListActive returns copies of all unserved tickets in insertion
// order, not position order. Callers wanting a position-sorted view
// sort it themselves.
func (s *Store) ListActive() []*Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*Ticket, 0, s.tickets.Size())
	it := s.tickets.Iterator()
	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if !ticket.active() {
			continue
		}
		out := *ticket
		active = append(active, &out)
	}
	return active
}

// GetByPosition returns a copy of the active ticket at the given
// position, or ErrTicketNotFound.
func (s *Store) GetByPosition(position int) (*Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket := s.findActive(position)
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	out := *ticket
	return &out, nil
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	it := s.tickets.Iterator()
	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if !ticket.active() {
			stats.Served++
			continue
		}
		stats.Active++
		if ticket.Class == ClassPriority {
			stats.Priority++
		} else {
			stats.Normal++
		}
	}
	return stats
}

// Callers hold s.mu.
func (s *Store) findActive(position int) *Ticket {
	it := s.tickets.Iterator()
	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if ticket.active() && ticket.Position == position {
			return ticket
		}
	}
	return nil
}

// Callers hold s.mu.
func (s *Store) maxActivePosition() int {
	max := 0
	it := s.tickets.Iterator()
	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if ticket.active() && ticket.Position > max {
			max = ticket.Position
		}
	}
	return max
}

// Callers hold s.mu.
func (s *Store) lastPriorityPosition() int {
	last := 0
	it := s.tickets.Iterator()
	for it.Begin(); it.Next(); {
		ticket := it.Value().(*Ticket)
		if ticket.active() && ticket.Class == ClassPriority && ticket.Position > last {
			last = ticket.Position
		}
	}
	return last
}
