package queue

import (
	"fmt"
	"unicode/utf8"

	"waitline/waitline-queue-server/pkg/infra"
	"waitline/waitline-queue-server/pkg/monitoring"
	"waitline/waitline-queue-server/pkg/msg"

	"go.uber.org/zap"
)

// CommandService fronts every mutation. It validates input shape,
// delegates to the store, and emits an event for each successful
// mutation on Notify. It holds no queue state of its own.
type CommandService struct {
	// Queue events for the hub to fan out, one per successful
	// mutation.
	Notify chan *msg.WsMessage

	store  *Store
	logger *zap.SugaredLogger
}

func ProvideCommandService(store *Store, loggerFactory *infra.LoggerFactory) *CommandService {
	return &CommandService{
		Notify: make(chan *msg.WsMessage, 1024),
		store:  store,
		logger: loggerFactory.Create("CommandService").Sugar(),
	}
}

// AddTicket validates the request and slots a new ticket into the
// line, returning its assigned position.
func (s *CommandService) AddTicket(name, priorityClass string) (int, error) {
	if name == "" {
		monitoring.RecordOperation("add", "invalid")
		return 0, &ValidationError{Field: "name", Detail: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		monitoring.RecordOperation("add", "invalid")
		return 0, &ValidationError{Field: "name", Detail: fmt.Sprintf("must be at most %v characters", MaxNameLength)}
	}

	class := Class(priorityClass)
	if class != ClassNormal && class != ClassPriority {
		monitoring.RecordOperation("add", "invalid")
		return 0, &ValidationError{Field: "priorityClass", Detail: fmt.Sprintf("must be %q or %q", ClassNormal, ClassPriority)}
	}

	position := s.store.Add(name, class)
	s.logger.Infof("added ticket name[%v] class[%v] position[%v]", name, class, position)

	monitoring.RecordOperation("add", "ok")
	s.emit(msg.TicketAddedCode, &msg.TicketAddedEvent{
		Name:          name,
		PriorityClass: priorityClass,
		Position:      position,
	})
	return position, nil
}

// AdvanceQueue serves the head of the line and shifts everyone up.
// Returns how many tickets changed; zero on an empty queue.
func (s *CommandService) AdvanceQueue() int {
	changed := s.store.Advance()
	s.logger.Infof("advanced queue changed[%v]", changed)

	monitoring.RecordOperation("advance", "ok")
	if changed > 0 {
		monitoring.AddTicketsServed(1)
	}
	s.emit(msg.QueueAdvancedCode, &msg.QueueAdvancedEvent{Changed: changed})
	return changed
}

// RemoveTicket drops the active ticket at the given position and
// closes the gap. Returns the removed ticket or ErrTicketNotFound.
func (s *CommandService) RemoveTicket(position int) (*Ticket, error) {
	removed, err := s.store.Remove(position)
	if err != nil {
		monitoring.RecordOperation("remove", "not_found")
		return nil, err
	}
	s.logger.Infof("removed ticket name[%v] position[%v]", removed.Name, position)

	monitoring.RecordOperation("remove", "ok")
	s.emit(msg.TicketRemovedCode, &msg.TicketRemovedEvent{
		Name:     removed.Name,
		Position: position,
	})
	return removed, nil
}

func (s *CommandService) emit(code msg.EventCode, event any) {
	stats := s.store.Stats()
	monitoring.SetQueueDepth(stats.Priority, stats.Normal)

	wsMessage, err := msg.NewWsMessage(code, event)
	if err != nil {
		s.logger.Errorf("cannot marshal event code[%v] %v", code, err)
		return
	}

	select {
	case s.Notify <- wsMessage:
	default:
		s.logger.Warnf("notify channel full, dropping event code[%v]", code)
	}
}

// QueryService fronts the read-only views. Never mutates.
type QueryService struct {
	store *Store
}

func ProvideQueryService(store *Store) *QueryService {
	return &QueryService{
		store: store,
	}
}

// ListActive returns the waiting tickets in insertion order, not
// position order.
func (s *QueryService) ListActive() []*Ticket {
	return s.store.ListActive()
}

func (s *QueryService) GetByPosition(position int) (*Ticket, error) {
	return s.store.GetByPosition(position)
}

func (s *QueryService) Stats() Stats {
	return s.store.Stats()
}
