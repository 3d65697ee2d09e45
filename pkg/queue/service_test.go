package queue

import (
	"encoding/json"
	"strings"
	"testing"

	"waitline/waitline-queue-server/pkg/infra"
	"waitline/waitline-queue-server/pkg/msg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServices() (*CommandService, *QueryService) {
	store := ProvideStore()
	loggerFactory := infra.ProvideLoggerFactory()
	return ProvideCommandService(store, loggerFactory), ProvideQueryService(store)
}

func receiveEvent(t *testing.T, command *CommandService) *msg.WsMessage {
	t.Helper()

	select {
	case wsMessage := <-command.Notify:
		return wsMessage
	default:
		t.Fatal("expected an event on Notify")
		return nil
	}
}

func TestAddTicketValidation(t *testing.T) {
	command, query := setupServices()

	tests := []struct {
		testName      string
		name          string
		priorityClass string
		field         string
	}{
		{"empty name", "", "N", "name"},
		{"name too long", strings.Repeat("x", 21), "N", "name"},
		{"unknown class", "Alice", "X", "priorityClass"},
		{"lowercase class", "Alice", "n", "priorityClass"},
		{"empty class", "Alice", "", "priorityClass"},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			_, err := command.AddTicket(tt.name, tt.priorityClass)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}

	// Nothing slipped into the store.
	assert.Equal(t, 0, query.Stats().Active)
}

func TestAddTicketBoundaryName(t *testing.T) {
	command, _ := setupServices()

	position, err := command.AddTicket(strings.Repeat("x", 20), "P")
	require.NoError(t, err)
	assert.Equal(t, 1, position)
}

func TestAddTicketEmitsEvent(t *testing.T) {
	command, _ := setupServices()

	position, err := command.AddTicket("Alice", "N")
	require.NoError(t, err)
	assert.Equal(t, 1, position)

	wsMessage := receiveEvent(t, command)
	assert.Equal(t, msg.TicketAddedCode, wsMessage.EventCode)

	var event msg.TicketAddedEvent
	require.NoError(t, json.Unmarshal(wsMessage.EventData, &event))
	assert.Equal(t, "Alice", event.Name)
	assert.Equal(t, "N", event.PriorityClass)
	assert.Equal(t, 1, event.Position)
}

func TestAdvanceQueueEmitsEvent(t *testing.T) {
	command, query := setupServices()

	_, err := command.AddTicket("Alice", "N")
	require.NoError(t, err)
	receiveEvent(t, command)

	changed := command.AdvanceQueue()
	assert.Equal(t, 1, changed)
	assert.Equal(t, 0, query.Stats().Active)

	wsMessage := receiveEvent(t, command)
	assert.Equal(t, msg.QueueAdvancedCode, wsMessage.EventCode)

	var event msg.QueueAdvancedEvent
	require.NoError(t, json.Unmarshal(wsMessage.EventData, &event))
	assert.Equal(t, 1, event.Changed)
}

func TestAdvanceEmptyQueueStillReports(t *testing.T) {
	command, _ := setupServices()

	assert.Equal(t, 0, command.AdvanceQueue())

	var event msg.QueueAdvancedEvent
	wsMessage := receiveEvent(t, command)
	require.NoError(t, json.Unmarshal(wsMessage.EventData, &event))
	assert.Equal(t, 0, event.Changed)
}

func TestRemoveTicketEmitsEvent(t *testing.T) {
	command, _ := setupServices()

	_, err := command.AddTicket("Alice", "N")
	require.NoError(t, err)
	_, err = command.AddTicket("Bob", "N")
	require.NoError(t, err)
	receiveEvent(t, command)
	receiveEvent(t, command)

	removed, err := command.RemoveTicket(2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", removed.Name)

	wsMessage := receiveEvent(t, command)
	assert.Equal(t, msg.TicketRemovedCode, wsMessage.EventCode)

	var event msg.TicketRemovedEvent
	require.NoError(t, json.Unmarshal(wsMessage.EventData, &event))
	assert.Equal(t, "Bob", event.Name)
	assert.Equal(t, 2, event.Position)
}

func TestRemoveTicketNotFound(t *testing.T) {
	command, _ := setupServices()

	_, err := command.RemoveTicket(1)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	// No event for a failed mutation.
	select {
	case wsMessage := <-command.Notify:
		t.Fatalf("unexpected event code[%v]", wsMessage.EventCode)
	default:
	}
}

func TestQueryServiceReadsDoNotMutate(t *testing.T) {
	command, query := setupServices()

	_, err := command.AddTicket("Alice", "N")
	require.NoError(t, err)

	before := query.Stats()
	query.ListActive()
	_, _ = query.GetByPosition(1)
	_, _ = query.GetByPosition(99)
	assert.Equal(t, before, query.Stats())
}
