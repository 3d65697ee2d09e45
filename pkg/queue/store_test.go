package queue

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireDensePositions asserts that active positions are exactly
// 1..K with no gaps or duplicates.
func requireDensePositions(t *testing.T, store *Store) {
	t.Helper()

	active := store.ListActive()
	positions := make([]int, 0, len(active))
	for _, ticket := range active {
		positions = append(positions, ticket.Position)
	}
	sort.Ints(positions)

	for i, position := range positions {
		require.Equal(t, i+1, position, "active positions must be dense 1..K, got %v", positions)
	}
}

func activeByName(store *Store) map[string]int {
	byName := make(map[string]int)
	for _, ticket := range store.ListActive() {
		byName[ticket.Name] = ticket.Position
	}
	return byName
}

func TestAddNormalTicketsAppendToTail(t *testing.T) {
	store := ProvideStore()

	assert.Equal(t, 1, store.Add("Alice", ClassNormal))
	assert.Equal(t, 2, store.Add("Bob", ClassNormal))
	assert.Equal(t, 3, store.Add("Carol", ClassNormal))
	requireDensePositions(t, store)
}

func TestFirstPriorityTicketAppendsAtTail(t *testing.T) {
	store := ProvideStore()
	store.Add("Alice", ClassNormal)
	store.Add("Bob", ClassNormal)

	// No priority ticket exists yet, so there is nothing to anchor
	// against: Carol appends at the tail instead of jumping the line.
	assert.Equal(t, 3, store.Add("Carol", ClassPriority))

	byName := activeByName(store)
	assert.Equal(t, 1, byName["Alice"])
	assert.Equal(t, 2, byName["Bob"])
	requireDensePositions(t, store)
}

func TestPriorityTicketInsertsAfterLastPriority(t *testing.T) {
	store := ProvideStore()

	assert.Equal(t, 1, store.Add("Alice", ClassNormal))
	assert.Equal(t, 2, store.Add("Bob", ClassPriority))
	// Carol anchors against Bob at 2; no normal tickets sit above 2,
	// so nothing shifts.
	assert.Equal(t, 3, store.Add("Carol", ClassPriority))

	byName := activeByName(store)
	assert.Equal(t, 1, byName["Alice"])
	assert.Equal(t, 2, byName["Bob"])
	assert.Equal(t, 3, byName["Carol"])
	requireDensePositions(t, store)
}

func TestPriorityTicketShiftsNormalsBehindAnchor(t *testing.T) {
	store := ProvideStore()

	assert.Equal(t, 1, store.Add("Paula", ClassPriority))
	assert.Equal(t, 2, store.Add("Alice", ClassNormal))
	assert.Equal(t, 3, store.Add("Bob", ClassNormal))

	// Pete slots in right behind Paula; Alice and Bob move up one.
	assert.Equal(t, 2, store.Add("Pete", ClassPriority))

	byName := activeByName(store)
	assert.Equal(t, 1, byName["Paula"])
	assert.Equal(t, 2, byName["Pete"])
	assert.Equal(t, 3, byName["Alice"])
	assert.Equal(t, 4, byName["Bob"])
	requireDensePositions(t, store)
}

func TestAdvanceServesHeadAndShiftsRest(t *testing.T) {
	store := ProvideStore()
	store.Add("Alice", ClassNormal)
	store.Add("Bob", ClassNormal)
	store.Add("Carol", ClassNormal)

	changed := store.Advance()
	assert.Equal(t, 3, changed)

	byName := activeByName(store)
	assert.NotContains(t, byName, "Alice")
	assert.Equal(t, 1, byName["Bob"])
	assert.Equal(t, 2, byName["Carol"])
	requireDensePositions(t, store)

	// Served tickets stay in storage at position 0.
	stats := store.Stats()
	assert.Equal(t, 1, stats.Served)
	assert.Equal(t, 2, stats.Active)
}

func TestAdvanceEmptyQueueIsNoop(t *testing.T) {
	store := ProvideStore()

	assert.Equal(t, 0, store.Advance())
	assert.Equal(t, Stats{}, store.Stats())
}

func TestRemoveClosesGap(t *testing.T) {
	store := ProvideStore()
	store.Add("Alice", ClassNormal)
	store.Add("Bob", ClassNormal)
	store.Add("Carol", ClassNormal)

	removed, err := store.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", removed.Name)

	byName := activeByName(store)
	assert.Equal(t, 1, byName["Alice"])
	assert.Equal(t, 2, byName["Carol"])
	requireDensePositions(t, store)

	// Removed entirely, not marked served.
	assert.Equal(t, 0, store.Stats().Served)
}

func TestRemoveMissingPosition(t *testing.T) {
	store := ProvideStore()
	store.Add("Alice", ClassNormal)

	_, err := store.Remove(5)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestGetByPosition(t *testing.T) {
	store := ProvideStore()
	store.Add("Alice", ClassNormal)
	store.Add("Bob", ClassNormal)

	ticket, err := store.GetByPosition(2)
	require.NoError(t, err)
	assert.Equal(t, "Bob", ticket.Name)
	assert.False(t, ticket.ArrivalTime.IsZero())

	_, err = store.GetByPosition(3)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	// 0 means "not actively queued" and never matches, even when
	// served tickets exist.
	store.Advance()
	_, err = store.GetByPosition(0)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestListActiveKeepsInsertionOrder(t *testing.T) {
	store := ProvideStore()
	store.Add("Paula", ClassPriority)
	store.Add("Alice", ClassNormal)
	store.Add("Pete", ClassPriority) // shifts Alice to 3

	names := make([]string, 0, 3)
	for _, ticket := range store.ListActive() {
		names = append(names, ticket.Name)
	}

	// Insertion order, not position order: Pete sits at position 2
	// but was inserted last.
	assert.Equal(t, []string{"Paula", "Alice", "Pete"}, names)
}

func TestPositionsStayDenseAcrossMixedOperations(t *testing.T) {
	store := ProvideStore()

	type op struct {
		kind  string
		name  string
		class Class
		pos   int
	}
	ops := []op{
		{kind: "add", name: "a", class: ClassNormal},
		{kind: "add", name: "b", class: ClassNormal},
		{kind: "add", name: "p1", class: ClassPriority},
		{kind: "advance"},
		{kind: "add", name: "p2", class: ClassPriority},
		{kind: "add", name: "c", class: ClassNormal},
		{kind: "remove", pos: 2},
		{kind: "advance"},
		{kind: "add", name: "p3", class: ClassPriority},
		{kind: "remove", pos: 1},
		{kind: "advance"},
		{kind: "advance"},
		{kind: "advance"},
	}

	for i, o := range ops {
		switch o.kind {
		case "add":
			store.Add(o.name, o.class)
		case "advance":
			store.Advance()
		case "remove":
			store.Remove(o.pos)
		}
		requireDensePositions(t, store)

		stats := store.Stats()
		require.Equal(t, stats.Active, len(store.ListActive()), "op %v", i)
	}
}

func TestStatsCounts(t *testing.T) {
	store := ProvideStore()
	store.Add("p1", ClassPriority)
	store.Add("a", ClassNormal)
	store.Add("p2", ClassPriority)
	store.Advance()

	assert.Equal(t, Stats{Active: 2, Priority: 1, Normal: 1, Served: 1}, store.Stats())
}
