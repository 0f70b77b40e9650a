package board_test

import (
	"testing"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) kernel.Date {
	t.Helper()
	d, err := kernel.NewDate(value)
	require.NoError(t, err)
	return d
}

func mustKey(t *testing.T, resource, date string) kernel.CellKey {
	t.Helper()
	key, err := kernel.NewCellKey(resource, mustDate(t, date))
	require.NoError(t, err)
	return key
}

func mustOrder(t *testing.T, id, customer string, status order.Status, class order.Class, date kernel.Date) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, "SO-"+id, customer, 1, status, class, date)
	require.NoError(t, err)
	return o
}

func mustRun(t *testing.T, id, name string, members ...string) *run.DeliveryRun {
	t.Helper()
	r, err := run.RestoreDeliveryRun(id, name, members, "")
	require.NoError(t, err)
	return r
}

// baseSnapshot is the shared scenario: one truck cell holding two runs
// (r1 = two ACME orders, r2 = one BETA order), an unassigned backlog with a
// schedulable order and a shipped one, and a purchase order in the inbound
// zone.
func baseSnapshot(t *testing.T) board.Snapshot {
	t.Helper()
	day := mustDate(t, "2025-01-06")
	return board.Snapshot{
		Orders: []*order.Order{
			mustOrder(t, "o1", "ACME", order.StatusPicked, order.ClassSales, day),
			mustOrder(t, "o2", "ACME", order.StatusPicked, order.ClassSales, day),
			mustOrder(t, "o3", "BETA", order.StatusPicked, order.ClassSales, day),
			mustOrder(t, "o4", "ACME", order.StatusUnscheduled, order.ClassSales, day),
			mustOrder(t, "o5", "GAMMA", order.StatusPicked, order.ClassPurchase, day),
			mustOrder(t, "o6", "BETA", order.StatusShipped, order.ClassSales, day),
		},
		Runs: []*run.DeliveryRun{
			mustRun(t, "r1", "Morning", "o1", "o2"),
			mustRun(t, "r2", "Afternoon", "o3"),
		},
		Cells: map[kernel.CellKey]board.CellSnapshot{
			mustKey(t, "TR-01", "2025-01-06"):                   {RunIDs: []string{"r1", "r2"}},
			mustKey(t, kernel.ResourceUnassigned, "2025-01-06"): {LooseOrderIDs: []string{"o4", "o6"}},
			mustKey(t, kernel.ResourceInbound, "2025-01-06"):    {LooseOrderIDs: []string{"o5"}},
		},
		Trucks:     []string{"TR-01", "TR-02"},
		TruckNames: map[string]string{"TR-01": "Truck 1", "TR-02": "Truck 2"},
	}
}

func seededBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.New()
	b.Hydrate(baseSnapshot(t))
	return b
}

// checkInvariants verifies the placement invariants through the public
// query surface: indices agree with tables, every referenced entity exists,
// and no order is simultaneously committed and loose or in two runs.
func checkInvariants(t *testing.T, b *board.Board) {
	t.Helper()

	runSeen := make(map[string]kernel.CellKey)
	for _, key := range b.CellKeys() {
		cell, ok := b.Cell(key)
		require.True(t, ok, "cell %s listed but missing", key)

		for _, runID := range cell.RunIDs() {
			_, exists := b.Run(runID)
			require.True(t, exists, "cell %s references missing run %s", key, runID)

			prev, dup := runSeen[runID]
			require.False(t, dup, "run %s in both %s and %s", runID, prev, key)
			runSeen[runID] = key

			indexed, okIdx := b.RunCell(runID)
			require.True(t, okIdx)
			assert.True(t, indexed.IsEqual(key), "run %s index disagrees with cell %s", runID, key)
		}

		for _, orderID := range cell.LooseOrderIDs() {
			_, exists := b.Order(orderID)
			require.True(t, exists, "cell %s references missing order %s", key, orderID)

			_, committed := b.OrderRun(orderID)
			assert.False(t, committed, "order %s is both loose and committed", orderID)

			indexed, okIdx := b.LooseOrderCell(orderID)
			require.True(t, okIdx)
			assert.True(t, indexed.IsEqual(key), "loose order %s index disagrees with cell %s", orderID, key)
		}
	}

	memberRun := make(map[string]string)
	for runID := range runSeen {
		r, _ := b.Run(runID)
		for _, orderID := range r.OrderIDs() {
			_, exists := b.Order(orderID)
			require.True(t, exists, "run %s references missing order %s", runID, orderID)

			prev, dup := memberRun[orderID]
			require.False(t, dup, "order %s in both run %s and run %s", orderID, prev, runID)
			memberRun[orderID] = runID

			indexed, okIdx := b.OrderRun(orderID)
			require.True(t, okIdx)
			assert.Equal(t, runID, indexed)
		}
	}
}

func TestBoard_Hydrate_BaseScenario(t *testing.T) {
	b := seededBoard(t)

	t.Run("should expose the snapshot through queries", func(t *testing.T) {
		assert.Equal(t, []string{"TR-01", "TR-02"}, b.Trucks())

		name, ok := b.TruckName("TR-02")
		require.True(t, ok)
		assert.Equal(t, "Truck 2", name)

		r1, ok := b.Run("r1")
		require.True(t, ok)
		assert.Equal(t, []string{"o1", "o2"}, r1.OrderIDs())

		cell, ok := b.Cell(mustKey(t, "TR-01", "2025-01-06"))
		require.True(t, ok)
		assert.Equal(t, []string{"r1", "r2"}, cell.RunIDs())
	})

	t.Run("should derive reverse indices", func(t *testing.T) {
		runID, ok := b.OrderRun("o1")
		require.True(t, ok)
		assert.Equal(t, "r1", runID)

		key, ok := b.RunCell("r2")
		require.True(t, ok)
		assert.Equal(t, "TR-01|2025-01-06", key.String())

		loose, ok := b.LooseOrderCell("o4")
		require.True(t, ok)
		assert.Equal(t, "unassigned|2025-01-06", loose.String())

		checkInvariants(t, b)
	})

	t.Run("should start with no dirty entities", func(t *testing.T) {
		assert.False(t, b.IsOrderDirty("o1"))
		assert.False(t, b.IsRunDirty("r1"))
		assert.Zero(t, b.PendingCalls())
	})
}

func TestBoard_ToggleDateLock(t *testing.T) {
	b := seededBoard(t)
	day := mustDate(t, "2025-01-06")

	t.Run("should flip and report lock state", func(t *testing.T) {
		assert.False(t, b.IsDateLocked(day))

		assert.True(t, b.ToggleDateLock(day))
		assert.True(t, b.IsDateLocked(day))
		assert.Equal(t, []kernel.Date{day}, b.LockedDates())

		assert.False(t, b.ToggleDateLock(day))
		assert.False(t, b.IsDateLocked(day))
		assert.Empty(t, b.LockedDates())
	})
}
