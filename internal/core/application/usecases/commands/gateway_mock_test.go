package commands_test

import (
	"context"
	"testing"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBoardGateway struct{ mock.Mock }

func (m *MockBoardGateway) FetchSnapshot(ctx context.Context) (board.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(board.Snapshot), args.Error(1)
}

func (m *MockBoardGateway) SaveOrderPlacement(ctx context.Context, orderID, runID string, cell kernel.CellKey, index int) error {
	args := m.Called(ctx, orderID, runID, cell, index)
	return args.Error(0)
}

func (m *MockBoardGateway) SaveRun(ctx context.Context, aggregate *run.DeliveryRun, cell kernel.CellKey) error {
	args := m.Called(ctx, aggregate, cell)
	return args.Error(0)
}

func (m *MockBoardGateway) DeleteRun(ctx context.Context, runID string) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

func (m *MockBoardGateway) SaveNote(ctx context.Context, aggregate *note.Note) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockBoardGateway) DeleteNote(ctx context.Context, noteID string) error {
	args := m.Called(ctx, noteID)
	return args.Error(0)
}

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

func mustOrder(t *testing.T, id, customer string, status order.Status, class order.Class) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, "SO-"+id, customer, 1, status, class, mustDate(t, "2025-01-06"))
	require.NoError(t, err)
	return o
}

func mustRun(t *testing.T, id, name string, members ...string) *run.DeliveryRun {
	t.Helper()
	r, err := run.RestoreDeliveryRun(id, name, members, "")
	require.NoError(t, err)
	return r
}

func baseSnapshot(t *testing.T) board.Snapshot {
	t.Helper()
	return board.Snapshot{
		Orders: []*order.Order{
			mustOrder(t, "o1", "ACME", order.StatusPicked, order.ClassSales),
			mustOrder(t, "o2", "ACME", order.StatusPicked, order.ClassSales),
			mustOrder(t, "o3", "BETA", order.StatusPicked, order.ClassSales),
			mustOrder(t, "o4", "ACME", order.StatusUnscheduled, order.ClassSales),
		},
		Runs: []*run.DeliveryRun{
			mustRun(t, "r1", "Morning", "o1", "o2"),
			mustRun(t, "r2", "Afternoon", "o3"),
		},
		Cells: map[kernel.CellKey]board.CellSnapshot{
			mustKey(t, "TR-01", "2025-01-06"):                   {RunIDs: []string{"r1", "r2"}},
			mustKey(t, kernel.ResourceUnassigned, "2025-01-06"): {LooseOrderIDs: []string{"o4"}},
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
