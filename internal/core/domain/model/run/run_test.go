package run_test

import (
	"testing"

	"dispatchboard/internal/core/domain/model/run"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryRun(t *testing.T) {
	t.Run("should create empty run", func(t *testing.T) {
		r, err := run.NewDeliveryRun("r1", "Run 1")

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, "r1", r.ID())
		assert.Equal(t, "Run 1", r.Name())
		assert.True(t, r.IsEmpty())
		assert.Empty(t, r.OrderIDs())
		assert.Empty(t, r.Note())
	})

	t.Run("should fail with empty id", func(t *testing.T) {
		r, err := run.NewDeliveryRun("", "Run 1")

		require.Error(t, err)
		assert.Nil(t, r)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		r, err := run.NewDeliveryRun("r1", "")

		require.Error(t, err)
		assert.Nil(t, r)
	})
}

func TestRestoreDeliveryRun(t *testing.T) {
	t.Run("should restore run with members and note", func(t *testing.T) {
		r, err := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "load chilled last")

		require.NoError(t, err)
		assert.Equal(t, []string{"o1", "o2"}, r.OrderIDs())
		assert.Equal(t, "load chilled last", r.Note())
		assert.Equal(t, 2, r.Size())
	})

	t.Run("should copy the member slice", func(t *testing.T) {
		members := []string{"o1", "o2"}
		r, _ := run.RestoreDeliveryRun("r1", "Morning", members, "")

		members[0] = "mutated"

		assert.Equal(t, []string{"o1", "o2"}, r.OrderIDs())
	})
}

func TestDeliveryRun_Validate(t *testing.T) {
	t.Run("should fail for nil and zero value", func(t *testing.T) {
		var nilRun *run.DeliveryRun
		require.Error(t, nilRun.Validate())
		assert.Equal(t, run.ErrRunIsNotConstructed, nilRun.Validate())

		require.Error(t, (&run.DeliveryRun{}).Validate())
	})
}

func TestDeliveryRun_InsertOrder(t *testing.T) {
	t.Run("should insert at position", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o3"}, "")

		require.NoError(t, r.InsertOrder("o2", 1))

		assert.Equal(t, []string{"o1", "o2", "o3"}, r.OrderIDs())
	})

	t.Run("should clamp out of bounds index", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1"}, "")

		require.NoError(t, r.InsertOrder("o2", 99))
		require.NoError(t, r.InsertOrder("o0", -5))

		assert.Equal(t, []string{"o0", "o1", "o2"}, r.OrderIDs())
	})

	t.Run("should reject duplicate member", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1"}, "")

		require.Error(t, r.InsertOrder("o1", 0))
		assert.Equal(t, []string{"o1"}, r.OrderIDs())
	})

	t.Run("should reject empty order id", func(t *testing.T) {
		r, _ := run.NewDeliveryRun("r1", "Morning")

		require.Error(t, r.InsertOrder("", 0))
	})
}

func TestDeliveryRun_RemoveOrder(t *testing.T) {
	t.Run("should remove member and preserve sequence", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2", "o3"}, "")

		assert.True(t, r.RemoveOrder("o2"))
		assert.Equal(t, []string{"o1", "o3"}, r.OrderIDs())
	})

	t.Run("should report false for non member", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1"}, "")

		assert.False(t, r.RemoveOrder("o9"))
		assert.Equal(t, []string{"o1"}, r.OrderIDs())
	})
}

func TestDeliveryRun_AppendOrders(t *testing.T) {
	t.Run("should append skipping existing members", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1"}, "")

		r.AppendOrders([]string{"o2", "o1", "o3"})

		assert.Equal(t, []string{"o1", "o2", "o3"}, r.OrderIDs())
	})
}

func TestDeliveryRun_Reorder(t *testing.T) {
	t.Run("should move member within sequence", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2", "o3"}, "")

		assert.True(t, r.Reorder(0, 1))
		assert.Equal(t, []string{"o2", "o1", "o3"}, r.OrderIDs())
	})

	t.Run("should no-op on equal indices", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "")

		assert.False(t, r.Reorder(1, 1))
		assert.Equal(t, []string{"o1", "o2"}, r.OrderIDs())
	})

	t.Run("should no-op on out of bounds indices", func(t *testing.T) {
		r, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "")

		assert.False(t, r.Reorder(-1, 0))
		assert.False(t, r.Reorder(0, 2))
		assert.Equal(t, []string{"o1", "o2"}, r.OrderIDs())
	})
}

func TestDeliveryRun_Matches(t *testing.T) {
	t.Run("should match identical runs", func(t *testing.T) {
		a, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "note")
		b, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "note")

		assert.True(t, a.Matches(b))
	})

	t.Run("should not match on sequence, name or note difference", func(t *testing.T) {
		a, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "note")
		reordered, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o2", "o1"}, "note")
		renamed, _ := run.RestoreDeliveryRun("r1", "Evening", []string{"o1", "o2"}, "note")
		reNoted, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "other")

		assert.False(t, a.Matches(reordered))
		assert.False(t, a.Matches(renamed))
		assert.False(t, a.Matches(reNoted))
		assert.False(t, a.Matches(nil))
	})
}

func TestDeliveryRun_Clone(t *testing.T) {
	t.Run("should produce independent copy", func(t *testing.T) {
		original, _ := run.RestoreDeliveryRun("r1", "Morning", []string{"o1", "o2"}, "")

		clone := original.Clone()
		require.NoError(t, clone.InsertOrder("o3", 99))

		assert.Equal(t, []string{"o1", "o2"}, original.OrderIDs())
		assert.Equal(t, []string{"o1", "o2", "o3"}, clone.OrderIDs())
	})
}
