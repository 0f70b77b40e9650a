package kernel_test

import (
	"testing"

	"dispatchboard/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	t.Run("should create valid date from wire format", func(t *testing.T) {
		d, err := kernel.NewDate("2025-01-06")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "2025-01-06", d.String())
	})

	t.Run("should canonicalize non padded input", func(t *testing.T) {
		d, err := kernel.NewDate("2025-1-6")

		require.NoError(t, err)
		assert.Equal(t, "2025-01-06", d.String())
	})

	t.Run("should fail on empty string", func(t *testing.T) {
		_, err := kernel.NewDate("")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "date")
	})

	t.Run("should fail on malformed date", func(t *testing.T) {
		_, err := kernel.NewDate("06.01.2025")

		require.Error(t, err)
	})

	t.Run("should fail on impossible calendar day", func(t *testing.T) {
		_, err := kernel.NewDate("2025-02-30")

		require.Error(t, err)
	})
}

func TestDate_Validate(t *testing.T) {
	t.Run("should fail for zero value", func(t *testing.T) {
		var d kernel.Date

		err := d.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrDateIsNotConstructed, err)
	})
}

func TestDate_IsEqual(t *testing.T) {
	t.Run("should compare by calendar day", func(t *testing.T) {
		a, _ := kernel.NewDate("2025-01-06")
		b, _ := kernel.NewDate("2025-01-06")
		c, _ := kernel.NewDate("2025-01-07")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})

	t.Run("should be usable as map key", func(t *testing.T) {
		a, _ := kernel.NewDate("2025-01-06")
		b, _ := kernel.NewDate("2025-01-06")

		locked := map[kernel.Date]bool{a: true}
		assert.True(t, locked[b])
	})
}
