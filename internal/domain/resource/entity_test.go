//go:build unit

package resource_test

import (
	"testing"
	"time"

	"claimflow/internal/domain/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResource(t *testing.T) {
	t.Run("valid kinds", func(t *testing.T) {
		for _, kind := range []resource.Kind{resource.KindOffer, resource.KindRequest} {
			res, err := resource.NewResource(uuid.New(), uuid.New(), uuid.New(), kind, false, resource.LifecycleOpen)
			require.NoError(t, err)
			assert.Equal(t, kind, res.Kind())
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := resource.NewResource(uuid.New(), uuid.New(), uuid.New(), resource.Kind("loan"), false, resource.LifecycleOpen)
		assert.ErrorIs(t, err, resource.ErrInvalidKind)
	})

	t.Run("only open resources accept claims", func(t *testing.T) {
		cases := map[resource.LifecycleStatus]bool{
			resource.LifecycleOpen:      true,
			resource.LifecycleCompleted: false,
			resource.LifecycleCancelled: false,
		}
		for status, expected := range cases {
			res, err := resource.NewResource(uuid.New(), uuid.New(), uuid.New(), resource.KindOffer, false, status)
			require.NoError(t, err)
			assert.Equal(t, expected, res.IsOpen(), "lifecycle %s", status)
		}
	})
}

func TestTimeslot(t *testing.T) {
	newSlot := func(capacity int32) *resource.Timeslot {
		slot, err := resource.NewTimeslot(uuid.New(), uuid.New(), time.Now(), nil, capacity)
		require.NoError(t, err)
		return slot
	}

	t.Run("capacity must be positive", func(t *testing.T) {
		_, err := resource.NewTimeslot(uuid.New(), uuid.New(), time.Now(), nil, 0)
		assert.ErrorIs(t, err, resource.ErrInvalidCapacity)

		_, err = resource.NewTimeslot(uuid.New(), uuid.New(), time.Now(), nil, -3)
		assert.ErrorIs(t, err, resource.ErrInvalidCapacity)
	})

	t.Run("admission fits while held count is below capacity", func(t *testing.T) {
		slot := newSlot(2)
		assert.True(t, slot.HasCapacity(0))
		assert.True(t, slot.HasCapacity(1))
		assert.False(t, slot.HasCapacity(2))
		assert.False(t, slot.HasCapacity(3))
	})

	t.Run("remaining floors at zero", func(t *testing.T) {
		slot := newSlot(2)
		assert.Equal(t, int64(2), slot.Remaining(0))
		assert.Equal(t, int64(1), slot.Remaining(1))
		assert.Equal(t, int64(0), slot.Remaining(2))
		assert.Equal(t, int64(0), slot.Remaining(5))
	})
}
