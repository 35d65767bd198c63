//go:build unit

package claim_test

import (
	"testing"
	"time"

	"claimflow/internal/domain/claim"
	domresource "claimflow/internal/domain/resource"
	"claimflow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaim(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewClaimBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.ResourceID, actual.ResourceID())
		assert.Equal(t, b.ClaimantID, actual.ClaimantID())
		assert.Nil(t, actual.TimeslotID())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("auto approval skips pending", func(t *testing.T) {
		actual, err := builder.NewClaimBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, claim.StatusApproved, actual.Status())
	})

	t.Run("approval gate starts pending", func(t *testing.T) {
		actual, err := builder.NewClaimBuilder().WithRequiresApproval().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, claim.StatusPending, actual.Status())
	})

	t.Run("timeslot claim records the slot", func(t *testing.T) {
		slotID := uuid.New()
		actual, err := builder.NewClaimBuilder().WithTimeslotID(slotID).BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual.TimeslotID())
		assert.Equal(t, slotID, *actual.TimeslotID())
	})

	t.Run("closed resource refuses claims", func(t *testing.T) {
		for _, status := range []domresource.LifecycleStatus{
			domresource.LifecycleCompleted,
			domresource.LifecycleCancelled,
		} {
			_, err := builder.NewClaimBuilder().WithLifecycleStatus(status).BuildDomain()
			assert.ErrorIs(t, err, claim.ErrResourceNotOpen, "lifecycle %s", status)
		}
	})

	t.Run("timeslot of another resource is rejected", func(t *testing.T) {
		b := builder.NewClaimBuilder()
		res, err := b.BuildResource()
		require.NoError(t, err)

		foreign, err := domresource.NewTimeslot(uuid.New(), uuid.New(), time.Now(), nil, 1)
		require.NoError(t, err)

		_, err = claim.NewClaim(res, foreign, b.ClaimantID, time.Now())
		assert.ErrorIs(t, err, claim.ErrTimeslotMismatch)
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewClaimBuilder()
		c1, err1 := b.BuildDomain()
		c2, err2 := b.BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, c1.ID(), c2.ID())
	})
}

func TestClaimTransition(t *testing.T) {
	now := time.Now()

	reconstruct := func(status claim.Status) *claim.Claim {
		return claim.ReconstructClaim(
			uuid.New(), uuid.New(), nil, uuid.New(),
			status, now.Add(-time.Hour), now.Add(-time.Hour),
		)
	}

	t.Run("legal transition updates status and timestamp", func(t *testing.T) {
		c := reconstruct(claim.StatusPending)
		err := c.Transition(claim.StatusApproved, now)
		require.NoError(t, err)
		assert.Equal(t, claim.StatusApproved, c.Status())
		assert.Equal(t, now, c.UpdatedAt())
	})

	t.Run("illegal transition leaves the claim untouched", func(t *testing.T) {
		c := reconstruct(claim.StatusPending)
		before := c.UpdatedAt()
		err := c.Transition(claim.StatusCompleted, now)
		assert.ErrorIs(t, err, claim.ErrIllegalTransition)
		assert.Equal(t, claim.StatusPending, c.Status())
		assert.Equal(t, before, c.UpdatedAt())
	})

	t.Run("terminal statuses are immutable", func(t *testing.T) {
		for _, terminal := range []claim.Status{
			claim.StatusRejected,
			claim.StatusCompleted,
			claim.StatusCancelled,
		} {
			c := reconstruct(terminal)
			err := c.Transition(claim.StatusApproved, now)
			assert.ErrorIs(t, err, claim.ErrIllegalTransition, "from %s", terminal)
		}
	})

	t.Run("unknown status is rejected before legality", func(t *testing.T) {
		c := reconstruct(claim.StatusPending)
		err := c.Transition(claim.Status("confirmed"), now)
		assert.ErrorIs(t, err, claim.ErrInvalidStatus)
	})
}
