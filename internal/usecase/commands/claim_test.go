//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"claimflow/internal/domain/claim"
	"claimflow/internal/domain/resource"
	"claimflow/internal/infra"
	"claimflow/internal/pkg/clock"
	"claimflow/internal/pkg/errs"
	"claimflow/internal/usecase/commands"
	"claimflow/internal/usecase/queries"
	"claimflow/internal/usecase/shared"
	"claimflow/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hand-rolled fakes: the unit of work runs the callback directly and the
// repositories record what the command layer asked of them.

type fakeClaimRepo struct {
	created      *claim.Claim
	createdSlot  *resource.Timeslot
	createErr    error
	snapshot     *shared.ClaimSnapshot
	findErr      error
	updatedFrom  claim.Status
	updatedTo    claim.Status
	updateErr    error
	deletedID    uuid.UUID
	deleteErr    error
	updateCalled bool
}

func (f *fakeClaimRepo) Create(_ context.Context, c *claim.Claim, slot *resource.Timeslot) error {
	f.created = c
	f.createdSlot = slot
	return f.createErr
}

func (f *fakeClaimRepo) FindForUpdate(_ context.Context, _ uuid.UUID) (*shared.ClaimSnapshot, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.snapshot, nil
}

func (f *fakeClaimRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to claim.Status) (*shared.ClaimSnapshot, error) {
	f.updateCalled = true
	f.updatedFrom = from
	f.updatedTo = to
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	snap := *f.snapshot
	snap.Status = to
	return &snap, nil
}

func (f *fakeClaimRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deletedID = id
	return f.deleteErr
}

type fakeTimeslotRepo struct {
	snapshot *shared.TimeslotSnapshot
	err      error
	locked   []uuid.UUID
}

func (f *fakeTimeslotRepo) LockByID(_ context.Context, id uuid.UUID) (*shared.TimeslotSnapshot, error) {
	f.locked = append(f.locked, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

type fakeEventRepo struct {
	facts []shared.TransitionFact
	err   error
}

func (f *fakeEventRepo) Append(_ context.Context, fact shared.TransitionFact) error {
	f.facts = append(f.facts, fact)
	return f.err
}

type fakeReads struct {
	resource  *shared.ResourceSnapshot
	resErr    error
	member    bool
	memberErr error
}

func (f *fakeReads) ResourceByID(_ context.Context, _ uuid.UUID) (*shared.ResourceSnapshot, error) {
	if f.resErr != nil {
		return nil, f.resErr
	}
	return f.resource, nil
}

func (f *fakeReads) IsCommunityMember(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return f.member, f.memberErr
}

type fakeTx struct {
	claims    *fakeClaimRepo
	timeslots *fakeTimeslotRepo
	events    *fakeEventRepo
	reads     *fakeReads
}

func (t *fakeTx) Claims() shared.ClaimRepository       { return t.claims }
func (t *fakeTx) Timeslots() shared.TimeslotRepository { return t.timeslots }
func (t *fakeTx) Events() shared.EventRepository       { return t.events }
func (t *fakeTx) Reads() shared.CommandReads           { return t.reads }

type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return u.tx.reads }

type fakeClaimQueries struct {
	view *queries.ClaimView
	err  error
}

func (f *fakeClaimQueries) GetByID(_ context.Context, _ uuid.UUID) (*queries.ClaimView, error) {
	return f.view, f.err
}

func (f *fakeClaimQueries) List(_ context.Context, _ queries.ClaimFilter) ([]*queries.ClaimView, error) {
	return nil, nil
}

func (f *fakeClaimQueries) TimeslotAvailability(_ context.Context, _ uuid.UUID) (*queries.TimeslotAvailabilityView, error) {
	return nil, nil
}

type fixture struct {
	builder  *builder.ClaimBuilder
	tx       *fakeTx
	queries  *fakeClaimQueries
	commands commands.ClaimCommands
	now      time.Time
}

func newFixture() *fixture {
	b := builder.NewClaimBuilder()
	tx := &fakeTx{
		claims:    &fakeClaimRepo{},
		timeslots: &fakeTimeslotRepo{},
		events:    &fakeEventRepo{},
		reads: &fakeReads{
			resource: b.BuildResourceSnapshot(),
			member:   true,
		},
	}
	q := &fakeClaimQueries{view: b.BuildView()}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cmds := commands.NewClaimCommands(&fakeUoW{tx: tx}, q, clock.NewMockClock(now))
	return &fixture{builder: b, tx: tx, queries: q, commands: cmds, now: now}
}

func TestCreateClaim(t *testing.T) {
	t.Run("auto approved resource admits immediately", func(t *testing.T) {
		f := newFixture()

		view, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: f.builder.ResourceID,
		}, f.builder.ClaimantID)

		require.NoError(t, err)
		require.NotNil(t, view)
		require.NotNil(t, f.tx.claims.created)
		assert.Equal(t, claim.StatusApproved, f.tx.claims.created.Status())
		assert.Nil(t, f.tx.claims.createdSlot)
	})

	t.Run("approval gated resource starts pending", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.resource.RequiresApproval = true

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: f.builder.ResourceID,
		}, f.builder.ClaimantID)

		require.NoError(t, err)
		assert.Equal(t, claim.StatusPending, f.tx.claims.created.Status())
	})

	t.Run("timeslot claim locks the slot before inserting", func(t *testing.T) {
		f := newFixture()
		slotID := uuid.New()
		f.builder.WithTimeslotID(slotID)
		f.tx.timeslots.snapshot = f.builder.BuildTimeslotSnapshot()

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: f.builder.ResourceID,
			TimeslotID: &slotID,
		}, f.builder.ClaimantID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{slotID}, f.tx.timeslots.locked)
		require.NotNil(t, f.tx.claims.createdSlot)
		assert.Equal(t, slotID, f.tx.claims.createdSlot.ID())
		// The repository admits against the domain capacity rule, so
		// the slot entity must carry it.
		assert.Equal(t, f.builder.Capacity, f.tx.claims.createdSlot.Capacity())
		assert.True(t, f.tx.claims.createdSlot.HasCapacity(int64(f.builder.Capacity)-1))
		assert.False(t, f.tx.claims.createdSlot.HasCapacity(int64(f.builder.Capacity)))
	})

	t.Run("non member is refused", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.member = false

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: f.builder.ResourceID,
		}, f.builder.ClaimantID)

		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
		assert.Nil(t, f.tx.claims.created)
	})

	t.Run("closed resource fails validation", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.resource.LifecycleStatus = "completed"

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: f.builder.ResourceID,
		}, f.builder.ClaimantID)

		assert.True(t, errs.Is(err, commands.ErrValidation), "want validation error, got %v", err)
	})

	t.Run("unknown resource", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.resErr = infra.NewRepoErr(infra.KindNotFound, "no such resource")

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: uuid.New(),
		}, f.builder.ClaimantID)

		assert.ErrorIs(t, err, commands.ErrResourceNotFound)
	})

	t.Run("unknown timeslot", func(t *testing.T) {
		f := newFixture()
		slotID := uuid.New()
		f.tx.timeslots.err = infra.NewRepoErr(infra.KindNotFound, "no such timeslot")

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: f.builder.ResourceID,
			TimeslotID: &slotID,
		}, f.builder.ClaimantID)

		assert.ErrorIs(t, err, commands.ErrTimeslotNotFound)
	})

	t.Run("duplicate or full slot maps to conflict", func(t *testing.T) {
		for _, kind := range []infra.RepositoryErrorKind{infra.KindConflict, infra.KindDuplicateKey} {
			f := newFixture()
			f.tx.claims.createErr = infra.NewRepoErr(kind, "admission refused")

			_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
				ResourceID: f.builder.ResourceID,
			}, f.builder.ClaimantID)

			assert.ErrorIs(t, err, commands.ErrClaimConflict, "kind %v", kind)
		}
	})

	t.Run("missing resource id fails validation without touching storage", func(t *testing.T) {
		f := newFixture()

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{}, f.builder.ClaimantID)

		assert.True(t, errs.Is(err, commands.ErrValidation), "want validation error, got %v", err)
		assert.Nil(t, f.tx.claims.created)
	})

	t.Run("creation appends a fact with no prior status", func(t *testing.T) {
		f := newFixture()

		_, err := f.commands.Create(context.Background(), commands.CreateClaimCommand{
			ResourceID: f.builder.ResourceID,
		}, f.builder.ClaimantID)

		require.NoError(t, err)
		require.Len(t, f.tx.events.facts, 1)
		fact := f.tx.events.facts[0]
		assert.Nil(t, fact.OldStatus)
		assert.Equal(t, claim.StatusApproved.String(), fact.NewStatus)
		assert.Equal(t, f.builder.OwnerID, fact.OwnerID)
		assert.Equal(t, f.now, fact.OccurredAt)
	})
}

func TestTransitionClaim(t *testing.T) {
	setup := func(status claim.Status) *fixture {
		f := newFixture()
		f.builder.WithStatus(status)
		f.tx.claims.snapshot = f.builder.BuildSnapshot()
		f.tx.claims.snapshot.ClaimantID = f.builder.ClaimantID
		return f
	}

	t.Run("owner approves a pending claim", func(t *testing.T) {
		f := setup(claim.StatusPending)

		view, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusApproved, f.builder.OwnerID)

		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, claim.StatusPending, f.tx.claims.updatedFrom)
		assert.Equal(t, claim.StatusApproved, f.tx.claims.updatedTo)
	})

	t.Run("claimant cancels an approved claim", func(t *testing.T) {
		f := setup(claim.StatusApproved)

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusCancelled, f.builder.ClaimantID)

		require.NoError(t, err)
		assert.Equal(t, claim.StatusCancelled, f.tx.claims.updatedTo)
	})

	t.Run("authorization is checked before legality", func(t *testing.T) {
		// A claimant asking for rejection is outside their vocabulary, so
		// the refusal is authorization even though the move is also
		// illegal from approved.
		f := setup(claim.StatusApproved)

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusRejected, f.builder.ClaimantID)

		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
		assert.False(t, f.tx.claims.updateCalled)
	})

	t.Run("illegal move within the actor's vocabulary", func(t *testing.T) {
		// Approval is an owner verb, but a completed claim admits no
		// further moves; legality wins here.
		f := setup(claim.StatusCompleted)

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusApproved, f.builder.OwnerID)

		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
	})

	t.Run("legal move by the wrong party", func(t *testing.T) {
		// Handover completion is owner-only; the claimant shares the
		// completed vocabulary with nobody.
		f := setup(claim.StatusGiven)

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusCompleted, f.builder.ClaimantID)

		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		f := setup(claim.StatusPending)

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusApproved, uuid.New())

		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
	})

	t.Run("self claim may act with either role", func(t *testing.T) {
		f := newFixture()
		f.builder.AsSelfClaim().WithStatus(claim.StatusPending)
		f.tx.claims.snapshot = f.builder.BuildSnapshot()

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusApproved, f.builder.OwnerID)

		require.NoError(t, err)
	})

	t.Run("concurrent status change surfaces as conflict", func(t *testing.T) {
		f := setup(claim.StatusPending)
		f.tx.claims.updateErr = infra.NewRepoErr(infra.KindConflict, "claim status changed concurrently")

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusApproved, f.builder.OwnerID)

		assert.ErrorIs(t, err, commands.ErrClaimConflict)
	})

	t.Run("unknown target status fails validation", func(t *testing.T) {
		f := setup(claim.StatusPending)

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.Status("confirmed"), f.builder.OwnerID)

		assert.True(t, errs.Is(err, commands.ErrValidation), "want validation error, got %v", err)
	})

	t.Run("unknown claim", func(t *testing.T) {
		f := newFixture()
		f.tx.claims.findErr = infra.NewRepoErr(infra.KindNotFound, "no such claim")

		_, err := f.commands.Transition(context.Background(), uuid.New(), claim.StatusApproved, f.builder.OwnerID)

		assert.ErrorIs(t, err, commands.ErrClaimNotFound)
	})

	t.Run("transition appends a fact carrying both statuses", func(t *testing.T) {
		f := setup(claim.StatusPending)

		_, err := f.commands.Transition(context.Background(), f.tx.claims.snapshot.ID, claim.StatusApproved, f.builder.OwnerID)

		require.NoError(t, err)
		require.Len(t, f.tx.events.facts, 1)
		fact := f.tx.events.facts[0]
		require.NotNil(t, fact.OldStatus)
		assert.Equal(t, claim.StatusPending, *fact.OldStatus)
		assert.Equal(t, claim.StatusApproved.String(), fact.NewStatus)
	})
}

func TestDeleteClaim(t *testing.T) {
	setup := func(status claim.Status) *fixture {
		f := newFixture()
		f.builder.WithStatus(status)
		f.tx.claims.snapshot = f.builder.BuildSnapshot()
		return f
	}

	t.Run("claimant deletes a pending claim", func(t *testing.T) {
		f := setup(claim.StatusPending)

		err := f.commands.Delete(context.Background(), f.tx.claims.snapshot.ID, f.builder.ClaimantID)

		require.NoError(t, err)
		assert.Equal(t, f.tx.claims.snapshot.ID, f.tx.claims.deletedID)
	})

	t.Run("deletion is recorded as a fact", func(t *testing.T) {
		f := setup(claim.StatusApproved)

		err := f.commands.Delete(context.Background(), f.tx.claims.snapshot.ID, f.builder.ClaimantID)

		require.NoError(t, err)
		require.Len(t, f.tx.events.facts, 1)
		assert.Equal(t, shared.FactDeleted, f.tx.events.facts[0].NewStatus)
	})

	t.Run("owner may not delete", func(t *testing.T) {
		f := setup(claim.StatusPending)

		err := f.commands.Delete(context.Background(), f.tx.claims.snapshot.ID, f.builder.OwnerID)

		assert.ErrorIs(t, err, commands.ErrNotAuthorized)
	})

	t.Run("fulfillment blocks deletion", func(t *testing.T) {
		for _, status := range []claim.Status{claim.StatusGiven, claim.StatusReceived, claim.StatusCompleted} {
			f := setup(status)

			err := f.commands.Delete(context.Background(), f.tx.claims.snapshot.ID, f.builder.ClaimantID)

			assert.ErrorIs(t, err, commands.ErrNotAuthorized, "status %s", status)
		}
	})

	t.Run("unknown claim", func(t *testing.T) {
		f := newFixture()
		f.tx.claims.findErr = infra.NewRepoErr(infra.KindNotFound, "no such claim")

		err := f.commands.Delete(context.Background(), uuid.New(), f.builder.ClaimantID)

		assert.ErrorIs(t, err, commands.ErrClaimNotFound)
	})
}
