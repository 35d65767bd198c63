package commands

import (
	"context"

	"claimflow/internal/domain/claim"
	"claimflow/internal/domain/resource"
	"claimflow/internal/infra"
	"claimflow/internal/pkg/clock"
	"claimflow/internal/pkg/errs"
	"claimflow/internal/usecase/queries"
	"claimflow/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound        = errs.New("resource not found")
	ErrTimeslotNotFound        = errs.New("timeslot not found")
	ErrClaimNotFound           = errs.New("claim not found")
	ErrNotAuthorized           = errs.New("actor not authorized for claim operation")
	ErrClaimConflict           = errs.New("claim conflict")
	ErrInvalidTransition       = errs.New("illegal claim status transition")
	ErrValidation              = errs.New("claim validation failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateClaimCommand struct {
	ResourceID uuid.UUID
	TimeslotID *uuid.UUID
}

type ClaimCommands interface {
	Create(ctx context.Context, cmd CreateClaimCommand, actorID uuid.UUID) (*queries.ClaimView, error)
	Transition(ctx context.Context, claimID uuid.UUID, to claim.Status, actorID uuid.UUID) (*queries.ClaimView, error)
	Delete(ctx context.Context, claimID, actorID uuid.UUID) error
}

type claimCommandsImpl struct {
	uow          shared.UnitOfWork
	claimQueries queries.ClaimQueries
	clock        clock.Clock
}

func NewClaimCommands(uow shared.UnitOfWork, claimQueries queries.ClaimQueries, clock clock.Clock) ClaimCommands {
	return &claimCommandsImpl{
		uow:          uow,
		claimQueries: claimQueries,
		clock:        clock,
	}
}

// Create admits a new claim. Admission (duplicate and capacity checks
// plus the insert) happens as one atomic unit inside the transaction;
// if two callers race for the last slot, exactly one commits and the
// other sees ErrClaimConflict. Conflicts are facts about the current
// world, so nothing here retries them.
func (c *claimCommandsImpl) Create(ctx context.Context, cmd CreateClaimCommand, actorID uuid.UUID) (*queries.ClaimView, error) {
	if cmd.ResourceID == uuid.Nil {
		return nil, errs.Mark(errs.New("missing resource id"), ErrValidation)
	}
	if cmd.TimeslotID != nil && *cmd.TimeslotID == uuid.Nil {
		return nil, errs.Mark(errs.New("malformed timeslot id"), ErrValidation)
	}

	var claimID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resSnap, err := tx.Reads().ResourceByID(ctx, cmd.ResourceID)
		if err != nil {
			return mapRepoErr(err, ErrResourceNotFound)
		}

		member, err := tx.Reads().IsCommunityMember(ctx, actorID, resSnap.CommunityID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !claim.CanCreate(member) {
			return ErrNotAuthorized
		}

		resEntity, err := resource.NewResource(
			resSnap.ID,
			resSnap.CommunityID,
			resSnap.OwnerID,
			resource.Kind(resSnap.Kind),
			resSnap.RequiresApproval,
			resource.LifecycleStatus(resSnap.LifecycleStatus),
		)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		var slotEntity *resource.Timeslot
		if cmd.TimeslotID != nil {
			// Locking the slot row serializes admission for this slot.
			slotSnap, err := tx.Timeslots().LockByID(ctx, *cmd.TimeslotID)
			if err != nil {
				return mapRepoErr(err, ErrTimeslotNotFound)
			}
			slotEntity, err = resource.NewTimeslot(
				slotSnap.ID,
				slotSnap.ResourceID,
				slotSnap.StartTime,
				slotSnap.EndTime,
				slotSnap.Capacity,
			)
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
		}

		entity, err := claim.NewClaim(resEntity, slotEntity, actorID, c.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}

		if err := tx.Claims().Create(ctx, entity, slotEntity); err != nil {
			return mapRepoErr(err, ErrResourceNotFound)
		}

		claimID = entity.ID()
		return tx.Events().Append(ctx, shared.TransitionFact{
			ClaimID:    entity.ID(),
			ResourceID: entity.ResourceID(),
			ClaimantID: entity.ClaimantID(),
			OwnerID:    resSnap.OwnerID,
			OldStatus:  nil,
			NewStatus:  entity.Status().String(),
			OccurredAt: c.clock.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return c.readBack(ctx, claimID)
}

// Transition re-validates the current status and the actor's role
// immediately before writing; the update itself is a compare-and-swap
// on the status read under the row lock.
func (c *claimCommandsImpl) Transition(ctx context.Context, claimID uuid.UUID, to claim.Status, actorID uuid.UUID) (*queries.ClaimView, error) {
	if !to.IsValid() {
		return nil, errs.Mark(errs.New("unknown target status"), ErrValidation)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Claims().FindForUpdate(ctx, claimID)
		if err != nil {
			return mapRepoErr(err, ErrClaimNotFound)
		}

		resSnap, err := tx.Reads().ResourceByID(ctx, snap.ResourceID)
		if err != nil {
			return mapRepoErr(err, ErrResourceNotFound)
		}

		roles := claim.RolesFor(actorID, snap.ClaimantID, resSnap.OwnerID)
		if !claim.CanRequestStatus(roles, to) {
			return ErrNotAuthorized
		}
		if !claim.CanTransition(snap.Status, to) {
			return ErrInvalidTransition
		}
		if !claim.CanPerform(roles, snap.Status, to) {
			return ErrNotAuthorized
		}

		if _, err := tx.Claims().UpdateStatus(ctx, claimID, snap.Status, to); err != nil {
			return mapRepoErr(err, ErrClaimNotFound)
		}

		old := snap.Status
		return tx.Events().Append(ctx, shared.TransitionFact{
			ClaimID:    snap.ID,
			ResourceID: snap.ResourceID,
			ClaimantID: snap.ClaimantID,
			OwnerID:    resSnap.OwnerID,
			OldStatus:  &old,
			NewStatus:  to.String(),
			OccurredAt: c.clock.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return c.readBack(ctx, claimID)
}

func (c *claimCommandsImpl) Delete(ctx context.Context, claimID, actorID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Claims().FindForUpdate(ctx, claimID)
		if err != nil {
			return mapRepoErr(err, ErrClaimNotFound)
		}

		resSnap, err := tx.Reads().ResourceByID(ctx, snap.ResourceID)
		if err != nil {
			return mapRepoErr(err, ErrResourceNotFound)
		}

		roles := claim.RolesFor(actorID, snap.ClaimantID, resSnap.OwnerID)
		if !claim.CanDelete(roles, snap.Status) {
			return ErrNotAuthorized
		}

		if err := tx.Claims().Delete(ctx, claimID); err != nil {
			return mapRepoErr(err, ErrClaimNotFound)
		}

		old := snap.Status
		return tx.Events().Append(ctx, shared.TransitionFact{
			ClaimID:    snap.ID,
			ResourceID: snap.ResourceID,
			ClaimantID: snap.ClaimantID,
			OwnerID:    resSnap.OwnerID,
			OldStatus:  &old,
			NewStatus:  shared.FactDeleted,
			OccurredAt: c.clock.Now(),
		})
	})
}

// Read-after-write: mutations are immediately visible to any caller, so
// the response view comes from the read store.
func (c *claimCommandsImpl) readBack(ctx context.Context, claimID uuid.UUID) (*queries.ClaimView, error) {
	view, err := c.claimQueries.GetByID(ctx, claimID)
	if err != nil {
		return nil, mapRepoErr(err, ErrClaimNotFound)
	}
	return view, nil
}

func mapRepoErr(err error, notFound error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return notFound
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return ErrClaimConflict
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, ErrValidation)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}
