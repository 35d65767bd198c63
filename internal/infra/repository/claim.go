package repository

import (
	"context"
	"errors"

	"claimflow/internal/domain/claim"
	"claimflow/internal/domain/resource"
	"claimflow/internal/infra"
	"claimflow/internal/infra/db"
	"claimflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ClaimRepository performs all claim writes. It must run inside the
// unit of work's transaction: admission relies on the timeslot row lock
// taken by TimeslotRepository.LockByID, and the partial unique indexes
// on claims are the backstop for races the pre-checks cannot see.
type ClaimRepository struct {
	dbtx db.DBTX
}

func NewClaimRepository(dbtx db.DBTX) *ClaimRepository {
	return &ClaimRepository{dbtx: dbtx}
}

const duplicateClaimSQL = `
SELECT EXISTS (
    SELECT 1
    FROM claims
    WHERE resource_id = $1
      AND claimant_id = $2
      AND timeslot_id IS NOT DISTINCT FROM $3
      AND status <> 'cancelled'
)
`

const admissionCountSQL = `
SELECT count(*)
FROM claims
WHERE timeslot_id = $1
  AND status NOT IN ('cancelled', 'rejected')
`

const insertClaimSQL = `
INSERT INTO claims (id, resource_id, timeslot_id, claimant_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Create admits the claim: active-duplicate check, capacity check and
// insert as one atomic unit under the caller's transaction. Exactly one
// of two racing callers commits; the loser gets a conflict kind.
func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim, slot *resource.Timeslot) error {
	timeslotID := nullUUID(c.TimeslotID())

	var exists bool
	if err := r.dbtx.QueryRow(ctx, duplicateClaimSQL, c.ResourceID(), c.ClaimantID(), timeslotID).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check for duplicate claim", err)
	}
	if exists {
		return infra.NewRepoErr(infra.KindConflict, "active claim already exists for this resource and timeslot")
	}

	if slot != nil {
		// The slot row is locked by the caller, so this count cannot
		// change under us before commit.
		var held int64
		if err := r.dbtx.QueryRow(ctx, admissionCountSQL, slot.ID()).Scan(&held); err != nil {
			return infra.WrapRepoErr("failed to count admitted claims", err)
		}
		if !slot.HasCapacity(held) {
			return infra.NewRepoErr(infra.KindConflict, "timeslot capacity exhausted")
		}
	}

	_, err := r.dbtx.Exec(ctx, insertClaimSQL,
		c.ID(),
		c.ResourceID(),
		timeslotID,
		c.ClaimantID(),
		c.Status().String(),
		c.CreatedAt(),
		c.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert claim", err)
	}

	return nil
}

const claimForUpdateSQL = `
SELECT id, resource_id, timeslot_id, claimant_id, status, created_at, updated_at
FROM claims
WHERE id = $1
FOR UPDATE
`

func (r *ClaimRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.ClaimSnapshot, error) {
	snap, err := scanClaimSnapshot(r.dbtx.QueryRow(ctx, claimForUpdateSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock claim", err)
	}
	return snap, nil
}

const updateClaimStatusSQL = `
UPDATE claims
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2
RETURNING id, resource_id, timeslot_id, claimant_id, status, created_at, updated_at
`

// UpdateStatus is a compare-and-swap: the write lands only if the
// status is still the one the caller validated against. Zero rows means
// the view was stale.
func (r *ClaimRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to claim.Status) (*shared.ClaimSnapshot, error) {
	snap, err := scanClaimSnapshot(r.dbtx.QueryRow(ctx, updateClaimStatusSQL, id, from.String(), to.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindConflict, "claim status changed concurrently")
		}
		return nil, infra.WrapRepoErr("failed to update claim status", err)
	}
	return snap, nil
}

func (r *ClaimRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.dbtx.Exec(ctx, `DELETE FROM claims WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete claim", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "claim not found")
	}
	return nil
}

func scanClaimSnapshot(row pgx.Row) (*shared.ClaimSnapshot, error) {
	var (
		snap       shared.ClaimSnapshot
		timeslotID uuid.NullUUID
		status     string
	)
	if err := row.Scan(
		&snap.ID,
		&snap.ResourceID,
		&timeslotID,
		&snap.ClaimantID,
		&status,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if timeslotID.Valid {
		id := timeslotID.UUID
		snap.TimeslotID = &id
	}
	snap.Status = claim.Status(status)
	return &snap, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
