package repository

import (
	"context"

	"claimflow/internal/infra"
	"claimflow/internal/infra/db"
	"claimflow/internal/usecase/shared"

	"github.com/google/uuid"
)

// TimeslotRepository exposes the admission lock. Locking the slot row
// serializes every capacity check for that slot; concurrent claimants
// queue here and see each other's committed claims.
type TimeslotRepository struct {
	dbtx db.DBTX
}

func NewTimeslotRepository(dbtx db.DBTX) *TimeslotRepository {
	return &TimeslotRepository{dbtx: dbtx}
}

const lockTimeslotSQL = `
SELECT id, resource_id, start_time, end_time, capacity
FROM timeslots
WHERE id = $1
FOR UPDATE
`

func (r *TimeslotRepository) LockByID(ctx context.Context, id uuid.UUID) (*shared.TimeslotSnapshot, error) {
	var snap shared.TimeslotSnapshot
	err := r.dbtx.QueryRow(ctx, lockTimeslotSQL, id).Scan(
		&snap.ID,
		&snap.ResourceID,
		&snap.StartTime,
		&snap.EndTime,
		&snap.Capacity,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock timeslot", err)
	}
	return &snap, nil
}
