package repository

import (
	"context"

	"claimflow/internal/infra"
	"claimflow/internal/infra/db"
	"claimflow/internal/usecase/shared"

	"github.com/google/uuid"
)

// EventRepository is the transactional outbox of transition facts. Rows
// land in the same transaction as the status change, so the external
// notification collaborator never observes a fact without its write or
// a write without its fact.
type EventRepository struct {
	dbtx db.DBTX
}

func NewEventRepository(dbtx db.DBTX) *EventRepository {
	return &EventRepository{dbtx: dbtx}
}

const insertEventSQL = `
INSERT INTO claim_events (id, claim_id, resource_id, claimant_id, owner_id, old_status, new_status, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *EventRepository) Append(ctx context.Context, fact shared.TransitionFact) error {
	var oldStatus *string
	if fact.OldStatus != nil {
		s := fact.OldStatus.String()
		oldStatus = &s
	}

	_, err := r.dbtx.Exec(ctx, insertEventSQL,
		uuid.New(),
		fact.ClaimID,
		fact.ResourceID,
		fact.ClaimantID,
		fact.OwnerID,
		oldStatus,
		fact.NewStatus,
		fact.OccurredAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append claim event", err)
	}
	return nil
}
