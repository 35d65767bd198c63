package readstore

import (
	"context"
	"fmt"
	"strings"

	"claimflow/internal/infra"
	"claimflow/internal/infra/db"
	"claimflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ClaimReadStore is the public read side: no guard, no state machine,
// stable ordering for pagination.
type ClaimReadStore struct {
	dbtx db.DBTX
}

func NewClaimReadStore(dbtx db.DBTX) *ClaimReadStore {
	return &ClaimReadStore{dbtx: dbtx}
}

const claimViewSelect = `
SELECT c.id, c.resource_id, c.timeslot_id, c.claimant_id, r.owner_id, c.status, c.created_at, c.updated_at
FROM claims c
JOIN resources r ON r.id = c.resource_id
`

func (s *ClaimReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ClaimView, error) {
	row := s.dbtx.QueryRow(ctx, claimViewSelect+`WHERE c.id = $1`, id)
	view, err := scanClaimView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find claim", err)
	}
	return view, nil
}

func (s *ClaimReadStore) Search(ctx context.Context, filter queries.ClaimFilter) ([]*queries.ClaimView, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ClaimantID != nil {
		conds = append(conds, "c.claimant_id = "+arg(*filter.ClaimantID))
	}
	if filter.ResourceID != nil {
		conds = append(conds, "c.resource_id = "+arg(*filter.ResourceID))
	}
	if filter.TimeslotID != nil {
		conds = append(conds, "c.timeslot_id = "+arg(*filter.TimeslotID))
	}
	if filter.ResourceOwnerID != nil {
		conds = append(conds, "r.owner_id = "+arg(*filter.ResourceOwnerID))
	}

	query := claimViewSelect
	if len(conds) > 0 {
		query += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	query += "ORDER BY c.created_at, c.id\n"
	query += "LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search claims", err)
	}
	defer rows.Close()

	views := make([]*queries.ClaimView, 0)
	for rows.Next() {
		view, err := scanClaimView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan claim row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read claim rows", err)
	}

	return views, nil
}

const availabilitySQL = `
SELECT t.id, t.resource_id, t.start_time, t.end_time, t.capacity,
       count(c.id) FILTER (WHERE c.status IN ('approved', 'given', 'received', 'completed')) AS occupied
FROM timeslots t
LEFT JOIN claims c ON c.timeslot_id = t.id
WHERE t.id = $1
GROUP BY t.id, t.resource_id, t.start_time, t.end_time, t.capacity
`

// Availability reports the glossary figure: capacity minus claims in an
// occupying status. Pending claims hold admission but do not occupy.
func (s *ClaimReadStore) Availability(ctx context.Context, timeslotID uuid.UUID) (*queries.TimeslotAvailabilityView, error) {
	var view queries.TimeslotAvailabilityView
	err := s.dbtx.QueryRow(ctx, availabilitySQL, timeslotID).Scan(
		&view.TimeslotID,
		&view.ResourceID,
		&view.StartTime,
		&view.EndTime,
		&view.Capacity,
		&view.Occupied,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read timeslot availability", err)
	}

	view.Remaining = int64(view.Capacity) - view.Occupied
	if view.Remaining < 0 {
		view.Remaining = 0
	}
	return &view, nil
}

func scanClaimView(row pgx.Row) (*queries.ClaimView, error) {
	var (
		view       queries.ClaimView
		timeslotID uuid.NullUUID
	)
	if err := row.Scan(
		&view.ID,
		&view.ResourceID,
		&timeslotID,
		&view.ClaimantID,
		&view.OwnerID,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if timeslotID.Valid {
		id := timeslotID.UUID
		view.TimeslotID = &id
	}
	return &view, nil
}
