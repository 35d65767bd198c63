package readstore

import (
	"context"

	"claimflow/internal/infra"
	"claimflow/internal/infra/db"
	"claimflow/internal/usecase/shared"

	"github.com/google/uuid"
)

// ResourceReadStore serves the reference data this engine consumes but
// never mutates: resources, their approval policy and ownership, and
// community membership facts.
type ResourceReadStore struct {
	dbtx db.DBTX
}

func NewResourceReadStore(dbtx db.DBTX) *ResourceReadStore {
	return &ResourceReadStore{dbtx: dbtx}
}

const resourceByIDSQL = `
SELECT id, community_id, owner_id, kind, requires_approval, lifecycle_status
FROM resources
WHERE id = $1
`

func (s *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	var snap shared.ResourceSnapshot
	err := s.dbtx.QueryRow(ctx, resourceByIDSQL, id).Scan(
		&snap.ID,
		&snap.CommunityID,
		&snap.OwnerID,
		&snap.Kind,
		&snap.RequiresApproval,
		&snap.LifecycleStatus,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}
	return &snap, nil
}

const membershipSQL = `
SELECT EXISTS (
    SELECT 1
    FROM community_members
    WHERE community_id = $1 AND user_id = $2
)
`

func (s *ResourceReadStore) IsCommunityMember(ctx context.Context, userID, communityID uuid.UUID) (bool, error) {
	var member bool
	if err := s.dbtx.QueryRow(ctx, membershipSQL, communityID, userID).Scan(&member); err != nil {
		return false, infra.WrapRepoErr("failed to check community membership", err)
	}
	return member, nil
}
