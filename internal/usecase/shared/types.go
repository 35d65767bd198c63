package shared

import (
	"time"

	"claimflow/internal/domain/claim"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types
// (CQRS separation)
type ResourceSnapshot struct {
	ID               uuid.UUID
	CommunityID      uuid.UUID
	OwnerID          uuid.UUID
	Kind             string
	RequiresApproval bool
	LifecycleStatus  string
}

type TimeslotSnapshot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	StartTime  time.Time
	EndTime    *time.Time
	Capacity   int32
}

type ClaimSnapshot struct {
	ID         uuid.UUID
	ResourceID uuid.UUID
	TimeslotID *uuid.UUID
	ClaimantID uuid.UUID
	Status     claim.Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TransitionFact is the observable record of a claim mutation. OldStatus
// is nil for creation facts.
type TransitionFact struct {
	ClaimID    uuid.UUID
	ResourceID uuid.UUID
	ClaimantID uuid.UUID
	OwnerID    uuid.UUID
	OldStatus  *claim.Status
	NewStatus  string
	OccurredAt time.Time
}

const (
	// FactDeleted marks a claim removed by its claimant; it is the only
	// fact whose NewStatus is not a claim status.
	FactDeleted = "deleted"
)
