package shared

import (
	"context"

	"claimflow/internal/domain/claim"
	"claimflow/internal/domain/resource"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Claims() ClaimRepository
	Timeslots() TimeslotRepository
	Events() EventRepository
	Reads() CommandReads
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	IsCommunityMember(ctx context.Context, userID, communityID uuid.UUID) (bool, error)
}

// ClaimRepository owns the uniqueness and capacity invariants at write
// time. Create and UpdateStatus are single atomic operations; two
// racing callers resolve to exactly one winner.
type ClaimRepository interface {
	// Create inserts the claim after re-checking the active-duplicate
	// and capacity invariants inside the surrounding transaction. slot
	// is nil for whole-resource claims; its capacity rule decides
	// admission.
	Create(ctx context.Context, c *claim.Claim, slot *resource.Timeslot) error
	// FindForUpdate locks the claim row for the rest of the transaction.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*ClaimSnapshot, error)
	// UpdateStatus performs a compare-and-swap on the current status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to claim.Status) (*ClaimSnapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TimeslotRepository serves the admission lock: locking the timeslot
// row serializes capacity checks for that slot.
type TimeslotRepository interface {
	LockByID(ctx context.Context, id uuid.UUID) (*TimeslotSnapshot, error)
}

// EventRepository appends transition facts in the same transaction as
// the status change. The external notification collaborator consumes
// them; the engine never delivers notifications itself.
type EventRepository interface {
	Append(ctx context.Context, fact TransitionFact) error
}
