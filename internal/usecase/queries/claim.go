package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ClaimView struct {
	ID         uuid.UUID  `json:"id"`
	ResourceID uuid.UUID  `json:"resource_id"`
	TimeslotID *uuid.UUID `json:"timeslot_id,omitempty"`
	ClaimantID uuid.UUID  `json:"claimant_id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type TimeslotAvailabilityView struct {
	TimeslotID uuid.UUID  `json:"timeslot_id"`
	ResourceID uuid.UUID  `json:"resource_id"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Capacity   int32      `json:"capacity"`
	Occupied   int64      `json:"occupied"`
	Remaining  int64      `json:"remaining"`
}

// ClaimFilter narrows List; all fields compose with AND. Reads are
// public, so no actor is required.
type ClaimFilter struct {
	ClaimantID      *uuid.UUID
	ResourceID      *uuid.UUID
	TimeslotID      *uuid.UUID
	ResourceOwnerID *uuid.UUID
	Limit           int32
	Offset          int32
}

type ClaimQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ClaimView, error)
	List(ctx context.Context, filter ClaimFilter) ([]*ClaimView, error)
	TimeslotAvailability(ctx context.Context, timeslotID uuid.UUID) (*TimeslotAvailabilityView, error)
}

type ClaimReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ClaimView, error)
	Search(ctx context.Context, filter ClaimFilter) ([]*ClaimView, error)
	Availability(ctx context.Context, timeslotID uuid.UUID) (*TimeslotAvailabilityView, error)
}

const defaultListLimit = 50

type claimQueriesImpl struct {
	store ClaimReadStore
}

func NewClaimQueries(store ClaimReadStore) ClaimQueries {
	return &claimQueriesImpl{store: store}
}

func (q *claimQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ClaimView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *claimQueriesImpl) List(ctx context.Context, filter ClaimFilter) ([]*ClaimView, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return q.store.Search(ctx, filter)
}

func (q *claimQueriesImpl) TimeslotAvailability(ctx context.Context, timeslotID uuid.UUID) (*TimeslotAvailabilityView, error) {
	return q.store.Availability(ctx, timeslotID)
}
