package claim

import (
	"errors"
	"time"

	"claimflow/internal/domain/resource"

	"github.com/google/uuid"
)

var (
	ErrTimeslotMismatch  = errors.New("timeslot does not belong to resource")
	ErrResourceNotOpen   = errors.New("resource is not open for claims")
	ErrInvalidStatus     = errors.New("invalid claim status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Claim is a single claimant's reservation against a resource,
// optionally scoped to one of its timeslots.
type Claim struct {
	id         uuid.UUID
	resourceID uuid.UUID
	timeslotID *uuid.UUID
	claimantID uuid.UUID
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// NewClaim builds a claim against the given resource, deriving the
// initial status from the resource's approval policy. The referential
// invariant (timeslot belongs to resource) is validated here and
// re-validated at write time by the repository.
func NewClaim(res *resource.Resource, slot *resource.Timeslot, claimantID uuid.UUID, now time.Time) (*Claim, error) {
	if !res.IsOpen() {
		return nil, ErrResourceNotOpen
	}

	var timeslotID *uuid.UUID
	if slot != nil {
		if slot.ResourceID() != res.ID() {
			return nil, ErrTimeslotMismatch
		}
		id := slot.ID()
		timeslotID = &id
	}

	return &Claim{
		id:         uuid.New(),
		resourceID: res.ID(),
		timeslotID: timeslotID,
		claimantID: claimantID,
		status:     InitialStatus(res.RequiresApproval()),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructClaim(
	id, resourceID uuid.UUID,
	timeslotID *uuid.UUID,
	claimantID uuid.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) *Claim {
	return &Claim{
		id:         id,
		resourceID: resourceID,
		timeslotID: timeslotID,
		claimantID: claimantID,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Transition moves the claim to the next status after checking
// legality. Role checks are the guard's job, not the entity's.
func (c *Claim) Transition(to Status, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !CanTransition(c.status, to) {
		return ErrIllegalTransition
	}
	c.status = to
	c.updatedAt = now
	return nil
}

func (c *Claim) ID() uuid.UUID          { return c.id }
func (c *Claim) ResourceID() uuid.UUID  { return c.resourceID }
func (c *Claim) TimeslotID() *uuid.UUID { return c.timeslotID }
func (c *Claim) ClaimantID() uuid.UUID  { return c.claimantID }
func (c *Claim) Status() Status         { return c.status }
func (c *Claim) CreatedAt() time.Time   { return c.createdAt }
func (c *Claim) UpdatedAt() time.Time   { return c.updatedAt }
