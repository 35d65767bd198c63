package resource

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind     = errors.New("invalid resource kind")
	ErrInvalidCapacity = errors.New("timeslot capacity must be at least 1")
)

// Kind distinguishes a resource someone offers from one they request.
type Kind string

const (
	KindOffer   Kind = "offer"
	KindRequest Kind = "request"
)

func (k Kind) IsValid() bool {
	return k == KindOffer || k == KindRequest
}

// LifecycleStatus is owned by the external resource-management
// collaborator; the engine only reads it.
type LifecycleStatus string

const (
	LifecycleOpen      LifecycleStatus = "open"
	LifecycleCompleted LifecycleStatus = "completed"
	LifecycleCancelled LifecycleStatus = "cancelled"
)

// Resource is read-only reference data for the claim engine.
type Resource struct {
	id               uuid.UUID
	communityID      uuid.UUID
	ownerID          uuid.UUID
	kind             Kind
	requiresApproval bool
	lifecycleStatus  LifecycleStatus
}

func NewResource(id, communityID, ownerID uuid.UUID, kind Kind, requiresApproval bool, lifecycleStatus LifecycleStatus) (*Resource, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	return &Resource{
		id:               id,
		communityID:      communityID,
		ownerID:          ownerID,
		kind:             kind,
		requiresApproval: requiresApproval,
		lifecycleStatus:  lifecycleStatus,
	}, nil
}

func (r *Resource) ID() uuid.UUID          { return r.id }
func (r *Resource) CommunityID() uuid.UUID { return r.communityID }
func (r *Resource) OwnerID() uuid.UUID     { return r.ownerID }
func (r *Resource) Kind() Kind             { return r.kind }
func (r *Resource) RequiresApproval() bool { return r.requiresApproval }

func (r *Resource) IsOpen() bool {
	return r.lifecycleStatus == LifecycleOpen
}

// Timeslot is a capacity-bounded scheduling window attached to a
// resource. A resource with no timeslots is claimed as a whole and
// carries no capacity ceiling.
type Timeslot struct {
	id         uuid.UUID
	resourceID uuid.UUID
	startTime  time.Time
	endTime    *time.Time
	capacity   int32
}

func NewTimeslot(id, resourceID uuid.UUID, startTime time.Time, endTime *time.Time, capacity int32) (*Timeslot, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Timeslot{
		id:         id,
		resourceID: resourceID,
		startTime:  startTime,
		endTime:    endTime,
		capacity:   capacity,
	}, nil
}

func (t *Timeslot) ID() uuid.UUID         { return t.id }
func (t *Timeslot) ResourceID() uuid.UUID { return t.resourceID }
func (t *Timeslot) StartTime() time.Time  { return t.startTime }
func (t *Timeslot) EndTime() *time.Time   { return t.endTime }
func (t *Timeslot) Capacity() int32       { return t.capacity }

// HasCapacity reports whether one more claim fits given the number of
// admission-holding claims. Only meaningful inside the repository's
// admission transaction; a standalone read-then-write on this value is
// racy by construction.
func (t *Timeslot) HasCapacity(held int64) bool {
	return held < int64(t.capacity)
}

// Remaining is the read-side availability figure: capacity minus
// occupying claims, floored at zero.
func (t *Timeslot) Remaining(occupying int64) int64 {
	remaining := int64(t.capacity) - occupying
	if remaining < 0 {
		return 0
	}
	return remaining
}
