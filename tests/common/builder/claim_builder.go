//go:build unit || e2e

package builder

import (
	"time"

	domclaim "claimflow/internal/domain/claim"
	domresource "claimflow/internal/domain/resource"
	reqdto "claimflow/internal/handler/dto/request"
	"claimflow/internal/usecase/queries"
	"claimflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type ClaimBuilder struct {
	ResourceID       uuid.UUID
	CommunityID      uuid.UUID
	OwnerID          uuid.UUID
	ClaimantID       uuid.UUID
	TimeslotID       *uuid.UUID
	Kind             domresource.Kind
	RequiresApproval bool
	LifecycleStatus  domresource.LifecycleStatus
	Capacity         int32
	StartTime        time.Time
	EndTime          *time.Time
	Status           domclaim.Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewClaimBuilder() *ClaimBuilder {
	now := time.Now()
	end := now.Add(2 * time.Hour)
	return &ClaimBuilder{
		ResourceID:       uuid.New(),
		CommunityID:      uuid.New(),
		OwnerID:          uuid.New(),
		ClaimantID:       uuid.New(),
		Kind:             domresource.KindOffer,
		RequiresApproval: false,
		LifecycleStatus:  domresource.LifecycleOpen,
		Capacity:         1,
		StartTime:        now.Add(time.Hour),
		EndTime:          &end,
		Status:           domclaim.StatusApproved,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *ClaimBuilder) With(mutate func(*ClaimBuilder)) *ClaimBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ClaimBuilder) BuildResource() (*domresource.Resource, error) {
	return domresource.NewResource(b.ResourceID, b.CommunityID, b.OwnerID, b.Kind, b.RequiresApproval, b.LifecycleStatus)
}

func (b *ClaimBuilder) BuildTimeslot() (*domresource.Timeslot, error) {
	id := uuid.New()
	if b.TimeslotID != nil {
		id = *b.TimeslotID
	}
	return domresource.NewTimeslot(id, b.ResourceID, b.StartTime, b.EndTime, b.Capacity)
}

func (b *ClaimBuilder) BuildDomain() (*domclaim.Claim, error) {
	res, err := b.BuildResource()
	if err != nil {
		return nil, err
	}
	var slot *domresource.Timeslot
	if b.TimeslotID != nil {
		slot, err = b.BuildTimeslot()
		if err != nil {
			return nil, err
		}
	}
	return domclaim.NewClaim(res, slot, b.ClaimantID, b.CreatedAt)
}

func (b *ClaimBuilder) BuildCreateRequestDTO() reqdto.CreateClaimRequest {
	return reqdto.CreateClaimRequest{
		ResourceID: b.ResourceID,
		TimeslotID: b.TimeslotID,
	}
}

func (b *ClaimBuilder) BuildUpdateRequestDTO(status domclaim.Status) reqdto.UpdateClaimRequest {
	return reqdto.UpdateClaimRequest{
		Status: status.String(),
	}
}

func (b *ClaimBuilder) BuildView() *queries.ClaimView {
	return &queries.ClaimView{
		ID:         uuid.New(),
		ResourceID: b.ResourceID,
		TimeslotID: b.TimeslotID,
		ClaimantID: b.ClaimantID,
		OwnerID:    b.OwnerID,
		Status:     b.Status.String(),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (b *ClaimBuilder) BuildSnapshot() *shared.ClaimSnapshot {
	return &shared.ClaimSnapshot{
		ID:         uuid.New(),
		ResourceID: b.ResourceID,
		TimeslotID: b.TimeslotID,
		ClaimantID: b.ClaimantID,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (b *ClaimBuilder) BuildResourceSnapshot() *shared.ResourceSnapshot {
	return &shared.ResourceSnapshot{
		ID:               b.ResourceID,
		CommunityID:      b.CommunityID,
		OwnerID:          b.OwnerID,
		Kind:             string(b.Kind),
		RequiresApproval: b.RequiresApproval,
		LifecycleStatus:  string(b.LifecycleStatus),
	}
}

func (b *ClaimBuilder) BuildTimeslotSnapshot() *shared.TimeslotSnapshot {
	id := uuid.New()
	if b.TimeslotID != nil {
		id = *b.TimeslotID
	}
	return &shared.TimeslotSnapshot{
		ID:         id,
		ResourceID: b.ResourceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Capacity:   b.Capacity,
	}
}

// Fluent builder methods
func (b *ClaimBuilder) WithResourceID(id uuid.UUID) *ClaimBuilder {
	b.ResourceID = id
	return b
}

func (b *ClaimBuilder) WithOwnerID(id uuid.UUID) *ClaimBuilder {
	b.OwnerID = id
	return b
}

func (b *ClaimBuilder) WithClaimantID(id uuid.UUID) *ClaimBuilder {
	b.ClaimantID = id
	return b
}

func (b *ClaimBuilder) WithTimeslot() *ClaimBuilder {
	id := uuid.New()
	b.TimeslotID = &id
	return b
}

func (b *ClaimBuilder) WithTimeslotID(id uuid.UUID) *ClaimBuilder {
	b.TimeslotID = &id
	return b
}

func (b *ClaimBuilder) WithCapacity(capacity int32) *ClaimBuilder {
	b.Capacity = capacity
	return b
}

func (b *ClaimBuilder) WithKind(kind domresource.Kind) *ClaimBuilder {
	b.Kind = kind
	return b
}

func (b *ClaimBuilder) WithRequiresApproval() *ClaimBuilder {
	b.RequiresApproval = true
	return b
}

func (b *ClaimBuilder) WithLifecycleStatus(status domresource.LifecycleStatus) *ClaimBuilder {
	b.LifecycleStatus = status
	return b
}

func (b *ClaimBuilder) WithStatus(status domclaim.Status) *ClaimBuilder {
	b.Status = status
	return b
}

func (b *ClaimBuilder) AsSelfClaim() *ClaimBuilder {
	b.ClaimantID = b.OwnerID
	return b
}
