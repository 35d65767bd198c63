package response

import (
	"time"

	"claimflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ClaimResponse struct {
	ID         uuid.UUID  `json:"id"`
	ResourceID uuid.UUID  `json:"resourceId"`
	TimeslotID *uuid.UUID `json:"timeslotId,omitempty"`
	ClaimantID uuid.UUID  `json:"claimantId"`
	OwnerID    uuid.UUID  `json:"ownerId"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type TimeslotAvailabilityResponse struct {
	TimeslotID uuid.UUID  `json:"timeslotId"`
	ResourceID uuid.UUID  `json:"resourceId"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Capacity   int32      `json:"capacity"`
	Occupied   int64      `json:"occupied"`
	Remaining  int64      `json:"remaining"`
}

func FromClaimView(view *queries.ClaimView) *ClaimResponse {
	var resp ClaimResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromClaimViews(views []*queries.ClaimView) []*ClaimResponse {
	resp := make([]*ClaimResponse, len(views))
	for i, view := range views {
		resp[i] = FromClaimView(view)
	}
	return resp
}

func FromAvailabilityView(view *queries.TimeslotAvailabilityView) *TimeslotAvailabilityResponse {
	var resp TimeslotAvailabilityResponse
	_ = copier.Copy(&resp, view)
	return &resp
}
