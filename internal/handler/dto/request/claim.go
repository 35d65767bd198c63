package request

import (
	"github.com/google/uuid"
)

type CreateClaimRequest struct {
	ResourceID uuid.UUID  `json:"resourceId" binding:"required"`
	TimeslotID *uuid.UUID `json:"timeslotId,omitempty"`
}

type UpdateClaimRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListClaimsQuery carries the optional read filters; reads are public
// and unauthenticated.
type ListClaimsQuery struct {
	ClaimantID      *uuid.UUID `form:"claimantId"`
	ResourceID      *uuid.UUID `form:"resourceId"`
	TimeslotID      *uuid.UUID `form:"timeslotId"`
	ResourceOwnerID *uuid.UUID `form:"resourceOwnerId"`
	Limit           int32      `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset          int32      `form:"offset,default=0" binding:"omitempty,min=0"`
}
