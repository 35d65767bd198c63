package claim

import "github.com/google/uuid"

// RoleSet captures which roles an actor holds relative to a claim. An
// actor claiming their own resource holds both (self-coordination is
// permitted).
type RoleSet struct {
	Claimant bool
	Owner    bool
}

func (r RoleSet) Empty() bool {
	return !r.Claimant && !r.Owner
}

// RolesFor derives the actor's roles from the claim's claimant and the
// resource's owner.
func RolesFor(actorID, claimantID, ownerID uuid.UUID) RoleSet {
	return RoleSet{
		Claimant: actorID == claimantID,
		Owner:    actorID == ownerID,
	}
}

// Target statuses each role may ever request. Rejection and approval
// are owner verbs, cancellation is a claimant verb; asking for a status
// outside the actor's vocabulary is an authorization failure even when
// the move would also be illegal for everyone.
var (
	claimantTargets = map[Status]bool{
		StatusCancelled: true,
		StatusGiven:     true,
		StatusReceived:  true,
	}
	ownerTargets = map[Status]bool{
		StatusApproved:  true,
		StatusRejected:  true,
		StatusGiven:     true,
		StatusReceived:  true,
		StatusCompleted: true,
	}
)

// CanCreate decides whether an actor may file a claim against a
// resource. Membership in the resource's community is the only gate;
// owners may claim their own resources.
func CanCreate(isCommunityMember bool) bool {
	return isCommunityMember
}

// CanRequestStatus decides whether any of the actor's roles may ever
// request the target status.
func CanRequestStatus(roles RoleSet, to Status) bool {
	if roles.Claimant && claimantTargets[to] {
		return true
	}
	if roles.Owner && ownerTargets[to] {
		return true
	}
	return false
}

// CanPerform decides whether the actor's roles cover the specific
// from -> to move per the transition table.
func CanPerform(roles RoleSet, from, to Status) bool {
	allowed := TransitionRoles(from, to)
	if roles.Claimant && allowed.Claimant {
		return true
	}
	if roles.Owner && allowed.Owner {
		return true
	}
	return false
}

// CanDelete decides whether the actor may delete a claim. Only the
// claimant may, and only before fulfillment begins; owners transition
// claims, they never delete them.
func CanDelete(roles RoleSet, status Status) bool {
	if !roles.Claimant {
		return false
	}
	return status == StatusPending || status == StatusApproved
}
