package claim

// Status is the lifecycle state of a claim.
//
// pending   - awaiting the resource owner's decision
// approved  - admitted; occupies timeslot capacity
// rejected  - owner declined (terminal)
// given     - owner handed the resource over (offer fulfillment)
// received  - claimant handed the resource over (request fulfillment)
// completed - counterparty confirmed fulfillment (terminal)
// cancelled - claimant withdrew (terminal)
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusGiven     Status = "given"
	StatusReceived  Status = "received"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusGiven,
		StatusReceived, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Occupies reports whether a claim in this status counts against a
// timeslot's configured capacity.
func (s Status) Occupies() bool {
	switch s {
	case StatusApproved, StatusGiven, StatusReceived, StatusCompleted:
		return true
	default:
		return false
	}
}

// ReservesAdmission reports whether a claim in this status holds its
// admission slot. A pending claim reserves capacity up front so that a
// later approval can never push an already-full timeslot over its
// ceiling; only cancelled and rejected claims release the slot.
func (s Status) ReservesAdmission() bool {
	switch s {
	case StatusCancelled, StatusRejected:
		return false
	default:
		return s.IsValid()
	}
}

// BlocksDuplicate reports whether a claim in this status blocks the
// same claimant from filing another claim for the same
// (resource, timeslot) tuple.
func (s Status) BlocksDuplicate() bool {
	return s.IsValid() && s != StatusCancelled
}

// InitialStatus derives the status a freshly created claim starts in.
// Resources gated by approval start pending; low-friction resources
// skip the approval step entirely.
func InitialStatus(requiresApproval bool) Status {
	if requiresApproval {
		return StatusPending
	}
	return StatusApproved
}

type transition struct {
	from Status
	to   Status
}

var transitions = map[transition]RoleSet{
	{StatusPending, StatusApproved}:   {Owner: true},
	{StatusPending, StatusRejected}:   {Owner: true},
	{StatusPending, StatusCancelled}:  {Claimant: true},
	{StatusApproved, StatusCancelled}: {Claimant: true},
	{StatusApproved, StatusGiven}:     {Claimant: true, Owner: true},
	{StatusApproved, StatusReceived}:  {Claimant: true, Owner: true},
	{StatusGiven, StatusCompleted}:    {Owner: true},
	{StatusReceived, StatusCompleted}: {Owner: true},
}

// CanTransition reports whether from -> to is a legal move for any
// role. No-op transitions and moves out of a terminal status are not.
func CanTransition(from, to Status) bool {
	_, ok := transitions[transition{from, to}]
	return ok
}

// TransitionRoles returns the roles permitted to perform from -> to.
// The zero RoleSet is returned for illegal transitions.
func TransitionRoles(from, to Status) RoleSet {
	return transitions[transition{from, to}]
}
