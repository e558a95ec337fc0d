// Package policy is the authorization table: which relationship to a resource
// each operation requires. Services compute the caller's relationships and ask
// the table; they never hand-roll role checks inline.
package policy

type Relation string

const (
	RelationAdmin       Relation = "ADMIN"
	RelationHost        Relation = "HOST"
	RelationOwner       Relation = "OWNER"
	RelationParticipant Relation = "PARTICIPANT"
	RelationAnyone      Relation = "ANYONE"
)

type Action string

const (
	ActionPlanUpdate        Action = "plan.update"
	ActionPlanCancel        Action = "plan.cancel"
	ActionPlanApprove       Action = "plan.approve"
	ActionPlanAddGuest      Action = "plan.add_guest"
	ActionPlanRemoveGuest   Action = "plan.remove_guest"
	ActionBookingRead       Action = "booking.read"
	ActionBookingCancel     Action = "booking.cancel"
	ActionBookingAddPeople  Action = "booking.add_people"
	ActionBookingDropPerson Action = "booking.drop_person"
	ActionReviewWrite       Action = "review.write"
)

var table = map[Action][]Relation{
	ActionPlanUpdate:        {RelationHost},
	ActionPlanCancel:        {RelationHost},
	ActionPlanApprove:       {RelationAdmin},
	ActionPlanAddGuest:      {RelationHost},
	ActionPlanRemoveGuest:   {RelationHost},
	ActionBookingRead:       {RelationOwner, RelationAdmin},
	ActionBookingCancel:     {RelationOwner},
	ActionBookingAddPeople:  {RelationOwner},
	ActionBookingDropPerson: {RelationOwner},
	ActionReviewWrite:       {RelationParticipant},
}

// Allowed reports whether any of the caller's relations satisfies the action.
func Allowed(action Action, relations ...Relation) bool {
	accepted, ok := table[action]
	if !ok {
		return false
	}
	for _, have := range relations {
		for _, want := range accepted {
			if have == want {
				return true
			}
		}
	}
	return false
}
