// FILE: internal/entity/travel_plan_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"

	"travelmate-be/internal/pkg/apperror"
)

type TravelStatus string
type TravelApproval string

const (
	TravelStatusUpcoming  TravelStatus = "UPCOMING"
	TravelStatusOngoing   TravelStatus = "ONGOING"
	TravelStatusCompleted TravelStatus = "COMPLETED"
	TravelStatusCancelled TravelStatus = "CANCELLED"

	TravelApprovalPending  TravelApproval = "PENDING"
	TravelApprovalApproved TravelApproval = "APPROVED"
	TravelApprovalRejected TravelApproval = "REJECTED"
)

// Participant is one person on a travel plan's roster. UserId is nil for
// outsiders without accounts; BookingId is nil for the host and for people the
// host added directly before any booking existed.
type Participant struct {
	Id        uuid.UUID
	UserId    *uuid.UUID
	BookingId *uuid.UUID
	Name      string
	Phone     string
	Gender    UserGender
	Age       int
}

type TravelPlan struct {
	Id          uuid.UUID
	HostId      uuid.UUID
	Title       string
	Slug        string
	Description string
	Image       string
	Budget      float64

	DestinationCity    string
	DestinationCountry string

	StartDate time.Time
	EndDate   time.Time

	MaxGuest int
	MinAge   int

	Status     TravelStatus
	IsApproved TravelApproval

	Participants *Roster

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DestinationCount is one row of the popular-destinations aggregation.
type DestinationCount struct {
	City    string
	Country string
	Plans   int64
}

// Roster is the authoritative participant collection of one travel plan,
// keyed by phone number. Phone uniqueness is enforced at the collection
// boundary; capacity and age rules live on the owning TravelPlan.
type Roster struct {
	byPhone map[string]*Participant
	order   []string
}

func NewRoster(participants []Participant) *Roster {
	r := &Roster{byPhone: make(map[string]*Participant)}
	for i := range participants {
		p := participants[i]
		if _, ok := r.byPhone[p.Phone]; ok {
			continue
		}
		r.byPhone[p.Phone] = &p
		r.order = append(r.order, p.Phone)
	}
	return r
}

func (r *Roster) Len() int {
	return len(r.order)
}

func (r *Roster) HasPhone(phone string) bool {
	_, ok := r.byPhone[phone]
	return ok
}

func (r *Roster) Get(phone string) *Participant {
	return r.byPhone[phone]
}

// All returns the participants in insertion order.
func (r *Roster) All() []Participant {
	out := make([]Participant, 0, len(r.order))
	for _, phone := range r.order {
		out = append(out, *r.byPhone[phone])
	}
	return out
}

// ByBooking returns the participants a given booking introduced.
func (r *Roster) ByBooking(bookingId uuid.UUID) []Participant {
	var out []Participant
	for _, phone := range r.order {
		p := r.byPhone[phone]
		if p.BookingId != nil && *p.BookingId == bookingId {
			out = append(out, *p)
		}
	}
	return out
}

// UserIds returns the registered account ids on the roster.
func (r *Roster) UserIds() []uuid.UUID {
	var out []uuid.UUID
	for _, phone := range r.order {
		if p := r.byPhone[phone]; p.UserId != nil {
			out = append(out, *p.UserId)
		}
	}
	return out
}

// Attach inserts a participant, enforcing only phone uniqueness. Callers are
// responsible for capacity and age validation (batched checks produce their
// own error messages).
func (r *Roster) Attach(p Participant) error {
	if r.HasPhone(p.Phone) {
		return apperror.BadRequest("A participant with this phone number already exists")
	}
	cp := p
	r.byPhone[cp.Phone] = &cp
	r.order = append(r.order, cp.Phone)
	return nil
}

func (r *Roster) detach(phone string) {
	delete(r.byPhone, phone)
	for i, ph := range r.order {
		if ph == phone {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

// RemainingSeats reports how many guests can still join.
func (p *TravelPlan) RemainingSeats() int {
	return p.MaxGuest - p.Participants.Len()
}

// AddParticipant is the host-add path: full invariant set for a single
// pre-booking participant.
func (p *TravelPlan) AddParticipant(participant Participant) error {
	if p.Participants.HasPhone(participant.Phone) {
		return apperror.BadRequest("A participant with this phone number already exists")
	}
	if p.Participants.Len() >= p.MaxGuest {
		return apperror.BadRequest("Maximum guest limit (%d) reached", p.MaxGuest)
	}
	if participant.Age < p.MinAge {
		return apperror.BadRequest("Participant age must be at least %d years", p.MinAge)
	}
	return p.Participants.Attach(participant)
}

// RemoveParticipant is the host-remove path. Participants introduced by a
// booking can only leave through that booking, and the host's own record is
// never removable.
func (p *TravelPlan) RemoveParticipant(phone string) (*Participant, error) {
	participant := p.Participants.Get(phone)
	if participant == nil {
		return nil, apperror.NotFound("Participant not found")
	}
	if participant.BookingId != nil {
		return nil, apperror.BadRequest("Cannot remove participant with an active booking. They must cancel their booking first.")
	}
	if participant.UserId != nil && *participant.UserId == p.HostId {
		return nil, apperror.BadRequest("Cannot remove the host from the participant list")
	}
	removed := *participant
	p.Participants.detach(phone)
	return &removed, nil
}

// IsParticipantUser reports whether the given account is on the roster or is
// the host (the host always counts as a participant).
func (p *TravelPlan) IsParticipantUser(userId uuid.UUID) bool {
	if userId == p.HostId {
		return true
	}
	for _, id := range p.Participants.UserIds() {
		if id == userId {
			return true
		}
	}
	return false
}
