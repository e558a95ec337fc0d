// FILE: internal/entity/booking_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "BOOKED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking attaches one or more participants to a travel plan. Its own
// Participants sublist duplicates the roster entries this booking introduced;
// TotalPeople must equal len(Participants) at all times.
type Booking struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	TravelId      uuid.UUID
	Participants  []Participant
	BookingStatus BookingStatus
	Amount        float64
	TotalPeople   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b *Booking) FindParticipant(phone string) *Participant {
	for i := range b.Participants {
		if b.Participants[i].Phone == phone {
			return &b.Participants[i]
		}
	}
	return nil
}
