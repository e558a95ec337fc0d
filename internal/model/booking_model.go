package model

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	TravelId      uuid.UUID `gorm:"type:uuid;not null;index"`
	BookingStatus string    `gorm:"type:varchar(50);not null;default:'BOOKED'"`
	Amount        float64   `gorm:"type:decimal(12,2);not null"`
	TotalPeople   int       `gorm:"not null"`

	Participants []*BookingParticipant `gorm:"foreignKey:BookingId"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingParticipant duplicates the roster entries this booking introduced.
type BookingParticipant struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingId uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId    *uuid.UUID `gorm:"type:uuid"`
	Name      string     `gorm:"type:varchar(255);not null"`
	Phone     string     `gorm:"type:varchar(50);not null"`
	Gender    string     `gorm:"type:varchar(10);not null"`
	Age       int        `gorm:"not null"`
	// Stamped after insert; nil only inside the two-phase creation window.
	StampedBookingId *uuid.UUID `gorm:"type:uuid"`
}

func (BookingParticipant) TableName() string {
	return "booking_participants"
}
