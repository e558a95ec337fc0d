package model

import (
	"time"

	"github.com/google/uuid"
)

type TravelPlan struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HostId      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:text"`
	Budget      float64   `gorm:"type:decimal(12,2);default:0"`

	DestinationCity    string `gorm:"type:varchar(255);not null"`
	DestinationCountry string `gorm:"type:varchar(255);not null"`

	StartDate time.Time `gorm:"not null;index"`
	EndDate   time.Time `gorm:"not null;index"`

	MaxGuest int `gorm:"not null"`
	MinAge   int `gorm:"not null;default:18"`

	Status     string `gorm:"type:varchar(50);not null;default:'UPCOMING';index"`
	IsApproved string `gorm:"type:varchar(50);not null;default:'PENDING';index"`

	Participants []*Participant `gorm:"foreignKey:TravelPlanId"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TravelPlan) TableName() string {
	return "travel_plans"
}

// Participant is one roster row of a travel plan. Phone is unique within a
// plan; booking_id is set once a booking introduces the entry.
type Participant struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TravelPlanId uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_plan_phone"`
	UserId       *uuid.UUID `gorm:"type:uuid;index"`
	BookingId    *uuid.UUID `gorm:"type:uuid;index"`
	Name         string     `gorm:"type:varchar(255);not null"`
	Phone        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_plan_phone"`
	Gender       string     `gorm:"type:varchar(10);not null"`
	Age          int        `gorm:"not null"`
}

func (Participant) TableName() string {
	return "participants"
}
