package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByTravelID struct {
	TravelID uuid.UUID
}

func (s ByTravelID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("travel_id = ?", s.TravelID)
}

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByBookingStatus struct {
	Status string
}

func (s ByBookingStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("booking_status = ?", s.Status)
}
