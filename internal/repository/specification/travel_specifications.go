package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByHostID struct {
	HostID uuid.UUID
}

func (s ByHostID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("host_id = ?", s.HostID)
}

type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByApproval struct {
	Approval string
}

func (s ByApproval) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_approved = ?", s.Approval)
}

type NotCancelled struct{}

func (s NotCancelled) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", "CANCELLED")
}

// OverlappingDates matches plans whose [start_date, end_date] range
// intersects the given window (inclusive on both ends).
type OverlappingDates struct {
	Start time.Time
	End   time.Time
}

func (s OverlappingDates) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("start_date <= ? AND end_date >= ?", s.End, s.Start)
}

type ByDestinationCity struct {
	City string
}

func (s ByDestinationCity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("destination_city = ?", s.City)
}
