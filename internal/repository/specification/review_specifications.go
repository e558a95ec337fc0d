package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByReviewerID struct {
	ReviewerID uuid.UUID
}

func (s ByReviewerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("reviewer_id = ?", s.ReviewerID)
}

type ByRevieweeID struct {
	RevieweeID uuid.UUID
}

func (s ByRevieweeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("reviewee_id = ?", s.RevieweeID)
}
