package model

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReviewerId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_triple"`
	RevieweeId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_triple;index"`
	TravelId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_triple"`
	Rating     int       `gorm:"not null"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}
