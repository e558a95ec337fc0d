package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role     string    `gorm:"type:varchar(50);not null;default:'USER'"`

	Phone  *string `gorm:"type:varchar(50)"`
	Gender *string `gorm:"type:varchar(10)"`
	Age    *int

	ProfilePhoto *string `gorm:"type:text"`
	Bio          *string `gorm:"type:text"`

	AverageRating float64 `gorm:"type:decimal(3,1);default:0"`
	ReviewCount   int     `gorm:"default:0"`

	// Embedded subscription snapshot, not a live join.
	SubscriptionPlan       *string `gorm:"type:varchar(50)"`
	SubscriptionStatus     *string `gorm:"type:varchar(50)"`
	SubscriptionStartDate  *time.Time
	SubscriptionExpireDate *time.Time

	IsVerified bool      `gorm:"default:false"`
	IsDeleted  bool      `gorm:"default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
