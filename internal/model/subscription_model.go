package model

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Kind         string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Price        float64   `gorm:"type:decimal(10,2);not null"`
	DurationDays int       `gorm:"not null"`
	IsActive     bool      `gorm:"default:true"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type Payment struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId        uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderId       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Amount        float64   `gorm:"type:decimal(10,2);not null"`
	Status        string    `gorm:"type:varchar(50);not null;default:'PENDING'"`
	TransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
