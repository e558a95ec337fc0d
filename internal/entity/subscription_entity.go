// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlanKind string
type SubscriptionStatus string
type PaymentStatus string

const (
	SubscriptionPlanMonthly SubscriptionPlanKind = "MONTHLY"
	SubscriptionPlanYearly  SubscriptionPlanKind = "YEARLY"

	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"

	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// SubscriptionPlan is a catalog entry (MONTHLY / YEARLY).
type SubscriptionPlan struct {
	Id           uuid.UUID
	Name         string
	Kind         SubscriptionPlanKind
	Price        float64
	DurationDays int
	IsActive     bool
}

// Payment is a gateway transaction record tied to a plan purchase.
type Payment struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	PlanId        uuid.UUID
	OrderId       string
	Amount        float64
	Status        PaymentStatus
	TransactionId *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
