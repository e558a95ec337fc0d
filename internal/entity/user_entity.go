// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserGender string

const (
	UserRoleUser       UserRole = "USER"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"

	UserGenderMale   UserGender = "MALE"
	UserGenderFemale UserGender = "FEMALE"
)

// SubscriptionInfo is the embedded snapshot stamped onto the user when a
// payment settles. The booking gate reads only this snapshot, never the
// payment tables.
type SubscriptionInfo struct {
	Plan       SubscriptionPlanKind
	Status     SubscriptionStatus
	StartDate  *time.Time
	ExpireDate *time.Time
}

type User struct {
	Id       uuid.UUID
	FullName string
	Email    string
	Role     UserRole

	// Profile fields required before hosting or joining a trip.
	Phone  *string
	Gender *UserGender
	Age    *int

	ProfilePhoto *string
	Bio          *string

	// Denormalized aggregates recomputed by the review service.
	AverageRating float64
	ReviewCount   int

	SubscriptionInfo *SubscriptionInfo

	IsVerified bool
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasActiveSubscription reports whether the embedded snapshot grants a paid
// MONTHLY or YEARLY subscription that is ACTIVE and not past its expire date.
func (u *User) HasActiveSubscription() bool {
	info := u.SubscriptionInfo
	if info == nil {
		return false
	}
	if info.Plan != SubscriptionPlanMonthly && info.Plan != SubscriptionPlanYearly {
		return false
	}
	if info.Status != SubscriptionStatusActive {
		return false
	}
	return info.ExpireDate == nil || info.ExpireDate.After(time.Now())
}

// ProfileComplete reports whether the phone, gender and age fields needed to
// build a participant record are all present.
func (u *User) ProfileComplete() bool {
	return u.Phone != nil && *u.Phone != "" && u.Gender != nil && u.Age != nil
}
