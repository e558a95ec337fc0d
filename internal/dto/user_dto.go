package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=MALE FEMALE"`
	Age      *int    `json:"age" validate:"omitempty,gte=1"`
	Bio      *string `json:"bio"`
}

type SubscriptionInfoResponse struct {
	Plan       string     `json:"plan"`
	Status     string     `json:"status"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	ExpireDate *time.Time `json:"expire_date,omitempty"`
}

type UserResponse struct {
	Id            uuid.UUID                 `json:"id"`
	FullName      string                    `json:"full_name"`
	Email         string                    `json:"email"`
	Role          string                    `json:"role"`
	Phone         *string                   `json:"phone,omitempty"`
	Gender        *string                   `json:"gender,omitempty"`
	Age           *int                      `json:"age,omitempty"`
	ProfilePhoto  string                    `json:"profile_photo,omitempty"`
	Bio           string                    `json:"bio,omitempty"`
	AverageRating float64                   `json:"average_rating"`
	ReviewCount   int                       `json:"review_count"`
	Subscription  *SubscriptionInfoResponse `json:"subscription,omitempty"`
	IsVerified    bool                      `json:"is_verified"`
	CreatedAt     time.Time                 `json:"created_at"`
}
