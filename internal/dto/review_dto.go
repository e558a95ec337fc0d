package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	TravelId   uuid.UUID `json:"travel_id" validate:"required"`
	RevieweeId uuid.UUID `json:"reviewee_id" validate:"required"`
	Rating     int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string    `json:"comment"`
}

type UpdateReviewRequest struct {
	Id      uuid.UUID
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type ReviewResponse struct {
	Id         uuid.UUID `json:"id"`
	ReviewerId uuid.UUID `json:"reviewer_id"`
	RevieweeId uuid.UUID `json:"reviewee_id"`
	TravelId   uuid.UUID `json:"travel_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
