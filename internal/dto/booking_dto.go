package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TravelId     uuid.UUID            `json:"travel_id" validate:"required"`
	Amount       float64              `json:"amount" validate:"gte=0"`
	TotalPeople  int                  `json:"total_people" validate:"required,gte=1"`
	Participants []ParticipantPayload `json:"participants" validate:"required,min=1,dive"`
}

type AddBookingParticipantsRequest struct {
	Id           uuid.UUID
	Participants []ParticipantPayload `json:"participants" validate:"required,min=1,dive"`
}

type RemoveBookingParticipantRequest struct {
	Id    uuid.UUID
	Phone string `json:"phone" validate:"required"`
}

type BookingResponse struct {
	Id            uuid.UUID             `json:"id"`
	UserId        uuid.UUID             `json:"user_id"`
	TravelId      uuid.UUID             `json:"travel_id"`
	BookingStatus string                `json:"booking_status"`
	Amount        float64               `json:"amount"`
	TotalPeople   int                   `json:"total_people"`
	Participants  []ParticipantResponse `json:"participants"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}
