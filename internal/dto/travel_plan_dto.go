package dto

import (
	"time"

	"github.com/google/uuid"
)

type ParticipantPayload struct {
	Name   string `json:"name" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Gender string `json:"gender" validate:"required,oneof=MALE FEMALE"`
	Age    int    `json:"age" validate:"required,gte=1"`
}

type ParticipantResponse struct {
	Id        uuid.UUID  `json:"id"`
	UserId    *uuid.UUID `json:"user_id,omitempty"`
	BookingId *uuid.UUID `json:"booking_id,omitempty"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Gender    string     `json:"gender"`
	Age       int        `json:"age"`
}

type CreateTravelPlanRequest struct {
	Title              string    `json:"title" validate:"required"`
	Description        string    `json:"description"`
	Image              string    `json:"image"`
	Budget             float64   `json:"budget" validate:"gte=0"`
	DestinationCity    string    `json:"destination_city" validate:"required"`
	DestinationCountry string    `json:"destination_country" validate:"required"`
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date" validate:"required"`
	MaxGuest           int       `json:"max_guest" validate:"required,gte=1"`
	MinAge             int       `json:"min_age" validate:"gte=0"`
}

// UpdateTravelPlanRequest uses pointers so absent fields are left untouched.
type UpdateTravelPlanRequest struct {
	Id                 uuid.UUID
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	Image              *string    `json:"image"`
	Budget             *float64   `json:"budget"`
	DestinationCity    *string    `json:"destination_city"`
	DestinationCountry *string    `json:"destination_country"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	MaxGuest           *int       `json:"max_guest"`
	MinAge             *int       `json:"min_age"`
}

type ApproveTravelPlanRequest struct {
	Id       uuid.UUID
	Approval string `json:"approval" validate:"required,oneof=APPROVED REJECTED"`
}

type TravelPlanResponse struct {
	Id                 uuid.UUID             `json:"id"`
	HostId             uuid.UUID             `json:"host_id"`
	Title              string                `json:"title"`
	Slug               string                `json:"slug"`
	Description        string                `json:"description"`
	Image              string                `json:"image"`
	Budget             float64               `json:"budget"`
	DestinationCity    string                `json:"destination_city"`
	DestinationCountry string                `json:"destination_country"`
	StartDate          time.Time             `json:"start_date"`
	EndDate            time.Time             `json:"end_date"`
	MaxGuest           int                   `json:"max_guest"`
	MinAge             int                   `json:"min_age"`
	Status             string                `json:"status"`
	IsApproved         string                `json:"is_approved"`
	RemainingSeats     int                   `json:"remaining_seats"`
	Participants       []ParticipantResponse `json:"participants"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

type PopularDestinationResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Plans   int64  `json:"plans"`
}
