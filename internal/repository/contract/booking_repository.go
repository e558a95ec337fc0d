package contract

import (
	"context"

	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type BookingRepository interface {
	// Create inserts the booking together with its participant rows. The
	// participant rows carry no stamped booking id yet; StampParticipants
	// finishes the two-phase write after the plan roster has been updated.
	Create(ctx context.Context, booking *entity.Booking) error
	Update(ctx context.Context, booking *entity.Booking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	StampParticipants(ctx context.Context, bookingId uuid.UUID) error
	AddParticipants(ctx context.Context, bookingId uuid.UUID, participants []entity.Participant) error
	RemoveParticipant(ctx context.Context, bookingId uuid.UUID, phone string) error
	CancelAllByTravel(ctx context.Context, travelId uuid.UUID) (int64, error)
}
