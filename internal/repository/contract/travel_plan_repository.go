package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type TravelPlanRepository interface {
	Create(ctx context.Context, plan *entity.TravelPlan) error
	Update(ctx context.Context, plan *entity.TravelPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TravelPlan, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Roster rows are written through dedicated methods so plan saves never
	// clobber participants added concurrently by bookings.
	AddParticipants(ctx context.Context, planId uuid.UUID, participants []entity.Participant) error
	RemoveParticipant(ctx context.Context, planId uuid.UUID, phone string) error
	RemoveParticipantsByBooking(ctx context.Context, planId uuid.UUID, bookingId uuid.UUID) error

	// Sweep transitions. Both are idempotent batch updates that return the
	// number of rows moved.
	MarkOngoing(ctx context.Context, startBefore time.Time, endOnOrAfter time.Time) (int64, error)
	MarkCompleted(ctx context.Context, endBefore time.Time) (int64, error)

	PopularDestinations(ctx context.Context, limit int) ([]entity.DestinationCount, error)
}
