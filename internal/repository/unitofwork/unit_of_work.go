package unitofwork

import (
	"context"

	"travelmate-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TravelPlanRepository() contract.TravelPlanRepository
	BookingRepository() contract.BookingRepository
	ReviewRepository() contract.ReviewRepository
	SubscriptionRepository() contract.SubscriptionRepository
}
