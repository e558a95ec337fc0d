package contract

import (
	"context"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	FindPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)
	FindPlanOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)

	CreatePayment(ctx context.Context, payment *entity.Payment) error
	UpdatePayment(ctx context.Context, payment *entity.Payment) error
	FindPaymentOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
}
