package mapper

import (
	"travelmate-be/internal/entity"
	"travelmate-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &entity.SubscriptionPlan{
		Id:           p.Id,
		Name:         p.Name,
		Kind:         entity.SubscriptionPlanKind(p.Kind),
		Price:        p.Price,
		DurationDays: p.DurationDays,
		IsActive:     p.IsActive,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}
	return &model.SubscriptionPlan{
		Id:           p.Id,
		Name:         p.Name,
		Kind:         string(p.Kind),
		Price:        p.Price,
		DurationDays: p.DurationDays,
		IsActive:     p.IsActive,
	}
}

func (m *SubscriptionMapper) PaymentToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:            p.Id,
		UserId:        p.UserId,
		PlanId:        p.PlanId,
		OrderId:       p.OrderId,
		Amount:        p.Amount,
		Status:        entity.PaymentStatus(p.Status),
		TransactionId: p.TransactionId,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) PaymentToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:            p.Id,
		UserId:        p.UserId,
		PlanId:        p.PlanId,
		OrderId:       p.OrderId,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionId: p.TransactionId,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
