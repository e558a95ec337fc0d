package mapper

import (
	"travelmate-be/internal/entity"
	"travelmate-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	var gender *entity.UserGender
	if u.Gender != nil {
		g := entity.UserGender(*u.Gender)
		gender = &g
	}
	var sub *entity.SubscriptionInfo
	if u.SubscriptionPlan != nil && u.SubscriptionStatus != nil {
		sub = &entity.SubscriptionInfo{
			Plan:       entity.SubscriptionPlanKind(*u.SubscriptionPlan),
			Status:     entity.SubscriptionStatus(*u.SubscriptionStatus),
			StartDate:  u.SubscriptionStartDate,
			ExpireDate: u.SubscriptionExpireDate,
		}
	}
	return &entity.User{
		Id:               u.Id,
		FullName:         u.FullName,
		Email:            u.Email,
		Role:             entity.UserRole(u.Role),
		Phone:            u.Phone,
		Gender:           gender,
		Age:              u.Age,
		ProfilePhoto:     u.ProfilePhoto,
		Bio:              u.Bio,
		AverageRating:    u.AverageRating,
		ReviewCount:      u.ReviewCount,
		SubscriptionInfo: sub,
		IsVerified:       u.IsVerified,
		IsDeleted:        u.IsDeleted,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	var gender *string
	if u.Gender != nil {
		g := string(*u.Gender)
		gender = &g
	}
	out := &model.User{
		Id:            u.Id,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          string(u.Role),
		Phone:         u.Phone,
		Gender:        gender,
		Age:           u.Age,
		ProfilePhoto:  u.ProfilePhoto,
		Bio:           u.Bio,
		AverageRating: u.AverageRating,
		ReviewCount:   u.ReviewCount,
		IsVerified:    u.IsVerified,
		IsDeleted:     u.IsDeleted,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.SubscriptionInfo != nil {
		plan := string(u.SubscriptionInfo.Plan)
		status := string(u.SubscriptionInfo.Status)
		out.SubscriptionPlan = &plan
		out.SubscriptionStatus = &status
		out.SubscriptionStartDate = u.SubscriptionInfo.StartDate
		out.SubscriptionExpireDate = u.SubscriptionInfo.ExpireDate
	}
	return out
}
