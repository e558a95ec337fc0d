// FILE: internal/service/user_service.go
package service

import (
	"context"

	"github.com/google/uuid"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/apperror"
	"travelmate-be/internal/pkg/assets"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetMe(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UploadPhoto(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.UserResponse, error)
	Delete(ctx context.Context, userId uuid.UUID) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	store      assets.AssetStore
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, store assets.AssetStore, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		store:      store,
		logger:     log,
	}
}

func (s *userService) GetMe(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	return s.GetById(ctx, userId)
}

func (s *userService) GetById(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: id}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Gender != nil {
		gender := entity.UserGender(*req.Gender)
		user.Gender = &gender
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UploadPhoto(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	url, err := s.store.Save(filename, data)
	if err != nil {
		return nil, apperror.BadRequest("Failed to store profile photo")
	}

	if user.ProfilePhoto != nil && *user.ProfilePhoto != "" {
		if err := s.store.Delete(*user.ProfilePhoto); err != nil {
			s.logger.Warn("user", "Failed to delete old profile photo", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}

	user.ProfilePhoto = &url
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete soft-deletes the account. The record stays behind so rosters and
// reviews that reference it keep resolving.
func (s *userService) Delete(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.NotDeleted{})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}
	if user.HasActiveSubscription() {
		return apperror.BadRequest("Cannot delete an account with an active subscription")
	}

	hosted, err := uow.TravelPlanRepository().FindAll(ctx,
		specification.ByHostID{HostID: userId},
		specification.NotCancelled{},
	)
	if err != nil {
		return err
	}
	for _, plan := range hosted {
		if plan.Status == entity.TravelStatusUpcoming || plan.Status == entity.TravelStatusOngoing {
			return apperror.BadRequest("Cannot delete an account that is hosting an upcoming or ongoing travel plan")
		}
	}

	active, err := uow.BookingRepository().Count(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByBookingStatus{Status: string(entity.BookingStatusBooked)},
	)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperror.BadRequest("Cannot delete an account with active bookings. Cancel them first.")
	}

	user.IsDeleted = true
	return uow.UserRepository().Update(ctx, user)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		Id:            u.Id,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          string(u.Role),
		Phone:         u.Phone,
		Age:           u.Age,
		AverageRating: u.AverageRating,
		ReviewCount:   u.ReviewCount,
		IsVerified:    u.IsVerified,
		CreatedAt:     u.CreatedAt,
	}
	if u.Gender != nil {
		gender := string(*u.Gender)
		resp.Gender = &gender
	}
	if u.ProfilePhoto != nil {
		resp.ProfilePhoto = *u.ProfilePhoto
	}
	if u.Bio != nil {
		resp.Bio = *u.Bio
	}
	if u.SubscriptionInfo != nil {
		resp.Subscription = &dto.SubscriptionInfoResponse{
			Plan:       string(u.SubscriptionInfo.Plan),
			Status:     string(u.SubscriptionInfo.Status),
			StartDate:  u.SubscriptionInfo.StartDate,
			ExpireDate: u.SubscriptionInfo.ExpireDate,
		}
	}
	return resp
}
