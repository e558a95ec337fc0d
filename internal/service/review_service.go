// FILE: internal/service/review_service.go
package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/apperror"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/policy"
)

type IReviewService interface {
	Create(ctx context.Context, reviewerId uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Update(ctx context.Context, reviewerId uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, reviewerId uuid.UUID, reviewId uuid.UUID) (*dto.ReviewResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error)
	Given(ctx context.Context, userId uuid.UUID) ([]*dto.ReviewResponse, error)
	Received(ctx context.Context, userId uuid.UUID) ([]*dto.ReviewResponse, error)
	ForUser(ctx context.Context, userId uuid.UUID) ([]*dto.ReviewResponse, error)
}

type reviewService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewReviewService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IReviewService {
	return &reviewService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *reviewService) Create(ctx context.Context, reviewerId uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if reviewerId == req.RevieweeId {
		return nil, apperror.BadRequest("You cannot review yourself")
	}

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: req.TravelId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}
	if plan.Status != entity.TravelStatusCompleted {
		return nil, apperror.BadRequest("You can only review after the trip is completed")
	}

	if !policy.Allowed(policy.ActionReviewWrite, relationsToPlan(reviewerId, "", plan)...) {
		return nil, apperror.Forbidden("You were not a participant of this trip")
	}
	if !plan.IsParticipantUser(req.RevieweeId) {
		return nil, apperror.BadRequest("The user you are reviewing was not part of this trip")
	}

	existing, err := uow.ReviewRepository().FindOne(ctx,
		specification.ByReviewerID{ReviewerID: reviewerId},
		specification.ByRevieweeID{RevieweeID: req.RevieweeId},
		specification.ByTravelID{TravelID: req.TravelId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.BadRequest("You have already reviewed this user for this trip")
	}

	review := entity.Review{
		ReviewerId: reviewerId,
		RevieweeId: req.RevieweeId,
		TravelId:   req.TravelId,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := uow.ReviewRepository().Create(ctx, &review); err != nil {
		return nil, err
	}

	if err := s.recomputeReviewee(ctx, uow, req.RevieweeId); err != nil {
		return nil, err
	}

	return toReviewResponse(&review), nil
}

func (s *reviewService) Update(ctx context.Context, reviewerId uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	review, err := uow.ReviewRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperror.NotFound("Review not found")
	}
	if review.ReviewerId != reviewerId {
		return nil, apperror.Forbidden("You are not authorized to update this review")
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := uow.ReviewRepository().Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.recomputeReviewee(ctx, uow, review.RevieweeId); err != nil {
		return nil, err
	}

	return toReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, reviewerId uuid.UUID, reviewId uuid.UUID) (*dto.ReviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	review, err := uow.ReviewRepository().FindOne(ctx, specification.ByID{ID: reviewId})
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperror.NotFound("Review not found")
	}
	if review.ReviewerId != reviewerId {
		return nil, apperror.Forbidden("You are not authorized to delete this review")
	}

	if err := uow.ReviewRepository().Delete(ctx, reviewId); err != nil {
		return nil, err
	}

	if err := s.recomputeReviewee(ctx, uow, review.RevieweeId); err != nil {
		return nil, err
	}

	return toReviewResponse(review), nil
}

func (s *reviewService) GetById(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	review, err := uow.ReviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperror.NotFound("Review not found")
	}
	return toReviewResponse(review), nil
}

func (s *reviewService) Given(ctx context.Context, userId uuid.UUID) ([]*dto.ReviewResponse, error) {
	return s.list(ctx, specification.ByReviewerID{ReviewerID: userId})
}

func (s *reviewService) Received(ctx context.Context, userId uuid.UUID) ([]*dto.ReviewResponse, error) {
	return s.list(ctx, specification.ByRevieweeID{RevieweeID: userId})
}

// ForUser is the public profile view of the reviews a user has received.
func (s *reviewService) ForUser(ctx context.Context, userId uuid.UUID) ([]*dto.ReviewResponse, error) {
	return s.list(ctx, specification.ByRevieweeID{RevieweeID: userId})
}

func (s *reviewService) list(ctx context.Context, spec specification.Specification) ([]*dto.ReviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reviews, err := uow.ReviewRepository().FindAll(ctx,
		spec,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out, nil
}

// recomputeReviewee refreshes the denormalized rating aggregates on the
// reviewee after every review mutation. The average is rounded to one decimal
// place; a user with no remaining reviews resets to zero.
func (s *reviewService) recomputeReviewee(ctx context.Context, uow unitofwork.UnitOfWork, revieweeId uuid.UUID) error {
	avg, total, err := uow.ReviewRepository().RatingSummary(ctx, revieweeId)
	if err != nil {
		return err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: revieweeId})
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if total > 0 {
		user.AverageRating = math.Round(avg*10) / 10
		user.ReviewCount = int(total)
	} else {
		user.AverageRating = 0
		user.ReviewCount = 0
	}
	return uow.UserRepository().Update(ctx, user)
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		Id:         r.Id,
		ReviewerId: r.ReviewerId,
		RevieweeId: r.RevieweeId,
		TravelId:   r.TravelId,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
