// FILE: internal/service/travel_plan_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/apperror"
	"travelmate-be/internal/pkg/assets"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/availability"
	pkgCache "travelmate-be/pkg/cache"
	"travelmate-be/pkg/events"
	pkgNats "travelmate-be/pkg/nats"
	"travelmate-be/pkg/policy"
	"travelmate-be/pkg/slug"
)

type ITravelPlanService interface {
	Create(ctx context.Context, hostId uuid.UUID, req *dto.CreateTravelPlanRequest) (*dto.TravelPlanResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTravelPlanRequest) (*dto.TravelPlanResponse, error)
	Approve(ctx context.Context, role string, req *dto.ApproveTravelPlanRequest) (*dto.TravelPlanResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TravelPlanResponse, error)
	AddParticipant(ctx context.Context, userId uuid.UUID, planId uuid.UUID, req *dto.ParticipantPayload) (*dto.TravelPlanResponse, error)
	RemoveParticipant(ctx context.Context, userId uuid.UUID, planId uuid.UUID, phone string) (*dto.TravelPlanResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.TravelPlanResponse, error)
	GetBySlug(ctx context.Context, planSlug string) (*dto.TravelPlanResponse, error)
	ListPublic(ctx context.Context) ([]*dto.TravelPlanResponse, error)
	MyPlans(ctx context.Context, hostId uuid.UUID) ([]*dto.TravelPlanResponse, error)
	PopularDestinations(ctx context.Context) ([]*dto.PopularDestinationResponse, error)
}

type travelPlanService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	cache            *pkgCache.Cache
	store            assets.AssetStore
	logger           logger.ILogger
	now              func() time.Time
}

func NewTravelPlanService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	cache *pkgCache.Cache,
	store assets.AssetStore,
	log logger.ILogger,
) ITravelPlanService {
	return &travelPlanService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		cache:            cache,
		store:            store,
		logger:           log,
		now:              time.Now,
	}
}

func (s *travelPlanService) Create(ctx context.Context, hostId uuid.UUID, req *dto.CreateTravelPlanRequest) (*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	planSlug := slug.WithStamp(slug.Make(req.Title), now)
	existing, err := uow.TravelPlanRepository().FindOne(ctx, specification.BySlug{Slug: planSlug})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("A travel plan with this title already exists")
	}

	host, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: hostId}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, apperror.NotFound("Host user not found")
	}
	if !host.ProfileComplete() {
		return nil, apperror.BadRequest("Please complete your profile setup (age, phone and gender required) before creating a travel plan")
	}
	if *host.Age < 18 {
		return nil, apperror.BadRequest("You must be at least 18 years old to create a travel plan")
	}

	minAge := req.MinAge
	if minAge == 0 {
		minAge = 18
	}
	if *host.Age < minAge {
		return nil, apperror.BadRequest("%s must be at least %d years old to book this travel plan.", host.FullName, minAge)
	}

	if req.StartDate.Before(availability.EarliestStart(now)) {
		return nil, apperror.BadRequest("Start date must be at least 7 days from today")
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, apperror.BadRequest("End date must be after start date")
	}

	if err := s.checkScheduleConflicts(ctx, uow, hostId, uuid.Nil, req.StartDate, req.EndDate, false); err != nil {
		return nil, err
	}

	plan := entity.TravelPlan{
		HostId:             hostId,
		Title:              req.Title,
		Slug:               planSlug,
		Description:        req.Description,
		Image:              req.Image,
		Budget:             req.Budget,
		DestinationCity:    req.DestinationCity,
		DestinationCountry: req.DestinationCountry,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		MaxGuest:           req.MaxGuest,
		MinAge:             minAge,
		Status:             entity.TravelStatusUpcoming,
		IsApproved:         entity.TravelApprovalPending,
		Participants:       entity.NewRoster(nil),
	}
	if err := uow.TravelPlanRepository().Create(ctx, &plan); err != nil {
		return nil, err
	}

	// The host is always the first roster entry.
	hostParticipant := entity.Participant{
		Id:     uuid.New(),
		UserId: &host.Id,
		Name:   host.FullName,
		Phone:  *host.Phone,
		Gender: *host.Gender,
		Age:    *host.Age,
	}
	if err := uow.TravelPlanRepository().AddParticipants(ctx, plan.Id, []entity.Participant{hostParticipant}); err != nil {
		return nil, err
	}
	_ = plan.Participants.Attach(hostParticipant)

	s.invalidatePublicCaches(ctx)
	return toTravelPlanResponse(&plan), nil
}

// checkScheduleConflicts enforces one trip per person per date range: the user
// must not host another non-cancelled plan in the window, nor hold a live
// booking on a plan in the window. excludeId skips the plan being rescheduled.
func (s *travelPlanService) checkScheduleConflicts(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, excludeId uuid.UUID, start, end time.Time, hostedOnly bool) error {
	hostedPlans, err := uow.TravelPlanRepository().FindAll(ctx,
		specification.ByHostID{HostID: userId},
		specification.NotCancelled{},
	)
	if err != nil {
		return err
	}
	for _, plan := range hostedPlans {
		if plan.Id == excludeId {
			continue
		}
		if availability.Overlaps(start, end, plan.StartDate, plan.EndDate) {
			if excludeId != uuid.Nil {
				return apperror.BadRequest("Rescheduling conflict: You have another travel plan '%s' during this period.", plan.Title)
			}
			return apperror.BadRequest("You are already hosting a travel plan during this time range: %s", plan.Title)
		}
	}
	if hostedOnly {
		return nil
	}

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByBookingStatus{Status: string(entity.BookingStatusBooked)},
	)
	if err != nil {
		return err
	}
	for _, booking := range bookings {
		plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: booking.TravelId})
		if err != nil {
			return err
		}
		if plan == nil || plan.Status == entity.TravelStatusCancelled {
			continue
		}
		if availability.Overlaps(start, end, plan.StartDate, plan.EndDate) {
			return apperror.BadRequest("You already have a travel plan booked for this time range: %s", plan.Title)
		}
	}
	return nil
}

func (s *travelPlanService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTravelPlanRequest) (*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}
	if !policy.Allowed(policy.ActionPlanUpdate, relationsToPlan(userId, "", plan)...) {
		return nil, apperror.Forbidden("Only the host can update this travel plan")
	}
	if plan.Status != entity.TravelStatusUpcoming {
		return nil, apperror.BadRequest("%s - Travel plan cannot be updated", plan.Status)
	}
	if plan.IsApproved != entity.TravelApprovalPending {
		return nil, apperror.BadRequest("%s - Travel plan cannot be updated", plan.IsApproved)
	}

	if req.Title != nil {
		newSlug := slug.WithStamp(slug.Make(*req.Title), s.now())
		existing, err := uow.TravelPlanRepository().FindOne(ctx, specification.BySlug{Slug: newSlug})
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Id != plan.Id {
			return nil, apperror.Conflict("A travel plan with this title already exists")
		}
		plan.Title = *req.Title
		plan.Slug = newSlug
	}

	if req.Image != nil && plan.Image != "" && *req.Image != plan.Image {
		// Old asset removal is best-effort.
		if err := s.store.Delete(plan.Image); err != nil {
			s.logger.Warn("travel_plan", "Failed to delete replaced plan image", map[string]interface{}{
				"plan_id": plan.Id,
				"error":   err.Error(),
			})
		}
	}

	newStart := plan.StartDate
	newEnd := plan.EndDate
	if req.StartDate != nil {
		newStart = *req.StartDate
		if availability.Midnight(newStart).Before(availability.EarliestStart(s.now())) {
			return nil, apperror.BadRequest("Start date must be at least 7 days from today")
		}
	}
	if req.EndDate != nil {
		newEnd = *req.EndDate
	}
	if newEnd.Before(newStart) {
		return nil, apperror.BadRequest("End date must be after or equal to start date")
	}
	if req.StartDate != nil || req.EndDate != nil {
		if err := s.checkScheduleConflicts(ctx, uow, userId, plan.Id, newStart, newEnd, true); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Image != nil {
		plan.Image = *req.Image
	}
	if req.Budget != nil {
		plan.Budget = *req.Budget
	}
	if req.DestinationCity != nil {
		plan.DestinationCity = *req.DestinationCity
	}
	if req.DestinationCountry != nil {
		plan.DestinationCountry = *req.DestinationCountry
	}
	if req.MaxGuest != nil {
		plan.MaxGuest = *req.MaxGuest
	}
	if req.MinAge != nil {
		plan.MinAge = *req.MinAge
	}
	plan.StartDate = newStart
	plan.EndDate = newEnd

	if err := uow.TravelPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}

	s.invalidatePublicCaches(ctx)
	return toTravelPlanResponse(plan), nil
}

func (s *travelPlanService) Approve(ctx context.Context, role string, req *dto.ApproveTravelPlanRequest) (*dto.TravelPlanResponse, error) {
	if !policy.Allowed(policy.ActionPlanApprove, relationsFromRole(role)...) {
		return nil, apperror.Forbidden("Admin access required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}

	switch entity.TravelApproval(req.Approval) {
	case entity.TravelApprovalRejected:
		plan.IsApproved = entity.TravelApprovalRejected
		plan.Status = entity.TravelStatusCancelled
	case entity.TravelApprovalApproved:
		plan.IsApproved = entity.TravelApprovalApproved
		plan.Status = entity.TravelStatusUpcoming
	}
	if err := uow.TravelPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}

	if plan.IsApproved == entity.TravelApprovalApproved {
		s.publishEvent(ctx, events.TypeTravelPlanApproved, map[string]interface{}{
			"travel_id": plan.Id,
			"host_id":   plan.HostId,
			"title":     plan.Title,
		})
		s.notifyHost(ctx, uow, plan, dto.NotificationPlanApproved)
	}

	s.invalidatePublicCaches(ctx)
	return toTravelPlanResponse(plan), nil
}

func (s *travelPlanService) Cancel(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}
	if !policy.Allowed(policy.ActionPlanCancel, relationsToPlan(userId, "", plan)...) {
		return nil, apperror.Forbidden("Only the host can cancel this travel plan")
	}
	if plan.IsApproved == entity.TravelApprovalApproved {
		return nil, apperror.BadRequest("An approved travel plan cannot be cancelled")
	}
	switch plan.Status {
	case entity.TravelStatusCancelled:
		return nil, apperror.BadRequest("Travel plan is already cancelled")
	case entity.TravelStatusOngoing:
		return nil, apperror.BadRequest("Cannot cancel an ongoing travel plan")
	case entity.TravelStatusCompleted:
		return nil, apperror.BadRequest("Cannot cancel a completed travel plan")
	}

	plan.Status = entity.TravelStatusCancelled
	plan.IsApproved = entity.TravelApprovalRejected
	if err := uow.TravelPlanRepository().Update(ctx, plan); err != nil {
		return nil, err
	}

	// Cascade: every live booking on this plan is cancelled. The roster stays
	// as written for history.
	if _, err := uow.BookingRepository().CancelAllByTravel(ctx, plan.Id); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeTravelPlanCancelled, map[string]interface{}{
		"travel_id": plan.Id,
		"host_id":   plan.HostId,
		"title":     plan.Title,
	})
	s.notifyHost(ctx, uow, plan, dto.NotificationPlanCancelled)

	s.invalidatePublicCaches(ctx)
	return toTravelPlanResponse(plan), nil
}

func (s *travelPlanService) AddParticipant(ctx context.Context, userId uuid.UUID, planId uuid.UUID, req *dto.ParticipantPayload) (*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}
	if !policy.Allowed(policy.ActionPlanAddGuest, relationsToPlan(userId, "", plan)...) {
		return nil, apperror.Forbidden("Only the host can add participants to their travel plan")
	}
	if plan.Status != entity.TravelStatusUpcoming {
		return nil, apperror.BadRequest("Cannot add participants to a non-upcoming travel plan")
	}

	participant := entity.Participant{
		Id:     uuid.New(),
		Name:   req.Name,
		Phone:  req.Phone,
		Gender: entity.UserGender(req.Gender),
		Age:    req.Age,
	}
	if err := plan.AddParticipant(participant); err != nil {
		return nil, err
	}
	if err := uow.TravelPlanRepository().AddParticipants(ctx, plan.Id, []entity.Participant{participant}); err != nil {
		return nil, err
	}

	return toTravelPlanResponse(plan), nil
}

func (s *travelPlanService) RemoveParticipant(ctx context.Context, userId uuid.UUID, planId uuid.UUID, phone string) (*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}
	if !policy.Allowed(policy.ActionPlanRemoveGuest, relationsToPlan(userId, "", plan)...) {
		return nil, apperror.Forbidden("Only the host can remove participants from their travel plan")
	}

	if _, err := plan.RemoveParticipant(phone); err != nil {
		return nil, err
	}
	if err := uow.TravelPlanRepository().RemoveParticipant(ctx, plan.Id, phone); err != nil {
		return nil, err
	}

	return toTravelPlanResponse(plan), nil
}

func (s *travelPlanService) GetById(ctx context.Context, id uuid.UUID) (*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}
	return toTravelPlanResponse(plan), nil
}

func (s *travelPlanService) GetBySlug(ctx context.Context, planSlug string) (*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.BySlug{Slug: planSlug})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}
	return toTravelPlanResponse(plan), nil
}

func (s *travelPlanService) ListPublic(ctx context.Context) ([]*dto.TravelPlanResponse, error) {
	if s.cache != nil {
		var cached []*dto.TravelPlanResponse
		if hit, err := s.cache.GetJSON(ctx, pkgCache.KeyPublicPlans, &cached); err == nil && hit {
			return cached, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.TravelPlanRepository().FindAll(ctx,
		specification.ByApproval{Approval: string(entity.TravelApprovalApproved)},
		specification.ByStatus{Status: string(entity.TravelStatusUpcoming)},
		specification.OrderBy{Field: "start_date"},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TravelPlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, toTravelPlanResponse(plan))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, pkgCache.KeyPublicPlans, out, 5*time.Minute); err != nil {
			s.logger.Warn("travel_plan", "Failed to cache public plans", map[string]interface{}{"error": err.Error()})
		}
	}
	return out, nil
}

func (s *travelPlanService) MyPlans(ctx context.Context, hostId uuid.UUID) ([]*dto.TravelPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.TravelPlanRepository().FindAll(ctx,
		specification.ByHostID{HostID: hostId},
		specification.OrderBy{Field: "start_date"},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TravelPlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, toTravelPlanResponse(plan))
	}
	return out, nil
}

func (s *travelPlanService) PopularDestinations(ctx context.Context) ([]*dto.PopularDestinationResponse, error) {
	if s.cache != nil {
		var cached []*dto.PopularDestinationResponse
		if hit, err := s.cache.GetJSON(ctx, pkgCache.KeyPopularDestinations, &cached); err == nil && hit {
			return cached, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.TravelPlanRepository().PopularDestinations(ctx, 6)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PopularDestinationResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.PopularDestinationResponse{
			City:    row.City,
			Country: row.Country,
			Plans:   row.Plans,
		})
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, pkgCache.KeyPopularDestinations, out, 15*time.Minute); err != nil {
			s.logger.Warn("travel_plan", "Failed to cache popular destinations", map[string]interface{}{"error": err.Error()})
		}
	}
	return out, nil
}

func (s *travelPlanService) invalidatePublicCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, pkgCache.KeyPublicPlans, pkgCache.KeyPopularDestinations); err != nil {
		s.logger.Warn("travel_plan", "Cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *travelPlanService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("travel_plan", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *travelPlanService) notifyHost(ctx context.Context, uow unitofwork.UnitOfWork, plan *entity.TravelPlan, kind string) {
	if s.publisherService == nil {
		return
	}
	host, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: plan.HostId})
	if err != nil || host == nil {
		return
	}
	payload, err := json.Marshal(dto.NotificationMessage{
		Kind:      kind,
		Email:     host.Email,
		Name:      host.FullName,
		PlanTitle: plan.Title,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("travel_plan", "Failed to queue notification", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}

// relationsToPlan computes which policy relations the caller holds on a plan.
func relationsToPlan(userId uuid.UUID, role string, plan *entity.TravelPlan) []policy.Relation {
	rels := relationsFromRole(role)
	if plan.HostId == userId {
		rels = append(rels, policy.RelationHost)
	}
	if plan.IsParticipantUser(userId) {
		rels = append(rels, policy.RelationParticipant)
	}
	return rels
}

func relationsFromRole(role string) []policy.Relation {
	if role == string(entity.UserRoleAdmin) || role == string(entity.UserRoleSuperAdmin) {
		return []policy.Relation{policy.RelationAdmin}
	}
	return nil
}

func toParticipantResponses(participants []entity.Participant) []dto.ParticipantResponse {
	out := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, dto.ParticipantResponse{
			Id:        p.Id,
			UserId:    p.UserId,
			BookingId: p.BookingId,
			Name:      p.Name,
			Phone:     p.Phone,
			Gender:    string(p.Gender),
			Age:       p.Age,
		})
	}
	return out
}

func toTravelPlanResponse(plan *entity.TravelPlan) *dto.TravelPlanResponse {
	return &dto.TravelPlanResponse{
		Id:                 plan.Id,
		HostId:             plan.HostId,
		Title:              plan.Title,
		Slug:               plan.Slug,
		Description:        plan.Description,
		Image:              plan.Image,
		Budget:             plan.Budget,
		DestinationCity:    plan.DestinationCity,
		DestinationCountry: plan.DestinationCountry,
		StartDate:          plan.StartDate,
		EndDate:            plan.EndDate,
		MaxGuest:           plan.MaxGuest,
		MinAge:             plan.MinAge,
		Status:             string(plan.Status),
		IsApproved:         string(plan.IsApproved),
		RemainingSeats:     plan.RemainingSeats(),
		Participants:       toParticipantResponses(plan.Participants.All()),
		CreatedAt:          plan.CreatedAt,
		UpdatedAt:          plan.UpdatedAt,
	}
}
