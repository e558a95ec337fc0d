// FILE: internal/service/booking_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/apperror"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/availability"
	"travelmate-be/pkg/events"
	pkgNats "travelmate-be/pkg/nats"
	"travelmate-be/pkg/policy"
)

type IBookingService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.BookingResponse, error)
	AddParticipants(ctx context.Context, userId uuid.UUID, req *dto.AddBookingParticipantsRequest) (*dto.BookingResponse, error)
	RemoveParticipant(ctx context.Context, userId uuid.UUID, req *dto.RemoveBookingParticipantRequest) (*dto.BookingResponse, error)
	GetById(ctx context.Context, userId uuid.UUID, role string, id uuid.UUID) (*dto.BookingResponse, error)
	MyBookings(ctx context.Context, userId uuid.UUID) ([]*dto.BookingResponse, error)
}

type bookingService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	logger           logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *bookingService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if len(req.Participants) == 0 {
		return nil, apperror.BadRequest("At least one participant is required")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	if !user.HasActiveSubscription() {
		return nil, apperror.Forbidden("You need an active subscription to create bookings")
	}

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: req.TravelId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}

	if err := validateNewParticipants(plan, req.Participants, user.FullName); err != nil {
		return nil, err
	}
	if req.TotalPeople != len(req.Participants) {
		return nil, apperror.BadRequest("totalPeople must match the number of participants")
	}

	participants := make([]entity.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		participant := entity.Participant{
			Id:     uuid.New(),
			Name:   p.Name,
			Phone:  p.Phone,
			Gender: entity.UserGender(p.Gender),
			Age:    p.Age,
		}
		// The booker's own entry links back to their account.
		if user.Phone != nil && p.Phone == *user.Phone {
			participant.UserId = &user.Id
		}
		participants = append(participants, participant)
	}

	// Phase 1: insert the booking with unstamped participant rows.
	booking := entity.Booking{
		UserId:        userId,
		TravelId:      plan.Id,
		Participants:  participants,
		BookingStatus: entity.BookingStatusBooked,
		Amount:        req.Amount,
		TotalPeople:   req.TotalPeople,
	}
	if err := uow.BookingRepository().Create(ctx, &booking); err != nil {
		return nil, err
	}

	// Phase 2: push stamped copies onto the plan roster, then patch the
	// booking's own rows. A crash in between leaves the documented
	// inconsistency window; it is not compensated.
	stamped := make([]entity.Participant, len(participants))
	for i, p := range participants {
		p.Id = uuid.New()
		p.BookingId = &booking.Id
		stamped[i] = p
	}
	if err := uow.TravelPlanRepository().AddParticipants(ctx, plan.Id, stamped); err != nil {
		return nil, err
	}
	if err := uow.BookingRepository().StampParticipants(ctx, booking.Id); err != nil {
		return nil, err
	}
	for i := range booking.Participants {
		booking.Participants[i].BookingId = &booking.Id
	}

	s.publishEvent(ctx, events.TypeBookingCreated, map[string]interface{}{
		"booking_id":   booking.Id,
		"travel_id":    plan.Id,
		"user_id":      userId,
		"total_people": booking.TotalPeople,
	})
	s.notifyUser(ctx, user, plan.Title, booking.TotalPeople, dto.NotificationBookingConfirmed)

	return toBookingResponse(&booking), nil
}

// validateNewParticipants runs the shared age/seat/duplicate checks for a
// batch joining the plan. excludeName tolerates the booking user booking a
// seat under their own roster entry.
func validateNewParticipants(plan *entity.TravelPlan, batch []dto.ParticipantPayload, excludeName string) error {
	for _, p := range batch {
		if !availability.MeetsMinAge(p.Age, plan.MinAge) {
			return apperror.BadRequest("All participants must be at least %d years old", plan.MinAge)
		}
	}

	seats := plan.RemainingSeats()
	if len(batch) > seats {
		return apperror.BadRequest("Not enough seats available. Only %d seats remaining.", seats)
	}

	phones := make([]string, 0, len(batch))
	for _, p := range batch {
		phones = append(phones, p.Phone)
	}
	if dups := availability.DuplicatePhones(phones); len(dups) > 0 {
		return apperror.BadRequest("Duplicate phone numbers in participants list")
	}

	var conflicts []string
	for _, p := range batch {
		if p.Name == excludeName {
			continue
		}
		if plan.Participants.HasPhone(p.Phone) {
			conflicts = append(conflicts, p.Phone)
		}
	}
	if len(conflicts) > 0 {
		return apperror.BadRequest("Participant(s) with phone %s already registered for this travel plan", strings.Join(conflicts, ", "))
	}
	return nil
}

func (s *bookingService) Cancel(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found")
	}
	if !policy.Allowed(policy.ActionBookingCancel, relationsToBooking(userId, "", booking)...) {
		return nil, apperror.Forbidden("You are not authorized to cancel this booking")
	}
	if booking.BookingStatus == entity.BookingStatusCancelled {
		return nil, apperror.BadRequest("Booking is already cancelled")
	}

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: booking.TravelId})
	if err != nil {
		return nil, err
	}

	if plan != nil && plan.HostId == userId {
		// Host branch: the whole plan comes down, and every booking on it.
		plan.Status = entity.TravelStatusCancelled
		if err := uow.TravelPlanRepository().Update(ctx, plan); err != nil {
			return nil, err
		}
		if _, err := uow.BookingRepository().CancelAllByTravel(ctx, plan.Id); err != nil {
			return nil, err
		}
		booking.BookingStatus = entity.BookingStatusCancelled
	} else {
		// Non-host branch: pull only this booking's roster entries.
		if plan != nil {
			if err := uow.TravelPlanRepository().RemoveParticipantsByBooking(ctx, plan.Id, booking.Id); err != nil {
				return nil, err
			}
		}
		booking.BookingStatus = entity.BookingStatusCancelled
		if err := uow.BookingRepository().Update(ctx, booking); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, events.TypeBookingCancelled, map[string]interface{}{
		"booking_id": booking.Id,
		"travel_id":  booking.TravelId,
		"user_id":    userId,
	})

	return toBookingResponse(booking), nil
}

func (s *bookingService) AddParticipants(ctx context.Context, userId uuid.UUID, req *dto.AddBookingParticipantsRequest) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found")
	}
	if !policy.Allowed(policy.ActionBookingAddPeople, relationsToBooking(userId, "", booking)...) {
		return nil, apperror.Forbidden("You are not authorized to modify this booking")
	}
	if booking.BookingStatus == entity.BookingStatusCancelled {
		return nil, apperror.BadRequest("Cannot add participants to a cancelled booking")
	}

	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: booking.TravelId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.NotFound("Travel plan not found")
	}

	if err := validateNewParticipants(plan, req.Participants, ""); err != nil {
		return nil, err
	}

	stamped := make([]entity.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		stamped = append(stamped, entity.Participant{
			Id:        uuid.New(),
			BookingId: &booking.Id,
			Name:      p.Name,
			Phone:     p.Phone,
			Gender:    entity.UserGender(p.Gender),
			Age:       p.Age,
		})
	}

	if err := uow.BookingRepository().AddParticipants(ctx, booking.Id, stamped); err != nil {
		return nil, err
	}
	rosterCopies := make([]entity.Participant, len(stamped))
	for i, p := range stamped {
		p.Id = uuid.New()
		rosterCopies[i] = p
	}
	if err := uow.TravelPlanRepository().AddParticipants(ctx, plan.Id, rosterCopies); err != nil {
		return nil, err
	}

	booking.Participants = append(booking.Participants, stamped...)
	booking.TotalPeople += len(stamped)
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	return toBookingResponse(booking), nil
}

func (s *bookingService) RemoveParticipant(ctx context.Context, userId uuid.UUID, req *dto.RemoveBookingParticipantRequest) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found")
	}
	if !policy.Allowed(policy.ActionBookingDropPerson, relationsToBooking(userId, "", booking)...) {
		return nil, apperror.Forbidden("You are not authorized to modify this booking")
	}
	if booking.BookingStatus == entity.BookingStatusCancelled {
		return nil, apperror.BadRequest("Cannot remove participants from a cancelled booking")
	}

	participant := booking.FindParticipant(req.Phone)
	if participant == nil {
		return nil, apperror.NotFound("Participant not found in this booking")
	}
	if len(booking.Participants) <= 1 {
		return nil, apperror.BadRequest("Cannot remove the last participant. Cancel the booking instead.")
	}

	if err := uow.BookingRepository().RemoveParticipant(ctx, booking.Id, req.Phone); err != nil {
		return nil, err
	}
	// Roster match is by phone and booking id so a same-phone entry from a
	// different booking is never touched.
	plan, err := uow.TravelPlanRepository().FindOne(ctx, specification.ByID{ID: booking.TravelId})
	if err != nil {
		return nil, err
	}
	if plan != nil {
		if rosterEntry := plan.Participants.Get(req.Phone); rosterEntry != nil &&
			rosterEntry.BookingId != nil && *rosterEntry.BookingId == booking.Id {
			if err := uow.TravelPlanRepository().RemoveParticipant(ctx, plan.Id, req.Phone); err != nil {
				return nil, err
			}
		}
	}

	kept := booking.Participants[:0]
	for _, p := range booking.Participants {
		if p.Phone != req.Phone {
			kept = append(kept, p)
		}
	}
	booking.Participants = kept
	booking.TotalPeople--
	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	return toBookingResponse(booking), nil
}

func (s *bookingService) GetById(ctx context.Context, userId uuid.UUID, role string, id uuid.UUID) (*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found")
	}
	if !policy.Allowed(policy.ActionBookingRead, relationsToBooking(userId, role, booking)...) {
		return nil, apperror.Forbidden("You are not authorized to view this booking")
	}
	return toBookingResponse(booking), nil
}

func (s *bookingService) MyBookings(ctx context.Context, userId uuid.UUID) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out, nil
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("booking", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *bookingService) notifyUser(ctx context.Context, user *entity.User, planTitle string, totalPeople int, kind string) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.NotificationMessage{
		Kind:        kind,
		Email:       user.Email,
		Name:        user.FullName,
		PlanTitle:   planTitle,
		TotalPeople: totalPeople,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("booking", "Failed to queue notification", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
	}
}

func relationsToBooking(userId uuid.UUID, role string, booking *entity.Booking) []policy.Relation {
	rels := relationsFromRole(role)
	if booking.UserId == userId {
		rels = append(rels, policy.RelationOwner)
	}
	return rels
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		Id:            b.Id,
		UserId:        b.UserId,
		TravelId:      b.TravelId,
		BookingStatus: string(b.BookingStatus),
		Amount:        b.Amount,
		TotalPeople:   b.TotalPeople,
		Participants:  toParticipantResponses(b.Participants),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
