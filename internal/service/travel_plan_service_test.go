package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func newTestTravelPlanService(uow *fakeUow) (*travelPlanService, *capturePublisher) {
	pub := &capturePublisher{}
	svc := NewTravelPlanService(&fakeFactory{uow: uow}, pub, nil, nil, &fakeAssetStore{}, nopLogger{}).(*travelPlanService)
	return svc, pub
}

func seedHost(uow *fakeUow, age int) *entity.User {
	gender := entity.UserGenderMale
	host := &entity.User{
		Id:       uuid.New(),
		FullName: "Andi Pratama",
		Email:    "andi@example.com",
		Role:     entity.UserRoleUser,
		Phone:    strPtr("0811111111"),
		Gender:   &gender,
		Age:      &age,
	}
	uow.users.users[host.Id] = host
	return host
}

func seedPlan(uow *fakeUow, host *entity.User, start, end time.Time) *entity.TravelPlan {
	plan := &entity.TravelPlan{
		Id:                 uuid.New(),
		HostId:             host.Id,
		Title:              "Bromo Sunrise Trip",
		Slug:               "bromo-sunrise-trip-x1",
		DestinationCity:    "Malang",
		DestinationCountry: "Indonesia",
		StartDate:          start,
		EndDate:            end,
		MaxGuest:           10,
		MinAge:             18,
		Status:             entity.TravelStatusUpcoming,
		IsApproved:         entity.TravelApprovalPending,
		Participants: entity.NewRoster([]entity.Participant{{
			Id:     uuid.New(),
			UserId: &host.Id,
			Name:   host.FullName,
			Phone:  *host.Phone,
			Gender: *host.Gender,
			Age:    *host.Age,
		}}),
	}
	uow.plans.plans[plan.Id] = plan
	return plan
}

func baseCreateRequest(now time.Time) *dto.CreateTravelPlanRequest {
	return &dto.CreateTravelPlanRequest{
		Title:              "Dieng Culture Festival",
		DestinationCity:    "Wonosobo",
		DestinationCountry: "Indonesia",
		StartDate:          now.AddDate(0, 0, 10),
		EndDate:            now.AddDate(0, 0, 12),
		MaxGuest:           8,
	}
}

func TestCreateTravelPlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success with host as first participant", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		res, err := svc.Create(context.Background(), host.Id, baseCreateRequest(now))

		require.NoError(t, err)
		assert.Equal(t, "UPCOMING", res.Status)
		assert.Equal(t, "PENDING", res.IsApproved)
		assert.Equal(t, 18, res.MinAge) // defaulted
		require.Len(t, res.Participants, 1)
		assert.Equal(t, host.FullName, res.Participants[0].Name)
		assert.Equal(t, 7, res.RemainingSeats)
	})

	t.Run("start date inside seven day window", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		req := baseCreateRequest(now)
		req.StartDate = now.AddDate(0, 0, 6)
		req.EndDate = now.AddDate(0, 0, 8)

		_, err := svc.Create(context.Background(), host.Id, req)
		require.Error(t, err)
		assert.Equal(t, "Start date must be at least 7 days from today", err.Error())
	})

	t.Run("incomplete profile rejected", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		host.Phone = nil
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		_, err := svc.Create(context.Background(), host.Id, baseCreateRequest(now))
		require.Error(t, err)
		assert.Equal(t, "Please complete your profile setup (age, phone and gender required) before creating a travel plan", err.Error())
	})

	t.Run("host younger than plan min age", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 20)
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		req := baseCreateRequest(now)
		req.MinAge = 25

		_, err := svc.Create(context.Background(), host.Id, req)
		require.Error(t, err)
		assert.Equal(t, "Andi Pratama must be at least 25 years old to book this travel plan.", err.Error())
	})

	t.Run("end date before start date", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		req := baseCreateRequest(now)
		req.EndDate = req.StartDate.AddDate(0, 0, -1)

		_, err := svc.Create(context.Background(), host.Id, req)
		require.Error(t, err)
		assert.Equal(t, "End date must be after start date", err.Error())
	})

	t.Run("overlapping hosted plan rejected", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		seedPlan(uow, host, now.AddDate(0, 0, 9), now.AddDate(0, 0, 11))
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		_, err := svc.Create(context.Background(), host.Id, baseCreateRequest(now))
		require.Error(t, err)
		assert.Equal(t, "You are already hosting a travel plan during this time range: Bromo Sunrise Trip", err.Error())
	})

	t.Run("overlapping booked plan rejected", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		other := seedHost(uow, 30)
		plan := seedPlan(uow, other, now.AddDate(0, 0, 9), now.AddDate(0, 0, 11))
		uow.bookings.bookings[uuid.New()] = &entity.Booking{
			Id:            uuid.New(),
			UserId:        host.Id,
			TravelId:      plan.Id,
			BookingStatus: entity.BookingStatusBooked,
		}
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		_, err := svc.Create(context.Background(), host.Id, baseCreateRequest(now))
		require.Error(t, err)
		assert.Equal(t, "You already have a travel plan booked for this time range: Bromo Sunrise Trip", err.Error())
	})
}

func TestUpdateTravelPlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("only upcoming pending plans can change", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		plan.IsApproved = entity.TravelApprovalApproved
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		_, err := svc.Update(context.Background(), host.Id, &dto.UpdateTravelPlanRequest{
			Id:          plan.Id,
			Description: strPtr("new description"),
		})
		require.Error(t, err)
		assert.Equal(t, "APPROVED - Travel plan cannot be updated", err.Error())
	})

	t.Run("non host forbidden", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		stranger := seedHost(uow, 30)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		_, err := svc.Update(context.Background(), stranger.Id, &dto.UpdateTravelPlanRequest{
			Id:          plan.Id,
			Description: strPtr("hijack"),
		})
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("reschedule conflict names the clashing plan", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		other := seedPlan(uow, host, now.AddDate(0, 0, 20), now.AddDate(0, 0, 22))
		other.Title = "Karimunjawa Escape"
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		newStart := now.AddDate(0, 0, 21)
		newEnd := now.AddDate(0, 0, 23)
		_, err := svc.Update(context.Background(), host.Id, &dto.UpdateTravelPlanRequest{
			Id:        plan.Id,
			StartDate: &newStart,
			EndDate:   &newEnd,
		})
		require.Error(t, err)
		assert.Equal(t, "Rescheduling conflict: You have another travel plan 'Karimunjawa Escape' during this period.", err.Error())
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)
		svc.now = func() time.Time { return now }

		res, err := svc.Update(context.Background(), host.Id, &dto.UpdateTravelPlanRequest{
			Id:     plan.Id,
			Budget: float64Ptr(2500000),
		})
		require.NoError(t, err)
		assert.Equal(t, 2500000.0, res.Budget)
		assert.Equal(t, "Bromo Sunrise Trip", res.Title)
		assert.Equal(t, "Malang", res.DestinationCity)
	})
}

func float64Ptr(f float64) *float64 { return &f }

func TestApproveTravelPlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("non admin forbidden", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)

		_, err := svc.Approve(context.Background(), "USER", &dto.ApproveTravelPlanRequest{Id: plan.Id, Approval: "APPROVED"})
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("approved keeps plan upcoming", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, pub := newTestTravelPlanService(uow)

		res, err := svc.Approve(context.Background(), "ADMIN", &dto.ApproveTravelPlanRequest{Id: plan.Id, Approval: "APPROVED"})
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", res.IsApproved)
		assert.Equal(t, "UPCOMING", res.Status)
		assert.Len(t, pub.payloads, 1) // host notified
	})

	t.Run("rejected cancels the plan", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)

		res, err := svc.Approve(context.Background(), "SUPER_ADMIN", &dto.ApproveTravelPlanRequest{Id: plan.Id, Approval: "REJECTED"})
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", res.IsApproved)
		assert.Equal(t, "CANCELLED", res.Status)
	})
}

func TestCancelTravelPlan(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("approved plan cannot be cancelled", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		plan.IsApproved = entity.TravelApprovalApproved
		svc, _ := newTestTravelPlanService(uow)

		_, err := svc.Cancel(context.Background(), host.Id, plan.Id)
		require.Error(t, err)
		assert.Equal(t, "An approved travel plan cannot be cancelled", err.Error())
	})

	t.Run("only host may cancel", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		stranger := seedHost(uow, 30)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)

		_, err := svc.Cancel(context.Background(), stranger.Id, plan.Id)
		require.Error(t, err)
		assert.Equal(t, "Only the host can cancel this travel plan", err.Error())
	})

	t.Run("cancel cascades to live bookings and keeps roster", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		bookingId := uuid.New()
		uow.bookings.bookings[bookingId] = &entity.Booking{
			Id:            bookingId,
			UserId:        uuid.New(),
			TravelId:      plan.Id,
			BookingStatus: entity.BookingStatusBooked,
		}
		svc, _ := newTestTravelPlanService(uow)

		res, err := svc.Cancel(context.Background(), host.Id, plan.Id)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", res.Status)
		assert.Equal(t, "REJECTED", res.IsApproved)
		assert.Equal(t, entity.BookingStatusCancelled, uow.bookings.bookings[bookingId].BookingStatus)
		assert.Equal(t, 1, plan.Participants.Len())
	})

	t.Run("double cancel rejected", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		plan.Status = entity.TravelStatusCancelled
		svc, _ := newTestTravelPlanService(uow)

		_, err := svc.Cancel(context.Background(), host.Id, plan.Id)
		require.Error(t, err)
		assert.Equal(t, "Travel plan is already cancelled", err.Error())
	})
}

func TestHostManagesRoster(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("add participant", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)

		res, err := svc.AddParticipant(context.Background(), host.Id, plan.Id, &dto.ParticipantPayload{
			Name: "Budi", Phone: "0822222222", Gender: "MALE", Age: 22,
		})
		require.NoError(t, err)
		assert.Len(t, res.Participants, 2)
	})

	t.Run("duplicate phone rejected", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)

		_, err := svc.AddParticipant(context.Background(), host.Id, plan.Id, &dto.ParticipantPayload{
			Name: "Clone", Phone: *host.Phone, Gender: "MALE", Age: 22,
		})
		require.Error(t, err)
		assert.Equal(t, "A participant with this phone number already exists", err.Error())
	})

	t.Run("host entry cannot be removed", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		svc, _ := newTestTravelPlanService(uow)

		_, err := svc.RemoveParticipant(context.Background(), host.Id, plan.Id, *host.Phone)
		require.Error(t, err)
		assert.Equal(t, "Cannot remove the host from the participant list", err.Error())
	})

	t.Run("booking-held participant cannot be host-removed", func(t *testing.T) {
		uow := newFakeUow()
		host := seedHost(uow, 25)
		plan := seedPlan(uow, host, now.AddDate(0, 0, 10), now.AddDate(0, 0, 12))
		bookingId := uuid.New()
		require.NoError(t, plan.Participants.Attach(entity.Participant{
			Id: uuid.New(), BookingId: &bookingId, Name: "Citra", Phone: "0833333333", Gender: entity.UserGenderFemale, Age: 24,
		}))
		svc, _ := newTestTravelPlanService(uow)

		_, err := svc.RemoveParticipant(context.Background(), host.Id, plan.Id, "0833333333")
		require.Error(t, err)
		assert.Equal(t, "Cannot remove participant with an active booking. They must cancel their booking first.", err.Error())
	})
}

func TestPopularDestinations(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	uow := newFakeUow()
	host := seedHost(uow, 25)

	for i := 0; i < 3; i++ {
		p := seedPlan(uow, host, now.AddDate(0, 0, 10+i*7), now.AddDate(0, 0, 12+i*7))
		p.IsApproved = entity.TravelApprovalApproved
		p.DestinationCity = "Ubud"
		p.DestinationCountry = "Indonesia"
	}
	cancelled := seedPlan(uow, host, now.AddDate(0, 1, 0), now.AddDate(0, 1, 2))
	cancelled.IsApproved = entity.TravelApprovalApproved
	cancelled.Status = entity.TravelStatusCancelled
	cancelled.DestinationCity = "Ubud"

	svc, _ := newTestTravelPlanService(uow)
	res, err := svc.PopularDestinations(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Ubud", res[0].City)
	assert.Equal(t, int64(3), res[0].Plans) // cancelled plan excluded
}
