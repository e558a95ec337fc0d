package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
)

// In-memory repository fakes. Specifications are matched by type-switching on
// the concrete spec values the services actually use; ordering and pagination
// specs are ignored.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) matches(u *entity.User, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.NotDeleted:
			if u.IsDeleted {
				return false
			}
		}
	}
	return true
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if r.matches(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if r.matches(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeTravelPlanRepo struct {
	plans map[uuid.UUID]*entity.TravelPlan
}

func newFakeTravelPlanRepo() *fakeTravelPlanRepo {
	return &fakeTravelPlanRepo{plans: make(map[uuid.UUID]*entity.TravelPlan)}
}

func (r *fakeTravelPlanRepo) matches(p *entity.TravelPlan, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.BySlug:
			if p.Slug != s.Slug {
				return false
			}
		case specification.ByHostID:
			if p.HostId != s.HostID {
				return false
			}
		case specification.ByStatus:
			if string(p.Status) != s.Status {
				return false
			}
		case specification.ByApproval:
			if string(p.IsApproved) != s.Approval {
				return false
			}
		case specification.NotCancelled:
			if p.Status == entity.TravelStatusCancelled {
				return false
			}
		}
	}
	return true
}

func (r *fakeTravelPlanRepo) Create(ctx context.Context, plan *entity.TravelPlan) error {
	if plan.Id == uuid.Nil {
		plan.Id = uuid.New()
	}
	r.plans[plan.Id] = plan
	return nil
}

func (r *fakeTravelPlanRepo) Update(ctx context.Context, plan *entity.TravelPlan) error {
	r.plans[plan.Id] = plan
	return nil
}

func (r *fakeTravelPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.plans, id)
	return nil
}

func (r *fakeTravelPlanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelPlan, error) {
	for _, p := range r.plans {
		if r.matches(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeTravelPlanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TravelPlan, error) {
	var out []*entity.TravelPlan
	for _, p := range r.plans {
		if r.matches(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeTravelPlanRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeTravelPlanRepo) AddParticipants(ctx context.Context, planId uuid.UUID, participants []entity.Participant) error {
	plan := r.plans[planId]
	for _, p := range participants {
		_ = plan.Participants.Attach(p)
	}
	return nil
}

func (r *fakeTravelPlanRepo) RemoveParticipant(ctx context.Context, planId uuid.UUID, phone string) error {
	plan := r.plans[planId]
	var kept []entity.Participant
	for _, p := range plan.Participants.All() {
		if p.Phone != phone {
			kept = append(kept, p)
		}
	}
	plan.Participants = entity.NewRoster(kept)
	return nil
}

func (r *fakeTravelPlanRepo) RemoveParticipantsByBooking(ctx context.Context, planId uuid.UUID, bookingId uuid.UUID) error {
	plan := r.plans[planId]
	var kept []entity.Participant
	for _, p := range plan.Participants.All() {
		if p.BookingId == nil || *p.BookingId != bookingId {
			kept = append(kept, p)
		}
	}
	plan.Participants = entity.NewRoster(kept)
	return nil
}

func (r *fakeTravelPlanRepo) MarkOngoing(ctx context.Context, startBefore time.Time, endOnOrAfter time.Time) (int64, error) {
	var moved int64
	for _, p := range r.plans {
		if p.Status == entity.TravelStatusUpcoming &&
			p.IsApproved == entity.TravelApprovalApproved &&
			p.StartDate.Before(startBefore) &&
			!p.EndDate.Before(endOnOrAfter) {
			p.Status = entity.TravelStatusOngoing
			moved++
		}
	}
	return moved, nil
}

func (r *fakeTravelPlanRepo) MarkCompleted(ctx context.Context, endBefore time.Time) (int64, error) {
	var moved int64
	for _, p := range r.plans {
		if (p.Status == entity.TravelStatusUpcoming || p.Status == entity.TravelStatusOngoing) &&
			p.EndDate.Before(endBefore) {
			p.Status = entity.TravelStatusCompleted
			moved++
		}
	}
	return moved, nil
}

func (r *fakeTravelPlanRepo) PopularDestinations(ctx context.Context, limit int) ([]entity.DestinationCount, error) {
	type key struct{ city, country string }
	counts := make(map[key]int64)
	for _, p := range r.plans {
		if p.IsApproved != entity.TravelApprovalApproved || p.Status == entity.TravelStatusCancelled {
			continue
		}
		counts[key{p.DestinationCity, p.DestinationCountry}]++
	}
	var out []entity.DestinationCount
	for k, n := range counts {
		out = append(out, entity.DestinationCount{City: k.city, Country: k.country, Plans: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plans > out[j].Plans })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) matches(b *entity.Booking, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if b.Id != s.ID {
				return false
			}
		case specification.ByTravelID:
			if b.TravelId != s.TravelID {
				return false
			}
		case specification.ByUserID:
			if b.UserId != s.UserID {
				return false
			}
		case specification.ByBookingStatus:
			if string(b.BookingStatus) != s.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.Id == uuid.Nil {
		booking.Id = uuid.New()
	}
	r.bookings[booking.Id] = booking
	return nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.bookings[booking.Id] = booking
	return nil
}

func (r *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if r.matches(b, specs) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if r.matches(b, specs) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeBookingRepo) StampParticipants(ctx context.Context, bookingId uuid.UUID) error {
	b := r.bookings[bookingId]
	for i := range b.Participants {
		b.Participants[i].BookingId = &b.Id
	}
	return nil
}

func (r *fakeBookingRepo) AddParticipants(ctx context.Context, bookingId uuid.UUID, participants []entity.Participant) error {
	b := r.bookings[bookingId]
	b.Participants = append(b.Participants, participants...)
	return nil
}

func (r *fakeBookingRepo) RemoveParticipant(ctx context.Context, bookingId uuid.UUID, phone string) error {
	b := r.bookings[bookingId]
	var kept []entity.Participant
	for _, p := range b.Participants {
		if p.Phone != phone {
			kept = append(kept, p)
		}
	}
	b.Participants = kept
	return nil
}

func (r *fakeBookingRepo) CancelAllByTravel(ctx context.Context, travelId uuid.UUID) (int64, error) {
	var moved int64
	for _, b := range r.bookings {
		if b.TravelId == travelId && b.BookingStatus == entity.BookingStatusBooked {
			b.BookingStatus = entity.BookingStatusCancelled
			moved++
		}
	}
	return moved, nil
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (r *fakeReviewRepo) matches(rev *entity.Review, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if rev.Id != s.ID {
				return false
			}
		case specification.ByReviewerID:
			if rev.ReviewerId != s.ReviewerID {
				return false
			}
		case specification.ByRevieweeID:
			if rev.RevieweeId != s.RevieweeID {
				return false
			}
		case specification.ByTravelID:
			if rev.TravelId != s.TravelID {
				return false
			}
		}
	}
	return true
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	if review.Id == uuid.Nil {
		review.Id = uuid.New()
	}
	r.reviews[review.Id] = review
	return nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.reviews[review.Id] = review
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Review, error) {
	for _, rev := range r.reviews {
		if r.matches(rev, specs) {
			return rev, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, rev := range r.reviews {
		if r.matches(rev, specs) {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeReviewRepo) RatingSummary(ctx context.Context, revieweeId uuid.UUID) (float64, int64, error) {
	var sum float64
	var total int64
	for _, rev := range r.reviews {
		if rev.RevieweeId == revieweeId {
			sum += float64(rev.Rating)
			total++
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	return sum / float64(total), total, nil
}

type fakeSubscriptionRepo struct {
	plans    []*entity.SubscriptionPlan
	payments map[uuid.UUID]*entity.Payment
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func (r *fakeSubscriptionRepo) planMatches(p *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.FilterBy:
			if s.Field == "is_active" && p.IsActive != s.Value.(bool) {
				return false
			}
		}
	}
	return true
}

func (r *fakeSubscriptionRepo) FindPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var out []*entity.SubscriptionPlan
	for _, p := range r.plans {
		if r.planMatches(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FindPlanOne(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, p := range r.plans {
		if r.planMatches(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) CreatePayment(ctx context.Context, payment *entity.Payment) error {
	if payment.Id == uuid.Nil {
		payment.Id = uuid.New()
	}
	r.payments[payment.Id] = payment
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePayment(ctx context.Context, payment *entity.Payment) error {
	r.payments[payment.Id] = payment
	return nil
}

func (r *fakeSubscriptionRepo) FindPaymentOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	for _, p := range r.payments {
		ok := true
		for _, sp := range specs {
			switch s := sp.(type) {
			case specification.ByID:
				if p.Id != s.ID {
					ok = false
				}
			case specification.FilterBy:
				if s.Field == "order_id" && p.OrderId != s.Value.(string) {
					ok = false
				}
			}
		}
		if ok {
			return p, nil
		}
	}
	return nil, nil
}

type fakeUow struct {
	users         *fakeUserRepo
	plans         *fakeTravelPlanRepo
	bookings      *fakeBookingRepo
	reviews       *fakeReviewRepo
	subscriptions *fakeSubscriptionRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:         newFakeUserRepo(),
		plans:         newFakeTravelPlanRepo(),
		bookings:      newFakeBookingRepo(),
		reviews:       newFakeReviewRepo(),
		subscriptions: newFakeSubscriptionRepo(),
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) TravelPlanRepository() contract.TravelPlanRepository     { return u.plans }
func (u *fakeUow) BookingRepository() contract.BookingRepository           { return u.bookings }
func (u *fakeUow) ReviewRepository() contract.ReviewRepository             { return u.reviews }
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository { return u.subscriptions }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type fakeAssetStore struct {
	deleted []string
}

func (s *fakeAssetStore) Save(filename string, data []byte) (string, error) {
	return "http://localhost:3000/assets/" + filename, nil
}

func (s *fakeAssetStore) Delete(url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

type fakeSnapClient struct {
	lastReq *snap.Request
	resp    *snap.Response
	err     *midtrans.Error
}

func (c *fakeSnapClient) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	c.lastReq = req
	if c.err != nil {
		return nil, c.err
	}
	if c.resp != nil {
		return c.resp, nil
	}
	return &snap.Response{Token: "snap-token", RedirectURL: "https://app.sandbox.midtrans.com/snap"}, nil
}
