// FILE: internal/service/payment_service.go
package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"travelmate-be/internal/config"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/apperror"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/events"
	pkgNats "travelmate-be/pkg/nats"
)

// SnapClient is the slice of the midtrans snap API the checkout flow needs.
type SnapClient interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapClient builds the real midtrans client from config.
func NewSnapClient(cfg config.MidtransConfig) SnapClient {
	env := midtrans.Sandbox
	if cfg.Environment == "production" {
		env = midtrans.Production
	}
	client := &snap.Client{}
	client.New(cfg.ServerKey, env)
	return client
}

type IPaymentService interface {
	ListPlans(ctx context.Context) ([]*dto.SubscriptionPlanResponse, error)
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)
	HandleNotification(ctx context.Context, req *dto.MidtransNotification) error
	SubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
}

type paymentService struct {
	uowFactory       unitofwork.RepositoryFactory
	snapClient       SnapClient
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	logger           logger.ILogger
	serverKey        string
	clientURL        string
	now              func() time.Time
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	snapClient SnapClient,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
	cfg config.MidtransConfig,
	clientURL string,
) IPaymentService {
	return &paymentService{
		uowFactory:       uowFactory,
		snapClient:       snapClient,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		serverKey:        cfg.ServerKey,
		clientURL:        clientURL,
		now:              time.Now,
	}
}

func (s *paymentService) ListPlans(ctx context.Context) ([]*dto.SubscriptionPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plans, err := uow.SubscriptionRepository().FindPlans(ctx,
		specification.Filter("is_active", true),
		specification.OrderBy{Field: "price"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SubscriptionPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, &dto.SubscriptionPlanResponse{
			Id:           p.Id,
			Name:         p.Name,
			Kind:         string(p.Kind),
			Price:        p.Price,
			DurationDays: p.DurationDays,
		})
	}
	return out, nil
}

func (s *paymentService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindPlanOne(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, apperror.NotFound("Subscription plan not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	if user.HasActiveSubscription() {
		return nil, apperror.BadRequest("You already have an active subscription")
	}

	// The order id doubles as the midtrans transaction reference; the webhook
	// resolves the payment row through it.
	orderId := fmt.Sprintf("SUB-%s", uuid.NewString())
	payment := entity.Payment{
		UserId:  userId,
		PlanId:  plan.Id,
		OrderId: orderId,
		Amount:  plan.Price,
		Status:  entity.PaymentStatusPending,
	}
	if err := uow.SubscriptionRepository().CreatePayment(ctx, &payment); err != nil {
		return nil, err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: int64(plan.Price),
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
		Callbacks: &snap.Callbacks{
			Finish: fmt.Sprintf("%s/subscription?payment=success", s.clientURL),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(plan.Price),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := s.snapClient.CreateTransaction(snapReq)
	if midErr != nil {
		s.logger.Error("payment", "Midtrans transaction failed", map[string]interface{}{
			"order_id": orderId,
			"error":    midErr.GetMessage(),
		})
		return nil, apperror.BadRequest("Failed to create payment transaction")
	}

	return &dto.CheckoutResponse{
		OrderId:     orderId,
		SnapToken:   snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

// HandleNotification is the midtrans webhook. Signature is
// sha512(order_id + status_code + gross_amount + server_key); anything that
// fails the check is rejected before the payment row is even looked up.
// Replayed notifications are absorbed: a payment already in its final state
// is left alone.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransNotification) error {
	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if req.SignatureKey != expected {
		return apperror.Forbidden("Invalid notification signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.SubscriptionRepository().FindPaymentOne(ctx, specification.Filter("order_id", req.OrderId))
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NotFound("Payment not found")
	}

	var newStatus entity.PaymentStatus
	switch req.TransactionStatus {
	case "capture", "settlement":
		newStatus = entity.PaymentStatusPaid
	case "deny", "cancel", "expire":
		newStatus = entity.PaymentStatusFailed
	default:
		// pending and unknown statuses are a no-op
		return nil
	}

	if payment.Status == newStatus {
		return nil
	}

	payment.Status = newStatus
	if req.TransactionId != "" {
		payment.TransactionId = &req.TransactionId
	}
	if err := uow.SubscriptionRepository().UpdatePayment(ctx, payment); err != nil {
		return err
	}

	s.logger.Info("payment", "Payment status updated", map[string]interface{}{
		"order_id": payment.OrderId,
		"status":   string(newStatus),
	})

	if newStatus != entity.PaymentStatusPaid {
		return nil
	}
	return s.activateSubscription(ctx, uow, payment)
}

// activateSubscription stamps the embedded snapshot onto the user. The
// booking gate reads only this snapshot, so activation is complete once the
// user row is saved.
func (s *paymentService) activateSubscription(ctx context.Context, uow unitofwork.UnitOfWork, payment *entity.Payment) error {
	plan, err := uow.SubscriptionRepository().FindPlanOne(ctx, specification.ByID{ID: payment.PlanId})
	if err != nil {
		return err
	}
	if plan == nil {
		return apperror.NotFound("Subscription plan not found")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payment.UserId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	start := s.now()
	expire := start.AddDate(0, 0, plan.DurationDays)
	user.SubscriptionInfo = &entity.SubscriptionInfo{
		Plan:       plan.Kind,
		Status:     entity.SubscriptionStatusActive,
		StartDate:  &start,
		ExpireDate: &expire,
	}
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TypeSubscriptionActivated, map[string]interface{}{
		"user_id":  user.Id,
		"plan":     string(plan.Kind),
		"order_id": payment.OrderId,
	})
	s.notifyUser(ctx, user, plan.Name)
	return nil
}

func (s *paymentService) SubscriptionStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	info := user.SubscriptionInfo
	if info == nil {
		return &dto.SubscriptionStatusResponse{Active: false}, nil
	}
	return &dto.SubscriptionStatusResponse{
		Active:     user.HasActiveSubscription(),
		Plan:       string(info.Plan),
		Status:     string(info.Status),
		ExpireDate: info.ExpireDate,
	}, nil
}

func (s *paymentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("payment", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *paymentService) notifyUser(ctx context.Context, user *entity.User, planName string) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.NotificationMessage{
		Kind:     dto.NotificationSubscriptionActivated,
		Email:    user.Email,
		Name:     user.FullName,
		PlanName: planName,
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("payment", "Failed to queue notification", map[string]interface{}{
			"kind":  dto.NotificationSubscriptionActivated,
			"error": err.Error(),
		})
	}
}
