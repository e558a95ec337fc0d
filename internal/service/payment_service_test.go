package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmate-be/internal/config"
	"travelmate-be/internal/dto"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/pkg/apperror"
)

const testServerKey = "SB-Mid-server-testkey"

func newTestPaymentService(uow *fakeUow, snap *fakeSnapClient) (*paymentService, *capturePublisher) {
	pub := &capturePublisher{}
	svc := NewPaymentService(
		&fakeFactory{uow: uow},
		snap,
		pub,
		nil,
		nopLogger{},
		config.MidtransConfig{ServerKey: testServerKey, Environment: "sandbox"},
		"http://localhost:5173",
	).(*paymentService)
	return svc, pub
}

func seedMonthlyPlan(uow *fakeUow) *entity.SubscriptionPlan {
	plan := &entity.SubscriptionPlan{
		Id:           uuid.New(),
		Name:         "Monthly Explorer",
		Kind:         entity.SubscriptionPlanMonthly,
		Price:        49000,
		DurationDays: 30,
		IsActive:     true,
	}
	uow.subscriptions.plans = append(uow.subscriptions.plans, plan)
	return plan
}

func signNotification(n *dto.MidtransNotification) {
	input := n.OrderId + n.StatusCode + n.GrossAmount + testServerKey
	n.SignatureKey = fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
}

func TestListPlans(t *testing.T) {
	uow := newFakeUow()
	seedMonthlyPlan(uow)
	inactive := &entity.SubscriptionPlan{
		Id: uuid.New(), Name: "Legacy", Kind: entity.SubscriptionPlanYearly,
		Price: 1, DurationDays: 365, IsActive: false,
	}
	uow.subscriptions.plans = append(uow.subscriptions.plans, inactive)

	svc, _ := newTestPaymentService(uow, &fakeSnapClient{})
	plans, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Monthly Explorer", plans[0].Name)
}

func TestCreateCheckout(t *testing.T) {
	t.Run("success returns snap token and pending payment", func(t *testing.T) {
		uow := newFakeUow()
		plan := seedMonthlyPlan(uow)
		user := seedHost(uow, 30)
		snapClient := &fakeSnapClient{}
		svc, _ := newTestPaymentService(uow, snapClient)

		res, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreateCheckoutRequest{PlanId: plan.Id})
		require.NoError(t, err)
		assert.Equal(t, "snap-token", res.SnapToken)
		assert.Contains(t, res.OrderId, "SUB-")

		require.NotNil(t, snapClient.lastReq)
		assert.Equal(t, res.OrderId, snapClient.lastReq.TransactionDetails.OrderID)
		assert.Equal(t, int64(49000), snapClient.lastReq.TransactionDetails.GrossAmt)
		assert.Equal(t, "http://localhost:5173/subscription?payment=success", snapClient.lastReq.Callbacks.Finish)

		stored, err := uow.subscriptions.FindPaymentOne(context.Background())
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, entity.PaymentStatusPending, stored.Status)
		assert.Equal(t, user.Id, stored.UserId)
	})

	t.Run("existing active subscription rejected", func(t *testing.T) {
		uow := newFakeUow()
		plan := seedMonthlyPlan(uow)
		user := seedSubscriber(uow, "0899999999")
		svc, _ := newTestPaymentService(uow, &fakeSnapClient{})

		_, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreateCheckoutRequest{PlanId: plan.Id})
		require.Error(t, err)
		assert.Equal(t, "You already have an active subscription", err.Error())
	})

	t.Run("inactive plan looks missing", func(t *testing.T) {
		uow := newFakeUow()
		plan := seedMonthlyPlan(uow)
		plan.IsActive = false
		user := seedHost(uow, 30)
		svc, _ := newTestPaymentService(uow, &fakeSnapClient{})

		_, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreateCheckoutRequest{PlanId: plan.Id})
		require.Error(t, err)
		assert.Equal(t, "Subscription plan not found", err.Error())
	})

	t.Run("midtrans failure surfaces as bad request", func(t *testing.T) {
		uow := newFakeUow()
		plan := seedMonthlyPlan(uow)
		user := seedHost(uow, 30)
		svc, _ := newTestPaymentService(uow, &fakeSnapClient{
			err: &midtrans.Error{Message: "midtrans is down", StatusCode: 500},
		})

		_, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreateCheckoutRequest{PlanId: plan.Id})
		require.Error(t, err)
		assert.Equal(t, "Failed to create payment transaction", err.Error())
	})
}

func TestHandleNotification(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	checkout := func(t *testing.T) (*fakeUow, *paymentService, *capturePublisher, *entity.User, *dto.CheckoutResponse) {
		uow := newFakeUow()
		plan := seedMonthlyPlan(uow)
		user := seedHost(uow, 30)
		svc, pub := newTestPaymentService(uow, &fakeSnapClient{})
		svc.now = func() time.Time { return now }

		res, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreateCheckoutRequest{PlanId: plan.Id})
		if err != nil {
			t.Fatalf("seed checkout: %v", err)
		}
		return uow, svc, pub, user, res
	}

	t.Run("settlement activates the subscription", func(t *testing.T) {
		uow, svc, pub, user, res := checkout(t)

		n := &dto.MidtransNotification{
			OrderId:           res.OrderId,
			StatusCode:        "200",
			GrossAmount:       "49000.00",
			TransactionId:     "trx-123",
			TransactionStatus: "settlement",
		}
		signNotification(n)
		require.NoError(t, svc.HandleNotification(context.Background(), n))

		require.NotNil(t, user.SubscriptionInfo)
		assert.Equal(t, entity.SubscriptionPlanMonthly, user.SubscriptionInfo.Plan)
		assert.Equal(t, entity.SubscriptionStatusActive, user.SubscriptionInfo.Status)
		assert.Equal(t, now, *user.SubscriptionInfo.StartDate)
		assert.Equal(t, now.AddDate(0, 0, 30), *user.SubscriptionInfo.ExpireDate)

		payment, _ := uow.subscriptions.FindPaymentOne(context.Background())
		assert.Equal(t, entity.PaymentStatusPaid, payment.Status)
		require.NotNil(t, payment.TransactionId)
		assert.Equal(t, "trx-123", *payment.TransactionId)

		assert.Len(t, pub.payloads, 1) // activation email queued
	})

	t.Run("replayed settlement is absorbed", func(t *testing.T) {
		_, svc, pub, _, res := checkout(t)

		n := &dto.MidtransNotification{
			OrderId:           res.OrderId,
			StatusCode:        "200",
			GrossAmount:       "49000.00",
			TransactionStatus: "settlement",
		}
		signNotification(n)
		require.NoError(t, svc.HandleNotification(context.Background(), n))
		require.NoError(t, svc.HandleNotification(context.Background(), n))

		assert.Len(t, pub.payloads, 1) // no duplicate activation
	})

	t.Run("expire marks failed without activating", func(t *testing.T) {
		uow, svc, _, user, res := checkout(t)

		n := &dto.MidtransNotification{
			OrderId:           res.OrderId,
			StatusCode:        "407",
			GrossAmount:       "49000.00",
			TransactionStatus: "expire",
		}
		signNotification(n)
		require.NoError(t, svc.HandleNotification(context.Background(), n))

		payment, _ := uow.subscriptions.FindPaymentOne(context.Background())
		assert.Equal(t, entity.PaymentStatusFailed, payment.Status)
		assert.Nil(t, user.SubscriptionInfo)
	})

	t.Run("pending is a no-op", func(t *testing.T) {
		uow, svc, _, _, res := checkout(t)

		n := &dto.MidtransNotification{
			OrderId:           res.OrderId,
			StatusCode:        "201",
			GrossAmount:       "49000.00",
			TransactionStatus: "pending",
		}
		signNotification(n)
		require.NoError(t, svc.HandleNotification(context.Background(), n))

		payment, _ := uow.subscriptions.FindPaymentOne(context.Background())
		assert.Equal(t, entity.PaymentStatusPending, payment.Status)
	})

	t.Run("bad signature rejected before lookup", func(t *testing.T) {
		_, svc, _, _, res := checkout(t)

		n := &dto.MidtransNotification{
			OrderId:           res.OrderId,
			StatusCode:        "200",
			GrossAmount:       "49000.00",
			TransactionStatus: "settlement",
			SignatureKey:      "forged",
		}
		err := svc.HandleNotification(context.Background(), n)
		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, svc, _, _, _ := checkout(t)

		n := &dto.MidtransNotification{
			OrderId:           "SUB-missing",
			StatusCode:        "200",
			GrossAmount:       "49000.00",
			TransactionStatus: "settlement",
		}
		signNotification(n)
		err := svc.HandleNotification(context.Background(), n)
		require.Error(t, err)
		assert.Equal(t, "Payment not found", err.Error())
	})
}

func TestSubscriptionStatus(t *testing.T) {
	uow := newFakeUow()
	free := seedHost(uow, 30)
	paid := seedSubscriber(uow, "0899999999")
	svc, _ := newTestPaymentService(uow, &fakeSnapClient{})

	t.Run("no subscription", func(t *testing.T) {
		res, err := svc.SubscriptionStatus(context.Background(), free.Id)
		require.NoError(t, err)
		assert.False(t, res.Active)
		assert.Empty(t, res.Plan)
	})

	t.Run("active subscription snapshot", func(t *testing.T) {
		res, err := svc.SubscriptionStatus(context.Background(), paid.Id)
		require.NoError(t, err)
		assert.True(t, res.Active)
		assert.Equal(t, "MONTHLY", res.Plan)
		assert.Equal(t, "ACTIVE", res.Status)
	})

	t.Run("expired snapshot reads inactive", func(t *testing.T) {
		past := time.Now().AddDate(0, 0, -1)
		paid.SubscriptionInfo.ExpireDate = &past
		res, err := svc.SubscriptionStatus(context.Background(), paid.Id)
		require.NoError(t, err)
		assert.False(t, res.Active)
		assert.Equal(t, "MONTHLY", res.Plan)
	})
}
