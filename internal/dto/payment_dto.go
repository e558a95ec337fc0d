package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlanResponse struct {
	Id           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"duration_days"`
}

type CreateCheckoutRequest struct {
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

// MidtransNotification is the webhook payload midtrans posts after a
// transaction changes state.
type MidtransNotification struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionId     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

type SubscriptionStatusResponse struct {
	Active     bool       `json:"active"`
	Plan       string     `json:"plan,omitempty"`
	Status     string     `json:"status,omitempty"`
	ExpireDate *time.Time `json:"expire_date,omitempty"`
}
