package dto

// NotificationMessage travels over the in-process bus from the domain
// services to the notifier.
type NotificationMessage struct {
	Kind        string `json:"kind"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PlanTitle   string `json:"plan_title,omitempty"`
	PlanName    string `json:"plan_name,omitempty"`
	TotalPeople int    `json:"total_people,omitempty"`
}

// Notification kinds.
const (
	NotificationBookingConfirmed      = "BOOKING_CONFIRMED"
	NotificationPlanApproved          = "PLAN_APPROVED"
	NotificationPlanCancelled         = "PLAN_CANCELLED"
	NotificationSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
)
