package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"travelmate-be/internal/dto"
	"travelmate-be/internal/pkg/logger"
	"travelmate-be/internal/pkg/mailer"
)

// INotifierService drains the in-process notification bus and delivers mail.
// Delivery is best-effort: failures are logged and the message is acked so a
// broken mailbox never wedges the queue.
type INotifierService interface {
	Consume(ctx context.Context) error
}

type notifierService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
	logger    logger.ILogger
}

func NewNotifierService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) INotifierService {
	return &notifierService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    emailService,
		logger:    log,
	}
}

func (ns *notifierService) Consume(ctx context.Context) error {
	messages, err := ns.pubSub.Subscribe(ctx, ns.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ns.processMessage(msg)
		}
	}()

	return nil
}

func (ns *notifierService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var payload dto.NotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ns.logger.Error("notifier", "Failed to unmarshal notification", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	var err error
	switch payload.Kind {
	case dto.NotificationBookingConfirmed:
		err = ns.mailer.SendBookingConfirmation(payload.Email, payload.Name, payload.PlanTitle, payload.TotalPeople)
	case dto.NotificationPlanApproved:
		err = ns.mailer.SendPlanApproved(payload.Email, payload.Name, payload.PlanTitle)
	case dto.NotificationPlanCancelled:
		err = ns.mailer.SendPlanCancelled(payload.Email, payload.Name, payload.PlanTitle)
	case dto.NotificationSubscriptionActivated:
		err = ns.mailer.SendSubscriptionActivated(payload.Email, payload.Name, payload.PlanName)
	default:
		ns.logger.Warn("notifier", "Unknown notification kind", map[string]interface{}{
			"kind": payload.Kind,
		})
		return
	}

	if err != nil {
		ns.logger.Error("notifier", "Failed to deliver notification", map[string]interface{}{
			"kind":  payload.Kind,
			"email": payload.Email,
			"error": err.Error(),
		})
		return
	}

	ns.logger.Info("notifier", "Notification delivered", map[string]interface{}{
		"kind":  payload.Kind,
		"email": payload.Email,
	})
}
