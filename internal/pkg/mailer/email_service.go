// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBookingConfirmation(toEmail, name, planTitle string, totalPeople int) error
	SendPlanApproved(toEmail, hostName, planTitle string) error
	SendPlanCancelled(toEmail, name, planTitle string) error
	SendSubscriptionActivated(toEmail, name, planName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendBookingConfirmation(toEmail, name, planTitle string, totalPeople int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Booking Confirmed</h2>
			<p>Hi %s,</p>
			<p>Your booking for <strong>%s</strong> (%d people) is confirmed.</p>
			<p>You can review the trip details in your dashboard:</p>
			<p><a href="%s/bookings">My Bookings</a></p>
		</div>
	`, name, planTitle, totalPeople, s.clientURL)
	return s.send(toEmail, "Your booking is confirmed", body)
}

func (s *emailService) SendPlanApproved(toEmail, hostName, planTitle string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your travel plan is live</h2>
			<p>Hi %s,</p>
			<p><strong>%s</strong> has been approved and is now visible to travelers.</p>
		</div>
	`, hostName, planTitle)
	return s.send(toEmail, "Travel plan approved", body)
}

func (s *emailService) SendPlanCancelled(toEmail, name, planTitle string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Trip cancelled</h2>
			<p>Hi %s,</p>
			<p><strong>%s</strong> has been cancelled. Any bookings on this trip were cancelled as well.</p>
		</div>
	`, name, planTitle)
	return s.send(toEmail, "Travel plan cancelled", body)
}

func (s *emailService) SendSubscriptionActivated(toEmail, name, planName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Subscription active</h2>
			<p>Hi %s,</p>
			<p>Your <strong>%s</strong> subscription is now active. You can book trips right away.</p>
		</div>
	`, name, planName)
	return s.send(toEmail, "Subscription activated", body)
}
