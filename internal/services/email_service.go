package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendOTPEmail(email, code string) error
	SendOTPReissueEmail(email, code string) error
	SendWelcomeEmail(email, firstName string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOTPEmail(email, code string) error {
	body := fmt.Sprintf(`
		<h3>Your OTP Code</h3>
		<p>Your OTP is: <strong>%s</strong></p>
		<p>The code expires shortly, please verify your email as soon as possible.</p>
	`, code)

	if err := s.send(email, "Your OTP Code", body); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func (s *emailService) SendOTPReissueEmail(email, code string) error {
	body := fmt.Sprintf(`
		<h3>Your New OTP Code</h3>
		<p>Your previous code expired. Your new OTP is: <strong>%s</strong></p>
	`, code)

	if err := s.send(email, "Your New OTP Code", body); err != nil {
		return fmt.Errorf("failed to send OTP reissue email: %w", err)
	}
	return nil
}

func (s *emailService) SendWelcomeEmail(email, firstName string) error {
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account is now active. Welcome!</p>
	`, firstName)

	if err := s.send(email, "Registration Complete", body); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
