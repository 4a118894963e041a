package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"apicrete/internal/models"
	"apicrete/internal/repositories"
	"apicrete/internal/utils"
)

var (
	// ErrInvalidEmailOrCode — намеренно один вариант и для неизвестного email,
	// и для отсутствующей записи кода: не даём перебирать базу.
	ErrInvalidEmailOrCode = errors.New("invalid email or otp")
	ErrCodeExpired        = errors.New("otp expired")
	ErrCodeIncorrect      = errors.New("otp incorrect")
)

const defaultCodeTTL = 10 * time.Minute

type VerificationService interface {
	VerifyOTP(email, code string) (*models.User, error)
}

type verificationService struct {
	users   repositories.UserRepository
	verifs  repositories.EmailVerificationRepository
	emails  EmailService
	codeTTL time.Duration
	now     func() time.Time
}

func NewVerificationService(
	users repositories.UserRepository,
	verifs repositories.EmailVerificationRepository,
	emails EmailService,
	codeTTL time.Duration,
) VerificationService {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	return &verificationService{
		users:   users,
		verifs:  verifs,
		emails:  emails,
		codeTTL: codeTTL,
		now:     time.Now,
	}
}

// VerifyOTP — машина состояний кода: нет записи / истёк (перевыпуск) /
// не совпал (без изменений) / совпал (активация + удаление записи).
func (s *verificationService) VerifyOTP(email, code string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidEmailOrCode
	}

	verif, err := s.verifs.GetByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup verification: %w", err)
	}
	if verif == nil {
		return nil, ErrInvalidEmailOrCode
	}

	if verif.IsExpired(s.codeTTL, s.now()) {
		return nil, s.reissue(user)
	}

	if verif.OTPCode != code {
		return nil, ErrCodeIncorrect
	}

	if err := s.users.Activate(user.ID); err != nil {
		return nil, fmt.Errorf("activate user: %w", err)
	}
	if err := s.verifs.DeleteByUserID(user.ID); err != nil {
		return nil, fmt.Errorf("delete verification: %w", err)
	}
	user.IsActive = true

	// welcome-письмо не критично: провал логируем, верификацию не откатываем
	if err := s.emails.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		log.Printf("[verification][verify] warning: failed to send welcome email to %s: %v", user.Email, err)
	}

	log.Printf("[verification][verify] success user_id=%d email=%s", user.ID, user.Email)
	return user, nil
}

// reissue — истёкший код заменяем новым и шлём письмо; старый код мёртв
// сразу после Upsert, даже если письмо не ушло (следующая попытка verify
// снова попадёт в ветку expired и перевыпустит код ещё раз).
func (s *verificationService) reissue(user *models.User) error {
	newCode, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.verifs.Upsert(user.ID, newCode, s.now()); err != nil {
		return fmt.Errorf("refresh verification: %w", err)
	}
	if err := s.emails.SendOTPReissueEmail(user.Email, newCode); err != nil {
		return fmt.Errorf("send otp reissue email: %w", err)
	}
	log.Printf("[verification][reissue] user_id=%d email=%s", user.ID, user.Email)
	return ErrCodeExpired
}
