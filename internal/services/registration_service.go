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

var ErrEmailTaken = errors.New("user already exists")

// Geolocator — внешний best-effort lookup страны по IP.
type Geolocator interface {
	CountryForIP(ip string) (string, error)
}

// RequestMeta — то, что сервису нужно знать о HTTP-запросе,
// без протаскивания самого запроса внутрь.
type RequestMeta struct {
	XForwardedFor string
	RemoteAddr    string
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type RegistrationService interface {
	Register(input RegisterInput, meta RequestMeta) (*models.User, error)
}

type registrationService struct {
	users  repositories.UserRepository
	verifs repositories.EmailVerificationRepository
	infos  repositories.UserInfoRepository
	emails EmailService
	auth   AuthService
	geo    Geolocator
}

func NewRegistrationService(
	users repositories.UserRepository,
	verifs repositories.EmailVerificationRepository,
	infos repositories.UserInfoRepository,
	emails EmailService,
	auth AuthService,
	geo Geolocator,
) RegistrationService {
	return &registrationService{
		users:  users,
		verifs: verifs,
		infos:  infos,
		emails: emails,
		auth:   auth,
		geo:    geo,
	}
}

// Register — создаёт неактивный аккаунт, фиксирует IP/страну, выдаёт OTP и шлёт письмо.
// Запись в три стора не транзакционна: при любом сбое после создания пользователя
// откатываемся компенсирующим удалением, чтобы не оставить полузарегистрированный аккаунт.
func (s *registrationService) Register(input RegisterInput, meta RequestMeta) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hash,
		IsActive:     false,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	info := s.buildInfo(user.ID, meta)
	if err := s.infos.Create(info); err != nil {
		s.rollback(user.ID)
		return nil, fmt.Errorf("create user info: %w", err)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		s.rollback(user.ID)
		return nil, err
	}
	if err := s.verifs.Upsert(user.ID, code, time.Now()); err != nil {
		s.rollback(user.ID)
		return nil, fmt.Errorf("store verification: %w", err)
	}

	// Провал отправки OTP валит регистрацию целиком: аккаунт без доставленного
	// кода бесполезен, а повторная регистрация с тем же email должна остаться возможной.
	if err := s.emails.SendOTPEmail(user.Email, code); err != nil {
		s.rollback(user.ID)
		return nil, fmt.Errorf("send otp email: %w", err)
	}

	log.Printf("[registration][register] success user_id=%d email=%s country=%s", user.ID, user.Email, info.Country)
	return user, nil
}

func (s *registrationService) buildInfo(userID int, meta RequestMeta) *models.UserInfo {
	info := &models.UserInfo{UserID: userID, Country: "Unknown"}

	ip := utils.ClientIP(meta.XForwardedFor, meta.RemoteAddr)
	if ip == "" {
		return info
	}
	info.IPAddress = &ip

	country, err := s.geo.CountryForIP(ip)
	if err != nil {
		// геолокация best-effort, регистрацию не блокируем
		log.Printf("[registration][geoip] lookup failed for ip=%s: %v", ip, err)
		return info
	}
	info.Country = country
	return info
}

// rollback — компенсирующее удаление всего, что успели записать.
func (s *registrationService) rollback(userID int) {
	if err := s.verifs.DeleteByUserID(userID); err != nil {
		log.Printf("[registration][rollback] delete verification failed user_id=%d: %v", userID, err)
	}
	if err := s.infos.DeleteByUserID(userID); err != nil {
		log.Printf("[registration][rollback] delete user info failed user_id=%d: %v", userID, err)
	}
	if err := s.users.Delete(userID); err != nil {
		log.Printf("[registration][rollback] delete user failed user_id=%d: %v", userID, err)
	}
}
