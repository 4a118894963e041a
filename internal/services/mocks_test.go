package services

import (
	"time"

	"github.com/stretchr/testify/mock"

	"apicrete/internal/models"
)

// --- mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}
func (m *mockUserRepo) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if u, _ := args.Get(0).(*models.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if u, _ := args.Get(0).(*models.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) Activate(id int) error {
	return m.Called(id).Error(0)
}
func (m *mockUserRepo) Delete(id int) error {
	return m.Called(id).Error(0)
}

type mockVerificationRepo struct{ mock.Mock }

func (m *mockVerificationRepo) Upsert(userID int, code string, createdAt time.Time) error {
	return m.Called(userID, code, createdAt).Error(0)
}
func (m *mockVerificationRepo) GetByUserID(userID int) (*models.EmailVerification, error) {
	args := m.Called(userID)
	if v, _ := args.Get(0).(*models.EmailVerification); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVerificationRepo) DeleteByUserID(userID int) error {
	return m.Called(userID).Error(0)
}

type mockInfoRepo struct{ mock.Mock }

func (m *mockInfoRepo) Create(info *models.UserInfo) error {
	return m.Called(info).Error(0)
}
func (m *mockInfoRepo) GetByUserID(userID int) (*models.UserInfo, error) {
	args := m.Called(userID)
	if i, _ := args.Get(0).(*models.UserInfo); i != nil {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockInfoRepo) DeleteByUserID(userID int) error {
	return m.Called(userID).Error(0)
}

type mockEmailService struct{ mock.Mock }

func (m *mockEmailService) SendOTPEmail(email, code string) error {
	return m.Called(email, code).Error(0)
}
func (m *mockEmailService) SendOTPReissueEmail(email, code string) error {
	return m.Called(email, code).Error(0)
}
func (m *mockEmailService) SendWelcomeEmail(email, firstName string) error {
	return m.Called(email, firstName).Error(0)
}

type mockGeolocator struct{ mock.Mock }

func (m *mockGeolocator) CountryForIP(ip string) (string, error) {
	args := m.Called(ip)
	return args.String(0), args.Error(1)
}
