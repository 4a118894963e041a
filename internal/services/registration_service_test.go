package services

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"apicrete/internal/models"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

type regDeps struct {
	users  *mockUserRepo
	verifs *mockVerificationRepo
	infos  *mockInfoRepo
	emails *mockEmailService
	geo    *mockGeolocator
}

func newRegistrationService(t *testing.T) (RegistrationService, *regDeps) {
	t.Helper()
	d := &regDeps{
		users:  &mockUserRepo{},
		verifs: &mockVerificationRepo{},
		infos:  &mockInfoRepo{},
		emails: &mockEmailService{},
		geo:    &mockGeolocator{},
	}
	svc := NewRegistrationService(d.users, d.verifs, d.infos, d.emails, NewAuthService(), d.geo)
	return svc, d
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "secret-password",
	}
}

func TestRegister_Success(t *testing.T) {
	svc, d := newRegistrationService(t)

	d.users.On("GetByEmail", "ada@example.com").Return(nil, nil)
	d.users.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = 42
	}).Return(nil)
	d.geo.On("CountryForIP", "203.0.113.7").Return("Netherlands", nil)
	d.infos.On("Create", mock.AnythingOfType("*models.UserInfo")).Return(nil)
	d.verifs.On("Upsert", 42, mock.MatchedBy(func(code string) bool {
		return sixDigits.MatchString(code)
	}), mock.AnythingOfType("time.Time")).Return(nil)
	d.emails.On("SendOTPEmail", "ada@example.com", mock.AnythingOfType("string")).Return(nil)

	user, err := svc.Register(validInput(), RequestMeta{XForwardedFor: "203.0.113.7"})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, 42, user.ID)
	assert.Equal(t, "ada@example.com", user.Email, "email is normalized to lower case")
	assert.False(t, user.IsActive, "new accounts start inactive")
	assert.NotEqual(t, "secret-password", user.PasswordHash, "password is never stored in plain text")

	info := d.infos.Calls[0].Arguments.Get(0).(*models.UserInfo)
	require.NotNil(t, info.IPAddress)
	assert.Equal(t, "203.0.113.7", *info.IPAddress)
	assert.Equal(t, "Netherlands", info.Country)

	d.users.AssertExpectations(t)
	d.verifs.AssertExpectations(t)
	d.emails.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, d := newRegistrationService(t)

	d.users.On("GetByEmail", "ada@example.com").Return(&models.User{ID: 1, Email: "ada@example.com"}, nil)

	user, err := svc.Register(validInput(), RequestMeta{})
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, user)

	d.users.AssertNotCalled(t, "Create", mock.Anything)
	d.verifs.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	d.emails.AssertNotCalled(t, "SendOTPEmail", mock.Anything, mock.Anything)
}

func TestRegister_GeoLookupFailure_DegradesToUnknown(t *testing.T) {
	svc, d := newRegistrationService(t)

	d.users.On("GetByEmail", "ada@example.com").Return(nil, nil)
	d.users.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = 7
	}).Return(nil)
	d.geo.On("CountryForIP", "203.0.113.7").Return("", errors.New("provider unreachable"))
	d.infos.On("Create", mock.Anything).Return(nil)
	d.verifs.On("Upsert", 7, mock.Anything, mock.Anything).Return(nil)
	d.emails.On("SendOTPEmail", "ada@example.com", mock.Anything).Return(nil)

	_, err := svc.Register(validInput(), RequestMeta{XForwardedFor: "203.0.113.7"})
	require.NoError(t, err, "geolocation failure must never block registration")

	info := d.infos.Calls[0].Arguments.Get(0).(*models.UserInfo)
	assert.Equal(t, "Unknown", info.Country)
}

func TestRegister_LoopbackAddress_NoIPRecorded(t *testing.T) {
	svc, d := newRegistrationService(t)

	d.users.On("GetByEmail", "ada@example.com").Return(nil, nil)
	d.users.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = 7
	}).Return(nil)
	d.infos.On("Create", mock.Anything).Return(nil)
	d.verifs.On("Upsert", 7, mock.Anything, mock.Anything).Return(nil)
	d.emails.On("SendOTPEmail", "ada@example.com", mock.Anything).Return(nil)

	_, err := svc.Register(validInput(), RequestMeta{RemoteAddr: "127.0.0.1:53422"})
	require.NoError(t, err)

	info := d.infos.Calls[0].Arguments.Get(0).(*models.UserInfo)
	assert.Nil(t, info.IPAddress)
	assert.Equal(t, "Unknown", info.Country)
	d.geo.AssertNotCalled(t, "CountryForIP", mock.Anything)
}

func TestRegister_OTPSendFailure_RollsBackEverything(t *testing.T) {
	svc, d := newRegistrationService(t)

	d.users.On("GetByEmail", "ada@example.com").Return(nil, nil)
	d.users.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = 9
	}).Return(nil)
	d.geo.On("CountryForIP", mock.Anything).Return("Netherlands", nil)
	d.infos.On("Create", mock.Anything).Return(nil)
	d.verifs.On("Upsert", 9, mock.Anything, mock.Anything).Return(nil)
	d.emails.On("SendOTPEmail", "ada@example.com", mock.Anything).Return(errors.New("smtp down"))

	d.verifs.On("DeleteByUserID", 9).Return(nil)
	d.infos.On("DeleteByUserID", 9).Return(nil)
	d.users.On("Delete", 9).Return(nil)

	user, err := svc.Register(validInput(), RequestMeta{XForwardedFor: "203.0.113.7"})
	require.Error(t, err)
	assert.Nil(t, user)

	d.verifs.AssertCalled(t, "DeleteByUserID", 9)
	d.infos.AssertCalled(t, "DeleteByUserID", 9)
	d.users.AssertCalled(t, "Delete", 9)
}

func TestRegister_InfoWriteFailure_RollsBackUser(t *testing.T) {
	svc, d := newRegistrationService(t)

	d.users.On("GetByEmail", "ada@example.com").Return(nil, nil)
	d.users.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = 9
	}).Return(nil)
	d.infos.On("Create", mock.Anything).Return(errors.New("db down"))

	d.verifs.On("DeleteByUserID", 9).Return(nil)
	d.infos.On("DeleteByUserID", 9).Return(nil)
	d.users.On("Delete", 9).Return(nil)

	_, err := svc.Register(validInput(), RequestMeta{RemoteAddr: "127.0.0.1:1"})
	require.Error(t, err)

	d.users.AssertCalled(t, "Delete", 9)
	d.emails.AssertNotCalled(t, "SendOTPEmail", mock.Anything, mock.Anything)
}
