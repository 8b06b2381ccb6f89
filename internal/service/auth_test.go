package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

func newAuthFixture(phone, password string) (*AuthService, *model.Admin) {
	hash := utils.HashPhone(phone)
	admin := &model.Admin{
		PublicID:     9001,
		DisplayName:  "Suresh",
		PhoneHash:    &hash,
		PasswordHash: utils.HashPassword(password),
		Role:         model.AdminRoleManager,
		Active:       true,
	}
	admin.ID = 9001

	return NewAuthService(newFakeAdminStore(admin)), admin
}

func TestLoginSuccess(t *testing.T) {
	svc, admin := newAuthFixture("9876543210", "secret")

	got, pair, err := svc.Login(context.Background(), "9876543210", "secret")

	require.NoError(t, err)
	assert.Equal(t, admin.PublicID, got.PublicID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Positive(t, pair.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture("9876543210", "secret")

	_, _, err := svc.Login(context.Background(), "9876543210", "wrong")

	assert.ErrorIs(t, err, pkgerrors.LoginFailed)
}

func TestLoginUnknownPhone(t *testing.T) {
	svc, _ := newAuthFixture("9876543210", "secret")

	_, _, err := svc.Login(context.Background(), "9123456780", "secret")

	assert.ErrorIs(t, err, pkgerrors.LoginFailed)
}

func TestLoginMalformedPhone(t *testing.T) {
	svc, _ := newAuthFixture("9876543210", "secret")

	_, _, err := svc.Login(context.Background(), "12345", "secret")

	assert.ErrorIs(t, err, pkgerrors.LoginFailed)
}

func TestLoginInactiveAdmin(t *testing.T) {
	svc, admin := newAuthFixture("9876543210", "secret")
	admin.Active = false

	_, _, err := svc.Login(context.Background(), "9876543210", "secret")

	assert.ErrorIs(t, err, pkgerrors.LoginFailed)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture("9876543210", "secret")

	_, pair, err := svc.Login(context.Background(), "9876543210", "secret")
	require.NoError(t, err)

	renewed, err := svc.Refresh(context.Background(), pair.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture("9876543210", "secret")

	_, err := svc.Refresh(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, pkgerrors.InvalidRefreshToken)
}
