package service

import (
	"testing"

	"civictrack/models"
	"civictrack/repository"
	"civictrack/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(), "test-secret", 1)

	u, err := svc.RegisterCitizen(&models.RegisterRequest{Name: " Asha Rao ", Email: "Asha@Example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", u.Name)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	_, err = svc.RegisterCitizen(&models.RegisterRequest{Name: "Other", Email: "asha@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	resp, err := svc.Login("asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCitizen, resp.Role)
	assert.Equal(t, u.ID, resp.UserID)

	_, err = svc.Login("asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	authed, err := svc.Authenticate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, authed.ID)
}

func TestGovernmentLoginUsesGovernmentID(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(), "test-secret", 1)
	_, err := svc.RegisterGovernment(&models.RegisterGovernmentRequest{GovernmentID: "GOV-42", Name: "Officer", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login("gov-42", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleGovernment, resp.Role)
}

func TestAuthenticateRejectsForeignTokens(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(), "test-secret", 1)

	_, err := svc.Authenticate("not-a-token")
	assert.Error(t, err)

	foreign, err := utils.GenerateJWT("u1", models.RoleCitizen, []byte("other-secret"), 1)
	require.NoError(t, err)
	_, err = svc.Authenticate(foreign)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)

	unknown, err := utils.GenerateJWT("ghost", models.RoleCitizen, []byte("test-secret"), 1)
	require.NoError(t, err)
	_, err = svc.Authenticate(unknown)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
