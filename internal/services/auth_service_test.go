package services

import (
	"context"
	"testing"
	"time"

	"crm_backend/internal/auth"
	"crm_backend/internal/models"
	"crm_backend/internal/services/dto"

	"crm_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(repo *fakeUserRepo) AuthService {
	tokens := auth.NewTokenIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(repo, tokens, nil, 4)
}

func registerTestUser(t *testing.T, svc AuthService, email string) *dto.UserDTO {
	t.Helper()
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "Password123!",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	user := registerTestUser(t, svc, "new@test.com")

	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.False(t, user.IsVerified)

	stored, err := repo.FindByEmail("new@test.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Password123!", stored.PasswordHash, "password is stored hashed")
	assert.True(t, auth.CheckPasswordHash("Password123!", stored.PasswordHash))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registerTestUser(t, svc, "dup@test.com")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Another",
		Email:    "dup@test.com",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Weak",
		Email:    "weak@test.com",
		Password: "short",
	})
	require.ErrorIs(t, err, apperrors.ErrWeakPassword)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	violations, ok := appErr.Details.([]string)
	require.True(t, ok)
	assert.NotEmpty(t, violations, "every unmet rule is reported")
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registerTestUser(t, svc, "login@test.com")

	session, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "login@test.com",
		Password: "Password123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Len(t, session.RefreshToken, 64)

	stored, err := repo.FindByEmail("login@test.com")
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, session.RefreshToken, *stored.RefreshToken)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registerTestUser(t, svc, "Mixed.Case@Test.com")

	stored, err := repo.FindByEmail("mixed.case@test.com")
	require.NoError(t, err)
	assert.Equal(t, "mixed.case@test.com", stored.Email, "emails are stored lowercase")

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "MIXED.CASE@TEST.COM",
		Password: "Password123!",
	})
	assert.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registerTestUser(t, svc, "known@test.com")

	_, wrongPass := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "known@test.com",
		Password: "WrongPassword1!",
	})
	_, unknownEmail := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "unknown@test.com",
		Password: "Password123!",
	})

	assert.ErrorIs(t, wrongPass, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}

func TestSecondLoginReplacesSession(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registerTestUser(t, svc, "single@test.com")

	first, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "single@test.com", Password: "Password123!"})
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "single@test.com", Password: "Password123!"})
	require.NoError(t, err)

	// Only the newest refresh token survives.
	_, err = svc.RefreshSession(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	_, err = svc.RefreshSession(context.Background(), second.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshSessionRotates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registerTestUser(t, svc, "rotate@test.com")
	session, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "rotate@test.com", Password: "Password123!"})
	require.NoError(t, err)

	rotated, err := svc.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The old token was consumed by the rotation.
	_, err = svc.RefreshSession(context.Background(), session.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefreshSessionRejectsBadTokens(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.RefreshSession(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	_, err = svc.RefreshSession(context.Background(), "unknown-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefreshSessionRejectsExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	user := registerTestUser(t, svc, "expired@test.com")
	expired := time.Now().Add(-time.Hour)
	require.NoError(t, repo.SaveRefreshToken(user.ID, "stale-token", expired))

	_, err := svc.RefreshSession(context.Background(), "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	// The stale token was cleared in passing.
	stored, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)
}

func TestLogout(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	registerTestUser(t, svc, "bye@test.com")
	session, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "bye@test.com", Password: "Password123!"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.RefreshToken))

	_, err = svc.RefreshSession(context.Background(), session.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	// Logout is idempotent.
	assert.NoError(t, svc.Logout(context.Background(), session.RefreshToken))
	assert.NoError(t, svc.Logout(context.Background(), ""))
}

func TestProfile(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	user := registerTestUser(t, svc, "me@test.com")

	profile, err := svc.Profile(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "me@test.com", profile.Email)

	_, err = svc.Profile(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
