package services

import (
	"context"
	"strings"
	"time"

	"crm_backend/internal/auth"
	"crm_backend/internal/email"
	"crm_backend/internal/logger"
	"crm_backend/internal/models"
	"crm_backend/internal/repositories"
	"crm_backend/internal/services/dto"

	"crm_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResult, error)
	RefreshSession(ctx context.Context, refreshToken string) (*dto.SessionResult, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        *auth.TokenIssuer
	emailProvider email.Provider
	bcryptCost    int
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenIssuer,
	emailProvider email.Provider,
	bcryptCost int,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		emailProvider: emailProvider,
		bcryptCost:    bcryptCost,
	}
}

// Register creates an unverified regular user. The account cannot reach
// protected resources until an admin approves it.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	if violations := auth.ValidatePasswordStrength(req.Password); len(violations) > 0 {
		return nil, apperrors.ErrWeakPassword.WithDetails(violations)
	}

	hashedPassword, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		Role:         models.UserRoleUser,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user registered", "email", user.Email)
	s.sendWelcomeEmail(ctx, user)

	return dto.NewUserDTO(user), nil
}

// Login verifies credentials and opens a session. An unknown email and a
// wrong password return the same error, and the unknown-email path still
// pays for a bcrypt comparison.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResult, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			auth.CheckPasswordHash(req.Password, auth.DummyHash)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// RefreshSession rotates the refresh token. The swap is conditional on the
// stored token still matching, so a concurrent refresh that lost the race
// gets rejected instead of silently forking the session.
func (s *AuthServiceImpl) RefreshSession(ctx context.Context, refreshToken string) (*dto.SessionResult, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByRefreshToken(refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		if err := s.userRepo.ClearRefreshToken(user.ID); err != nil {
			logger.CtxWithError(ctx, "failed to clear expired refresh token", err, "user_id", user.ID)
		}
		return nil, apperrors.ErrInvalidRefreshToken
	}

	newRefreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	expiresAt := time.Now().Add(s.tokens.RefreshTTL())
	err = s.userRepo.RotateRefreshToken(user.ID, refreshToken, newRefreshToken, expiresAt)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenMismatch) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role), user.IsVerified)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.SessionResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

// Logout clears the session server-side. Unknown tokens succeed too: the
// caller's goal state is "no session", which already holds.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := s.userRepo.FindByRefreshToken(refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.ClearRefreshToken(user.ID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged out", "user_id", user.ID)
	return nil
}

func (s *AuthServiceImpl) Profile(ctx context.Context, userID string) (*dto.UserDTO, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserDTO(user), nil
}

func (s *AuthServiceImpl) openSession(ctx context.Context, user *models.User) (*dto.SessionResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role), user.IsVerified)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Overwrites any previous token: one active session per user.
	expiresAt := time.Now().Add(s.tokens.RefreshTTL())
	if err := s.userRepo.SaveRefreshToken(user.ID, refreshToken, expiresAt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "session opened", "user_id", user.ID)

	return &dto.SessionResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

// normalizeEmail makes email comparison case-insensitive: every email is
// stored and looked up in lowercase.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthServiceImpl) sendWelcomeEmail(ctx context.Context, user *models.User) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		data := map[string]interface{}{
			"Name": user.Name,
		}
		if err := s.emailProvider.SendTemplate([]string{user.Email}, "Welcome", "welcome", data); err != nil {
			logger.Warn("failed to send welcome email", "email", user.Email, "error", err.Error())
		}
	}()
}
