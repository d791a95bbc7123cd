package services

import (
	"context"

	"crm_backend/internal/auth"
	"crm_backend/internal/email"
	"crm_backend/internal/logger"
	"crm_backend/internal/models"
	"crm_backend/internal/repositories"
	"crm_backend/internal/services/dto"

	"crm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// UserService holds the admin-only account management operations.
type UserService interface {
	ListUsers(ctx context.Context, query *dto.UserListQuery, page, pageSize int) (*dto.UserListResponse, error)
	VerifyUser(ctx context.Context, userID, action string) error
	UpdateRole(ctx context.Context, userID string, role models.UserRole) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, actorID, userID string) error
}

type UserServiceImpl struct {
	userRepo      repositories.UserRepository
	leadRepo      repositories.LeadRepository
	emailProvider email.Provider
}

func NewUserService(
	userRepo repositories.UserRepository,
	leadRepo repositories.LeadRepository,
	emailProvider email.Provider,
) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		leadRepo:      leadRepo,
		emailProvider: emailProvider,
	}
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, query *dto.UserListQuery, page, pageSize int) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		Role:       models.UserRole(query.Role),
		IsVerified: query.IsVerified,
		Search:     query.Search,
		Page:       page,
		PageSize:   pageSize,
	}

	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, *dto.NewUserDTO(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      result,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

// VerifyUser resolves a pending account. Approve marks it verified;
// reject deletes the account outright, so the email becomes free to
// register again.
func (s *UserServiceImpl) VerifyUser(ctx context.Context, userID, action string) error {
	id, err := parseUUID(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	switch action {
	case "approve":
		if err := s.userRepo.VerifyUser(id); err != nil {
			return apperrors.InternalError(err)
		}
		logger.CtxInfo(ctx, "user approved", "user_id", id)
		s.sendApprovalEmail(user)
		return nil
	case "reject":
		if err := s.deleteUserCascade(id); err != nil {
			return err
		}
		logger.CtxInfo(ctx, "user rejected and removed", "user_id", id)
		return nil
	default:
		return apperrors.NewBadRequestError("Action must be 'approve' or 'reject'")
	}
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, userID string, role models.UserRole) (*dto.UserDTO, error) {
	id, err := parseUUID(userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	if err := auth.ValidateRole(string(role)); err != nil {
		return nil, apperrors.ErrInvalidUserRole
	}

	if err := s.userRepo.UpdateRole(id, role); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user role updated", "user_id", id, "role", role)
	return dto.NewUserDTO(user), nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return apperrors.ErrSelfDelete
	}

	id, err := parseUUID(userID)
	if err != nil {
		return apperrors.ErrUserNotFound
	}

	if _, err := s.userRepo.FindByID(id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.deleteUserCascade(id); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "user deleted", "user_id", id, "actor_id", actorID)
	return nil
}

func (s *UserServiceImpl) deleteUserCascade(id uuid.UUID) error {
	// Leads keep existing but lose their assignee.
	if err := s.leadRepo.ClearAssignee(id); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) sendApprovalEmail(user *models.User) {
	if s.emailProvider == nil {
		return
	}

	go func() {
		data := map[string]interface{}{
			"Name": user.Name,
		}
		if err := s.emailProvider.SendTemplate([]string{user.Email}, "Account approved", "account_approved", data); err != nil {
			logger.Warn("failed to send approval email", "email", user.Email, "error", err.Error())
		}
	}()
}
