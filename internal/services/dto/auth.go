package dto

import (
	"time"

	"crm_backend/internal/models"

	"github.com/google/uuid"
)

// RegisterRequest deliberately has no role field: public registration
// always creates a regular user.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResult is what the session operations hand back to the transport
// layer, which decides how tokens reach the client.
type SessionResult struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"-"`
	User         *UserDTO `json:"user"`
}

type UserDTO struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       models.UserRole `json:"role"`
	IsVerified bool            `json:"isVerified"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func NewUserDTO(user *models.User) *UserDTO {
	return &UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}
