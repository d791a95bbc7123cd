package models

import "time"

// User holds credentials and the single active refresh token. At most one
// refresh token exists per user at any time; rotation replaces it in place.
type User struct {
	BaseModel
	Name                  string     `gorm:"not null" json:"name"`
	Email                 string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash          string     `gorm:"not null" json:"-"`
	Role                  UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsVerified            bool       `gorm:"default:false" json:"isVerified"`
	RefreshToken          *string    `gorm:"uniqueIndex" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
}
