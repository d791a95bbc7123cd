package auth

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidateRole rejects any role outside the known set.
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleUser:
		return nil
	default:
		return errors.New("invalid role")
	}
}
