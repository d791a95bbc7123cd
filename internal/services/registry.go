package services

import (
	"crm_backend/internal/email"
)

// ServiceContainer holds all services of the application.
type ServiceContainer struct {
	AuthService     AuthService
	UserService     UserService
	CustomerService CustomerService
	LeadService     LeadService
	EmailService    email.Provider
}
