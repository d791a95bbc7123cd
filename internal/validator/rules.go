package validator

import (
	"log"

	"crm_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the enum rules used by the DTOs. Empty
// values pass here; 'required' handles presence separately.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-customer-status", validateCustomerStatus)
	mustRegister("is-lead-status", validateLeadStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleAdmin, models.UserRoleUser:
		return true
	default:
		return false
	}
}

func validateCustomerStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.CustomerStatus(value) {
	case models.CustomerStatusActive, models.CustomerStatusInactive:
		return true
	default:
		return false
	}
}

func validateLeadStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.LeadStatus(value) {
	case models.LeadStatusNew, models.LeadStatusContacted,
		models.LeadStatusQualified, models.LeadStatusConverted, models.LeadStatusLost:
		return true
	default:
		return false
	}
}
