package dto

import "crm_backend/internal/models"

type CreateLeadRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"omitempty,max=30"`
	Company    string  `json:"company" validate:"omitempty,max=150"`
	Source     string  `json:"source" validate:"omitempty,max=100"`
	Status     string  `json:"status" validate:"omitempty,is-lead-status"`
	Notes      string  `json:"notes" validate:"omitempty,max=2000"`
	AssignedTo *string `json:"assignedTo" validate:"omitempty,uuid"`
}

type UpdateLeadRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	Company    *string `json:"company" validate:"omitempty,max=150"`
	Source     *string `json:"source" validate:"omitempty,max=100"`
	Status     *string `json:"status" validate:"omitempty,is-lead-status"`
	Notes      *string `json:"notes" validate:"omitempty,max=2000"`
	AssignedTo *string `json:"assignedTo" validate:"omitempty,uuid"`
}

type LeadListQuery struct {
	Status     string `form:"status" json:"status" validate:"omitempty,is-lead-status"`
	AssignedTo string `form:"assignedTo" json:"assignedTo" validate:"omitempty,uuid"`
	Search     string `form:"search" json:"search"`
}

type LeadListResponse struct {
	Leads      []models.Lead `json:"leads"`
	Pagination *Pagination   `json:"pagination"`
}
