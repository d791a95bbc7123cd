package dto

import "crm_backend/internal/models"

type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Company string `json:"company" validate:"omitempty,max=150"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Status  string `json:"status" validate:"omitempty,is-customer-status"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Company *string `json:"company" validate:"omitempty,max=150"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	Status  *string `json:"status" validate:"omitempty,is-customer-status"`
}

type CustomerListQuery struct {
	Status string `form:"status" json:"status" validate:"omitempty,is-customer-status"`
	Search string `form:"search" json:"search"`
}

type CustomerListResponse struct {
	Customers  []models.Customer `json:"customers"`
	Pagination *Pagination       `json:"pagination"`
}
