package services

import (
	"context"

	"crm_backend/internal/logger"
	"crm_backend/internal/models"
	"crm_backend/internal/repositories"
	"crm_backend/internal/services/dto"

	"crm_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type CustomerService interface {
	ListCustomers(ctx context.Context, query *dto.CustomerListQuery, page, pageSize int) (*dto.CustomerListResponse, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, creatorID uuid.UUID, req *dto.CreateCustomerRequest) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type CustomerServiceImpl struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &CustomerServiceImpl{customerRepo: customerRepo}
}

func (s *CustomerServiceImpl) ListCustomers(ctx context.Context, query *dto.CustomerListQuery, page, pageSize int) (*dto.CustomerListResponse, error) {
	filter := repositories.CustomerFilter{
		Status:   models.CustomerStatus(query.Status),
		Search:   query.Search,
		Page:     page,
		PageSize: pageSize,
	}

	customers, total, err := s.customerRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CustomerListResponse{
		Customers:  customers,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

func (s *CustomerServiceImpl) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	customerID, err := parseUUID(id)
	if err != nil {
		return nil, apperrors.ErrCustomerNotFound
	}

	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCustomerNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return customer, nil
}

func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, creatorID uuid.UUID, req *dto.CreateCustomerRequest) (*models.Customer, error) {
	status := models.CustomerStatus(req.Status)
	if status == "" {
		status = models.CustomerStatusActive
	}

	customer := &models.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Address:   req.Address,
		Status:    status,
		CreatedBy: creatorID,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "customer created", "customer_id", customer.ID)
	return customer, nil
}

func (s *CustomerServiceImpl) UpdateCustomer(ctx context.Context, id string, req *dto.UpdateCustomerRequest) (*models.Customer, error) {
	customerID, err := parseUUID(id)
	if err != nil {
		return nil, apperrors.ErrCustomerNotFound
	}

	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCustomerNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Company != nil {
		customer.Company = *req.Company
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Status != nil {
		customer.Status = models.CustomerStatus(*req.Status)
	}

	if err := s.customerRepo.Update(customer); err != nil {
		if apperrors.Is(err, repositories.ErrCustomerNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "customer updated", "customer_id", customer.ID)
	return customer, nil
}

func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, id string) error {
	customerID, err := parseUUID(id)
	if err != nil {
		return apperrors.ErrCustomerNotFound
	}

	if err := s.customerRepo.Delete(customerID); err != nil {
		if apperrors.Is(err, repositories.ErrCustomerNotFound) {
			return apperrors.ErrCustomerNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "customer deleted", "customer_id", customerID)
	return nil
}
