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

type LeadService interface {
	ListLeads(ctx context.Context, query *dto.LeadListQuery, page, pageSize int) (*dto.LeadListResponse, error)
	GetLead(ctx context.Context, id string) (*models.Lead, error)
	CreateLead(ctx context.Context, creatorID uuid.UUID, req *dto.CreateLeadRequest) (*models.Lead, error)
	UpdateLead(ctx context.Context, id string, req *dto.UpdateLeadRequest) (*models.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}

type LeadServiceImpl struct {
	leadRepo repositories.LeadRepository
	userRepo repositories.UserRepository
}

func NewLeadService(leadRepo repositories.LeadRepository, userRepo repositories.UserRepository) LeadService {
	return &LeadServiceImpl{
		leadRepo: leadRepo,
		userRepo: userRepo,
	}
}

func (s *LeadServiceImpl) ListLeads(ctx context.Context, query *dto.LeadListQuery, page, pageSize int) (*dto.LeadListResponse, error) {
	filter := repositories.LeadFilter{
		Status:   models.LeadStatus(query.Status),
		Search:   query.Search,
		Page:     page,
		PageSize: pageSize,
	}

	if query.AssignedTo != "" {
		assignee, err := parseUUID(query.AssignedTo)
		if err != nil {
			return nil, apperrors.NewBadRequestError("assignedTo must be a valid UUID")
		}
		filter.AssignedTo = &assignee
	}

	leads, total, err := s.leadRepo.FindWithFilter(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LeadListResponse{
		Leads:      leads,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

func (s *LeadServiceImpl) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	leadID, err := parseUUID(id)
	if err != nil {
		return nil, apperrors.ErrLeadNotFound
	}

	lead, err := s.leadRepo.FindByID(leadID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrLeadNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return lead, nil
}

func (s *LeadServiceImpl) CreateLead(ctx context.Context, creatorID uuid.UUID, req *dto.CreateLeadRequest) (*models.Lead, error) {
	status := models.LeadStatus(req.Status)
	if status == "" {
		status = models.LeadStatusNew
	}

	lead := &models.Lead{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Source:    req.Source,
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: creatorID,
	}

	if req.AssignedTo != nil {
		assignee, err := s.resolveAssignee(*req.AssignedTo)
		if err != nil {
			return nil, err
		}
		lead.AssignedTo = assignee
	}

	if err := s.leadRepo.Create(lead); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "lead created", "lead_id", lead.ID)
	return lead, nil
}

func (s *LeadServiceImpl) UpdateLead(ctx context.Context, id string, req *dto.UpdateLeadRequest) (*models.Lead, error) {
	leadID, err := parseUUID(id)
	if err != nil {
		return nil, apperrors.ErrLeadNotFound
	}

	lead, err := s.leadRepo.FindByID(leadID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrLeadNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.Source != nil {
		lead.Source = *req.Source
	}
	if req.Status != nil {
		lead.Status = models.LeadStatus(*req.Status)
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.AssignedTo != nil {
		assignee, err := s.resolveAssignee(*req.AssignedTo)
		if err != nil {
			return nil, err
		}
		lead.AssignedTo = assignee
	}

	if err := s.leadRepo.Update(lead); err != nil {
		if apperrors.Is(err, repositories.ErrLeadNotFound) {
			return nil, apperrors.ErrLeadNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "lead updated", "lead_id", lead.ID)
	return lead, nil
}

func (s *LeadServiceImpl) DeleteLead(ctx context.Context, id string) error {
	leadID, err := parseUUID(id)
	if err != nil {
		return apperrors.ErrLeadNotFound
	}

	if err := s.leadRepo.Delete(leadID); err != nil {
		if apperrors.Is(err, repositories.ErrLeadNotFound) {
			return apperrors.ErrLeadNotFound
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "lead deleted", "lead_id", leadID)
	return nil
}

// resolveAssignee verifies the target user exists. An empty string clears
// the assignment.
func (s *LeadServiceImpl) resolveAssignee(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	assignee, err := parseUUID(raw)
	if err != nil {
		return nil, apperrors.NewBadRequestError("assignedTo must be a valid UUID")
	}

	if _, err := s.userRepo.FindByID(assignee); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewBadRequestError("Assigned user does not exist")
		}
		return nil, apperrors.InternalError(err)
	}

	return &assignee, nil
}
