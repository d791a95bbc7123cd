package repositories

import (
	"errors"
	"time"

	"crm_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadRepository interface {
	FindByID(id uuid.UUID) (*models.Lead, error)
	Create(lead *models.Lead) error
	Update(lead *models.Lead) error
	Delete(id uuid.UUID) error
	FindWithFilter(criteria LeadFilter) ([]models.Lead, int64, error)
	ClearAssignee(userID uuid.UUID) error
}

type LeadFilter struct {
	Status     models.LeadStatus
	AssignedTo *uuid.UUID
	Search     string
	Page       int
	PageSize   int
}

type LeadRepositoryImpl struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &LeadRepositoryImpl{db: db}
}

func (r *LeadRepositoryImpl) FindByID(id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := r.db.First(&lead, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepositoryImpl) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *LeadRepositoryImpl) Update(lead *models.Lead) error {
	result := r.db.Model(lead).Updates(map[string]interface{}{
		"name":        lead.Name,
		"email":       lead.Email,
		"phone":       lead.Phone,
		"company":     lead.Company,
		"source":      lead.Source,
		"status":      lead.Status,
		"notes":       lead.Notes,
		"assigned_to": lead.AssignedTo,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepositoryImpl) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Lead{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepositoryImpl) FindWithFilter(criteria LeadFilter) ([]models.Lead, int64, error) {
	var leads []models.Lead
	query := r.db.Model(&models.Lead{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *criteria.AssignedTo)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&leads).Error
	return leads, total, err
}

// ClearAssignee detaches all leads from a user before the user is deleted.
func (r *LeadRepositoryImpl) ClearAssignee(userID uuid.UUID) error {
	return r.db.Model(&models.Lead{}).
		Where("assigned_to = ?", userID).
		Update("assigned_to", nil).Error
}
