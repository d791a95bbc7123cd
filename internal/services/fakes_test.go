package services

import (
	"strings"
	"sync"
	"time"

	"crm_backend/internal/models"
	"crm_backend/internal/repositories"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Role = user.Role
	stored.IsVerified = user.IsVerified
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) VerifyUser(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.IsVerified = true
	return nil
}

func (r *fakeUserRepo) UpdateRole(id uuid.UUID, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) FindWithFilter(criteria repositories.UserFilter) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if criteria.Role != "" && u.Role != criteria.Role {
			continue
		}
		if criteria.IsVerified != nil && u.IsVerified != *criteria.IsVerified {
			continue
		}
		if criteria.Search != "" {
			s := strings.ToLower(criteria.Search)
			if !strings.Contains(strings.ToLower(u.Email), s) && !strings.Contains(strings.ToLower(u.Name), s) {
				continue
			}
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) CountAdmins() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, u := range r.users {
		if u.Role == models.UserRoleAdmin {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) FindByRefreshToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.RefreshToken != nil && *u.RefreshToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) SaveRefreshToken(id uuid.UUID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.RefreshToken = &token
	u.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) RotateRefreshToken(id uuid.UUID, oldToken, newToken string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.RefreshToken == nil || *u.RefreshToken != oldToken {
		return repositories.ErrTokenMismatch
	}
	u.RefreshToken = &newToken
	u.RefreshTokenExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) ClearRefreshToken(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.RefreshToken = nil
		u.RefreshTokenExpiresAt = nil
	}
	return nil
}

func (r *fakeUserRepo) ClearExpiredRefreshTokens(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cleared int64
	for _, u := range r.users {
		if u.RefreshToken != nil && u.RefreshTokenExpiresAt != nil && u.RefreshTokenExpiresAt.Before(now) {
			u.RefreshToken = nil
			u.RefreshTokenExpiresAt = nil
			cleared++
		}
	}
	return cleared, nil
}

// fakeLeadRepo covers the slice of LeadRepository the user service needs.
type fakeLeadRepo struct {
	mu    sync.Mutex
	leads map[uuid.UUID]*models.Lead
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: make(map[uuid.UUID]*models.Lead)}
}

func (r *fakeLeadRepo) FindByID(id uuid.UUID) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.leads[id]; ok {
		clone := *l
		return &clone, nil
	}
	return nil, repositories.ErrLeadNotFound
}

func (r *fakeLeadRepo) Create(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	clone := *lead
	r.leads[lead.ID] = &clone
	return nil
}

func (r *fakeLeadRepo) Update(lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[lead.ID]; !ok {
		return repositories.ErrLeadNotFound
	}
	clone := *lead
	r.leads[lead.ID] = &clone
	return nil
}

func (r *fakeLeadRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[id]; !ok {
		return repositories.ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

func (r *fakeLeadRepo) FindWithFilter(criteria repositories.LeadFilter) ([]models.Lead, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Lead
	for _, l := range r.leads {
		if criteria.Status != "" && l.Status != criteria.Status {
			continue
		}
		if criteria.AssignedTo != nil {
			if l.AssignedTo == nil || *l.AssignedTo != *criteria.AssignedTo {
				continue
			}
		}
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeadRepo) ClearAssignee(userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leads {
		if l.AssignedTo != nil && *l.AssignedTo == userID {
			l.AssignedTo = nil
		}
	}
	return nil
}

// fakeCustomerRepo is an in-memory CustomerRepository.
type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*models.Customer)}
}

func (r *fakeCustomerRepo) FindByID(id uuid.UUID) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, repositories.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) Update(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return repositories.ErrCustomerNotFound
	}
	clone := *customer
	r.customers[customer.ID] = &clone
	return nil
}

func (r *fakeCustomerRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return repositories.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) FindWithFilter(criteria repositories.CustomerFilter) ([]models.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Customer
	for _, c := range r.customers {
		if criteria.Status != "" && c.Status != criteria.Status {
			continue
		}
		if criteria.Search != "" {
			s := strings.ToLower(criteria.Search)
			if !strings.Contains(strings.ToLower(c.Name), s) &&
				!strings.Contains(strings.ToLower(c.Email), s) &&
				!strings.Contains(strings.ToLower(c.Company), s) {
				continue
			}
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}
