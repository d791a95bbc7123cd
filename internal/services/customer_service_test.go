package services

import (
	"context"
	"testing"

	"crm_backend/internal/models"
	"crm_backend/internal/services/dto"

	"crm_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomerDefaultStatus(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	creator := uuid.New()
	customer, err := svc.CreateCustomer(context.Background(), creator, &dto.CreateCustomerRequest{
		Name:  "Acme Corp",
		Email: "contact@acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerStatusActive, customer.Status)
	assert.Equal(t, creator, customer.CreatedBy)

	inactive, err := svc.CreateCustomer(context.Background(), creator, &dto.CreateCustomerRequest{
		Name:   "Dormant Ltd",
		Email:  "info@dormant.test",
		Status: "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerStatusInactive, inactive.Status)
}

func TestUpdateCustomerPartialFields(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	customer := &models.Customer{
		Name:      "Acme Corp",
		Email:     "contact@acme.test",
		Phone:     "555-0100",
		Status:    models.CustomerStatusActive,
		CreatedBy: uuid.New(),
	}
	require.NoError(t, repo.Create(customer))

	phone := "555-0199"
	status := "inactive"
	updated, err := svc.UpdateCustomer(context.Background(), customer.ID.String(), &dto.UpdateCustomerRequest{
		Phone:  &phone,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", updated.Phone)
	assert.Equal(t, models.CustomerStatusInactive, updated.Status)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "contact@acme.test", updated.Email)
}

func TestCustomerNotFoundPaths(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.GetCustomer(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)

	_, err = svc.GetCustomer(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)

	_, err = svc.UpdateCustomer(context.Background(), uuid.NewString(), &dto.UpdateCustomerRequest{})
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)

	err = svc.DeleteCustomer(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestListCustomersFilter(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	creator := uuid.New()
	require.NoError(t, repo.Create(&models.Customer{Name: "Acme Corp", Email: "a@acme.test", Status: models.CustomerStatusActive, CreatedBy: creator}))
	require.NoError(t, repo.Create(&models.Customer{Name: "Globex", Email: "g@globex.test", Status: models.CustomerStatusInactive, CreatedBy: creator}))

	result, err := svc.ListCustomers(context.Background(), &dto.CustomerListQuery{Status: "inactive"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Customers, 1)
	assert.Equal(t, "Globex", result.Customers[0].Name)

	result, err = svc.ListCustomers(context.Background(), &dto.CustomerListQuery{Search: "acme"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Customers, 1)
	assert.Equal(t, "Acme Corp", result.Customers[0].Name)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestDeleteCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	customer := &models.Customer{Name: "Acme Corp", Email: "a@acme.test", Status: models.CustomerStatusActive, CreatedBy: uuid.New()}
	require.NoError(t, repo.Create(customer))

	require.NoError(t, svc.DeleteCustomer(context.Background(), customer.ID.String()))

	_, err := svc.GetCustomer(context.Background(), customer.ID.String())
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}
