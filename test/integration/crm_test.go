package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"crm_backend/internal/models"
	"crm_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCRUD(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "CRM User", uniqueEmail("crm"), "Password123!", models.UserRoleUser)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/customers", token, map[string]interface{}{
		"name":    "Acme Corp",
		"email":   "contact@acme.com",
		"phone":   "+77001234567",
		"company": "Acme",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		Customer models.Customer `json:"customer"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, models.CustomerStatusActive, created.Customer.Status, "status defaults to active")
	customerID := created.Customer.ID.String()

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/customers/"+customerID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Acme Corp")

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/customers/"+customerID, token, map[string]interface{}{
		"status": "inactive",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":"inactive"`)

	// Search matches by name.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/customers?search=acme", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Acme Corp")

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/customers/"+customerID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/customers/"+customerID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
}

func TestCustomerValidation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	token, _ := helpers.CreateAndLoginUser(t, ts, "CRM User", uniqueEmail("crmval"), "Password123!", models.UserRoleUser)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/customers", token, map[string]interface{}{
		"name":  "X",
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Contains(t, body, "VALIDATION_FAILED")

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/customers/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, body)
}

func TestLeadCRUDWithAssignee(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	token, owner := helpers.CreateAndLoginUser(t, ts, "Lead Owner", uniqueEmail("owner"), "Password123!", models.UserRoleUser)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", token, map[string]interface{}{
		"name":       "Hot Lead",
		"email":      "lead@example.com",
		"source":     "website",
		"assignedTo": owner.ID.String(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		Lead models.Lead `json:"lead"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, models.LeadStatusNew, created.Lead.Status, "status defaults to new")
	require.NotNil(t, created.Lead.AssignedTo)
	assert.Equal(t, owner.ID, *created.Lead.AssignedTo)
	leadID := created.Lead.ID.String()

	// Assigning to a nonexistent user is rejected.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/leads", token, map[string]interface{}{
		"name":       "Orphan Lead",
		"email":      "orphan@example.com",
		"assignedTo": "00000000-0000-0000-0000-000000000001",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/leads/"+leadID, token, map[string]interface{}{
		"status": "qualified",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, `"status":"qualified"`)

	// Filter by assignee.
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/leads?assignedTo="+owner.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Hot Lead")

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/leads/"+leadID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestDeletingUserClearsLeadAssignee(t *testing.T) {
	ts := helpers.NewTestServer(t)
	defer ts.Close()
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	token, assignee := helpers.CreateAndLoginUser(t, ts, "Assignee", uniqueEmail("assignee"), "Password123!", models.UserRoleUser)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/leads", token, map[string]interface{}{
		"name":       "Shared Lead",
		"email":      "shared@example.com",
		"assignedTo": assignee.ID.String(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		Lead models.Lead `json:"lead"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+assignee.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var lead models.Lead
	require.NoError(t, ts.DB.First(&lead, "id = ?", created.Lead.ID).Error)
	assert.Nil(t, lead.AssignedTo, "deleting a user unassigns their leads")
}
