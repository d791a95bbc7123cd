package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"crm_backend/internal/auth"
	"crm_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// CreateUser inserts a user directly, hashing the raw password placed in
// PasswordHash. Users are verified by default so they can use the API
// without an admin approval step.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User, rawPassword string) {
	t.Helper()

	hashed, err := auth.HashPassword(rawPassword, 4)
	require.NoError(t, err, "hashing test password must not fail")
	user.PasswordHash = hashed

	if user.Role == "" {
		user.Role = models.UserRoleUser
	}
	user.IsVerified = true

	require.NoError(t, db.Create(user).Error, "creating test user must not fail")
}

// CreateAndLoginUser inserts a user and logs in through the API,
// returning the issued access token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, email, password string, role models.UserRole) (string, *models.User) {
	t.Helper()

	user := &models.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	CreateUser(t, ts.DB, user, password)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: "+bodyStr)

	var loginResponse struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.AccessToken)

	return loginResponse.AccessToken, user
}

// CreateAndLoginAdmin creates an admin with a unique email and returns
// its access token.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	t.Helper()
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, "Test Admin", email, "Password123!", models.UserRoleAdmin)
}
