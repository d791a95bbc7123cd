package handlers

import (
	"net/http"

	"crm_backend/internal/middleware"
	"crm_backend/internal/models"
	"crm_backend/internal/services"
	"crm_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the admin-only user management endpoints.
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	admin := rg.Group("/admin/users")
	admin.Use(authMW, middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListUsers)
		admin.PUT("/:userId/verify", h.VerifyUser)
		admin.PUT("/:userId/role", h.UpdateRole)
		admin.DELETE("/:userId", h.DeleteUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, pageSize := ParsePagination(c)

	response, err := h.userService.ListUsers(c.Request.Context(), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"users":      response.Users,
		"pagination": response.Pagination,
	})
}

func (h *UserHandler) VerifyUser(c *gin.Context) {
	var req dto.VerifyUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID := c.Param("userId")
	if err := h.userService.VerifyUser(c.Request.Context(), userID, req.Action); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	message := "User approved"
	if req.Action == "reject" {
		message = "User rejected and removed"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID := c.Param("userId")
	user, err := h.userService.UpdateRole(c.Request.Context(), userID, models.UserRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	userID := c.Param("userId")
	if err := h.userService.DeleteUser(c.Request.Context(), actorID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted",
	})
}
