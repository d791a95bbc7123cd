package handlers

import (
	"net/http"

	"crm_backend/internal/middleware"
	"crm_backend/internal/services"
	"crm_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LeadHandler struct {
	*BaseHandler
	leadService services.LeadService
}

func NewLeadHandler(base *BaseHandler, leadService services.LeadService) *LeadHandler {
	return &LeadHandler{
		BaseHandler: base,
		leadService: leadService,
	}
}

func (h *LeadHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	leads := rg.Group("/leads")
	leads.Use(authMW, middleware.RequireVerified())
	{
		leads.GET("", h.ListLeads)
		leads.GET("/:id", h.GetLead)
		leads.POST("", h.CreateLead)
		leads.PUT("/:id", h.UpdateLead)
		leads.DELETE("/:id", h.DeleteLead)
	}
}

func (h *LeadHandler) ListLeads(c *gin.Context) {
	var query dto.LeadListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	page, pageSize := ParsePagination(c)

	response, err := h.leadService.ListLeads(c.Request.Context(), &query, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"leads":      response.Leads,
		"pagination": response.Pagination,
	})
}

func (h *LeadHandler) GetLead(c *gin.Context) {
	lead, err := h.leadService.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lead":    lead,
	})
}

func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	creatorID, err := uuid.Parse(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), creatorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"lead":    lead,
	})
}

func (h *LeadHandler) UpdateLead(c *gin.Context) {
	var req dto.UpdateLeadRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"lead":    lead,
	})
}

func (h *LeadHandler) DeleteLead(c *gin.Context) {
	if err := h.leadService.DeleteLead(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lead deleted",
	})
}
