package handlers

import (
	"net/http"
	"time"

	"crm_backend/internal/middleware"
	"crm_backend/internal/services"
	"crm_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const refreshTokenCookie = "refreshToken"

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService

	accessTTL    time.Duration
	refreshTTL   time.Duration
	secureCookie bool
}

func NewAuthHandler(
	base *BaseHandler,
	authService services.AuthService,
	accessTTL, refreshTTL time.Duration,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers the public auth routes and the authenticated
// profile route.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}

	profile := rg.Group("/profile")
	profile.Use(authMW)
	{
		profile.GET("", h.Profile)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful. Your account is pending approval.",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookies(c, session)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": session.AccessToken,
		"user":        session.User,
	})
}

// Refresh rotates the session. The refresh token only ever travels in its
// cookie, never in the body or response.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshTokenCookie)

	session, err := h.authService.RefreshSession(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearSessionCookies(c)
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookies(c, session)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": session.AccessToken,
		"user":        session.User,
	})
}

// Logout always clears the cookies and reports success, even when the
// session was already gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshTokenCookie)

	if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.clearSessionCookies(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Successfully logged out",
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// setSessionCookies writes both token cookies. The access token stays
// readable by scripts so SPAs can attach it as a Bearer header; the
// refresh token is HttpOnly.
func (h *AuthHandler) setSessionCookies(c *gin.Context, session *dto.SessionResult) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, session.AccessToken, int(h.accessTTL.Seconds()), "/", "", h.secureCookie, false)
	c.SetCookie(refreshTokenCookie, session.RefreshToken, int(h.refreshTTL.Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.secureCookie, false)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", h.secureCookie, true)
}
