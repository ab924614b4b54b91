package handlers

import (
	"github.com/gin-gonic/gin"

	appctx "gyh/internal/core/context"
	"gyh/internal/domain/auth"
	"gyh/internal/infrastructure/http/v1/dto"
	"gyh/internal/infrastructure/http/v1/middleware"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service}
}

// RegisterRoutes registers auth endpoints on the public and protected groups.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)
	public.POST("/refresh", h.Refresh)

	users := protected.Group("/users")
	users.Use(middleware.RequireRole(appctx.RoleAdmin))
	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.DELETE("/:id", h.DeleteUser)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, user, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.LoginResponse{Tokens: tokens, User: dto.FromUser(user)})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, tokens)
}

// CreateUser handles POST /auth/users.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, user.ID)
}

// ListUsers handles GET /auth/users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}
	h.OK(c, out)
}

// DeleteUser handles DELETE /auth/users/:id.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
