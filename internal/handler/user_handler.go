package handler

import (
	"net/http"

	"github.com/auditrain/auditrain-backend/internal/model"
	"github.com/auditrain/auditrain-backend/internal/response"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles admin user management.
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// List godoc
// GET /api/v1/admin/users?role=student&class=EnMS-K1
// Returns accounts, optionally filtered by role and/or class.
func (h *UserHandler) List(c *gin.Context) {
	var role *model.Role
	if raw := c.Query("role"); raw != "" {
		r := model.Role(raw)
		if r != model.RoleStudent && r != model.RoleAdmin {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		role = &r
	}

	var class *string
	if raw := c.Query("class"); raw != "" {
		class = &raw
	}

	users, err := h.userService.List(c.Request.Context(), role, class)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// Get godoc
// GET /api/v1/admin/users/:email
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ResetSession godoc
// POST /api/v1/admin/users/:email/reset-session
// Clears a student's single-device session so they can log in again.
func (h *UserHandler) ResetSession(c *gin.Context) {
	if err := h.authService.ResetSession(c.Request.Context(), c.Param("email")); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
