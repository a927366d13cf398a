package auth

import (
	"net/http"
	"strings"

	"fleetflow-service/internal/middleware"
	"fleetflow-service/internal/pkg/response"
	service "fleetflow-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.Service
}

func NewAuthHandler(authService *service.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an operator and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "email and password are required", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout invalidates the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		response.Unauthorized(c, "missing bearer token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), tokenString); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated operator's identity.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.MustGetClaims(c)
	response.Success(c, http.StatusOK, "operator retrieved", gin.H{
		"email": claims.Subject,
		"name":  claims.Name,
		"role":  claims.Role,
	})
}

// Roles lists the operator roster for the login screen.
func (h *AuthHandler) Roles(c *gin.Context) {
	response.Success(c, http.StatusOK, "roles retrieved", gin.H{
		"roles": h.authService.Roles(),
	})
}
