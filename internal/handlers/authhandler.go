package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/dtos"
)

type AuthHandler struct {
	Provider *auth.Provider
}

func NewAuthHandler(p *auth.Provider) *AuthHandler {
	return &AuthHandler{Provider: p}
}

// SignUp is the POST /auth/signup endpoint. It materializes the
// profile and signs the new user in.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dtos.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if _, err := h.Provider.SignUp(c.Request.Context(), req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	s, err := h.Provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.SessionResponse{
		UserID: s.UserID.String(),
		Email:  s.Email,
		Token:  s.Token,
	})
}

// SignIn is the POST /auth/signin endpoint.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dtos.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	s, err := h.Provider.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.SessionResponse{
		UserID: s.UserID.String(),
		Email:  s.Email,
		Token:  s.Token,
	})
}

// RequireAuth verifies the bearer token and stamps the caller identity
// onto the request context for ContextIdentity to read.
func RequireAuth(p *auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		s, err := p.Verify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), s.UserID))
		c.Next()
	}
}
