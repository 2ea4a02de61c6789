package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/baseline-api/internal/model"
	"github.com/jwalitptl/baseline-api/internal/service/auth"
	"github.com/jwalitptl/baseline-api/pkg/httputil"
)

type Handler struct {
	authService auth.AuthService
}

func NewHandler(authService auth.AuthService) *Handler {
	return &Handler{
		authService: authService,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/verify", h.Verify)
		authGroup.POST("/logout", h.Logout)
	}
}

// Every auth response reports how long the handler took, in milliseconds.
func elapsed(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}

func (h *Handler) Login(c *gin.Context) {
	start := time.Now()

	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Username and password required",
			"responseTime": elapsed(start),
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status, body := httputil.ErrorBody(err)
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
		}
		body["responseTime"] = elapsed(start)
		c.JSON(status, body)
		return
	}

	body := gin.H{
		"message":      "Login successful",
		"user":         result.User,
		"responseTime": elapsed(start),
		"timestamp":    httputil.Timestamp(time.Now()),
	}
	if result.Token != "" {
		body["token"] = result.Token
	}
	c.JSON(http.StatusOK, body)
}

// Verify checks the bearer token's signature and expiry.
func (h *Handler) Verify(c *gin.Context) {
	start := time.Now()

	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":        "No token provided",
			"responseTime": elapsed(start),
		})
		return
	}

	claims, err := h.authService.VerifyToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"valid":        false,
			"error":        "Invalid token",
			"responseTime": elapsed(start),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":        true,
		"user":         claims,
		"responseTime": elapsed(start),
		"timestamp":    httputil.Timestamp(time.Now()),
	})
}

// Logout is a stateless acknowledgement; issued tokens stay valid until expiry.
func (h *Handler) Logout(c *gin.Context) {
	start := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"message":      "Logout successful",
		"responseTime": elapsed(start),
		"timestamp":    httputil.Timestamp(time.Now()),
	})
}
