package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fastagent-dev/fastagent/internal/domain"
	"github.com/fastagent-dev/fastagent/internal/principal"
	"github.com/gin-gonic/gin"
)

// userRegistrar is the subset of UserUsecase the handler needs.
type userRegistrar interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
}

type UserHandler struct {
	users  userRegistrar
	logger *slog.Logger
}

func NewUserHandler(users userRegistrar, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

type createUserRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=256"`
	Email    string `json:"email"    binding:"required,email,max=256"`
	Password string `json:"password" binding:"required,min=8,max=256"`
}

// userResponse is the public view of a user. The password hash never
// appears in a response body.
type userResponse struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
}

// POST /v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"detail": errDuplicateEmail})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, userResponse{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		Name:      user.Name,
		Email:     user.Email,
	})
}

// GET /v1/users/me, behind RequireAuthenticated.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := principal.FromContext(c.Request.Context())
	if !ok || user.IsAnonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
		Name:      user.Name,
		Email:     user.Email,
	})
}
