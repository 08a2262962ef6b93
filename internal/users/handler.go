package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	sharedauth "resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(id sharedauth.Identity) (string, error)
}

type Handler struct {
	Svc    *Service
	Tokens TokenIssuer
}

func NewHandler(svc *Service, tokens TokenIssuer) *Handler {
	return &Handler{Svc: svc, Tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterPublicRoutes attaches the unauthenticated auth routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes attaches routes that need an authenticated user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.me)
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "Name, valid email and password (min 6 characters) are required", nil)
		return
	}
	user, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, respond.CodeConflict, "User already exists", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.BadRequest(c, "Name, valid email and password (min 6 characters) are required", nil)
		default:
			_ = c.Error(err)
		}
		return
	}
	h.session(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, "Email and password are required", nil)
		return
	}
	user, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials", nil)
			return
		}
		_ = c.Error(err)
		return
	}
	h.session(c, http.StatusOK, user)
}

func (h *Handler) session(c *gin.Context, status int, user User) {
	token, err := h.Tokens.Issue(sharedauth.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.FullName,
		Picture: user.PictureURL,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	respond.Success(c, status, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(c, "user not found")
			return
		}
		_ = c.Error(err)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"user": user})
}
