package auth

import (
	"net/http"
	"time"

	"vacationstay/internal/domain"
	"vacationstay/internal/pkg/response"
	"vacationstay/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	tokenTTL time.Duration
}

func NewHandler(service *Service, tokenTTL time.Duration) *Handler {
	return &Handler{service: service, tokenTTL: tokenTTL}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
	}
	if protected != nil {
		protected.GET("/auth/me", h.Me)
		protected.PUT("/auth/me", h.UpdateProfile)
	}
}

// RegisterInternalRoutes mounts the OAuth gateway callback; the group must
// carry the internal token guard.
func (h *Handler) RegisterInternalRoutes(internal *gin.RouterGroup) {
	internal.POST("/auth/oauth", h.OAuthLogin)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailAlreadyExists:
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "A user with this email already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, h.tokenPayload(result))
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, h.tokenPayload(result))
}

func (h *Handler) OAuthLogin(c *gin.Context) {
	var req OAuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.LoginWithProvider(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid provider")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to sign in with provider")
		}
		return
	}

	response.Success(c, http.StatusOK, h.tokenPayload(result))
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load profile")
		return
	}

	response.Success(c, http.StatusOK, toUserPublic(user))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid profile fields", details)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update profile")
		return
	}

	response.Success(c, http.StatusOK, toUserPublic(user))
}

func (h *Handler) tokenPayload(result *LoginResult) gin.H {
	return gin.H{
		"token":      result.Token,
		"type":       "Bearer",
		"expires_in": int64(h.tokenTTL.Seconds()),
		"user":       toUserPublic(result.User),
	}
}

func toUserPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Provider:  string(u.Provider),
		AvatarURL: u.AvatarURL,
		Roles:     u.Roles,
	}
}
