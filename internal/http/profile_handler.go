package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unite-match/internal/domain"
	"unite-match/internal/service"
)

// ProfileHandler mantiene dependencias para endpoints de perfiles.
type ProfileHandler struct {
	logger      *zap.Logger
	profileServ *service.ProfileService
}

// NewProfileHandler crea una instancia de ProfileHandler con sus dependencias.
func NewProfileHandler(logger *zap.Logger, profileServ *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:      logger,
		profileServ: profileServ,
	}
}

// GetMe maneja GET /users/me.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	subject, _ := GetAuthSubject(c)

	account, err := h.profileServ.FetchProfile(c.Request.Context(), subject)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingIdentity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user identity not found in context"})
		case errors.Is(err, service.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			h.logger.Error("fetch profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account})
}

// CreateProfile maneja POST /users.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	subject, _ := GetAuthSubject(c)

	var req struct {
		ExternalProfile struct {
			Subject      string `json:"subject" binding:"required"`
			DisplayName  string `json:"display_name"`
			FallbackName string `json:"fallback_name"`
			AvatarURL    string `json:"avatar_url"`
		} `json:"external_profile" binding:"required"`
		TrainerName    string   `json:"trainer_name"`
		SocialHandle   *string  `json:"social_handle"`
		PreferredRoles []string `json:"preferred_roles"`
		Bio            *string  `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	account, err := h.profileServ.CreateProfile(c.Request.Context(), subject,
		domain.ExternalProfile{
			Subject:      req.ExternalProfile.Subject,
			DisplayName:  req.ExternalProfile.DisplayName,
			FallbackName: req.ExternalProfile.FallbackName,
			AvatarURL:    req.ExternalProfile.AvatarURL,
		},
		service.CreateProfileRequest{
			TrainerName:    req.TrainerName,
			SocialHandle:   req.SocialHandle,
			PreferredRoles: req.PreferredRoles,
			Bio:            req.Bio,
		},
	)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrMissingIdentity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "user identity not found in context"})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		case errors.Is(err, service.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "this account is already registered"})
		default:
			h.logger.Error("create profile failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create profile"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": account})
}
