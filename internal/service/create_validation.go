package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"unite-match/internal/domain"
)

const (
	maxTrainerNameLen  = 50
	maxSocialHandleLen = 16
	maxPreferredRoles  = 5
	maxBioLen          = 500
)

// ValidationError describe la primera regla violada en un payload de creación.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CreateProfileRequest son los campos de creación tal como llegan del caller,
// antes de validarse.
type CreateProfileRequest struct {
	TrainerName    string
	SocialHandle   *string
	PreferredRoles []string
	Bio            *string
}

// validateCreateProfile aplica las reglas en orden fijo y corta en la primera
// violación. El trainer name recortado es el valor canónico almacenado.
func validateCreateProfile(req CreateProfileRequest) (domain.CreateProfileInput, error) {
	trainerName := strings.TrimSpace(req.TrainerName)
	if trainerName == "" {
		return domain.CreateProfileInput{}, &ValidationError{
			Field:   "trainer_name",
			Message: "trainer name is required",
		}
	}
	if utf8.RuneCountInString(trainerName) > maxTrainerNameLen {
		return domain.CreateProfileInput{}, &ValidationError{
			Field:   "trainer_name",
			Message: fmt.Sprintf("trainer name must be at most %d characters", maxTrainerNameLen),
		}
	}

	if req.SocialHandle != nil {
		handle := *req.SocialHandle
		if utf8.RuneCountInString(handle) > maxSocialHandleLen {
			return domain.CreateProfileInput{}, &ValidationError{
				Field:   "social_handle",
				Message: fmt.Sprintf("social handle must be at most %d characters", maxSocialHandleLen),
			}
		}
		if !strings.HasPrefix(handle, "@") {
			return domain.CreateProfileInput{}, &ValidationError{
				Field:   "social_handle",
				Message: "social handle must start with @",
			}
		}
	}

	if len(req.PreferredRoles) > maxPreferredRoles {
		return domain.CreateProfileInput{}, &ValidationError{
			Field:   "preferred_roles",
			Message: fmt.Sprintf("at most %d preferred roles are allowed", maxPreferredRoles),
		}
	}
	roles := make([]domain.Role, 0, len(req.PreferredRoles))
	for _, raw := range req.PreferredRoles {
		role := domain.Role(raw)
		if !role.Valid() {
			return domain.CreateProfileInput{}, &ValidationError{
				Field:   "preferred_roles",
				Message: fmt.Sprintf("invalid preferred role: %s", raw),
			}
		}
		roles = append(roles, role)
	}

	if req.Bio != nil && utf8.RuneCountInString(*req.Bio) > maxBioLen {
		return domain.CreateProfileInput{}, &ValidationError{
			Field:   "bio",
			Message: fmt.Sprintf("bio must be at most %d characters", maxBioLen),
		}
	}

	return domain.CreateProfileInput{
		TrainerName:    trainerName,
		SocialHandle:   req.SocialHandle,
		PreferredRoles: roles,
		Bio:            req.Bio,
	}, nil
}
