package service

import (
	"strings"

	"unite-match/internal/domain"
)

// unknownUsername se usa cuando el perfil externo no aporta ningún nombre.
const unknownUsername = "Unknown User"

// deriveDiscordIdentity calcula los campos de presentación a partir del
// perfil externo. Los nombres legacy de Discord llevan un sufijo "#1234";
// los nuevos no tienen discriminador.
func deriveDiscordIdentity(profile domain.ExternalProfile) domain.DerivedIdentity {
	source := profile.DisplayName
	if source == "" {
		source = profile.FallbackName
	}

	username := source
	var discriminator *string
	if name, suffix, found := strings.Cut(source, "#"); found {
		username = name
		// Un "#" sin sufijo cuenta como discriminador ausente.
		if suffix != "" {
			discriminator = &suffix
		}
	}
	if username == "" {
		username = unknownUsername
	}

	var avatarURL *string
	if profile.AvatarURL != "" {
		avatarURL = &profile.AvatarURL
	}

	return domain.DerivedIdentity{
		Username:      username,
		Discriminator: discriminator,
		AvatarURL:     avatarURL,
	}
}
