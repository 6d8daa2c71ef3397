package domain

// UserAccount es la cuenta persistida de un entrenador, ligada a un subject
// del proveedor de identidad externo.
type UserAccount struct {
	UserID               string  `json:"user_id"`
	AuthSubject          string  `json:"auth_subject"`
	DiscordUsername      string  `json:"discord_username"`
	DiscordDiscriminator *string `json:"discord_discriminator,omitempty"`
	DiscordAvatarURL     *string `json:"discord_avatar_url,omitempty"`
	AppUsername          string  `json:"app_username"`
	TrainerName          string  `json:"trainer_name"`
	SocialHandle         *string `json:"social_handle,omitempty"`
	PreferredRoles       []Role  `json:"preferred_roles"`
	Bio                  *string `json:"bio,omitempty"`
	Rating               int     `json:"rating"`
	PeakRating           int     `json:"peak_rating"`
	MatchCount           int     `json:"match_count"`
	WinCount             int     `json:"win_count"`
	CreatedAt            int64   `json:"created_at"`
	UpdatedAt            int64   `json:"updated_at"`
}

// ExternalProfile son los datos de perfil entregados por el proveedor de
// identidad en cada request; nunca se persisten tal cual.
type ExternalProfile struct {
	Subject      string `json:"subject"`
	DisplayName  string `json:"display_name"`
	FallbackName string `json:"fallback_name"`
	AvatarURL    string `json:"avatar_url"`
}

// DerivedIdentity son los campos de presentación calculados a partir del
// perfil externo.
type DerivedIdentity struct {
	Username      string
	Discriminator *string
	AvatarURL     *string
}

// CreateProfileInput son los campos de creación ya validados y normalizados.
type CreateProfileInput struct {
	TrainerName    string
	SocialHandle   *string
	PreferredRoles []Role
	Bio            *string
}
