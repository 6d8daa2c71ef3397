package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"unite-match/internal/domain"
)

// UserRepository define el contrato de persistencia para cuentas de usuario.
type UserRepository interface {
	GetBySubject(ctx context.Context, subject string) (domain.UserAccount, error)
	CreateIfAbsent(ctx context.Context, account domain.UserAccount) (bool, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) GetBySubject(ctx context.Context, subject string) (domain.UserAccount, error) {
	const query = `
		SELECT user_id, auth_subject, discord_username, discord_discriminator,
		       discord_avatar_url, app_username, trainer_name, social_handle,
		       preferred_roles, bio, rating, peak_rating, match_count, win_count,
		       created_at, updated_at
		FROM users
		WHERE auth_subject = $1
	`
	var a domain.UserAccount
	var roles []string
	err := r.pool.QueryRow(ctx, query, subject).Scan(
		&a.UserID,
		&a.AuthSubject,
		&a.DiscordUsername,
		&a.DiscordDiscriminator,
		&a.DiscordAvatarURL,
		&a.AppUsername,
		&a.TrainerName,
		&a.SocialHandle,
		&roles,
		&a.Bio,
		&a.Rating,
		&a.PeakRating,
		&a.MatchCount,
		&a.WinCount,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.UserAccount{}, err
	}
	a.PreferredRoles = make([]domain.Role, 0, len(roles))
	for _, role := range roles {
		a.PreferredRoles = append(a.PreferredRoles, domain.Role(role))
	}
	return a, nil
}

// CreateIfAbsent inserta la cuenta solo si el user_id no existe todavía.
// Devuelve false sin error cuando otra request ya creó la cuenta.
func (r *PgUserRepository) CreateIfAbsent(ctx context.Context, account domain.UserAccount) (bool, error) {
	const query = `
		INSERT INTO users (user_id, auth_subject, discord_username, discord_discriminator,
		                   discord_avatar_url, app_username, trainer_name, social_handle,
		                   preferred_roles, bio, rating, peak_rating, match_count, win_count,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id) DO NOTHING
	`
	roles := make([]string, 0, len(account.PreferredRoles))
	for _, role := range account.PreferredRoles {
		roles = append(roles, string(role))
	}
	tag, err := r.pool.Exec(ctx, query,
		account.UserID,
		account.AuthSubject,
		account.DiscordUsername,
		account.DiscordDiscriminator,
		account.DiscordAvatarURL,
		account.AppUsername,
		account.TrainerName,
		account.SocialHandle,
		roles,
		account.Bio,
		account.Rating,
		account.PeakRating,
		account.MatchCount,
		account.WinCount,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
