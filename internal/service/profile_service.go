package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"unite-match/internal/domain"
	"unite-match/internal/repository"
)

// ProfileService coordina la resolución de identidad y la creación de cuentas.
type ProfileService struct {
	logger *zap.Logger
	users  repository.UserRepository
	cache  ProfileCache
}

// ProfileCache guarda cuentas resueltas por subject para lecturas repetidas.
// Las cuentas nunca se mutan desde este servicio, así que no hay invalidación.
type ProfileCache interface {
	Get(ctx context.Context, subject string) (domain.UserAccount, bool)
	Set(ctx context.Context, account domain.UserAccount)
}

var (
	ErrMissingIdentity   = errors.New("missing identity subject")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrAlreadyRegistered = errors.New("account already registered")
)

// initialRating es el rating con el que arranca toda cuenta nueva.
const initialRating = 1500

func NewProfileService(logger *zap.Logger, users repository.UserRepository, cache ProfileCache) *ProfileService {
	return &ProfileService{
		logger: logger,
		users:  users,
		cache:  cache,
	}
}

// FetchProfile devuelve la cuenta ligada al subject verificado.
func (s *ProfileService) FetchProfile(ctx context.Context, subject string) (domain.UserAccount, error) {
	if s.users == nil {
		return domain.UserAccount{}, errors.New("profile service not configured")
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return domain.UserAccount{}, ErrMissingIdentity
	}

	if s.cache != nil {
		if account, ok := s.cache.Get(ctx, subject); ok {
			return account, nil
		}
	}

	account, err := s.users.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserAccount{}, ErrProfileNotFound
		}
		return domain.UserAccount{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, account)
	}
	return account, nil
}

// CreateProfile valida el payload, deriva la identidad de Discord y crea la
// cuenta. Garantiza a lo sumo una cuenta por subject: además del chequeo de
// existencia, el insert es condicional y un empate concurrente devuelve el
// mismo conflicto.
func (s *ProfileService) CreateProfile(ctx context.Context, subject string, profile domain.ExternalProfile, req CreateProfileRequest) (domain.UserAccount, error) {
	if s.users == nil {
		return domain.UserAccount{}, errors.New("profile service not configured")
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return domain.UserAccount{}, ErrMissingIdentity
	}
	if strings.TrimSpace(profile.Subject) == "" {
		return domain.UserAccount{}, &ValidationError{
			Field:   "external_profile.subject",
			Message: "external profile subject is required",
		}
	}

	input, err := validateCreateProfile(req)
	if err != nil {
		return domain.UserAccount{}, err
	}

	identity := deriveDiscordIdentity(profile)

	if _, err := s.users.GetBySubject(ctx, subject); err == nil {
		return domain.UserAccount{}, ErrAlreadyRegistered
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.UserAccount{}, err
	}

	now := time.Now().UTC().Unix()
	account := domain.UserAccount{
		UserID:               subject,
		AuthSubject:          subject,
		DiscordUsername:      identity.Username,
		DiscordDiscriminator: identity.Discriminator,
		DiscordAvatarURL:     identity.AvatarURL,
		AppUsername:          identity.Username,
		TrainerName:          input.TrainerName,
		SocialHandle:         input.SocialHandle,
		PreferredRoles:       input.PreferredRoles,
		Bio:                  input.Bio,
		Rating:               initialRating,
		PeakRating:           initialRating,
		MatchCount:           0,
		WinCount:             0,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	created, err := s.users.CreateIfAbsent(ctx, account)
	if err != nil {
		return domain.UserAccount{}, err
	}
	if !created {
		return domain.UserAccount{}, ErrAlreadyRegistered
	}

	if s.logger != nil {
		s.logger.Info("profile created",
			zap.String("subject", subject),
			zap.String("trainer_name", account.TrainerName),
		)
	}

	if s.cache != nil {
		s.cache.Set(ctx, account)
	}
	return account, nil
}
