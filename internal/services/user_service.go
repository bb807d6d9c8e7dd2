package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
	"github.com/dcamposl/resilient-auth/internal/auth"
	"github.com/dcamposl/resilient-auth/internal/models"
	"github.com/dcamposl/resilient-auth/internal/repository"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, user *models.User, messageID string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64, messageID string) (*models.User, error)
	CheckUsersExist(ctx context.Context, ids []int64, messageID string) (map[int64]bool, error)
	GetUsersByIDs(ctx context.Context, ids []int64, messageID string) ([]*models.User, error)
}

// UserService provides business logic for user registration and lookups.
type UserService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Register validates the candidate user, checks email uniqueness, hashes the
// password, and persists the record. No persistence write happens on any
// validation or uniqueness failure.
func (s *UserService) Register(ctx context.Context, user *models.User, messageID string) (*models.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}
	if exists {
		return nil, apperrors.Business(apperrors.UserAlreadyExists)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}

	candidate := *user
	candidate.Password = hashed
	saved, err := s.repo.Save(ctx, &candidate)
	if err != nil {
		// The unique index catches registrations that raced past the
		// existence check above.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Business(apperrors.UserAlreadyExists)
		}
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}

	log.Info().Str("message_id", messageID).Int64("user_id", saved.ID).Msg("User registered")
	return saved, nil
}

// GetUserByID retrieves a single user by their id.
func (s *UserService) GetUserByID(ctx context.Context, id int64, messageID string) (*models.User, error) {
	if id <= 0 {
		return nil, apperrors.Business(apperrors.UserIDRequired)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}
	if user == nil {
		return nil, apperrors.Business(apperrors.UserNotFound)
	}
	return user, nil
}

// CheckUsersExist maps each requested id to whether a user with that id is
// stored. A nil or empty id list yields an empty map without touching the
// store.
func (s *UserService) CheckUsersExist(ctx context.Context, ids []int64, messageID string) (map[int64]bool, error) {
	result := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	existing, err := s.repo.FindExistingIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}

	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}
	for _, id := range ids {
		_, ok := existingSet[id]
		result[id] = ok
	}
	return result, nil
}

// GetUsersByIDs returns the stored users for the given ids. A nil or empty
// id list yields an empty result without touching the store.
func (s *UserService) GetUsersByIDs(ctx context.Context, ids []int64, messageID string) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	users, err := s.repo.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}
	return users, nil
}
