package services

import (
	"context"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/models"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/serializers"

	"github.com/sirupsen/logrus"
)

// Decoder fills v from a request body.
type Decoder func(v any) error

type UserService interface {
	List(ctx context.Context, page pagination.Request) ([]models.UserProfile, int64, error)
	Get(ctx context.Context, id uint) (*models.UserProfile, error)
	// Update edits the profile of id on behalf of actorID. A partial update
	// decodes onto the current values.
	Update(ctx context.Context, actorID, id uint, partial bool, decode Decoder) (*models.UserProfile, error)
}

type userService struct {
	users   repository.UserRepository
	storage ObjectStorage
	logger  *logrus.Logger
}

// NewUserService accepts a nil storage, in which case replaced avatars are kept.
func NewUserService(users repository.UserRepository, storage ObjectStorage, logger *logrus.Logger) UserService {
	return &userService{
		users:   users,
		storage: storage,
		logger:  logger,
	}
}

func (s *userService) List(ctx context.Context, page pagination.Request) ([]models.UserProfile, int64, error) {
	return s.users.FindAll(ctx, page.Offset(), page.Size)
}

func (s *userService) Get(ctx context.Context, id uint) (*models.UserProfile, error) {
	return s.users.FindByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, actorID, id uint, partial bool, decode Decoder) (*models.UserProfile, error) {
	var user *models.UserProfile
	var oldAvatar string

	err := s.users.Transaction(ctx, func(repo repository.UserRepository) error {
		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.ID != actorID {
			return apperror.Forbidden("You do not have permission to perform this action.")
		}

		var in serializers.ProfileUpdateInput
		if partial {
			in = serializers.NewProfileUpdateInput(current)
		}
		if err := decode(&in); err != nil {
			return err
		}
		if err := serializers.Validate(in); err != nil {
			return err
		}

		oldAvatar = current.Avatar
		in.Apply(current)
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.removeReplacedAvatar(ctx, oldAvatar, user.Avatar)
	return user, nil
}

func (s *userService) removeReplacedAvatar(ctx context.Context, oldAvatar, newAvatar string) {
	if s.storage == nil || oldAvatar == "" || oldAvatar == newAvatar || !s.storage.Owns(oldAvatar) {
		return
	}
	if err := s.storage.Delete(ctx, oldAvatar); err != nil {
		s.logger.WithError(err).Warn("Failed to delete old avatar from object storage")
	}
}
