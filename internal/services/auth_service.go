package services

import (
	"context"
	"strings"
	"time"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/auth"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/serializers"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "No active account found with the given credentials"

type AuthService interface {
	Register(ctx context.Context, in serializers.RegisterInput) (*models.UserProfile, error)
	Login(ctx context.Context, in serializers.LoginInput) (*models.UserProfile, *auth.TokenPair, error)
	Logout(ctx context.Context, in serializers.RefreshInput) error
	Refresh(ctx context.Context, in serializers.RefreshInput) (string, error)
}

type authService struct {
	users    repository.UserRepository
	tokens   auth.TokenService
	denylist repository.TokenRepository
	hashCost int
	logger   *logrus.Logger
}

func NewAuthService(users repository.UserRepository, tokens auth.TokenService, denylist repository.TokenRepository, logger *logrus.Logger) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		denylist: denylist,
		hashCost: bcrypt.DefaultCost,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, in serializers.RegisterInput) (*models.UserProfile, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := serializers.Validate(in); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &models.UserProfile{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Age:          *in.Age,
		PhoneNumber:  in.PhoneNumber,
		IsActive:     true,
	}

	err = s.users.Transaction(ctx, func(repo repository.UserRepository) error {
		usernameTaken, emailTaken, err := repo.ExistsByUsernameOrEmail(ctx, user.Username, user.Email)
		if err != nil {
			return err
		}
		if usernameTaken || emailTaken {
			fields := map[string]string{}
			if usernameTaken {
				fields["username"] = "A user with that username already exists."
			}
			if emailTaken {
				fields["email"] = "A user with that email already exists."
			}
			return &apperror.Error{Kind: apperror.KindConflict, Message: "User already exists", Fields: fields}
		}
		return repo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return user, nil
}

// Login reports every credential problem with the same generic error.
func (s *authService) Login(ctx context.Context, in serializers.LoginInput) (*models.UserProfile, *auth.TokenPair, error) {
	if err := serializers.Validate(in); err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil, apperror.AuthenticationInvalid(invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, apperror.AuthenticationInvalid(invalidCredentials)
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, apperror.Internal("failed to issue tokens", err)
	}
	return user, pair, nil
}

func (s *authService) Logout(ctx context.Context, in serializers.RefreshInput) error {
	if err := serializers.Validate(in); err != nil {
		return err
	}
	if err := s.tokens.Invalidate(ctx, in.Refresh); err != nil {
		return err
	}

	purged, err := s.denylist.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		s.logger.WithError(err).Warn("Failed to purge expired blacklisted tokens")
	} else if purged > 0 {
		s.logger.WithField("purged", purged).Debug("Purged expired blacklisted tokens")
	}
	return nil
}

func (s *authService) Refresh(ctx context.Context, in serializers.RefreshInput) (string, error) {
	if err := serializers.Validate(in); err != nil {
		return "", err
	}
	return s.tokens.Refresh(ctx, in.Refresh)
}
