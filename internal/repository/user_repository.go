package repository

import (
	"context"
	"errors"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.UserProfile) error
	Update(ctx context.Context, user *models.UserProfile) error
	FindByID(ctx context.Context, id uint) (*models.UserProfile, error)
	FindByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	FindAll(ctx context.Context, offset, limit int) ([]models.UserProfile, int64, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error)
	// Transaction runs fn with a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo UserRepository) error) error
}

type userRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{
		db:      db.DB,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.UserProfile) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return translate(r.db.WithContext(ctx).Create(user).Error, "user")
}

func (r *userRepository) Update(ctx context.Context, user *models.UserProfile) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return translate(r.db.WithContext(ctx).Save(user).Error, "user")
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var user models.UserProfile
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// FindByUsername returns nil without error when no user has the username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var user models.UserProfile
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, offset, limit int) ([]models.UserProfile, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var users []models.UserProfile
	var total int64

	query := r.db.WithContext(ctx).Model(&models.UserProfile{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var usernames, emails int64
	db := r.db.WithContext(ctx)
	if err := db.Model(&models.UserProfile{}).Where("username = ?", username).Count(&usernames).Error; err != nil {
		return false, false, err
	}
	if err := db.Model(&models.UserProfile{}).Where("email = ?", email).Count(&emails).Error; err != nil {
		return false, false, err
	}
	return usernames > 0, emails > 0, nil
}

func (r *userRepository) Transaction(ctx context.Context, fn func(repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx, timeout: r.timeout})
	})
}
