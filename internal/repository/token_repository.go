package repository

import (
	"context"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

// TokenRepository persists invalidated refresh token ids.
type TokenRepository interface {
	Blacklist(ctx context.Context, token *models.BlacklistedToken) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewTokenRepository(db *database.Database) TokenRepository {
	return &tokenRepository{
		db:      db.DB,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *tokenRepository) Blacklist(ctx context.Context, token *models.BlacklistedToken) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return translate(r.db.WithContext(ctx).Create(token).Error, "token")
}

func (r *tokenRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlacklistedToken{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

// PurgeExpired removes entries whose token would be rejected anyway.
func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	return result.RowsAffected, result.Error
}
