package auth_test

import (
	"context"
	"testing"
	"time"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/auth"
	"movie-catalog/internal/config"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, cfg config.JWTConfig) (*auth.JWTService, repository.TokenRepository) {
	t.Helper()
	db := testutil.NewTestDB(t)
	tokens := repository.NewTokenRepository(db)
	return auth.NewJWTService(cfg, tokens), tokens
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, _ := newService(t, testutil.TestConfig().JWT)
	user := &models.UserProfile{ID: 42, Username: "ann"}

	pair, err := svc.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	id, err := svc.Verify(context.Background(), pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestJWTService_ClaimsCarryTokenType(t *testing.T) {
	cfg := testutil.TestConfig().JWT
	svc, _ := newService(t, cfg)

	pair, err := svc.Issue(&models.UserProfile{ID: 1, Username: "ann"})
	require.NoError(t, err)

	claims := &auth.Claims{}
	_, err = jwt.ParseWithClaims(pair.Refresh, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeRefresh, claims.TokenType)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_VerifyRejectsRefreshToken(t *testing.T) {
	svc, _ := newService(t, testutil.TestConfig().JWT)
	pair, err := svc.Issue(&models.UserProfile{ID: 1, Username: "ann"})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), pair.Refresh)

	assert.True(t, apperror.IsAuthenticationInvalid(err))
}

func TestJWTService_VerifyRejectsForeignSignature(t *testing.T) {
	cfg := testutil.TestConfig().JWT
	svc, _ := newService(t, cfg)
	cfg.Secret = "another-secret"
	other, _ := newService(t, cfg)

	pair, err := other.Issue(&models.UserProfile{ID: 1, Username: "ann"})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), pair.Access)
	assert.True(t, apperror.IsAuthenticationInvalid(err))

	_, err = svc.Verify(context.Background(), "not-a-token")
	assert.True(t, apperror.IsAuthenticationInvalid(err))
}

func TestJWTService_ExpiredAccessToken(t *testing.T) {
	cfg := testutil.TestConfig().JWT
	cfg.AccessTTL = -time.Minute
	svc, _ := newService(t, cfg)

	pair, err := svc.Issue(&models.UserProfile{ID: 1, Username: "ann"})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), pair.Access)
	assert.True(t, apperror.IsAuthenticationInvalid(err))
}

func TestJWTService_InvalidateBlacklistsRefresh(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, testutil.TestConfig().JWT)
	pair, err := svc.Issue(&models.UserProfile{ID: 7, Username: "ann"})
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	id, err := svc.Verify(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	require.NoError(t, svc.Invalidate(ctx, pair.Refresh))

	_, err = svc.Refresh(ctx, pair.Refresh)
	assert.True(t, apperror.IsAuthenticationInvalid(err))

	err = svc.Invalidate(ctx, pair.Refresh)
	assert.True(t, apperror.IsAuthenticationInvalid(err))
}

func TestJWTService_InvalidateRejectsAccessToken(t *testing.T) {
	svc, _ := newService(t, testutil.TestConfig().JWT)
	pair, err := svc.Issue(&models.UserProfile{ID: 7, Username: "ann"})
	require.NoError(t, err)

	err = svc.Invalidate(context.Background(), pair.Access)

	assert.True(t, apperror.IsAuthenticationInvalid(err))
}
