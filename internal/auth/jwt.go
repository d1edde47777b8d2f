// Package auth issues, verifies and revokes the API's JWT token pairs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/config"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string
	Refresh string
}

// TokenService is the token capability the API depends on.
type TokenService interface {
	Issue(user *models.UserProfile) (*TokenPair, error)
	Invalidate(ctx context.Context, refresh string) error
	Verify(ctx context.Context, access string) (uint, error)
	Refresh(ctx context.Context, refresh string) (string, error)
}

// Claims extends jwt.RegisteredClaims with the token kind.
type Claims struct {
	jwt.RegisteredClaims

	Username  string `json:"username"`
	TokenType string `json:"token_type"`
}

func (c *Claims) userID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// JWTService signs HS256 tokens and keeps revoked refresh token ids in the
// blacklist table.
type JWTService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	tokens     repository.TokenRepository
	now        func() time.Time
}

func NewJWTService(cfg config.JWTConfig, tokens repository.TokenRepository) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		tokens:     tokens,
		now:        time.Now,
	}
}

func (s *JWTService) Issue(user *models.UserProfile) (*TokenPair, error) {
	access, err := s.sign(user.ID, user.Username, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.sign(user.ID, user.Username, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Verify checks an access token and returns the user id it was issued to.
func (s *JWTService) Verify(ctx context.Context, access string) (uint, error) {
	claims, err := s.parse(access, TokenTypeAccess)
	if err != nil {
		return 0, err
	}
	id, err := claims.userID()
	if err != nil {
		return 0, apperror.AuthenticationInvalid("Token is invalid or expired")
	}
	return id, nil
}

// Invalidate blacklists a refresh token. Revoking the same token twice fails.
func (s *JWTService) Invalidate(ctx context.Context, refresh string) error {
	claims, err := s.live(ctx, refresh)
	if err != nil {
		return err
	}
	id, err := claims.userID()
	if err != nil {
		return apperror.AuthenticationInvalid("Token is invalid or expired")
	}

	err = s.tokens.Blacklist(ctx, &models.BlacklistedToken{
		JTI:       claims.ID,
		UserID:    id,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	if apperror.IsConflict(err) {
		return apperror.AuthenticationInvalid("Token is blacklisted")
	}
	return err
}

// Refresh mints a new access token from a live refresh token.
func (s *JWTService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.live(ctx, refresh)
	if err != nil {
		return "", err
	}
	id, err := claims.userID()
	if err != nil {
		return "", apperror.AuthenticationInvalid("Token is invalid or expired")
	}
	return s.sign(id, claims.Username, TokenTypeAccess, s.accessTTL)
}

func (s *JWTService) live(ctx context.Context, refresh string) (*Claims, error) {
	claims, err := s.parse(refresh, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	blacklisted, err := s.tokens.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, apperror.AuthenticationInvalid("Token is blacklisted")
	}
	return claims, nil
}

func (s *JWTService) sign(userID uint, username, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Username:  username,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) parse(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.AuthenticationInvalid("Token is expired")
		}
		return nil, apperror.AuthenticationInvalid("Token is invalid or expired")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, apperror.AuthenticationInvalid("Token has wrong type")
	}
	return claims, nil
}
