package handlers

import (
	"movie-catalog/internal/apperror"
	"movie-catalog/internal/serializers"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service services.AuthService
	logger  *logrus.Logger
}

func NewAuthHandler(service services.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

func bind(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return apperror.Validation("Invalid request body", nil)
	}
	return nil
}

// Register godoc
// @Summary Register a user
// @Description Create a user profile. The password is stored as a bcrypt hash and never returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body serializers.RegisterInput true "Registration"
// @Success 201 {object} utils.StandardResponse{data=serializers.RegisteredUser}
// @Failure 400 {object} utils.StandardResponse "Validation failed"
// @Failure 409 {object} utils.StandardResponse "Username or email taken"
// @Router /register/ [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in serializers.RegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}

	user, err := h.service.Register(c.UserContext(), in)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "User registered successfully", serializers.NewRegisteredUser(user))
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for an access and a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body serializers.LoginInput true "Credentials"
// @Success 200 {object} utils.StandardResponse{data=serializers.LoginOutput}
// @Failure 401 {object} utils.StandardResponse "Invalid credentials"
// @Router /login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in serializers.LoginInput
	if err := bind(c, &in); err != nil {
		return err
	}

	user, pair, err := h.service.Login(c.UserContext(), in)
	if err != nil {
		return err
	}

	h.logger.WithField("user_id", user.ID).Debug("User logged in")
	return utils.SuccessResponse(c, fiber.StatusOK, "Login successful", serializers.LoginOutput{
		User:    serializers.UserSummary{Username: user.Username, Email: user.Email},
		Access:  pair.Access,
		Refresh: pair.Refresh,
	})
}

// Logout godoc
// @Summary Log out
// @Description Blacklist a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body serializers.RefreshInput true "Refresh token"
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse "Invalid or blacklisted token"
// @Router /logout/ [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in serializers.RefreshInput
	if err := bind(c, &in); err != nil {
		return err
	}

	if err := h.service.Logout(c.UserContext(), in); err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Logged out successfully", nil)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Mint a new access token from a live refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body serializers.RefreshInput true "Refresh token"
// @Success 200 {object} utils.StandardResponse{data=serializers.AccessOutput}
// @Failure 401 {object} utils.StandardResponse "Invalid or blacklisted token"
// @Router /token/refresh/ [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in serializers.RefreshInput
	if err := bind(c, &in); err != nil {
		return err
	}

	access, err := h.service.Refresh(c.UserContext(), in)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Token refreshed successfully", serializers.AccessOutput{Access: access})
}
