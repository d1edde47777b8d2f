package handlers

import (
	"movie-catalog/internal/middleware"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/serializers"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} utils.StandardResponse{data=[]serializers.UserProfileOutput}
// @Failure 401 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse "Invalid page"
// @Router /user/ [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page, err := pageRequest(c, pagination.Default)
	if err != nil {
		return err
	}

	users, total, err := h.service.List(c.UserContext(), page)
	if err != nil {
		return err
	}

	return paginated(c, page, total, "Users retrieved successfully", serializers.NewUserProfileList(users))
}

// GetUser godoc
// @Summary Get user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} utils.StandardResponse{data=serializers.UserProfileOutput}
// @Failure 404 {object} utils.StandardResponse
// @Router /user/{id}/ [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User retrieved successfully", serializers.NewUserProfileOutput(user))
}

// UpdateUser godoc
// @Summary Update own profile
// @Description PUT replaces the editable fields, PATCH changes only the fields sent
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param profile body serializers.ProfileUpdateInput true "Profile"
// @Success 200 {object} utils.StandardResponse{data=serializers.UserProfileOutput}
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Router /user/{id}/ [put]
// @Router /user/{id}/ [patch]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	actorID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Update(c.UserContext(), actorID, id, c.Method() == fiber.MethodPatch, decoder(c))
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User updated successfully", serializers.NewUserProfileOutput(user))
}
