package handlers

import (
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/serializers"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves categories, genres, countries, directors and actors.
type CatalogHandler struct {
	service services.CatalogService
}

func NewCatalogHandler(service services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (max 10)" default(4)
// @Success 200 {object} utils.StandardResponse{data=[]serializers.CategoryList}
// @Failure 404 {object} utils.StandardResponse "Invalid page"
// @Router /category/ [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	page, err := pageRequest(c, pagination.Category)
	if err != nil {
		return err
	}

	items, total, err := h.service.ListCategories(c.UserContext(), page)
	if err != nil {
		return err
	}
	return paginated(c, page, total, "Categories retrieved successfully", serializers.NewCategoryList(items))
}

// GetCategory godoc
// @Summary Get category with its genres
// @Tags catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} utils.StandardResponse{data=serializers.CategoryDetail}
// @Failure 404 {object} utils.StandardResponse
// @Router /category/{id}/ [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	category, err := h.service.GetCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Category retrieved successfully", serializers.NewCategoryDetail(category))
}

// ListGenres godoc
// @Summary List genres
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} utils.StandardResponse{data=[]serializers.GenreList}
// @Router /genre/ [get]
func (h *CatalogHandler) ListGenres(c *fiber.Ctx) error {
	page, err := pageRequest(c, pagination.Default)
	if err != nil {
		return err
	}

	items, total, err := h.service.ListGenres(c.UserContext(), page)
	if err != nil {
		return err
	}
	return paginated(c, page, total, "Genres retrieved successfully", serializers.NewGenreList(items))
}

// GetGenre godoc
// @Summary Get genre with its movies
// @Tags catalog
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} utils.StandardResponse{data=serializers.GenreDetail}
// @Failure 404 {object} utils.StandardResponse
// @Router /genre/{id}/ [get]
func (h *CatalogHandler) GetGenre(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	genre, movies, err := h.service.GetGenre(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genre retrieved successfully", serializers.NewGenreDetail(genre, movies))
}

// ListCountries godoc
// @Summary List countries
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (max 10)" default(6)
// @Success 200 {object} utils.StandardResponse{data=[]serializers.CountryList}
// @Router /country/ [get]
func (h *CatalogHandler) ListCountries(c *fiber.Ctx) error {
	page, err := pageRequest(c, pagination.Country)
	if err != nil {
		return err
	}

	items, total, err := h.service.ListCountries(c.UserContext(), page)
	if err != nil {
		return err
	}
	return paginated(c, page, total, "Countries retrieved successfully", serializers.NewCountryList(items))
}

// GetCountry godoc
// @Summary Get country with its movies
// @Tags catalog
// @Produce json
// @Param id path int true "Country ID"
// @Success 200 {object} utils.StandardResponse{data=serializers.CountryDetail}
// @Failure 404 {object} utils.StandardResponse
// @Router /country/{id}/ [get]
func (h *CatalogHandler) GetCountry(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	country, movies, err := h.service.GetCountry(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Country retrieved successfully", serializers.NewCountryDetail(country, movies))
}

// ListDirectors godoc
// @Summary List directors
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} utils.StandardResponse{data=[]serializers.DirectorList}
// @Router /director/ [get]
func (h *CatalogHandler) ListDirectors(c *fiber.Ctx) error {
	page, err := pageRequest(c, pagination.Default)
	if err != nil {
		return err
	}

	items, total, err := h.service.ListDirectors(c.UserContext(), page)
	if err != nil {
		return err
	}
	return paginated(c, page, total, "Directors retrieved successfully", serializers.NewDirectorList(items))
}

// GetDirector godoc
// @Summary Get director with their movies
// @Tags catalog
// @Produce json
// @Param id path int true "Director ID"
// @Success 200 {object} utils.StandardResponse{data=serializers.DirectorDetail}
// @Failure 404 {object} utils.StandardResponse
// @Router /director/{id}/ [get]
func (h *CatalogHandler) GetDirector(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	director, movies, err := h.service.GetDirector(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Director retrieved successfully", serializers.NewDirectorDetail(director, movies))
}

// ListActors godoc
// @Summary List actors
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} utils.StandardResponse{data=[]serializers.ActorList}
// @Router /actor/ [get]
func (h *CatalogHandler) ListActors(c *fiber.Ctx) error {
	page, err := pageRequest(c, pagination.Default)
	if err != nil {
		return err
	}

	items, total, err := h.service.ListActors(c.UserContext(), page)
	if err != nil {
		return err
	}
	return paginated(c, page, total, "Actors retrieved successfully", serializers.NewActorList(items))
}

// GetActor godoc
// @Summary Get actor with their movies
// @Tags catalog
// @Produce json
// @Param id path int true "Actor ID"
// @Success 200 {object} utils.StandardResponse{data=serializers.ActorDetail}
// @Failure 404 {object} utils.StandardResponse
// @Router /actor/{id}/ [get]
func (h *CatalogHandler) GetActor(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	actor, movies, err := h.service.GetActor(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Actor retrieved successfully", serializers.NewActorDetail(actor, movies))
}
