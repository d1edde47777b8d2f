package handlers

import (
	"strconv"
	"strings"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/models"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/serializers"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MovieHandler struct {
	service services.MovieService
}

func NewMovieHandler(service services.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

func optionalID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperror.FieldError(key, "A valid integer is required.")
	}
	return uint(id), nil
}

// GetAllMovies godoc
// @Summary List movies
// @Description Paginated movie list with search and filters
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page (max 10)" default(5)
// @Param search query string false "Search by movie name"
// @Param genre query int false "Filter by genre ID"
// @Param country query int false "Filter by country ID"
// @Param status_movie query string false "Filter by status (golden, simple)"
// @Success 200 {object} utils.StandardResponse{data=[]serializers.MovieList}
// @Failure 404 {object} utils.StandardResponse "Invalid page"
// @Router /movie/ [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	page, err := pageRequest(c, pagination.Movie)
	if err != nil {
		return err
	}

	genreID, err := optionalID(c, "genre")
	if err != nil {
		return err
	}
	countryID, err := optionalID(c, "country")
	if err != nil {
		return err
	}

	filter := models.MovieFilter{
		Search:      c.Query("search"),
		GenreID:     genreID,
		CountryID:   countryID,
		StatusMovie: strings.ToLower(c.Query("status_movie")),
	}

	movies, total, err := h.service.List(c.UserContext(), filter, page)
	if err != nil {
		return err
	}

	return paginated(c, page, total, "Movies retrieved successfully", serializers.NewMovieList(movies))
}

// GetMovieByID godoc
// @Summary Get movie detail
// @Description Movie with people, videos, moments, rating summary and reviews
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse{data=serializers.MovieDetail}
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movie/{id}/ [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	details, err := h.service.Detail(c.UserContext(), id)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully",
		serializers.NewMovieDetail(details.Movie, details.Rating, details.Reviews, details.Likes))
}
