package handlers

import (
	"strings"

	"movie-catalog/internal/middleware"
	"movie-catalog/internal/models"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/serializers"
	"movie-catalog/internal/services"
	"movie-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ResourceHandler exposes a ResourceService as list, create, retrieve,
// update, partial update and delete endpoints. Render picks the response
// shape of one row.
type ResourceHandler[M any, In services.Input[M]] struct {
	service *services.ResourceService[M, In]
	render  func(m *M) any
	title   string
}

func NewResourceHandler[M any, In services.Input[M]](service *services.ResourceService[M, In], render func(m *M) any) *ResourceHandler[M, In] {
	if render == nil {
		render = func(m *M) any { return m }
	}
	entity := service.Entity()
	return &ResourceHandler[M, In]{
		service: service,
		render:  render,
		title:   strings.ToUpper(entity[:1]) + entity[1:],
	}
}

func (h *ResourceHandler[M, In]) renderAll(items []M) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = h.render(&items[i])
	}
	return out
}

func (h *ResourceHandler[M, In]) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	page, err := pageRequest(c, pagination.Default)
	if err != nil {
		return err
	}

	items, total, err := h.service.List(c.UserContext(), userID, page)
	if err != nil {
		return err
	}
	return paginated(c, page, total, h.title+" list retrieved successfully", h.renderAll(items))
}

func (h *ResourceHandler[M, In]) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	m, err := h.service.Create(c.UserContext(), userID, decoder(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, h.title+" created successfully", h.render(m))
}

// Get works without authentication on public resources.
func (h *ResourceHandler[M, In]) Get(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(uint)
	id, err := parseID(c)
	if err != nil {
		return err
	}

	m, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.title+" retrieved successfully", h.render(m))
}

// Update serves PUT and PATCH. PATCH keeps the fields the body leaves out.
func (h *ResourceHandler[M, In]) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	m, err := h.service.Update(c.UserContext(), userID, id, c.Method() == fiber.MethodPatch, decoder(c))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.title+" updated successfully", h.render(m))
}

func (h *ResourceHandler[M, In]) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return utils.SuccessResponse(c, fiber.StatusOK, h.title+" deleted successfully", nil)
}

// ReviewHandler serves /review.
type ReviewHandler struct {
	*ResourceHandler[models.Review, serializers.ReviewInput]
}

// Create godoc
// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body serializers.ReviewInput true "Review"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Router /review/ [post]
func (h ReviewHandler) Create(c *fiber.Ctx) error {
	return h.ResourceHandler.Create(c)
}

// Get godoc
// @Summary Get review
// @Tags reviews
// @Produce json
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /review/{id}/ [get]
func (h ReviewHandler) Get(c *fiber.Ctx) error {
	return h.ResourceHandler.Get(c)
}

// Update godoc
// @Summary Update review
// @Description PUT replaces every field. PATCH keeps the fields the body leaves out.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param item body serializers.ReviewInput true "Review"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /review/{id}/ [put]
// @Router /review/{id}/ [patch]
func (h ReviewHandler) Update(c *fiber.Ctx) error {
	return h.ResourceHandler.Update(c)
}

// Delete godoc
// @Summary Delete review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /review/{id}/ [delete]
func (h ReviewHandler) Delete(c *fiber.Ctx) error {
	return h.ResourceHandler.Delete(c)
}

// RatingHandler serves /ratings.
type RatingHandler struct {
	*ResourceHandler[models.Rating, serializers.RatingInput]
}

// List godoc
// @Summary List ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page"
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /ratings/ [get]
func (h RatingHandler) List(c *fiber.Ctx) error {
	return h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body serializers.RatingInput true "Rating"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Router /ratings/ [post]
func (h RatingHandler) Create(c *fiber.Ctx) error {
	return h.ResourceHandler.Create(c)
}

// Get godoc
// @Summary Get rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /ratings/{id}/ [get]
func (h RatingHandler) Get(c *fiber.Ctx) error {
	return h.ResourceHandler.Get(c)
}

// Update godoc
// @Summary Update rating
// @Description PUT replaces every field. PATCH keeps the fields the body leaves out.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param item body serializers.RatingInput true "Rating"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /ratings/{id}/ [put]
// @Router /ratings/{id}/ [patch]
func (h RatingHandler) Update(c *fiber.Ctx) error {
	return h.ResourceHandler.Update(c)
}

// Delete godoc
// @Summary Delete rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /ratings/{id}/ [delete]
func (h RatingHandler) Delete(c *fiber.Ctx) error {
	return h.ResourceHandler.Delete(c)
}

// ReviewLikeHandler serves /review_likes.
type ReviewLikeHandler struct {
	*ResourceHandler[models.ReviewLike, serializers.ReviewLikeInput]
}

// List godoc
// @Summary List review likes
// @Tags review likes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page"
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /review_likes/ [get]
func (h ReviewLikeHandler) List(c *fiber.Ctx) error {
	return h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create review like
// @Tags review likes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body serializers.ReviewLikeInput true "Review like"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Router /review_likes/ [post]
func (h ReviewLikeHandler) Create(c *fiber.Ctx) error {
	return h.ResourceHandler.Create(c)
}

// Get godoc
// @Summary Get review like
// @Tags review likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /review_likes/{id}/ [get]
func (h ReviewLikeHandler) Get(c *fiber.Ctx) error {
	return h.ResourceHandler.Get(c)
}

// Update godoc
// @Summary Update review like
// @Description PUT replaces every field. PATCH keeps the fields the body leaves out.
// @Tags review likes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param item body serializers.ReviewLikeInput true "Review like"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /review_likes/{id}/ [put]
// @Router /review_likes/{id}/ [patch]
func (h ReviewLikeHandler) Update(c *fiber.Ctx) error {
	return h.ResourceHandler.Update(c)
}

// Delete godoc
// @Summary Delete review like
// @Tags review likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /review_likes/{id}/ [delete]
func (h ReviewLikeHandler) Delete(c *fiber.Ctx) error {
	return h.ResourceHandler.Delete(c)
}

// FavoriteHandler serves /favorites.
type FavoriteHandler struct {
	*ResourceHandler[models.Favorite, serializers.FavoriteInput]
}

// List godoc
// @Summary List favorites lists
// @Description Only the caller's favorites lists are listed.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page"
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorites/ [get]
func (h FavoriteHandler) List(c *fiber.Ctx) error {
	return h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create favorites list
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body serializers.FavoriteInput true "Favorites list"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Router /favorites/ [post]
func (h FavoriteHandler) Create(c *fiber.Ctx) error {
	return h.ResourceHandler.Create(c)
}

// Get godoc
// @Summary Get favorites list
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorites/{id}/ [get]
func (h FavoriteHandler) Get(c *fiber.Ctx) error {
	return h.ResourceHandler.Get(c)
}

// Update godoc
// @Summary Update favorites list
// @Description PUT replaces every field. PATCH keeps the fields the body leaves out.
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param item body serializers.FavoriteInput true "Favorites list"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorites/{id}/ [put]
// @Router /favorites/{id}/ [patch]
func (h FavoriteHandler) Update(c *fiber.Ctx) error {
	return h.ResourceHandler.Update(c)
}

// Delete godoc
// @Summary Delete favorites list
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorites/{id}/ [delete]
func (h FavoriteHandler) Delete(c *fiber.Ctx) error {
	return h.ResourceHandler.Delete(c)
}

// FavoriteMovieHandler serves /favorite-movies.
type FavoriteMovieHandler struct {
	*ResourceHandler[models.FavoriteMovie, serializers.FavoriteMovieInput]
}

// List godoc
// @Summary List favorite movies
// @Description Only the caller's favorite movies are listed.
// @Tags favorite movies
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page"
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorite-movies/ [get]
func (h FavoriteMovieHandler) List(c *fiber.Ctx) error {
	return h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create favorite movie
// @Tags favorite movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body serializers.FavoriteMovieInput true "Favorite movie"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Router /favorite-movies/ [post]
func (h FavoriteMovieHandler) Create(c *fiber.Ctx) error {
	return h.ResourceHandler.Create(c)
}

// Get godoc
// @Summary Get favorite movie
// @Tags favorite movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorite-movies/{id}/ [get]
func (h FavoriteMovieHandler) Get(c *fiber.Ctx) error {
	return h.ResourceHandler.Get(c)
}

// Update godoc
// @Summary Update favorite movie
// @Description PUT replaces every field. PATCH keeps the fields the body leaves out.
// @Tags favorite movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param item body serializers.FavoriteMovieInput true "Favorite movie"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorite-movies/{id}/ [put]
// @Router /favorite-movies/{id}/ [patch]
func (h FavoriteMovieHandler) Update(c *fiber.Ctx) error {
	return h.ResourceHandler.Update(c)
}

// Delete godoc
// @Summary Delete favorite movie
// @Tags favorite movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /favorite-movies/{id}/ [delete]
func (h FavoriteMovieHandler) Delete(c *fiber.Ctx) error {
	return h.ResourceHandler.Delete(c)
}

// HistoryHandler serves /history.
type HistoryHandler struct {
	*ResourceHandler[models.History, serializers.HistoryInput]
}

// List godoc
// @Summary List history entries
// @Description Only the caller's history entries are listed.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page"
// @Success 200 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /history/ [get]
func (h HistoryHandler) List(c *fiber.Ctx) error {
	return h.ResourceHandler.List(c)
}

// Create godoc
// @Summary Create history entry
// @Tags history
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body serializers.HistoryInput true "History entry"
// @Success 201 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 401 {object} utils.StandardResponse
// @Router /history/ [post]
func (h HistoryHandler) Create(c *fiber.Ctx) error {
	return h.ResourceHandler.Create(c)
}

// Get godoc
// @Summary Get history entry
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /history/{id}/ [get]
func (h HistoryHandler) Get(c *fiber.Ctx) error {
	return h.ResourceHandler.Get(c)
}

// Update godoc
// @Summary Update history entry
// @Description PUT replaces every field. PATCH keeps the fields the body leaves out.
// @Tags history
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param item body serializers.HistoryInput true "History entry"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /history/{id}/ [put]
// @Router /history/{id}/ [patch]
func (h HistoryHandler) Update(c *fiber.Ctx) error {
	return h.ResourceHandler.Update(c)
}

// Delete godoc
// @Summary Delete history entry
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} utils.StandardResponse
// @Failure 403 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /history/{id}/ [delete]
func (h HistoryHandler) Delete(c *fiber.Ctx) error {
	return h.ResourceHandler.Delete(c)
}

// ResourceHandlers groups the handlers of the user owned resources.
type ResourceHandlers struct {
	Reviews        ReviewHandler
	Ratings        RatingHandler
	ReviewLikes    ReviewLikeHandler
	Favorites      FavoriteHandler
	FavoriteMovies FavoriteMovieHandler
	History        HistoryHandler
}

func NewResourceHandlers(r *services.Resources) *ResourceHandlers {
	return &ResourceHandlers{
		Reviews: ReviewHandler{NewResourceHandler(r.Reviews, func(m *models.Review) any {
			return serializers.NewReviewRecord(m)
		})},
		Ratings:        RatingHandler{NewResourceHandler(r.Ratings, nil)},
		ReviewLikes:    ReviewLikeHandler{NewResourceHandler(r.ReviewLikes, nil)},
		Favorites:      FavoriteHandler{NewResourceHandler(r.Favorites, nil)},
		FavoriteMovies: FavoriteMovieHandler{NewResourceHandler(r.FavoriteMovies, nil)},
		History:        HistoryHandler{NewResourceHandler(r.History, nil)},
	}
}
