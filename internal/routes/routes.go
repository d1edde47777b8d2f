package routes

import (
	"movie-catalog/internal/auth"
	"movie-catalog/internal/handlers"
	"movie-catalog/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers holds everything the router dispatches to. Upload is optional.
type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Catalog   *handlers.CatalogHandler
	Movie     *handlers.MovieHandler
	Resources *handlers.ResourceHandlers
	Upload    *handlers.UploadHandler
}

type crud interface {
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func Setup(app *fiber.App, h Handlers, tokens auth.TokenService) {
	requireAuth := middleware.RequireAuth(tokens)

	// Authentication
	app.Post("/register/", h.Auth.Register)
	app.Post("/login/", h.Auth.Login)
	app.Post("/logout/", h.Auth.Logout)
	app.Post("/token/refresh/", h.Auth.Refresh)

	users := app.Group("/user", requireAuth)
	{
		users.Get("/", h.User.ListUsers)
		users.Get("/:id/", h.User.GetUser)
		users.Put("/:id/", h.User.UpdateUser)
		users.Patch("/:id/", h.User.UpdateUser)
	}

	// Catalog, public
	app.Get("/category/", h.Catalog.ListCategories)
	app.Get("/category/:id/", h.Catalog.GetCategory)
	app.Get("/genre/", h.Catalog.ListGenres)
	app.Get("/genre/:id/", h.Catalog.GetGenre)
	app.Get("/country/", h.Catalog.ListCountries)
	app.Get("/country/:id/", h.Catalog.GetCountry)
	app.Get("/director/", h.Catalog.ListDirectors)
	app.Get("/director/:id/", h.Catalog.GetDirector)
	app.Get("/actor/", h.Catalog.ListActors)
	app.Get("/actor/:id/", h.Catalog.GetActor)

	app.Get("/movie/", h.Movie.GetAllMovies)
	app.Get("/movie/:id/", h.Movie.GetMovieByID)

	// Reviews are readable by anyone, written by their authors.
	reviews := h.Resources.Reviews
	app.Post("/review/", requireAuth, reviews.Create)
	app.Get("/review/:id/", reviews.Get)
	app.Put("/review/:id/", requireAuth, reviews.Update)
	app.Patch("/review/:id/", requireAuth, reviews.Update)
	app.Delete("/review/:id/", requireAuth, reviews.Delete)

	resource(app, "/ratings", h.Resources.Ratings, requireAuth)
	resource(app, "/review_likes", h.Resources.ReviewLikes, requireAuth)
	resource(app, "/favorites", h.Resources.Favorites, requireAuth)
	resource(app, "/favorite-movies", h.Resources.FavoriteMovies, requireAuth)
	resource(app, "/history", h.Resources.History, requireAuth)

	if h.Upload != nil {
		app.Get("/upload/presign", requireAuth, h.Upload.GetPresignedURL)
	}
}

func resource(app *fiber.App, prefix string, h crud, requireAuth fiber.Handler) {
	group := app.Group(prefix, requireAuth)
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id/", h.Get)
	group.Put("/:id/", h.Update)
	group.Patch("/:id/", h.Update)
	group.Delete("/:id/", h.Delete)
}
