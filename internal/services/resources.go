package services

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/apperror"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"
	"movie-catalog/internal/repository"
	"movie-catalog/internal/serializers"
)

type (
	ReviewService        = ResourceService[models.Review, serializers.ReviewInput]
	RatingService        = ResourceService[models.Rating, serializers.RatingInput]
	ReviewLikeService    = ResourceService[models.ReviewLike, serializers.ReviewLikeInput]
	FavoriteService      = ResourceService[models.Favorite, serializers.FavoriteInput]
	FavoriteMovieService = ResourceService[models.FavoriteMovie, serializers.FavoriteMovieInput]
	HistoryService       = ResourceService[models.History, serializers.HistoryInput]
)

// Resources groups the services behind the user owned endpoints.
type Resources struct {
	Reviews        *ReviewService
	Ratings        *RatingService
	ReviewLikes    *ReviewLikeService
	Favorites      *FavoriteService
	FavoriteMovies *FavoriteMovieService
	History        *HistoryService
}

func missing(field string, id uint) error {
	return apperror.FieldError(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

type references struct {
	movies    repository.MovieRepository
	reviews   repository.ReviewRepository
	favorites *repository.Store[models.Favorite]
}

func (r *references) movie(ctx context.Context, id uint) error {
	exists, err := r.movies.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return missing("movie", id)
	}
	return nil
}

func (r *references) review(ctx context.Context, id uint) (*models.Review, error) {
	review, err := r.reviews.FindByID(ctx, id)
	if apperror.IsNotFound(err) {
		return nil, missing("review", id)
	}
	return review, err
}

// checkReview requires an existing movie and a parent review of that movie.
// A stored review keeps its replies on its movie and cannot move under one of
// its own replies.
func (r *references) checkReview(ctx context.Context, _ uint, m *models.Review) error {
	if err := r.movie(ctx, m.MovieID); err != nil {
		return err
	}
	if m.ID != 0 {
		stranded, err := r.reviews.CountRepliesOutside(ctx, m.ID, m.MovieID)
		if err != nil {
			return err
		}
		if stranded > 0 {
			return apperror.FieldError("movie", "A review with replies cannot move to another movie.")
		}
	}
	if m.ParentID == nil {
		return nil
	}
	if *m.ParentID == m.ID {
		return apperror.FieldError("parent", "A review cannot reply to itself.")
	}

	parent, err := r.reviews.FindByID(ctx, *m.ParentID)
	if apperror.IsNotFound(err) {
		return missing("parent", *m.ParentID)
	}
	if err != nil {
		return err
	}
	if parent.MovieID != m.MovieID {
		return apperror.FieldError("parent", "Parent review must belong to the same movie.")
	}
	if m.ID != 0 {
		return r.checkAncestors(ctx, m.ID, parent)
	}
	return nil
}

// checkAncestors walks up from parent and rejects a thread that leads back to id.
func (r *references) checkAncestors(ctx context.Context, id uint, parent *models.Review) error {
	seen := map[uint]bool{parent.ID: true}
	for parent.ParentID != nil {
		next := *parent.ParentID
		if next == id {
			return apperror.FieldError("parent", "A review cannot reply to one of its own replies.")
		}
		if seen[next] {
			return nil
		}
		seen[next] = true

		var err error
		parent, err = r.reviews.FindByID(ctx, next)
		if apperror.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *references) checkFavoriteMovie(ctx context.Context, userID uint, m *models.FavoriteMovie) error {
	favorite, err := r.favorites.Get(ctx, m.FavoriteID)
	if apperror.IsNotFound(err) {
		return missing("favorite", m.FavoriteID)
	}
	if err != nil {
		return err
	}
	if favorite.UserID != userID {
		return apperror.Forbidden("You do not have permission to perform this action.")
	}
	m.Favorite = *favorite
	return r.movie(ctx, m.MovieID)
}

func NewResources(db *database.Database, movies repository.MovieRepository, reviews repository.ReviewRepository) *Resources {
	refs := &references{
		movies:    movies,
		reviews:   reviews,
		favorites: repository.NewStore[models.Favorite](db, "favorite"),
	}

	return &Resources{
		Reviews: NewResourceService(repository.NewStore[models.Review](db, "review").WithCascade(repository.Cascade{
			Replies:    "parent_id",
			Dependents: []repository.Dependent{{Model: &models.ReviewLike{}, Column: "review_id"}},
		}), ResourceOptions[models.Review, serializers.ReviewInput]{
			NewInput: serializers.NewReviewInput,
			OwnerOf:  func(m *models.Review) uint { return m.UserID },
			SetOwner: func(m *models.Review, userID uint) { m.UserID = userID },
			Check:    refs.checkReview,
		}),

		Ratings: NewResourceService(repository.NewStore[models.Rating](db, "rating"), ResourceOptions[models.Rating, serializers.RatingInput]{
			NewInput: serializers.NewRatingInput,
			OwnerOf:  func(m *models.Rating) uint { return m.UserID },
			SetOwner: func(m *models.Rating, userID uint) { m.UserID = userID },
			Check: func(ctx context.Context, _ uint, m *models.Rating) error {
				return refs.movie(ctx, m.MovieID)
			},
			Upsert: &repository.Upsert[models.Rating]{
				Columns: []string{"movie_id", "user_id"},
				Update:  []string{"score", "updated_at"},
				Values:  func(m *models.Rating) []any { return []any{m.MovieID, m.UserID} },
			},
		}),

		ReviewLikes: NewResourceService(repository.NewStore[models.ReviewLike](db, "review like"), ResourceOptions[models.ReviewLike, serializers.ReviewLikeInput]{
			NewInput: serializers.NewReviewLikeInput,
			OwnerOf:  func(m *models.ReviewLike) uint { return m.UserID },
			SetOwner: func(m *models.ReviewLike, userID uint) { m.UserID = userID },
			Check: func(ctx context.Context, _ uint, m *models.ReviewLike) error {
				_, err := refs.review(ctx, m.ReviewID)
				return err
			},
			Upsert: &repository.Upsert[models.ReviewLike]{
				Columns: []string{"review_id", "user_id"},
				Values:  func(m *models.ReviewLike) []any { return []any{m.ReviewID, m.UserID} },
			},
		}),

		Favorites: NewResourceService(repository.NewStore[models.Favorite](db, "favorite").WithCascade(repository.Cascade{
			Dependents: []repository.Dependent{{Model: &models.FavoriteMovie{}, Column: "favorite_id"}},
		}), ResourceOptions[models.Favorite, serializers.FavoriteInput]{
			NewInput: serializers.NewFavoriteInput,
			OwnerOf:  func(m *models.Favorite) uint { return m.UserID },
			SetOwner: func(m *models.Favorite, userID uint) { m.UserID = userID },
			Scope:    func(userID uint) repository.Scope { return repository.OwnedBy("user_id", userID) },
		}),

		FavoriteMovies: NewResourceService(repository.NewStore[models.FavoriteMovie](db, "favorite movie", "Favorite"), ResourceOptions[models.FavoriteMovie, serializers.FavoriteMovieInput]{
			NewInput: serializers.NewFavoriteMovieInput,
			OwnerOf:  func(m *models.FavoriteMovie) uint { return m.Favorite.UserID },
			Scope:    repository.FavoriteMoviesOf,
			Check:    refs.checkFavoriteMovie,
		}),

		History: NewResourceService(repository.NewStore[models.History](db, "history"), ResourceOptions[models.History, serializers.HistoryInput]{
			NewInput: serializers.NewHistoryInput,
			OwnerOf:  func(m *models.History) uint { return m.UserID },
			SetOwner: func(m *models.History, userID uint) { m.UserID = userID },
			Scope:    func(userID uint) repository.Scope { return repository.OwnedBy("user_id", userID) },
			Check: func(ctx context.Context, _ uint, m *models.History) error {
				if m.ViewedAt.IsZero() {
					m.ViewedAt = time.Now().UTC()
				}
				return refs.movie(ctx, m.MovieID)
			},
		}),
	}
}
