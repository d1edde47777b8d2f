package repository

import (
	"context"
	"iter"
	"strings"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

// movieBatchSize bounds each query issued while iterating related movies.
const movieBatchSize = 50

type MovieRepository interface {
	FindAll(ctx context.Context, filter models.MovieFilter, offset, limit int) ([]models.Movie, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	Exists(ctx context.Context, id uint) (bool, error)

	// Derived rating fields
	RatingSummary(ctx context.Context, movieID uint) (models.RatingSummary, error)

	// Reverse relationship traversal. Each sequence is lazy and restartable.
	ByGenre(ctx context.Context, genreID uint) iter.Seq2[models.Movie, error]
	ByCountry(ctx context.Context, countryID uint) iter.Seq2[models.Movie, error]
	ByDirector(ctx context.Context, directorID uint) iter.Seq2[models.Movie, error]
	ByActor(ctx context.Context, actorID uint) iter.Seq2[models.Movie, error]
}

type movieRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewMovieRepository(db *database.Database) MovieRepository {
	return &movieRepository{
		db:      db.DB,
		timeout: db.GetQueryTimeout(),
	}
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order(byID)
}

func (r *movieRepository) FindAll(ctx context.Context, filter models.MovieFilter, offset, limit int) ([]models.Movie, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movies []models.Movie
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Movie{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("LOWER(movie_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if filter.GenreID != 0 {
		query = query.Where("id IN (?)", r.db.Table("movie_genres").Select("movie_id").Where("genre_id = ?", filter.GenreID))
	}
	if filter.CountryID != 0 {
		query = query.Where("id IN (?)", r.db.Table("movie_countries").Select("movie_id").Where("country_id = ?", filter.CountryID))
	}
	if filter.StatusMovie != "" {
		query = query.Where("status_movie = ?", filter.StatusMovie)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Countries", orderByID).
		Preload("Genres", orderByID).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&movies).Error; err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).
		Preload("Countries", orderByID).
		Preload("Directors", orderByID).
		Preload("Genres", orderByID).
		Preload("Actors", orderByID).
		Preload("Languages", orderByID).
		Preload("Moments", func(db *gorm.DB) *gorm.DB { return db.Order("position_seconds, id") }).
		First(&movie, id).Error
	if err != nil {
		return nil, translate(err, "movie")
	}
	return &movie, nil
}

func (r *movieRepository) Exists(ctx context.Context, id uint) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// RatingSummary averages the movie's rating scores and counts distinct
// raters. A movie without ratings averages 0.
func (r *movieRepository) RatingSummary(ctx context.Context, movieID uint) (models.RatingSummary, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var summary models.RatingSummary
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average_rating, COUNT(DISTINCT user_id) AS count_people").
		Where("movie_id = ?", movieID).
		Scan(&summary).Error
	return summary, err
}

func (r *movieRepository) ByGenre(ctx context.Context, genreID uint) iter.Seq2[models.Movie, error] {
	return r.related(ctx, "movie_genres", "genre_id", genreID)
}

func (r *movieRepository) ByCountry(ctx context.Context, countryID uint) iter.Seq2[models.Movie, error] {
	return r.related(ctx, "movie_countries", "country_id", countryID)
}

func (r *movieRepository) ByDirector(ctx context.Context, directorID uint) iter.Seq2[models.Movie, error] {
	return r.related(ctx, "movie_directors", "director_id", directorID)
}

func (r *movieRepository) ByActor(ctx context.Context, actorID uint) iter.Seq2[models.Movie, error] {
	return r.related(ctx, "movie_actors", "actor_id", actorID)
}

// related walks the movies linked through joinTable in id order, one keyset
// batch at a time.
func (r *movieRepository) related(ctx context.Context, joinTable, column string, id uint) iter.Seq2[models.Movie, error] {
	return func(yield func(models.Movie, error) bool) {
		var afterID uint
		for {
			batch, err := r.relatedBatch(ctx, joinTable, column, id, afterID)
			if err != nil {
				yield(models.Movie{}, err)
				return
			}
			for _, movie := range batch {
				if !yield(movie, nil) {
					return
				}
			}
			if len(batch) < movieBatchSize {
				return
			}
			afterID = batch[len(batch)-1].ID
		}
	}
}

func (r *movieRepository) relatedBatch(ctx context.Context, joinTable, column string, id, afterID uint) ([]models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movies []models.Movie
	err := r.db.WithContext(ctx).
		Preload("Countries", orderByID).
		Preload("Genres", orderByID).
		Where("id IN (?)", r.db.Table(joinTable).Select("movie_id").Where(column+" = ?", id)).
		Where("id > ?", afterID).
		Order("id").
		Limit(movieBatchSize).
		Find(&movies).Error
	return movies, err
}
