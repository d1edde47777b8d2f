package services

import (
	"context"
	"iter"

	"movie-catalog/internal/models"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/repository"
)

// CatalogService serves the reference entities. Each detail view lists the
// movies linked to the entity.
type CatalogService interface {
	ListCategories(ctx context.Context, page pagination.Request) ([]models.Category, int64, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	ListGenres(ctx context.Context, page pagination.Request) ([]models.Genre, int64, error)
	GetGenre(ctx context.Context, id uint) (*models.Genre, []models.Movie, error)
	ListCountries(ctx context.Context, page pagination.Request) ([]models.Country, int64, error)
	GetCountry(ctx context.Context, id uint) (*models.Country, []models.Movie, error)
	ListDirectors(ctx context.Context, page pagination.Request) ([]models.Director, int64, error)
	GetDirector(ctx context.Context, id uint) (*models.Director, []models.Movie, error)
	ListActors(ctx context.Context, page pagination.Request) ([]models.Actor, int64, error)
	GetActor(ctx context.Context, id uint) (*models.Actor, []models.Movie, error)
}

type catalogService struct {
	catalog repository.CatalogRepository
	movies  repository.MovieRepository
}

func NewCatalogService(catalog repository.CatalogRepository, movies repository.MovieRepository) CatalogService {
	return &catalogService{
		catalog: catalog,
		movies:  movies,
	}
}

func collect(seq iter.Seq2[models.Movie, error]) ([]models.Movie, error) {
	movies := []models.Movie{}
	for movie, err := range seq {
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

// withMovies loads an entity and then the movies linked to it.
func withMovies[M any](ctx context.Context, id uint,
	find func(context.Context, uint) (*M, error),
	related func(context.Context, uint) iter.Seq2[models.Movie, error],
) (*M, []models.Movie, error) {
	entity, err := find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	movies, err := collect(related(ctx, id))
	if err != nil {
		return nil, nil, err
	}
	return entity, movies, nil
}

func (s *catalogService) ListCategories(ctx context.Context, page pagination.Request) ([]models.Category, int64, error) {
	return s.catalog.ListCategories(ctx, page.Offset(), page.Size)
}

func (s *catalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.catalog.FindCategory(ctx, id)
}

func (s *catalogService) ListGenres(ctx context.Context, page pagination.Request) ([]models.Genre, int64, error) {
	return s.catalog.ListGenres(ctx, page.Offset(), page.Size)
}

func (s *catalogService) GetGenre(ctx context.Context, id uint) (*models.Genre, []models.Movie, error) {
	return withMovies(ctx, id, s.catalog.FindGenre, s.movies.ByGenre)
}

func (s *catalogService) ListCountries(ctx context.Context, page pagination.Request) ([]models.Country, int64, error) {
	return s.catalog.ListCountries(ctx, page.Offset(), page.Size)
}

func (s *catalogService) GetCountry(ctx context.Context, id uint) (*models.Country, []models.Movie, error) {
	return withMovies(ctx, id, s.catalog.FindCountry, s.movies.ByCountry)
}

func (s *catalogService) ListDirectors(ctx context.Context, page pagination.Request) ([]models.Director, int64, error) {
	return s.catalog.ListDirectors(ctx, page.Offset(), page.Size)
}

func (s *catalogService) GetDirector(ctx context.Context, id uint) (*models.Director, []models.Movie, error) {
	return withMovies(ctx, id, s.catalog.FindDirector, s.movies.ByDirector)
}

func (s *catalogService) ListActors(ctx context.Context, page pagination.Request) ([]models.Actor, int64, error) {
	return s.catalog.ListActors(ctx, page.Offset(), page.Size)
}

func (s *catalogService) GetActor(ctx context.Context, id uint) (*models.Actor, []models.Movie, error) {
	return withMovies(ctx, id, s.catalog.FindActor, s.movies.ByActor)
}
