package services

import (
	"context"

	"movie-catalog/internal/models"
	"movie-catalog/internal/pagination"
	"movie-catalog/internal/repository"
)

// MovieDetails is a movie with its derived rating fields and its reviews.
type MovieDetails struct {
	Movie   *models.Movie
	Rating  models.RatingSummary
	Reviews []models.Review
	Likes   map[uint]int64
}

type MovieService interface {
	List(ctx context.Context, filter models.MovieFilter, page pagination.Request) ([]models.Movie, int64, error)
	Detail(ctx context.Context, id uint) (*MovieDetails, error)
}

type movieService struct {
	movies  repository.MovieRepository
	reviews repository.ReviewRepository
}

func NewMovieService(movies repository.MovieRepository, reviews repository.ReviewRepository) MovieService {
	return &movieService{
		movies:  movies,
		reviews: reviews,
	}
}

func (s *movieService) List(ctx context.Context, filter models.MovieFilter, page pagination.Request) ([]models.Movie, int64, error) {
	return s.movies.FindAll(ctx, filter, page.Offset(), page.Size)
}

func (s *movieService) Detail(ctx context.Context, id uint) (*MovieDetails, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rating, err := s.movies.RatingSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ForMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(reviews))
	for i, r := range reviews {
		ids[i] = r.ID
	}
	likes, err := s.reviews.CountLikes(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &MovieDetails{
		Movie:   movie,
		Rating:  rating,
		Reviews: reviews,
		Likes:   likes,
	}, nil
}
