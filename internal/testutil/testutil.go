package testutil

import (
	"fmt"
	"testing"
	"time"

	"movie-catalog/internal/config"
	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
)

// NewTestDB creates a migrated in-memory SQLite database that lives for the
// duration of the test.
func NewTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{
		MaxOpenConns: 1,
		QueryTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// CreateUser stores an active user whose password is the username followed by "-pass".
func CreateUser(t *testing.T, db *database.Database, username string) *models.UserProfile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(username+"-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.UserProfile{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		FirstName:    "First " + username,
		LastName:     "Last " + username,
		Age:          30,
		PhoneNumber:  "555-0100",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateMovie stores a movie released in the given year, linked to the given
// genres and countries.
func CreateMovie(t *testing.T, db *database.Database, name string, year int, genres []models.Genre, countries []models.Country) *models.Movie {
	t.Helper()

	movie := &models.Movie{
		MovieName:   name,
		MovieImage:  "https://img.example.com/" + name + ".jpg",
		Year:        time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		Types:       "1080p",
		MovieTime:   120,
		StatusMovie: models.StatusMovieSimple,
		Genres:      genres,
		Countries:   countries,
	}
	require.NoError(t, db.Create(movie).Error)
	return movie
}

// CreateMovies stores n movies named "<prefix> <i>".
func CreateMovies(t *testing.T, db *database.Database, prefix string, n int) []*models.Movie {
	t.Helper()

	movies := make([]*models.Movie, 0, n)
	for i := 1; i <= n; i++ {
		movies = append(movies, CreateMovie(t, db, fmt.Sprintf("%s %d", prefix, i), 2000+i, nil, nil))
	}
	return movies
}

func CreateGenre(t *testing.T, db *database.Database, name string, categoryID *uint) *models.Genre {
	t.Helper()

	genre := &models.Genre{GenreName: name, CategoryID: categoryID}
	require.NoError(t, db.Create(genre).Error)
	return genre
}

func CreateCountry(t *testing.T, db *database.Database, name string) *models.Country {
	t.Helper()

	country := &models.Country{CountryName: name}
	require.NoError(t, db.Create(country).Error)
	return country
}

func CreateReview(t *testing.T, db *database.Database, movieID, userID uint, text string, parentID *uint) *models.Review {
	t.Helper()

	review := &models.Review{MovieID: movieID, UserID: userID, Text: text, ParentID: parentID}
	require.NoError(t, db.Create(review).Error)
	return review
}

func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			Issuer:     "movie-catalog-test",
			AccessTTL:  5 * time.Minute,
			RefreshTTL: time.Hour,
		},
	}
}
