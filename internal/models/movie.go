package models

import (
	"time"
)

const (
	StatusMovieGolden = "golden"
	StatusMovieSimple = "simple"
)

type Movie struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	MovieName    string          `gorm:"not null;index;size:128" json:"movie_name"`
	MovieImage   string          `json:"movie_image"`
	Year         time.Time       `gorm:"index" json:"year"`
	Types        string          `gorm:"size:16" json:"types"`
	MovieTime    int             `json:"movie_time"`
	MovieTrailer string          `json:"movie_trailer"`
	Description  string          `gorm:"type:text" json:"description"`
	Slogan       string          `json:"slogan"`
	StatusMovie  string          `gorm:"size:16;index" json:"status_movie"`
	Countries    []Country       `gorm:"many2many:movie_countries;" json:"country,omitempty"`
	Directors    []Director      `gorm:"many2many:movie_directors;" json:"director,omitempty"`
	Genres       []Genre         `gorm:"many2many:movie_genres;" json:"genre,omitempty"`
	Actors       []Actor         `gorm:"many2many:movie_actors;" json:"actor,omitempty"`
	Languages    []MovieLanguage `gorm:"foreignKey:MovieID" json:"movie_videos,omitempty"`
	Moments      []Moment        `gorm:"foreignKey:MovieID" json:"movie_moments,omitempty"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieFilter narrows the movie listing.
type MovieFilter struct {
	Search      string
	GenreID     uint
	CountryID   uint
	StatusMovie string
}

// RatingSummary holds the derived rating fields of a movie.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	CountPeople   int64   `json:"count_people"`
}
