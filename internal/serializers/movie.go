package serializers

import "movie-catalog/internal/models"

type MovieList struct {
	ID          uint          `json:"id"`
	MovieImage  string        `json:"movie_image"`
	MovieName   string        `json:"movie_name"`
	Year        string        `json:"year"`
	Country     []CountryName `json:"country"`
	Genre       []GenreName   `json:"genre"`
	StatusMovie string        `json:"status_movie"`
}

type MovieLanguageOutput struct {
	Language string `json:"language"`
	Video    string `json:"video"`
}

type MomentOutput struct {
	ID              uint   `json:"id"`
	Label           string `json:"label"`
	PositionSeconds int    `json:"position_seconds"`
	Image           string `json:"image"`
}

type MovieDetail struct {
	MovieName     string                `json:"movie_name"`
	MovieImage    string                `json:"movie_image"`
	Year          string                `json:"year"`
	Country       []CountryName         `json:"country"`
	Director      []DirectorName        `json:"director"`
	Genre         []GenreName           `json:"genre"`
	Types         string                `json:"types"`
	MovieTime     int                   `json:"movie_time"`
	Actor         []ActorName           `json:"actor"`
	MovieTrailer  string                `json:"movie_trailer"`
	Description   string                `json:"description"`
	Slogan        string                `json:"slogan"`
	StatusMovie   string                `json:"status_movie"`
	MovieVideos   []MovieLanguageOutput `json:"movie_videos"`
	MovieMoments  []MomentOutput        `json:"movie_moments"`
	AverageRating float64               `json:"average_rating"`
	CountPeople   int64                 `json:"count_people"`
	MovieReview   []ReviewOutput        `json:"movie_review"`
}

func NewMovieListItem(m *models.Movie) MovieList {
	return MovieList{
		ID:          m.ID,
		MovieImage:  m.MovieImage,
		MovieName:   m.MovieName,
		Year:        formatYear(m.Year),
		Country:     countryNames(m.Countries),
		Genre:       genreNames(m.Genres),
		StatusMovie: m.StatusMovie,
	}
}

func NewMovieList(movies []models.Movie) []MovieList {
	out := make([]MovieList, len(movies))
	for i := range movies {
		out[i] = NewMovieListItem(&movies[i])
	}
	return out
}

// NewMovieDetail renders a fully loaded movie with its derived rating fields
// and its reviews, whose like counts are looked up in likes.
func NewMovieDetail(m *models.Movie, summary models.RatingSummary, reviews []models.Review, likes map[uint]int64) MovieDetail {
	videos := make([]MovieLanguageOutput, len(m.Languages))
	for i, l := range m.Languages {
		videos[i] = MovieLanguageOutput{Language: l.Language, Video: l.Video}
	}

	moments := make([]MomentOutput, len(m.Moments))
	for i, mo := range m.Moments {
		moments[i] = MomentOutput{ID: mo.ID, Label: mo.Label, PositionSeconds: mo.PositionSeconds, Image: mo.Image}
	}

	return MovieDetail{
		MovieName:     m.MovieName,
		MovieImage:    m.MovieImage,
		Year:          formatYear(m.Year),
		Country:       countryNames(m.Countries),
		Director:      directorNames(m.Directors),
		Genre:         genreNames(m.Genres),
		Types:         m.Types,
		MovieTime:     m.MovieTime,
		Actor:         actorNames(m.Actors),
		MovieTrailer:  m.MovieTrailer,
		Description:   m.Description,
		Slogan:        m.Slogan,
		StatusMovie:   m.StatusMovie,
		MovieVideos:   videos,
		MovieMoments:  moments,
		AverageRating: summary.AverageRating,
		CountPeople:   summary.CountPeople,
		MovieReview:   NewReviewList(reviews, likes),
	}
}
