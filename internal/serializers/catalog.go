package serializers

import "movie-catalog/internal/models"

type CategoryList struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"category_name"`
}

type CategoryDetail struct {
	CategoryName string      `json:"category_name"`
	Genres       []GenreList `json:"genres"`
}

type GenreList struct {
	ID        uint   `json:"id"`
	GenreName string `json:"genre_name"`
}

type GenreName struct {
	GenreName string `json:"genre_name"`
}

type GenreDetail struct {
	GenreName  string      `json:"genre_name"`
	MovieGenre []MovieList `json:"movie_genre"`
}

type CountryList struct {
	ID          uint   `json:"id"`
	CountryName string `json:"country_name"`
}

type CountryName struct {
	CountryName string `json:"country_name"`
}

type CountryDetail struct {
	CountryName  string      `json:"country_name"`
	MovieCountry []MovieList `json:"movie_country"`
}

type DirectorList struct {
	ID           uint   `json:"id"`
	DirectorName string `json:"director_name"`
}

type DirectorName struct {
	DirectorName string `json:"director_name"`
}

type DirectorDetail struct {
	DirectorName  string      `json:"director_name"`
	DirectorMovie []MovieList `json:"director_movie"`
}

type ActorList struct {
	ID        uint   `json:"id"`
	ActorName string `json:"actor_name"`
}

type ActorName struct {
	ActorName string `json:"actor_name"`
}

type ActorDetail struct {
	ActorName  string      `json:"actor_name"`
	ActorMovie []MovieList `json:"actor_movie"`
}

func NewCategoryList(items []models.Category) []CategoryList {
	out := make([]CategoryList, len(items))
	for i, c := range items {
		out[i] = CategoryList{ID: c.ID, CategoryName: c.CategoryName}
	}
	return out
}

func NewCategoryDetail(c *models.Category) CategoryDetail {
	return CategoryDetail{CategoryName: c.CategoryName, Genres: NewGenreList(c.Genres)}
}

func NewGenreList(items []models.Genre) []GenreList {
	out := make([]GenreList, len(items))
	for i, g := range items {
		out[i] = GenreList{ID: g.ID, GenreName: g.GenreName}
	}
	return out
}

func NewGenreDetail(g *models.Genre, movies []models.Movie) GenreDetail {
	return GenreDetail{GenreName: g.GenreName, MovieGenre: NewMovieList(movies)}
}

func NewCountryList(items []models.Country) []CountryList {
	out := make([]CountryList, len(items))
	for i, c := range items {
		out[i] = CountryList{ID: c.ID, CountryName: c.CountryName}
	}
	return out
}

func NewCountryDetail(c *models.Country, movies []models.Movie) CountryDetail {
	return CountryDetail{CountryName: c.CountryName, MovieCountry: NewMovieList(movies)}
}

func NewDirectorList(items []models.Director) []DirectorList {
	out := make([]DirectorList, len(items))
	for i, d := range items {
		out[i] = DirectorList{ID: d.ID, DirectorName: d.DirectorName}
	}
	return out
}

func NewDirectorDetail(d *models.Director, movies []models.Movie) DirectorDetail {
	return DirectorDetail{DirectorName: d.DirectorName, DirectorMovie: NewMovieList(movies)}
}

func NewActorList(items []models.Actor) []ActorList {
	out := make([]ActorList, len(items))
	for i, a := range items {
		out[i] = ActorList{ID: a.ID, ActorName: a.ActorName}
	}
	return out
}

func NewActorDetail(a *models.Actor, movies []models.Movie) ActorDetail {
	return ActorDetail{ActorName: a.ActorName, ActorMovie: NewMovieList(movies)}
}

func genreNames(items []models.Genre) []GenreName {
	out := make([]GenreName, len(items))
	for i, g := range items {
		out[i] = GenreName{GenreName: g.GenreName}
	}
	return out
}

func countryNames(items []models.Country) []CountryName {
	out := make([]CountryName, len(items))
	for i, c := range items {
		out[i] = CountryName{CountryName: c.CountryName}
	}
	return out
}

func directorNames(items []models.Director) []DirectorName {
	out := make([]DirectorName, len(items))
	for i, d := range items {
		out[i] = DirectorName{DirectorName: d.DirectorName}
	}
	return out
}

func actorNames(items []models.Actor) []ActorName {
	out := make([]ActorName, len(items))
	for i, a := range items {
		out[i] = ActorName{ActorName: a.ActorName}
	}
	return out
}
