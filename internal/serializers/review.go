package serializers

import (
	"time"

	"movie-catalog/internal/models"
)

// ReviewOutput is the nested review shape of the movie detail.
type ReviewOutput struct {
	ID         uint       `json:"id"`
	User       UserSimple `json:"user"`
	Text       string     `json:"text"`
	CreateDate string     `json:"create_date"`
	Parent     *uint      `json:"parent"`
	CountLike  int64      `json:"count_like"`
}

func NewReviewOutput(r *models.Review, likes int64) ReviewOutput {
	return ReviewOutput{
		ID:         r.ID,
		User:       NewUserSimple(&r.User),
		Text:       r.Text,
		CreateDate: formatReviewDate(r.CreateDate),
		Parent:     r.ParentID,
		CountLike:  likes,
	}
}

func NewReviewList(reviews []models.Review, likes map[uint]int64) []ReviewOutput {
	out := make([]ReviewOutput, len(reviews))
	for i := range reviews {
		out[i] = NewReviewOutput(&reviews[i], likes[reviews[i].ID])
	}
	return out
}

// ReviewInput creates or edits a review. The author comes from the access token.
type ReviewInput struct {
	Movie  uint   `json:"movie" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Parent *uint  `json:"parent"`
}

func NewReviewInput(r *models.Review) ReviewInput {
	in := ReviewInput{Movie: r.MovieID, Text: r.Text}
	if r.ParentID != nil {
		parent := *r.ParentID
		in.Parent = &parent
	}
	return in
}

func (in ReviewInput) Apply(r *models.Review) {
	r.MovieID = in.Movie
	r.Text = in.Text
	r.ParentID = in.Parent
}

// ReviewRecord is the flat review shape returned by the review endpoints.
type ReviewRecord struct {
	ID         uint   `json:"id"`
	User       uint   `json:"user"`
	Movie      uint   `json:"movie"`
	Text       string `json:"text"`
	Parent     *uint  `json:"parent"`
	CreateDate string `json:"create_date"`
}

func NewReviewRecord(r *models.Review) ReviewRecord {
	return ReviewRecord{
		ID:         r.ID,
		User:       r.UserID,
		Movie:      r.MovieID,
		Text:       r.Text,
		Parent:     r.ParentID,
		CreateDate: formatReviewDate(r.CreateDate),
	}
}

type RatingInput struct {
	Movie uint `json:"movie" validate:"required"`
	Stars int  `json:"stars" validate:"required,min=1,max=10"`
}

func NewRatingInput(r *models.Rating) RatingInput {
	return RatingInput{Movie: r.MovieID, Stars: r.Score}
}

func (in RatingInput) Apply(r *models.Rating) {
	r.MovieID = in.Movie
	r.Score = in.Stars
}

type ReviewLikeInput struct {
	Review uint `json:"review" validate:"required"`
}

func NewReviewLikeInput(l *models.ReviewLike) ReviewLikeInput {
	return ReviewLikeInput{Review: l.ReviewID}
}

func (in ReviewLikeInput) Apply(l *models.ReviewLike) {
	l.ReviewID = in.Review
}

// FavoriteInput is empty: a favorites list only belongs to its owner.
type FavoriteInput struct{}

func NewFavoriteInput(*models.Favorite) FavoriteInput {
	return FavoriteInput{}
}

func (FavoriteInput) Apply(*models.Favorite) {}

type FavoriteMovieInput struct {
	Favorite uint `json:"favorite" validate:"required"`
	Movie    uint `json:"movie" validate:"required"`
}

func NewFavoriteMovieInput(f *models.FavoriteMovie) FavoriteMovieInput {
	return FavoriteMovieInput{Favorite: f.FavoriteID, Movie: f.MovieID}
}

func (in FavoriteMovieInput) Apply(f *models.FavoriteMovie) {
	if f.FavoriteID != in.Favorite {
		f.Favorite = models.Favorite{}
	}
	f.FavoriteID = in.Favorite
	f.MovieID = in.Movie
}

type HistoryInput struct {
	Movie    uint       `json:"movie" validate:"required"`
	ViewedAt *time.Time `json:"viewed_at"`
}

func NewHistoryInput(h *models.History) HistoryInput {
	viewed := h.ViewedAt
	return HistoryInput{Movie: h.MovieID, ViewedAt: &viewed}
}

func (in HistoryInput) Apply(h *models.History) {
	h.MovieID = in.Movie
	if in.ViewedAt != nil {
		h.ViewedAt = in.ViewedAt.UTC()
	}
}
