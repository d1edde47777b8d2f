package models

// MovieLanguage is one dubbed or subtitled video track of a movie.
type MovieLanguage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Language string `gorm:"not null;size:32" json:"language"`
	Video    string `json:"video"`
	MovieID  uint   `gorm:"index;not null" json:"movie_id"`
}

func (MovieLanguage) TableName() string {
	return "movie_languages"
}

// Moment is a still frame from a movie, positioned on its timeline.
type Moment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	MovieID         uint   `gorm:"index;not null" json:"movie_id"`
	Label           string `gorm:"size:128" json:"label"`
	PositionSeconds int    `json:"position_seconds"`
	Image           string `json:"image"`
}

func (Moment) TableName() string {
	return "moments"
}
