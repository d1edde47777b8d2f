package models

import "time"

type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_rating_movie_user" json:"movie"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_movie_user;index" json:"user"`
	Score     int       `gorm:"not null" json:"stars"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

// Review is a movie review. ParentID threads replies under another review of
// the same movie.
type Review struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	MovieID    uint        `gorm:"not null;index" json:"movie"`
	UserID     uint        `gorm:"not null;index" json:"user"`
	ParentID   *uint       `gorm:"index" json:"parent"`
	Text       string      `gorm:"type:text;not null" json:"text"`
	CreateDate time.Time   `gorm:"autoCreateTime;index" json:"create_date"`
	UpdatedAt  time.Time   `json:"updated_at"`
	User       UserProfile `gorm:"foreignKey:UserID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

type ReviewLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_like_review_user" json:"review"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_review_user;index" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReviewLike) TableName() string {
	return "review_likes"
}
