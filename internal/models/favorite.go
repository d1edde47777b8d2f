package models

import "time"

// Favorite is a user's single favorites list.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user"`
	CreatedAt time.Time `json:"created_date"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type FavoriteMovie struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	FavoriteID uint     `gorm:"not null;uniqueIndex:idx_favorite_movie" json:"favorite"`
	MovieID    uint     `gorm:"not null;uniqueIndex:idx_favorite_movie;index" json:"movie"`
	Favorite   Favorite `gorm:"foreignKey:FavoriteID" json:"-"`
}

func (FavoriteMovie) TableName() string {
	return "favorite_movies"
}

type History struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"user"`
	MovieID  uint      `gorm:"not null;index" json:"movie"`
	ViewedAt time.Time `gorm:"index" json:"viewed_at"`
}

func (History) TableName() string {
	return "histories"
}
