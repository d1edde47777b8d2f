package models

type Category struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	CategoryName string  `gorm:"not null;size:64" json:"category_name"`
	Genres       []Genre `gorm:"foreignKey:CategoryID" json:"genres,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

type Genre struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	GenreName  string `gorm:"not null;size:64;index" json:"genre_name"`
	CategoryID *uint  `gorm:"index" json:"category_id"`
}

func (Genre) TableName() string {
	return "genres"
}

type Country struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CountryName string `gorm:"not null;size:64;index" json:"country_name"`
}

func (Country) TableName() string {
	return "countries"
}

type Director struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DirectorName string `gorm:"not null;size:64;index" json:"director_name"`
}

func (Director) TableName() string {
	return "directors"
}

type Actor struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ActorName string `gorm:"not null;size:64;index" json:"actor_name"`
}

func (Actor) TableName() string {
	return "actors"
}
