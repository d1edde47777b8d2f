package repository

import (
	"context"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository reads the reference entities movies are classified by.
type CatalogRepository interface {
	ListCategories(ctx context.Context, offset, limit int) ([]models.Category, int64, error)
	FindCategory(ctx context.Context, id uint) (*models.Category, error)
	ListGenres(ctx context.Context, offset, limit int) ([]models.Genre, int64, error)
	FindGenre(ctx context.Context, id uint) (*models.Genre, error)
	ListCountries(ctx context.Context, offset, limit int) ([]models.Country, int64, error)
	FindCountry(ctx context.Context, id uint) (*models.Country, error)
	ListDirectors(ctx context.Context, offset, limit int) ([]models.Director, int64, error)
	FindDirector(ctx context.Context, id uint) (*models.Director, error)
	ListActors(ctx context.Context, offset, limit int) ([]models.Actor, int64, error)
	FindActor(ctx context.Context, id uint) (*models.Actor, error)
}

type catalogRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewCatalogRepository(db *database.Database) CatalogRepository {
	return &catalogRepository{
		db:      db.DB,
		timeout: db.GetQueryTimeout(),
	}
}

func listPage[M any](ctx context.Context, db *gorm.DB, timeout time.Duration, offset, limit int) ([]M, int64, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	var items []M
	var total int64

	query := db.WithContext(ctx).Model(new(M))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func findOne[M any](ctx context.Context, db *gorm.DB, timeout time.Duration, id uint, entity string, preloads ...string) (*M, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	query := db.WithContext(ctx)
	for _, p := range preloads {
		query = query.Preload(p, func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	}

	var m M
	if err := query.First(&m, id).Error; err != nil {
		return nil, translate(err, entity)
	}
	return &m, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context, offset, limit int) ([]models.Category, int64, error) {
	return listPage[models.Category](ctx, r.db, r.timeout, offset, limit)
}

func (r *catalogRepository) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	return findOne[models.Category](ctx, r.db, r.timeout, id, "category", "Genres")
}

func (r *catalogRepository) ListGenres(ctx context.Context, offset, limit int) ([]models.Genre, int64, error) {
	return listPage[models.Genre](ctx, r.db, r.timeout, offset, limit)
}

func (r *catalogRepository) FindGenre(ctx context.Context, id uint) (*models.Genre, error) {
	return findOne[models.Genre](ctx, r.db, r.timeout, id, "genre")
}

func (r *catalogRepository) ListCountries(ctx context.Context, offset, limit int) ([]models.Country, int64, error) {
	return listPage[models.Country](ctx, r.db, r.timeout, offset, limit)
}

func (r *catalogRepository) FindCountry(ctx context.Context, id uint) (*models.Country, error) {
	return findOne[models.Country](ctx, r.db, r.timeout, id, "country")
}

func (r *catalogRepository) ListDirectors(ctx context.Context, offset, limit int) ([]models.Director, int64, error) {
	return listPage[models.Director](ctx, r.db, r.timeout, offset, limit)
}

func (r *catalogRepository) FindDirector(ctx context.Context, id uint) (*models.Director, error) {
	return findOne[models.Director](ctx, r.db, r.timeout, id, "director")
}

func (r *catalogRepository) ListActors(ctx context.Context, offset, limit int) ([]models.Actor, int64, error) {
	return listPage[models.Actor](ctx, r.db, r.timeout, offset, limit)
}

func (r *catalogRepository) FindActor(ctx context.Context, id uint) (*models.Actor, error) {
	return findOne[models.Actor](ctx, r.db, r.timeout, id, "actor")
}
