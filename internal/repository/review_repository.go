package repository

import (
	"context"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	ForMovie(ctx context.Context, movieID uint) ([]models.Review, error)
	CountLikes(ctx context.Context, reviewIDs []uint) (map[uint]int64, error)
	CountRepliesOutside(ctx context.Context, reviewID, movieID uint) (int64, error)
}

type reviewRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewReviewRepository(db *database.Database) ReviewRepository {
	return &reviewRepository{
		db:      db.DB,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		return nil, translate(err, "review")
	}
	return &review, nil
}

// ForMovie returns the movie's reviews oldest first with their authors.
func (r *reviewRepository) ForMovie(ctx context.Context, movieID uint) ([]models.Review, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("movie_id = ?", movieID).
		Order("create_date, id").
		Find(&reviews).Error
	return reviews, err
}

// CountLikes returns the like count per review id. Reviews without likes are
// absent from the map.
func (r *reviewRepository) CountLikes(ctx context.Context, reviewIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return counts, nil
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var rows []struct {
		ReviewID uint
		Likes    int64
	}
	err := r.db.WithContext(ctx).Model(&models.ReviewLike{}).
		Select("review_id, COUNT(*) AS likes").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ReviewID] = row.Likes
	}
	return counts, nil
}

// CountRepliesOutside counts direct replies to reviewID that belong to a movie
// other than movieID.
func (r *reviewRepository) CountRepliesOutside(ctx context.Context, reviewID, movieID uint) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("parent_id = ? AND movie_id <> ?", reviewID, movieID).
		Count(&count).Error
	return count, err
}
