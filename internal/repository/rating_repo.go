package repository

import (
	"context"

	"campusshare/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	// Upsert inserts the rating, or overwrites score/review of the
	// existing (user, resource) row. Replaying the same rating never
	// creates a duplicate.
	Upsert(ctx context.Context, rating *model.Rating) error
	FindByUserAndResource(ctx context.Context, userID, resourceID uuid.UUID) (*model.Rating, error)
	AverageForResource(ctx context.Context, resourceID uuid.UUID) (float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "resource_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":      rating.Score,
			"review":     rating.Review,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(rating).Error)
}

func (r *ratingRepository) FindByUserAndResource(ctx context.Context, userID, resourceID uuid.UUID) (*model.Rating, error) {
	var rating model.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		First(&rating).Error; err != nil {
		return nil, translate(err)
	}

	return &rating, nil
}

func (r *ratingRepository) AverageForResource(ctx context.Context, resourceID uuid.UUID) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(score), 0)").
		Where("resource_id = ?", resourceID).
		Scan(&avg).Error
	return avg, err
}
