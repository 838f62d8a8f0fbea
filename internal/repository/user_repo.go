package repository

import (
	"context"
	"fmt"

	"campusshare/internal/model"
	"campusshare/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderboardRow is one user's standing: points plus how many resources
// they have uploaded.
type LeaderboardRow struct {
	ID          uuid.UUID
	Name        string
	Department  *string
	Points      int
	UploadCount int64
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// IncrementPoints applies a store-level `points = points + ?` update
	// and returns the new total.
	IncrementPoints(ctx context.Context, id uuid.UUID, delta int) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
	CountResources(ctx context.Context, id uuid.UUID) (int64, error)
	CountDownloads(ctx context.Context, id uuid.UUID) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *userRepository) IncrementPoints(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
	}

	var user model.User
	if err := r.db.WithContext(ctx).
		Select("points").
		Where("id = ?", id).
		Take(&user).Error; err != nil {
		return 0, translate(err)
	}

	return user.Points, nil
}

func (r *userRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow

	// created_at ASC as the secondary key keeps ties in insertion order.
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.id, users.name, users.department, users.points, COUNT(resources.id) AS upload_count").
		Joins("LEFT JOIN resources ON resources.uploader_id = users.id").
		Group("users.id").
		Order("users.points DESC").
		Order("users.created_at ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *userRepository) CountResources(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Resource{}).
		Where("uploader_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *userRepository) CountDownloads(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Download{}).
		Where("user_id = ?", id).
		Count(&count).Error
	return count, err
}
