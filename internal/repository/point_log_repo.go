package repository

import (
	"context"

	"campusshare/internal/model"
	"gorm.io/gorm"
)

type PointLogRepository interface {
	Create(ctx context.Context, log *model.PointLog) error
}

type pointLogRepository struct {
	db *gorm.DB
}

func NewPointLogRepository(db *gorm.DB) PointLogRepository {
	return &pointLogRepository{db: db}
}

func (r *pointLogRepository) Create(ctx context.Context, log *model.PointLog) error {
	return translate(r.db.WithContext(ctx).Create(log).Error)
}
