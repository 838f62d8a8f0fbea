package repository

import (
	"context"

	"campusshare/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DownloadRepository interface {
	Create(ctx context.Context, download *model.Download) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Download, error)
}

type downloadRepository struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &downloadRepository{db: db}
}

func (r *downloadRepository) Create(ctx context.Context, download *model.Download) error {
	return translate(r.db.WithContext(ctx).Create(download).Error)
}

func (r *downloadRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Download, error) {
	var downloads []*model.Download
	if err := r.db.WithContext(ctx).
		Preload("Resource").
		Preload("Resource.Uploader").
		Where("user_id = ?", userID).
		Order("downloaded_at DESC").
		Find(&downloads).Error; err != nil {
		return nil, err
	}

	return downloads, nil
}
