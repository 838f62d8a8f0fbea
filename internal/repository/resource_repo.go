package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"campusshare/internal/dto"
	"campusshare/internal/model"
	"campusshare/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	FindAll(ctx context.Context, filter dto.ResourceFilter) ([]*model.Resource, error)
	RecentByUploader(ctx context.Context, uploaderID uuid.UUID, limit int) ([]*model.Resource, error)
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
	UpdateAvgRating(ctx context.Context, id uuid.UUID, avg float64) error
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return translate(r.db.WithContext(ctx).Create(resource).Error)
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("id = ?", id).
		First(&resource).Error; err != nil {
		return nil, translate(err)
	}

	return &resource, nil
}

func (r *resourceRepository) FindAll(ctx context.Context, filter dto.ResourceFilter) ([]*model.Resource, error) {
	var resources []*model.Resource

	query := r.db.WithContext(ctx).Preload("Uploader")

	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Semester != nil {
		query = query.Where("semester = ?", *filter.Semester)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		// Exact tag membership uses jsonb containment on the tags column.
		tagJSON, err := json.Marshal([]string{filter.Search})
		if err != nil {
			return nil, err
		}
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR tags @> ?::jsonb",
			like, like, string(tagJSON),
		)
	}

	if filter.Sort == "downloads" {
		query = query.Order("download_count DESC").Order("created_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&resources).Error; err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) RecentByUploader(ctx context.Context, uploaderID uuid.UUID, limit int) ([]*model.Resource, error) {
	var resources []*model.Resource
	if err := r.db.WithContext(ctx).
		Where("uploader_id = ?", uploaderID).
		Order("created_at DESC").
		Limit(limit).
		Find(&resources).Error; err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Resource{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("resource %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

func (r *resourceRepository) UpdateAvgRating(ctx context.Context, id uuid.UUID, avg float64) error {
	res := r.db.WithContext(ctx).Model(&model.Resource{}).
		Where("id = ?", id).
		UpdateColumn("avg_rating", avg)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("resource %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
