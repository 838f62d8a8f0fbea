package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"campusshare/internal/dto"
	"campusshare/internal/model"
	"campusshare/internal/repository"
	"campusshare/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ResourceService interface {
	Create(ctx context.Context, req dto.CreateResourceRequest) (*model.Resource, int, error)
	List(ctx context.Context, filter dto.ResourceFilter) ([]*model.Resource, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	RecordDownload(ctx context.Context, resourceID, userID uuid.UUID) (string, error)
	Rate(ctx context.Context, resourceID, userID uuid.UUID, score int, review *string) (float64, *model.Rating, error)
}

type resourceService struct {
	store            repository.Store
	search           SearchService
	redisClient      *redis.Client
	downloadCooldown time.Duration
	ratingCooldown   time.Duration
}

func NewResourceService(store repository.Store, search SearchService, redisClient *redis.Client, downloadCooldown, ratingCooldown time.Duration) ResourceService {
	return &resourceService{
		store:            store,
		search:           search,
		redisClient:      redisClient,
		downloadCooldown: downloadCooldown,
		ratingCooldown:   ratingCooldown,
	}
}

// Create inserts the resource with zero counters and awards UPLOAD
// points to the uploader, as one transaction.
func (s *resourceService) Create(ctx context.Context, req dto.CreateResourceRequest) (*model.Resource, int, error) {
	resourceType := model.ResourceType(req.Type)
	if !resourceType.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown resource type %q", apperror.ErrInvalidInput, req.Type)
	}

	uploaderID, err := uuid.Parse(req.UploaderID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: malformed uploader id", apperror.ErrInvalidInput)
	}

	resource := &model.Resource{
		Title:       req.Title,
		Description: req.Description,
		Type:        resourceType,
		Subject:     req.Subject,
		Semester:    req.Semester,
		Year:        req.Year,
		FileURL:     req.FileURL,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		Tags:        datatypes.NewJSONSlice(req.Tags),
		UploaderID:  uploaderID,
	}

	var uploaderPoints int
	err = s.store.Transaction(ctx, func(st repository.Store) error {
		// The uploader must exist before we create a resource owned by it.
		if _, err := st.Users().FindByID(ctx, uploaderID); err != nil {
			return err
		}

		if err := st.Resources().Create(ctx, resource); err != nil {
			return err
		}

		points, err := AwardPoints(ctx, st, uploaderID, model.ActionUpload, &resource.ID)
		if err != nil {
			return err
		}
		uploaderPoints = points
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	// Best-effort secondary index; never fails the request.
	if s.search != nil {
		r := *resource
		go func() {
			if err := s.search.IndexResource(&r); err != nil {
				log.Printf("Failed to index resource %s: %v", r.ID, err)
			}
		}()
	}

	return resource, uploaderPoints, nil
}

func (s *resourceService) List(ctx context.Context, filter dto.ResourceFilter) ([]*model.Resource, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.store.Resources().FindAll(ctx, filter)
}

func (s *resourceService) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	return s.store.Resources().FindByID(ctx, id)
}

// RecordDownload appends a download event, bumps the resource counter and
// awards DOWNLOAD points to the uploader (not the downloader), as one
// transaction. It returns the file URL for the caller to open.
//
// Downloads are deliberately not deduplicated: the same user downloading
// the same resource five times creates five rows and five awards.
func (s *resourceService) RecordDownload(ctx context.Context, resourceID, userID uuid.UUID) (string, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "download", s.downloadCooldown)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", fmt.Errorf("%w: please wait before downloading again", apperror.ErrRateLimitExceeded)
	}

	var fileURL string
	err = s.store.Transaction(ctx, func(st repository.Store) error {
		resource, err := st.Resources().FindByID(ctx, resourceID)
		if err != nil {
			return err
		}

		if err := st.Downloads().Create(ctx, &model.Download{
			UserID:     userID,
			ResourceID: resourceID,
		}); err != nil {
			return err
		}

		if err := st.Resources().IncrementDownloadCount(ctx, resourceID); err != nil {
			return err
		}

		if _, err := AwardPoints(ctx, st, resource.UploaderID, model.ActionDownload, &resourceID); err != nil {
			return err
		}

		fileURL = resource.FileURL
		return nil
	})
	if err != nil {
		return "", err
	}

	return fileURL, nil
}

// Rate upserts the user's rating, recomputes the resource average and
// awards RATING points to the uploader, as one transaction. Points are
// awarded on every call, edits included.
func (s *resourceService) Rate(ctx context.Context, resourceID, userID uuid.UUID, score int, review *string) (float64, *model.Rating, error) {
	if score < 1 || score > 5 {
		return 0, nil, fmt.Errorf("%w: score must be between 1 and 5", apperror.ErrInvalidInput)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "rating", s.ratingCooldown)
	if err != nil {
		return 0, nil, err
	}
	if !allowed {
		return 0, nil, fmt.Errorf("%w: please wait before rating again", apperror.ErrRateLimitExceeded)
	}

	var (
		avg    float64
		rating *model.Rating
	)
	err = s.store.Transaction(ctx, func(st repository.Store) error {
		resource, err := st.Resources().FindByID(ctx, resourceID)
		if err != nil {
			return err
		}

		if err := st.Ratings().Upsert(ctx, &model.Rating{
			UserID:     userID,
			ResourceID: resourceID,
			Score:      score,
			Review:     review,
		}); err != nil {
			return err
		}

		newAvg, err := st.Ratings().AverageForResource(ctx, resourceID)
		if err != nil {
			return err
		}
		if err := st.Resources().UpdateAvgRating(ctx, resourceID, newAvg); err != nil {
			return err
		}

		if _, err := AwardPoints(ctx, st, resource.UploaderID, model.ActionRating, &resourceID); err != nil {
			return err
		}

		stored, err := st.Ratings().FindByUserAndResource(ctx, userID, resourceID)
		if err != nil {
			return err
		}

		avg = newAvg
		rating = stored
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	return avg, rating, nil
}
