package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"campusshare/internal/dto"
	"campusshare/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	LeaderboardSize     = 20
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 60 * time.Second
	recentUploadsLimit  = 5
)

type UserService interface {
	Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error)
	Profile(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error)
	DownloadHistory(ctx context.Context, userID uuid.UUID) ([]dto.DownloadHistoryEntry, error)
}

type userService struct {
	store       repository.Store
	redisClient *redis.Client
}

func NewUserService(store repository.Store, redisClient *redis.Client) UserService {
	return &userService{
		store:       store,
		redisClient: redisClient,
	}
}

// Leaderboard returns the top 20 users by points. The result is cached
// in Redis with a short TTL; a stale window of a few seconds is fine for
// a ranking page.
func (s *userService) Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, leaderboardCacheKey).Result()
		if err == nil && cached != "" {
			var entries []dto.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	rows, err := s.store.Users().Leaderboard(ctx, LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			ID:          row.ID,
			Name:        row.Name,
			Department:  row.Department,
			Points:      row.Points,
			UploadCount: row.UploadCount,
		})
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := s.redisClient.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache leaderboard: %v", err)
			}
		}
	}

	return entries, nil
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resourceCount, err := s.store.Users().CountResources(ctx, id)
	if err != nil {
		return nil, err
	}
	downloadCount, err := s.store.Users().CountDownloads(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := s.store.Resources().RecentByUploader(ctx, id, recentUploadsLimit)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Department:    user.Department,
		Year:          user.Year,
		Points:        user.Points,
		AvatarURL:     user.AvatarURL,
		CreatedAt:     user.CreatedAt,
		ResourceCount: resourceCount,
		DownloadCount: downloadCount,
		RecentUploads: recent,
	}, nil
}

func (s *userService) DownloadHistory(ctx context.Context, userID uuid.UUID) ([]dto.DownloadHistoryEntry, error) {
	downloads, err := s.store.Downloads().FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.DownloadHistoryEntry, 0, len(downloads))
	for _, d := range downloads {
		entry := dto.DownloadHistoryEntry{
			ID:           d.ID,
			DownloadedAt: d.DownloadedAt,
		}
		if d.Resource != nil {
			entry.Resource = dto.DownloadResourceInfo{
				ID:      d.Resource.ID,
				Title:   d.Resource.Title,
				Type:    d.Resource.Type,
				Subject: d.Resource.Subject,
				FileURL: d.Resource.FileURL,
			}
			if d.Resource.Uploader != nil {
				entry.Resource.UploaderName = d.Resource.Uploader.Name
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
