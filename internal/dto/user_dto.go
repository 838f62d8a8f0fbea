package dto

import (
	"time"

	"campusshare/internal/model"
	"github.com/google/uuid"
)

type LeaderboardEntry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Department  *string   `json:"department,omitempty"`
	Points      int       `json:"points"`
	UploadCount int64     `json:"uploadCount"`
}

type ProfileResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Department    *string           `json:"department,omitempty"`
	Year          *int              `json:"year,omitempty"`
	Points        int               `json:"points"`
	AvatarURL     *string           `json:"avatarUrl,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	ResourceCount int64             `json:"resourceCount"`
	DownloadCount int64             `json:"downloadCount"`
	RecentUploads []*model.Resource `json:"recentUploads"`
}

type DownloadResourceInfo struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Type         model.ResourceType `json:"type"`
	Subject      string             `json:"subject"`
	FileURL      string             `json:"fileUrl"`
	UploaderName string             `json:"uploaderName"`
}

type DownloadHistoryEntry struct {
	ID           uuid.UUID            `json:"id"`
	DownloadedAt time.Time            `json:"downloadedAt"`
	Resource     DownloadResourceInfo `json:"resource"`
}
