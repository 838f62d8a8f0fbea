package handler

import (
	"context"

	"campusshare/internal/dto"
	"campusshare/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubResourceService returns canned values so handler tests only cover
// binding, status codes and response shapes.
type stubResourceService struct {
	resource       *model.Resource
	resources      []*model.Resource
	uploaderPoints int
	fileURL        string
	avgRating      float64
	rating         *model.Rating
	err            error

	createReq   *dto.CreateResourceRequest
	listFilter  *dto.ResourceFilter
	downloadIDs []uuid.UUID
	rateScore   int
}

func (s *stubResourceService) Create(ctx context.Context, req dto.CreateResourceRequest) (*model.Resource, int, error) {
	s.createReq = &req
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.resource, s.uploaderPoints, nil
}

func (s *stubResourceService) List(ctx context.Context, filter dto.ResourceFilter) ([]*model.Resource, error) {
	s.listFilter = &filter
	return s.resources, s.err
}

func (s *stubResourceService) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resource, nil
}

func (s *stubResourceService) RecordDownload(ctx context.Context, resourceID, userID uuid.UUID) (string, error) {
	s.downloadIDs = []uuid.UUID{resourceID, userID}
	if s.err != nil {
		return "", s.err
	}
	return s.fileURL, nil
}

func (s *stubResourceService) Rate(ctx context.Context, resourceID, userID uuid.UUID, score int, review *string) (float64, *model.Rating, error) {
	s.rateScore = score
	if s.err != nil {
		return 0, nil, s.err
	}
	return s.avgRating, s.rating, nil
}

type stubUserService struct {
	entries []dto.LeaderboardEntry
	profile *dto.ProfileResponse
	history []dto.DownloadHistoryEntry
	err     error
}

func (s *stubUserService) Leaderboard(ctx context.Context) ([]dto.LeaderboardEntry, error) {
	return s.entries, s.err
}

func (s *stubUserService) Profile(ctx context.Context, id uuid.UUID) (*dto.ProfileResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubUserService) DownloadHistory(ctx context.Context, userID uuid.UUID) ([]dto.DownloadHistoryEntry, error) {
	return s.history, s.err
}

type stubAuthService struct {
	resp *dto.AuthResponse
	user *model.User
	err  error
}

func (s *stubAuthService) Register(ctx context.Context, input dto.RegisterRequest) (*dto.AuthResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubAuthService) Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubAuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}
