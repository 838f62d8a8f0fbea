package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"campusshare/internal/dto"
	"campusshare/internal/model"
	"campusshare/internal/repository"
	"campusshare/pkg/apperror"
	"github.com/google/uuid"
)

// memStore is an in-memory repository.Store for service tests. It keeps
// the same error contract as the real store (apperror sentinels at the
// boundary) so services cannot tell the difference.
type memStore struct {
	mu        sync.Mutex
	now       time.Time
	users     []*model.User
	resources []*model.Resource
	downloads []*model.Download
	ratings   []*model.Rating
	pointLogs []*model.PointLog
}

func newMemStore() *memStore {
	return &memStore{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// tick returns a strictly increasing timestamp so ordering by created_at
// is deterministic.
func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memStore) Users() repository.UserRepository         { return &memUsers{s: s} }
func (s *memStore) Resources() repository.ResourceRepository { return &memResources{s: s} }
func (s *memStore) Downloads() repository.DownloadRepository { return &memDownloads{s: s} }
func (s *memStore) Ratings() repository.RatingRepository     { return &memRatings{s: s} }
func (s *memStore) PointLogs() repository.PointLogRepository { return &memPointLogs{s: s} }

func (s *memStore) Transaction(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type memUsers struct {
	s *memStore
}

func (r *memUsers) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return apperror.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.s.tick()
	r.s.users = append(r.s.users, user)
	return nil
}

func (r *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *memUsers) IncrementPoints(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == id {
			u.Points += delta
			return u.Points, nil
		}
	}
	return 0, fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
}

func (r *memUsers) Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users := make([]*model.User, len(r.s.users))
	copy(users, r.s.users)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Points > users[j].Points
	})

	rows := make([]repository.LeaderboardRow, 0, limit)
	for _, u := range users {
		if len(rows) == limit {
			break
		}
		var uploads int64
		for _, res := range r.s.resources {
			if res.UploaderID == u.ID {
				uploads++
			}
		}
		rows = append(rows, repository.LeaderboardRow{
			ID:          u.ID,
			Name:        u.Name,
			Department:  u.Department,
			Points:      u.Points,
			UploadCount: uploads,
		})
	}
	return rows, nil
}

func (r *memUsers) CountResources(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, res := range r.s.resources {
		if res.UploaderID == id {
			count++
		}
	}
	return count, nil
}

func (r *memUsers) CountDownloads(ctx context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, d := range r.s.downloads {
		if d.UserID == id {
			count++
		}
	}
	return count, nil
}

type memResources struct {
	s *memStore
}

func (r *memResources) Create(ctx context.Context, resource *model.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	resource.CreatedAt = r.s.tick()
	r.s.resources = append(r.s.resources, resource)
	return nil
}

func (r *memResources) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.findLocked(id)
}

func (r *memResources) findLocked(id uuid.UUID) (*model.Resource, error) {
	for _, res := range r.s.resources {
		if res.ID == id {
			for _, u := range r.s.users {
				if u.ID == res.UploaderID {
					res.Uploader = u
				}
			}
			return res, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *memResources) FindAll(ctx context.Context, filter dto.ResourceFilter) ([]*model.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*model.Resource
	for _, res := range r.s.resources {
		if filter.Subject != "" && res.Subject != filter.Subject {
			continue
		}
		if filter.Semester != nil && res.Semester != *filter.Semester {
			continue
		}
		if filter.Type != "" && string(res.Type) != filter.Type {
			continue
		}
		if filter.Search != "" && !matchesSearch(res, filter.Search) {
			continue
		}
		matched = append(matched, res)
	}

	if filter.Sort == "downloads" {
		sort.SliceStable(matched, func(i, j int) bool {
			if matched[i].DownloadCount != matched[j].DownloadCount {
				return matched[i].DownloadCount > matched[j].DownloadCount
			}
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func matchesSearch(res *model.Resource, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(res.Title), needle) {
		return true
	}
	if res.Description != nil && strings.Contains(strings.ToLower(*res.Description), needle) {
		return true
	}
	for _, tag := range res.Tags {
		if tag == search {
			return true
		}
	}
	return false
}

func (r *memResources) RecentByUploader(ctx context.Context, uploaderID uuid.UUID, limit int) ([]*model.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*model.Resource
	for _, res := range r.s.resources {
		if res.UploaderID == uploaderID {
			matched = append(matched, res)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *memResources) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, err := r.findLocked(id)
	if err != nil {
		return fmt.Errorf("resource %s: %w", id, err)
	}
	res.DownloadCount++
	return nil
}

func (r *memResources) UpdateAvgRating(ctx context.Context, id uuid.UUID, avg float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, err := r.findLocked(id)
	if err != nil {
		return fmt.Errorf("resource %s: %w", id, err)
	}
	res.AvgRating = avg
	return nil
}

type memDownloads struct {
	s *memStore
}

func (r *memDownloads) Create(ctx context.Context, download *model.Download) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if download.ID == uuid.Nil {
		download.ID = uuid.New()
	}
	download.DownloadedAt = r.s.tick()
	r.s.downloads = append(r.s.downloads, download)
	return nil
}

func (r *memDownloads) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Download, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*model.Download
	for _, d := range r.s.downloads {
		if d.UserID != userID {
			continue
		}
		res := &memResources{s: r.s}
		if found, err := res.findLocked(d.ResourceID); err == nil {
			d.Resource = found
		}
		matched = append(matched, d)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DownloadedAt.After(matched[j].DownloadedAt)
	})
	return matched, nil
}

type memRatings struct {
	s *memStore
}

func (r *memRatings) Upsert(ctx context.Context, rating *model.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.ratings {
		if existing.UserID == rating.UserID && existing.ResourceID == rating.ResourceID {
			existing.Score = rating.Score
			existing.Review = rating.Review
			existing.UpdatedAt = r.s.tick()
			return nil
		}
	}
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	rating.CreatedAt = r.s.tick()
	rating.UpdatedAt = rating.CreatedAt
	r.s.ratings = append(r.s.ratings, rating)
	return nil
}

func (r *memRatings) FindByUserAndResource(ctx context.Context, userID, resourceID uuid.UUID) (*model.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rating := range r.s.ratings {
		if rating.UserID == userID && rating.ResourceID == resourceID {
			return rating, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *memRatings) AverageForResource(ctx context.Context, resourceID uuid.UUID) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var sum, count int
	for _, rating := range r.s.ratings {
		if rating.ResourceID == resourceID {
			sum += rating.Score
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

type memPointLogs struct {
	s *memStore
}

func (r *memPointLogs) Create(ctx context.Context, log *model.PointLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	log.ID = uint(len(r.s.pointLogs) + 1)
	log.CreatedAt = r.s.tick()
	r.s.pointLogs = append(r.s.pointLogs, log)
	return nil
}

func seedUser(store *memStore, name, email string) *model.User {
	user := &model.User{Name: name, Email: email, PasswordHash: "x"}
	if err := store.Users().Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}

func seedResource(store *memStore, uploader *model.User, title string) *model.Resource {
	resource := &model.Resource{
		Title:      title,
		Type:       model.TypeNotes,
		Subject:    "Data Structures",
		Semester:   3,
		Year:       2025,
		FileURL:    "https://files.example.com/" + uuid.NewString(),
		FileName:   "notes.pdf",
		FileSize:   1024,
		UploaderID: uploader.ID,
	}
	if err := store.Resources().Create(context.Background(), resource); err != nil {
		panic(err)
	}
	return resource
}
