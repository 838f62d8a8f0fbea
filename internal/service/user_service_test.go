package service

import (
	"context"
	"testing"

	"campusshare/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardOrdersByPoints(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, nil)

	low := seedUser(store, "Low", "low@campus.edu")
	high := seedUser(store, "High", "high@campus.edu")
	mid := seedUser(store, "Mid", "mid@campus.edu")
	low.Points = 5
	high.Points = 50
	mid.Points = 20

	seedResource(store, high, "Notes A")
	seedResource(store, high, "Notes B")

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, high.ID, entries[0].ID)
	assert.Equal(t, mid.ID, entries[1].ID)
	assert.Equal(t, low.ID, entries[2].ID)
	assert.Equal(t, int64(2), entries[0].UploadCount)
	assert.Equal(t, 50, entries[0].Points)
}

func TestLeaderboardTiesKeepInsertionOrder(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, nil)

	first := seedUser(store, "First", "first@campus.edu")
	second := seedUser(store, "Second", "second@campus.edu")
	first.Points = 10
	second.Points = 10

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)
}

func TestLeaderboardCapsAtTop20(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, nil)

	for i := 0; i < LeaderboardSize+3; i++ {
		seedUser(store, "User", uuid.NewString()+"@campus.edu")
	}

	entries, err := svc.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, LeaderboardSize)
}

func TestProfileAggregatesCounts(t *testing.T) {
	store := newMemStore()
	userSvc := NewUserService(store, nil)
	resourceSvc := newTestResourceService(store)

	uploader := seedUser(store, "Priya Sharma", "priya@campus.edu")
	other := seedUser(store, "Rahul Verma", "rahul@campus.edu")

	var lastID uuid.UUID
	for i := 0; i < recentUploadsLimit+1; i++ {
		lastID = seedResource(store, uploader, "Notes").ID
	}

	_, err := resourceSvc.RecordDownload(context.Background(), lastID, uploader.ID)
	require.NoError(t, err)
	_, err = resourceSvc.RecordDownload(context.Background(), lastID, other.ID)
	require.NoError(t, err)

	profile, err := userSvc.Profile(context.Background(), uploader.ID)
	require.NoError(t, err)

	assert.Equal(t, uploader.ID, profile.ID)
	assert.Equal(t, "priya@campus.edu", profile.Email)
	assert.Equal(t, int64(recentUploadsLimit+1), profile.ResourceCount)
	assert.Equal(t, int64(1), profile.DownloadCount)
	require.Len(t, profile.RecentUploads, recentUploadsLimit)
	assert.Equal(t, lastID, profile.RecentUploads[0].ID)
}

func TestProfileUnknownUser(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, nil)

	_, err := svc.Profile(context.Background(), uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDownloadHistoryNewestFirst(t *testing.T) {
	store := newMemStore()
	userSvc := NewUserService(store, nil)
	resourceSvc := newTestResourceService(store)

	uploader := seedUser(store, "Priya Sharma", "priya@campus.edu")
	downloader := seedUser(store, "Rahul Verma", "rahul@campus.edu")
	older := seedResource(store, uploader, "Older")
	newer := seedResource(store, uploader, "Newer")

	_, err := resourceSvc.RecordDownload(context.Background(), older.ID, downloader.ID)
	require.NoError(t, err)
	_, err = resourceSvc.RecordDownload(context.Background(), newer.ID, downloader.ID)
	require.NoError(t, err)

	history, err := userSvc.DownloadHistory(context.Background(), downloader.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, newer.ID, history[0].Resource.ID)
	assert.Equal(t, "Newer", history[0].Resource.Title)
	assert.Equal(t, "Priya Sharma", history[0].Resource.UploaderName)
	assert.Equal(t, older.ID, history[1].Resource.ID)
}

func TestDownloadHistoryEmpty(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store, nil)

	history, err := svc.DownloadHistory(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, history)
}
