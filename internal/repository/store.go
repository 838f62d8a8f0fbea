package repository

import (
	"context"
	"errors"

	"campusshare/pkg/apperror"
	"gorm.io/gorm"
)

// Store bundles the repositories behind one seam so the mutating flows
// (upload, download, rate) can run all of their writes as a single
// commit-or-rollback unit.
type Store interface {
	Users() UserRepository
	Resources() ResourceRepository
	Downloads() DownloadRepository
	Ratings() RatingRepository
	PointLogs() PointLogRepository

	// Transaction runs fn against a transaction-scoped Store. Any error
	// rolls back every write made inside fn.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository         { return NewUserRepository(s.db) }
func (s *gormStore) Resources() ResourceRepository { return NewResourceRepository(s.db) }
func (s *gormStore) Downloads() DownloadRepository { return NewDownloadRepository(s.db) }
func (s *gormStore) Ratings() RatingRepository     { return NewRatingRepository(s.db) }
func (s *gormStore) PointLogs() PointLogRepository { return NewPointLogRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translate maps GORM sentinel errors onto the application taxonomy at
// the repository boundary, so services and handlers never see store
// internals.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.ErrDuplicate
	}
	return err
}
