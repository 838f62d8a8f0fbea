package service

import (
	"context"
	"fmt"

	"campusshare/internal/model"
	"campusshare/internal/repository"
	"campusshare/pkg/apperror"
	"github.com/google/uuid"
)

// AwardPoints increments the user's balance by the action tariff
// (UPLOAD +10, DOWNLOAD +2, RATING +1) and records a point log row, both
// inside one transaction. It returns the user's new total.
//
// The increment is unconditional: every invocation awards the full
// tariff, there is no per-event deduplication. For DOWNLOAD and RATING
// callers must pass the resource's uploader id, never the acting user.
func AwardPoints(ctx context.Context, store repository.Store, userID uuid.UUID, action model.PointAction, resourceID *uuid.UUID) (int, error) {
	tariff, ok := action.Tariff()
	if !ok {
		return 0, fmt.Errorf("%w: unknown point action %q", apperror.ErrInvalidInput, string(action))
	}

	var total int
	err := store.Transaction(ctx, func(st repository.Store) error {
		newTotal, err := st.Users().IncrementPoints(ctx, userID, tariff)
		if err != nil {
			return err
		}
		total = newTotal

		return st.PointLogs().Create(ctx, &model.PointLog{
			UserID:     userID,
			Action:     action,
			Points:     tariff,
			ResourceID: resourceID,
		})
	})
	if err != nil {
		return 0, err
	}

	return total, nil
}
