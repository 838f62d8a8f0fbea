package model

import (
	"time"

	"github.com/google/uuid"
)

// PointAction is the closed set of actions that earn points.
type PointAction string

const (
	ActionUpload   PointAction = "UPLOAD"
	ActionDownload PointAction = "DOWNLOAD"
	ActionRating   PointAction = "RATING"
)

// Tariff returns the fixed point value for the action. ok is false for
// anything outside the three recognized kinds.
func (a PointAction) Tariff() (points int, ok bool) {
	switch a {
	case ActionUpload:
		return 10, true
	case ActionDownload:
		return 2, true
	case ActionRating:
		return 1, true
	}
	return 0, false
}

// PointLog records one award, making the points balance auditable.
type PointLog struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_pointlog_user_date,priority:1" json:"userId"`
	User       *User       `gorm:"foreignKey:UserID" json:"-"`
	Action     PointAction `gorm:"size:20;not null" json:"action"`
	Points     int         `gorm:"not null" json:"points"`
	ResourceID *uuid.UUID  `gorm:"type:uuid;index" json:"resourceId,omitempty"`
	CreatedAt  time.Time   `gorm:"index:idx_pointlog_user_date,priority:2" json:"createdAt"`
}
