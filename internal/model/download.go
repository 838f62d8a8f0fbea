package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Download is one download event. Rows are append-only and never
// deduplicated: the same user downloading the same resource twice
// produces two rows.
type Download struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User         *User     `gorm:"foreignKey:UserID" json:"-"`
	ResourceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"resourceId"`
	Resource     *Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
	DownloadedAt time.Time `gorm:"autoCreateTime;index" json:"downloadedAt"`
}

func (d *Download) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
