package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating holds one user's score for one resource. The composite unique
// index enforces at most one row per (user, resource); a repeat rating
// updates the existing row in place.
type Rating struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_resource" json:"userId"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_user_resource" json:"resourceId"`
	Score      int       `gorm:"not null" json:"score"`
	Review     *string   `gorm:"type:text" json:"review,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
