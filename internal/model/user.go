package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Department   *string   `gorm:"size:100" json:"department,omitempty"`
	Year         *int      `json:"year,omitempty"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	AvatarURL    *string   `gorm:"type:text" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Resources []Resource `gorm:"foreignKey:UploaderID" json:"-"`
	Downloads []Download `gorm:"foreignKey:UserID" json:"-"`
	Ratings   []Rating   `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
