package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResourceType is the closed set of academic resource kinds.
type ResourceType string

const (
	TypeNotes         ResourceType = "NOTES"
	TypePastPaper     ResourceType = "PAST_PAPER"
	TypeReferenceBook ResourceType = "REFERENCE_BOOK"
	TypeProjectReport ResourceType = "PROJECT_REPORT"
	TypeAssignment    ResourceType = "ASSIGNMENT"
)

func (t ResourceType) Valid() bool {
	switch t {
	case TypeNotes, TypePastPaper, TypeReferenceBook, TypeProjectReport, TypeAssignment:
		return true
	}
	return false
}

type Resource struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Description   *string                     `gorm:"type:text" json:"description,omitempty"`
	Type          ResourceType                `gorm:"size:20;not null;index" json:"type"`
	Subject       string                      `gorm:"size:100;not null;index" json:"subject"`
	Semester      int                         `gorm:"not null;index" json:"semester"`
	Year          int                         `gorm:"not null" json:"year"`
	FileURL       string                      `gorm:"type:text;not null" json:"fileUrl"`
	FileName      string                      `gorm:"size:255;not null" json:"fileName"`
	FileSize      int64                       `gorm:"not null" json:"fileSize"`
	Tags          datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	DownloadCount int                         `gorm:"not null;default:0" json:"downloadCount"`
	AvgRating     float64                     `gorm:"not null;default:0" json:"avgRating"`
	UploaderID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"uploaderId"`
	Uploader      *User                       `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime;index" json:"createdAt"`

	DownloadEvents []Download `gorm:"foreignKey:ResourceID" json:"-"`
	RatingRows     []Rating   `gorm:"foreignKey:ResourceID" json:"-"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
