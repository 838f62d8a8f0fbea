package dto

import "campusshare/internal/model"

type CreateResourceRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description"`
	Type        string   `json:"type" binding:"required"`
	Subject     string   `json:"subject" binding:"required,max=100"`
	Semester    int      `json:"semester" binding:"required,min=1,max=8"`
	Year        int      `json:"year" binding:"required"`
	FileURL     string   `json:"fileUrl" binding:"required"`
	FileName    string   `json:"fileName" binding:"required"`
	FileSize    int64    `json:"fileSize" binding:"required,min=1"`
	Tags        []string `json:"tags"`
	UploaderID  string   `json:"uploaderId" binding:"required,uuid"`
}

type CreateResourceResponse struct {
	Message        string          `json:"message"`
	Resource       *model.Resource `json:"resource"`
	UploaderPoints int             `json:"uploaderPoints"`
}

type DownloadRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

type DownloadResponse struct {
	Message string `json:"message"`
	FileURL string `json:"fileUrl"`
}

type RateRequest struct {
	UserID string  `json:"userId" binding:"required,uuid"`
	Score  int     `json:"score" binding:"required,min=1,max=5"`
	Review *string `json:"review"`
}

type RateResponse struct {
	Message   string        `json:"message"`
	AvgRating float64       `json:"avgRating"`
	Rating    *model.Rating `json:"rating"`
}

type ResourceFilter struct {
	Subject  string `form:"subject"`
	Semester *int   `form:"semester" binding:"omitempty,min=1,max=8"`
	Type     string `form:"type"`
	Sort     string `form:"sort"` // "downloads" or default newest
	Search   string `form:"search"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset   int    `form:"offset" binding:"omitempty,min=0"`
}

type UploadFileResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
}
