package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"campusshare/internal/dto"
	"campusshare/pkg/apperror"
	"campusshare/pkg/response"
	"campusshare/pkg/storage"
	"github.com/gin-gonic/gin"
)

// allowedExtensions is the document allow-list. Anything else is
// rejected before touching the object store.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".xls":  true,
	".xlsx": true,
	".txt":  true,
	".md":   true,
	".zip":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type UploadHandler struct {
	storage      storage.FileStorage
	folder       string
	maxSizeBytes int64
}

func NewUploadHandler(fileStorage storage.FileStorage, folder string, maxSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:      fileStorage,
		folder:       folder,
		maxSizeBytes: maxSizeMB << 20,
	}
}

// UploadFile streams a multipart file to the object store and returns the
// public URL for the subsequent resource-metadata call.
func (h *UploadHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, fmt.Errorf("%w: file is required", apperror.ErrInvalidInput))
		return
	}

	if fileHeader.Size > h.maxSizeBytes {
		response.ResponseError(c, fmt.Errorf("%w: file exceeds %d MB", apperror.ErrInvalidInput, h.maxSizeBytes>>20))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		response.ResponseError(c, fmt.Errorf("%w: file type %q is not allowed", apperror.ErrInvalidInput, ext))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	fileURL, err := h.storage.UploadFile(c.Request.Context(), file, h.folder, fileHeader.Filename)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadFileResponse{
		FileURL:  fileURL,
		FileName: fileHeader.Filename,
		FileSize: fileHeader.Size,
	})
}
