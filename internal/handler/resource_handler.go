package handler

import (
	"fmt"
	"net/http"

	"campusshare/internal/dto"
	"campusshare/internal/service"
	"campusshare/pkg/apperror"
	"campusshare/pkg/response"
	"campusshare/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	service service.ResourceService
}

func NewResourceHandler(service service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

func (h *ResourceHandler) ListResources(c *gin.Context) {
	var filter dto.ResourceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ResponseError(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	resources, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	resource, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resource)
}

func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	resource, uploaderPoints, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateResourceResponse{
		Message:        "resource uploaded successfully",
		Resource:       resource,
		UploaderPoints: uploaderPoints,
	})
}

func (h *ResourceHandler) RecordDownload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var req dto.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.ResponseError(c, fmt.Errorf("%w: malformed user id", apperror.ErrInvalidInput))
		return
	}

	fileURL, err := h.service.RecordDownload(c.Request.Context(), id, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DownloadResponse{
		Message: "download tracked",
		FileURL: fileURL,
	})
}

func (h *ResourceHandler) RateResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrNotFound)
		return
	}

	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, validator.FormatValidationError(err)))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.ResponseError(c, fmt.Errorf("%w: malformed user id", apperror.ErrInvalidInput))
		return
	}

	avgRating, rating, err := h.service.Rate(c.Request.Context(), id, userID, req.Score, req.Review)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RateResponse{
		Message:   "rating submitted",
		AvgRating: avgRating,
		Rating:    rating,
	})
}
