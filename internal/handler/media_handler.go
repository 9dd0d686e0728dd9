package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/auditrain/auditrain-backend/internal/response"
	"github.com/auditrain/auditrain-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// MediaHandler handles logo uploads for report branding.
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadLogo godoc
// POST /api/v1/admin/logos/:slot
// Stores a logo into a fixed slot (1..3), replacing any previous file.
func (h *MediaHandler) UploadLogo(c *gin.Context) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidLogoSlot)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	url, err := h.mediaService.SaveLogo(file, header, slot)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLogoSlot):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidLogoSlot)
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

// ListLogos godoc
// GET /api/v1/logos
// Public; the login page shows the branding too.
func (h *MediaHandler) ListLogos(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"logos": h.mediaService.ListLogos()})
}
