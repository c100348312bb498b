package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/service"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
	"github.com/sathvik2377/timetable-api/pkg/response"
)

type exporter interface {
	Create(ctx context.Context, sessionID string, req dto.ExportRequest) (*dto.ExportResponse, error)
	Status(ctx context.Context, exportID string) (*dto.ExportResponse, error)
	Download(ctx context.Context, token string) (*os.File, string, error)
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportHandler exposes grid export rendering and downloads.
type ExportHandler struct {
	service exporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create godoc
// @Summary Render the currently displayed grid to a downloadable file
// @Description The grid is snapshotted at request time; rendering runs asynchronously. Poll the export status for the download URL.
// @Tags Exports
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ExportRequest true "Export options"
// @Success 202 {object} response.Envelope
// @Router /sessions/{id}/export [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := h.service.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, result, nil)
}

// Status godoc
// @Summary Get export render progress
// @Tags Exports
// @Produce json
// @Param exportId path string true "Export ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{exportId} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	result, err := h.service.Status(c.Request.Context(), c.Param("exportId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download a rendered export via its signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/download/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file, relPath, err := h.service.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "stat export file"))
		return
	}

	contentType := contentTypes[filepath.Ext(relPath)]
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(relPath)))
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
