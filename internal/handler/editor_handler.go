package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/service"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
	"github.com/sathvik2377/timetable-api/pkg/response"
)

type gridEditor interface {
	State(ctx context.Context, sessionID string) (*dto.EditorStateResponse, error)
	SetViewMode(ctx context.Context, sessionID string, req dto.SetViewModeRequest) (*dto.EditorStateResponse, error)
	Move(ctx context.Context, sessionID string, req dto.MoveSlotRequest) (*dto.EditorStateResponse, error)
	Copy(ctx context.Context, sessionID string, req dto.CopySlotRequest) (*dto.ClipboardResponse, error)
	Paste(ctx context.Context, sessionID string, req dto.PasteSlotRequest) (*dto.EditorStateResponse, error)
	Delete(ctx context.Context, sessionID string, req dto.DeleteSlotRequest) (*dto.EditorStateResponse, error)
	Reset(ctx context.Context, sessionID string, req dto.ResetRequest) (*dto.EditorStateResponse, error)
}

// EditorHandler exposes manual grid adjustments for committed sessions.
type EditorHandler struct {
	service gridEditor
}

// NewEditorHandler constructs the handler.
func NewEditorHandler(svc *service.GridEditorService) *EditorHandler {
	return &EditorHandler{service: svc}
}

// State godoc
// @Summary Get the editor view for the current mode
// @Tags Editor
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/editor [get]
func (h *EditorHandler) State(c *gin.Context) {
	result, err := h.service.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// SetViewMode godoc
// @Summary Switch between the official and custom views
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SetViewModeRequest true "View mode"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/editor/mode [put]
func (h *EditorHandler) SetViewMode(c *gin.Context) {
	var req dto.SetViewModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid view mode payload"))
		return
	}
	result, err := h.service.SetViewMode(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Move godoc
// @Summary Move a slot to another cell
// @Description An occupied target cell is overwritten; break periods cannot move or be overwritten.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.MoveSlotRequest true "Move payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/editor/move [post]
func (h *EditorHandler) Move(c *gin.Context) {
	var req dto.MoveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid move payload"))
		return
	}
	result, err := h.service.Move(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Copy godoc
// @Summary Copy a slot onto the shared clipboard
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.CopySlotRequest true "Copy payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/editor/copy [post]
func (h *EditorHandler) Copy(c *gin.Context) {
	var req dto.CopySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid copy payload"))
		return
	}
	result, err := h.service.Copy(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Paste godoc
// @Summary Paste the clipboard content into a cell
// @Description The pasted slot receives a fresh identifier; the clipboard keeps its content.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.PasteSlotRequest true "Paste payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/editor/paste [post]
func (h *EditorHandler) Paste(c *gin.Context) {
	var req dto.PasteSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid paste payload"))
		return
	}
	result, err := h.service.Paste(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Clear one cell of the custom grid
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.DeleteSlotRequest true "Delete payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/editor/delete [post]
func (h *EditorHandler) Delete(c *gin.Context) {
	var req dto.DeleteSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid delete payload"))
		return
	}
	result, err := h.service.Delete(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Reset godoc
// @Summary Discard custom edits and re-fork from the official grid
// @Description Without a body the whole grid is reset; with a cell reference only that cell is restored.
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.ResetRequest false "Optional cell reference"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/editor/reset [post]
func (h *EditorHandler) Reset(c *gin.Context) {
	var req dto.ResetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reset payload"))
			return
		}
	}
	result, err := h.service.Reset(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
