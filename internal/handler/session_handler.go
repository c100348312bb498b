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

type variantLifecycle interface {
	Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Generate(ctx context.Context, token, sessionID string, req dto.GenerateVariantsRequest) (*dto.SessionResponse, error)
	Regenerate(ctx context.Context, token, sessionID string, req dto.GenerateVariantsRequest) (*dto.SessionResponse, error)
	Select(ctx context.Context, sessionID string, req dto.SelectVariantRequest) (*dto.SessionResponse, error)
	Commit(ctx context.Context, token, sessionID string, req dto.CommitVariantRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	GetVariant(ctx context.Context, sessionID, variantID string) (*dto.VariantDetailResponse, error)
	Official(ctx context.Context, sessionID string) (*dto.OfficialGridResponse, error)
}

// SessionHandler exposes the variant session lifecycle.
type SessionHandler struct {
	service variantLifecycle
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(svc *service.VariantSessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Create godoc
// @Summary Open a variant session
// @Description The feasibility gate is evaluated immediately; an infeasible setup is rejected with 422.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	if claims := claimsFromContext(c); claims != nil && claims.InstitutionID != "" && claims.InstitutionID != req.InstitutionID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "session institution does not match token"))
		return
	}
	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Generate godoc
// @Summary Generate candidate variants
// @Description Blocks until the solver responds. A second request while one is in flight returns 409.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.GenerateVariantsRequest true "Generation options"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/generate [post]
func (h *SessionHandler) Generate(c *gin.Context) {
	h.handleGenerate(c, h.service.Generate)
}

// Regenerate godoc
// @Summary Discard current candidates and generate a fresh batch
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.GenerateVariantsRequest true "Generation options"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/regenerate [post]
func (h *SessionHandler) Regenerate(c *gin.Context) {
	h.handleGenerate(c, h.service.Regenerate)
}

// Select godoc
// @Summary Select one candidate as the working choice
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectVariantRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/select [post]
func (h *SessionHandler) Select(c *gin.Context) {
	var req dto.SelectVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}
	result, err := h.service.Select(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Commit godoc
// @Summary Commit the selected variant as the official timetable
// @Description Atomic replace-or-noop; a backend rejection leaves the previous official grid in place.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.CommitVariantRequest true "Commit payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/commit [post]
func (h *SessionHandler) Commit(c *gin.Context) {
	var req dto.CommitVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid commit payload"))
		return
	}
	result, err := h.service.Commit(c.Request.Context(), tokenFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get session state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetVariant godoc
// @Summary Get one candidate with its full grid
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param variantId path string true "Variant ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/variants/{variantId} [get]
func (h *SessionHandler) GetVariant(c *gin.Context) {
	result, err := h.service.GetVariant(c.Request.Context(), c.Param("id"), c.Param("variantId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Official godoc
// @Summary Get the committed timetable
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/official [get]
func (h *SessionHandler) Official(c *gin.Context) {
	result, err := h.service.Official(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

func (h *SessionHandler) handleGenerate(c *gin.Context, fn func(ctx context.Context, token, sessionID string, req dto.GenerateVariantsRequest) (*dto.SessionResponse, error)) {
	var req dto.GenerateVariantsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
			return
		}
	}
	result, err := fn(c.Request.Context(), tokenFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
