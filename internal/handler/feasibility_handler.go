package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
	"github.com/sathvik2377/timetable-api/internal/service"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
	"github.com/sathvik2377/timetable-api/pkg/response"
)

type feasibilityChecker interface {
	Check(ctx context.Context, input models.FeasibilityInput) (*models.FeasibilityResult, error)
}

// FeasibilityHandler exposes the setup-form supply/demand check.
type FeasibilityHandler struct {
	service feasibilityChecker
}

// NewFeasibilityHandler constructs the handler.
func NewFeasibilityHandler(svc *service.FeasibilityService) *FeasibilityHandler {
	return &FeasibilityHandler{service: svc}
}

// Check godoc
// @Summary Check teacher-hour supply against class-hour demand
// @Description Returns both totals; the gate passes only on exact equality.
// @Tags Feasibility
// @Accept json
// @Produce json
// @Param payload body dto.FeasibilityCheckRequest true "Feasibility input"
// @Success 200 {object} response.Envelope
// @Router /feasibility/check [post]
func (h *FeasibilityHandler) Check(c *gin.Context) {
	var req dto.FeasibilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feasibility payload"))
		return
	}
	result, err := h.service.Check(c.Request.Context(), req.Input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.FeasibilityCheckResponse{Result: *result}, nil)
}
