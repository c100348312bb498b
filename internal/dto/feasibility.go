package dto

import "github.com/sathvik2377/timetable-api/internal/models"

// FeasibilityCheckRequest wraps the setup-form counters.
type FeasibilityCheckRequest struct {
	Input models.FeasibilityInput `json:"input" validate:"required"`
}

// FeasibilityCheckResponse reports the supply/demand comparison.
type FeasibilityCheckResponse struct {
	Result models.FeasibilityResult `json:"result"`
}
