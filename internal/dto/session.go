package dto

import "github.com/sathvik2377/timetable-api/internal/models"

// CreateSessionRequest opens a variant session for one institution's weekly
// timetable.
type CreateSessionRequest struct {
	InstitutionID   string                  `json:"institutionId" validate:"required"`
	Title           string                  `json:"title" validate:"required,max=120"`
	IncludeSaturday bool                    `json:"includeSaturday"`
	TimeRanges      []string                `json:"timeRanges" validate:"required,min=1,dive,required"`
	Feasibility     models.FeasibilityInput `json:"feasibility" validate:"required"`
}

// GenerateVariantsRequest asks the solver for a fresh batch of candidates.
type GenerateVariantsRequest struct {
	VariantCount int            `json:"variantCount" validate:"omitempty,min=1,max=10"`
	Constraints  map[string]any `json:"constraints"`
}

// SelectVariantRequest marks one candidate as the working choice.
type SelectVariantRequest struct {
	VariantID string `json:"variantId" validate:"required"`
}

// CommitVariantRequest promotes the selected candidate to the official grid.
type CommitVariantRequest struct {
	VariantID string `json:"variantId" validate:"required"`
}

// VariantSummary is the listing shape for one candidate.
type VariantSummary struct {
	VariantID string                `json:"variantId"`
	Metrics   models.VariantMetrics `json:"metrics"`
	Selected  bool                  `json:"selected"`
}

// SessionResponse is the external view of a variant session.
type SessionResponse struct {
	SessionID     string               `json:"sessionId"`
	InstitutionID string               `json:"institutionId"`
	Title         string               `json:"title"`
	Status        models.SessionStatus `json:"status"`
	Candidates    []VariantSummary     `json:"candidates"`
	SelectedID    string               `json:"selectedId,omitempty"`
	HasOfficial   bool                 `json:"hasOfficial"`
	LastError     string               `json:"lastError,omitempty"`
}

// VariantDetailResponse returns one candidate with its full grid.
type VariantDetailResponse struct {
	VariantID string                `json:"variantId"`
	Grid      models.Grid           `json:"grid"`
	Metrics   models.VariantMetrics `json:"metrics"`
	Selected  bool                  `json:"selected"`
}

// OfficialGridResponse returns the committed timetable, if any.
type OfficialGridResponse struct {
	SessionID   string      `json:"sessionId"`
	Grid        models.Grid `json:"grid"`
	CommittedAt string      `json:"committedAt"`
}
