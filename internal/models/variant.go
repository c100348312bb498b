package models

// VariantMetrics carries solver-reported quality figures. QualityScore is in
// [0,100] and is used for display ranking only; no candidate is ever
// auto-selected by score.
type VariantMetrics struct {
	QualityScore      float64 `json:"quality_score"`
	TotalSessions     int     `json:"total_sessions"`
	ConflictsResolved int     `json:"conflicts_resolved,omitempty"`
}

// Variant is one candidate schedule produced by the external solver for a
// single generation request.
type Variant struct {
	VariantID string         `json:"variant_id"`
	Grid      Grid           `json:"grid"`
	Metrics   VariantMetrics `json:"metrics"`
}

// SessionStatus is the lifecycle phase of a variant session.
type SessionStatus string

const (
	SessionStatusIdle       SessionStatus = "idle"
	SessionStatusGenerating SessionStatus = "generating"
	SessionStatusReady      SessionStatus = "ready"
	SessionStatusCommitting SessionStatus = "committing"
	SessionStatusCommitted  SessionStatus = "committed"
	SessionStatusFailed     SessionStatus = "failed"
)

// ViewMode selects which of the two parallel grids an edit session presents.
type ViewMode string

const (
	ViewModeOfficial ViewMode = "official"
	ViewModeCustom   ViewMode = "custom"
)

// SessionSnapshot is the externally visible state of a variant session.
type SessionSnapshot struct {
	SessionID     string        `json:"session_id"`
	InstitutionID string        `json:"institution_id"`
	Status        SessionStatus `json:"status"`
	Candidates    []Variant     `json:"candidates"`
	SelectedID    string        `json:"selected_id,omitempty"`
	LastError     string        `json:"last_error,omitempty"`
}
