package dto

import "github.com/sathvik2377/timetable-api/internal/models"

// CellRef addresses one cell of the weekly grid.
type CellRef struct {
	Day       string `json:"day" validate:"required"`
	TimeRange string `json:"timeRange" validate:"required"`
}

// MoveSlotRequest relocates a slot between cells; an occupied target cell is
// overwritten.
type MoveSlotRequest struct {
	From CellRef `json:"from" validate:"required"`
	To   CellRef `json:"to" validate:"required"`
}

// CopySlotRequest places a slot on the shared clipboard.
type CopySlotRequest struct {
	From CellRef `json:"from" validate:"required"`
}

// PasteSlotRequest materialises the clipboard content into a cell.
type PasteSlotRequest struct {
	To CellRef `json:"to" validate:"required"`
}

// DeleteSlotRequest clears one cell.
type DeleteSlotRequest struct {
	At CellRef `json:"at" validate:"required"`
}

// ResetRequest discards custom edits. With At set only that cell is
// re-forked from the official grid; without it the whole grid is.
type ResetRequest struct {
	At *CellRef `json:"at,omitempty"`
}

// SetViewModeRequest toggles which grid the editor presents.
type SetViewModeRequest struct {
	Mode models.ViewMode `json:"mode" validate:"required,oneof=official custom"`
}

// EditorStateResponse is the full editor view for one session.
type EditorStateResponse struct {
	SessionID    string          `json:"sessionId"`
	Mode         models.ViewMode `json:"mode"`
	Editable     bool            `json:"editable"`
	Grid         models.Grid     `json:"grid"`
	HasClipboard bool            `json:"hasClipboard"`
	Dirty        bool            `json:"dirty"`
}

// ClipboardResponse mirrors the current clipboard content.
type ClipboardResponse struct {
	Slot *models.Slot `json:"slot,omitempty"`
}
