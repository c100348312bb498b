package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sathvik2377/timetable-api/internal/clipboard"
	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
)

// GridEditorService applies manual adjustments to the custom grid of a
// committed session. The official grid is read-only; every edit lands on the
// custom copy. Break periods are immutable: they cannot be moved, deleted,
// or overwritten.
type GridEditorService struct {
	sessions  *VariantSessionService
	clipboard clipboard.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGridEditorService wires editor dependencies.
func NewGridEditorService(sessions *VariantSessionService, clip clipboard.Store, validate *validator.Validate, logger *zap.Logger) *GridEditorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clip == nil {
		clip = clipboard.NewMemoryStore()
	}
	return &GridEditorService{
		sessions:  sessions,
		clipboard: clip,
		validator: validate,
		logger:    logger,
	}
}

// State returns the editor view for the session's current mode.
func (s *GridEditorService) State(ctx context.Context, sessionID string) (*dto.EditorStateResponse, error) {
	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	clip, clipErr := s.clipboard.Peek(ctx)
	if clipErr != nil {
		s.logger.Sugar().Warnw("clipboard read failed", "error", clipErr)
	}

	grid := session.Official
	if session.Mode == models.ViewModeCustom {
		grid = session.Custom
	}
	return &dto.EditorStateResponse{
		SessionID:    session.ID,
		Mode:         session.Mode,
		Editable:     session.Mode == models.ViewModeCustom,
		Grid:         grid.Clone(),
		HasClipboard: clip != nil,
		Dirty:        session.Dirty,
	}, nil
}

// SetViewMode toggles between the official and custom views.
func (s *GridEditorService) SetViewMode(ctx context.Context, sessionID string, req dto.SetViewModeRequest) (*dto.EditorStateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid view mode payload")
	}

	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.Mode = req.Mode
	session.mu.Unlock()

	return s.State(ctx, sessionID)
}

// Move relocates a slot to another cell of the custom grid. A slot already
// occupying the target cell is overwritten; last write wins.
func (s *GridEditorService) Move(ctx context.Context, sessionID string, req dto.MoveSlotRequest) (*dto.EditorStateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid move payload")
	}

	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if unlockErr := s.ensureEditableLocked(session); unlockErr != nil {
		session.mu.Unlock()
		return nil, unlockErr
	}

	source := session.Custom.At(req.From.Day, req.From.TimeRange)
	if source == nil {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "source cell is empty")
	}
	if source.IsBreak() {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "break periods cannot be moved")
	}
	if target := session.Custom.At(req.To.Day, req.To.TimeRange); target.IsBreak() {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "break periods cannot be overwritten")
	}

	moved := source.Clone()
	moved.IsCustom = true
	session.Custom.Remove(req.From.Day, req.From.TimeRange)
	session.Custom.Set(req.To.Day, req.To.TimeRange, moved)
	session.Dirty = true
	session.mu.Unlock()

	s.logger.Sugar().Debugw("slot moved",
		"session_id", sessionID,
		"from", req.From.Day+" "+req.From.TimeRange,
		"to", req.To.Day+" "+req.To.TimeRange,
	)
	return s.State(ctx, sessionID)
}

// Copy places the slot on the process-wide clipboard, replacing any previous
// content. The source cell is untouched.
func (s *GridEditorService) Copy(ctx context.Context, sessionID string, req dto.CopySlotRequest) (*dto.ClipboardResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid copy payload")
	}

	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	grid := session.Official
	if session.Mode == models.ViewModeCustom {
		grid = session.Custom
	}
	source := grid.At(req.From.Day, req.From.TimeRange)
	if source == nil {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "source cell is empty")
	}
	if source.IsBreak() {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "break periods cannot be copied")
	}
	copied := source.Clone()
	session.mu.Unlock()

	if err := s.clipboard.Put(ctx, copied); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clipboard write failed")
	}
	return &dto.ClipboardResponse{Slot: copied}, nil
}

// Paste materialises the clipboard content into a cell of the custom grid.
// The pasted slot receives a fresh identifier so the original and the copy
// never collide. The clipboard keeps its content for further pastes.
func (s *GridEditorService) Paste(ctx context.Context, sessionID string, req dto.PasteSlotRequest) (*dto.EditorStateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid paste payload")
	}

	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, err
	}

	clip, err := s.clipboard.Peek(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "clipboard read failed")
	}
	if clip == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "clipboard is empty")
	}

	session.mu.Lock()
	if unlockErr := s.ensureEditableLocked(session); unlockErr != nil {
		session.mu.Unlock()
		return nil, unlockErr
	}
	if target := session.Custom.At(req.To.Day, req.To.TimeRange); target.IsBreak() {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "break periods cannot be overwritten")
	}

	pasted := clip.Clone()
	pasted.ID = uuid.NewString()
	pasted.IsCustom = true
	session.Custom.Set(req.To.Day, req.To.TimeRange, pasted)
	session.Dirty = true
	session.mu.Unlock()

	return s.State(ctx, sessionID)
}

// Delete clears one cell of the custom grid.
func (s *GridEditorService) Delete(ctx context.Context, sessionID string, req dto.DeleteSlotRequest) (*dto.EditorStateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid delete payload")
	}

	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if unlockErr := s.ensureEditableLocked(session); unlockErr != nil {
		session.mu.Unlock()
		return nil, unlockErr
	}

	target := session.Custom.At(req.At.Day, req.At.TimeRange)
	if target == nil {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "cell is already empty")
	}
	if target.IsBreak() {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrValidation, "break periods cannot be deleted")
	}

	session.Custom.Remove(req.At.Day, req.At.TimeRange)
	session.Dirty = true
	session.mu.Unlock()

	return s.State(ctx, sessionID)
}

// Reset discards custom edits by re-forking from the official grid. Without
// a cell reference the whole custom grid is replaced; with one, only that
// cell is restored.
func (s *GridEditorService) Reset(ctx context.Context, sessionID string, req dto.ResetRequest) (*dto.EditorStateResponse, error) {
	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if req.At == nil {
		session.Custom = session.Official.Clone()
		session.Dirty = false
	} else {
		if official := session.Official.At(req.At.Day, req.At.TimeRange); official != nil {
			session.Custom.Set(req.At.Day, req.At.TimeRange, official.Clone())
		} else {
			session.Custom.Remove(req.At.Day, req.At.TimeRange)
		}
	}
	session.mu.Unlock()

	s.logger.Sugar().Infow("custom grid reset", "session_id", sessionID, "whole_grid", req.At == nil)
	return s.State(ctx, sessionID)
}

// DisplayedGrid returns a deep copy of the grid the session currently shows.
// Used by exports so the file matches what the user sees.
func (s *GridEditorService) DisplayedGrid(_ context.Context, sessionID string) (models.Grid, []string, []string, string, error) {
	session, err := s.committedSession(sessionID)
	if err != nil {
		return nil, nil, nil, "", err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	grid := session.Official
	if session.Mode == models.ViewModeCustom {
		grid = session.Custom
	}
	return grid.Clone(), append([]string(nil), session.Days...), append([]string(nil), session.TimeRanges...), session.Title, nil
}

func (s *GridEditorService) committedSession(sessionID string) (*variantSession, error) {
	session, ok := s.sessions.session(sessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or expired")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.busy {
		return nil, appErrors.ErrSessionBusy
	}
	if session.Official == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "commit a variant before opening the editor")
	}
	return session, nil
}

// ensureEditableLocked assumes the caller holds session.mu.
func (s *GridEditorService) ensureEditableLocked(session *variantSession) error {
	if session.Mode != models.ViewModeCustom {
		return appErrors.Clone(appErrors.ErrInvalidState, "switch to the custom view to edit")
	}
	return nil
}
