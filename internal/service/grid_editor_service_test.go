package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik2377/timetable-api/internal/clipboard"
	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
)

// committedEditor builds a session with a committed official grid and returns
// the editor bound to it.
func committedEditor(t *testing.T) (*GridEditorService, string) {
	t.Helper()

	sessions := newSessionService(t, &stubSolver{})
	id := createSession(t, sessions)

	resp, err := sessions.Generate(context.Background(), "tok", id, dto.GenerateVariantsRequest{})
	require.NoError(t, err)
	chosen := resp.Candidates[0].VariantID
	_, err = sessions.Select(context.Background(), id, dto.SelectVariantRequest{VariantID: chosen})
	require.NoError(t, err)
	_, err = sessions.Commit(context.Background(), "tok", id, dto.CommitVariantRequest{VariantID: chosen})
	require.NoError(t, err)

	editor := NewGridEditorService(sessions, clipboard.NewMemoryStore(), nil, nil)
	return editor, id
}

func customEditor(t *testing.T) (*GridEditorService, string) {
	t.Helper()
	editor, id := committedEditor(t)
	_, err := editor.SetViewMode(context.Background(), id, dto.SetViewModeRequest{Mode: models.ViewModeCustom})
	require.NoError(t, err)
	return editor, id
}

func TestEditorRequiresCommittedSession(t *testing.T) {
	sessions := newSessionService(t, &stubSolver{})
	id := createSession(t, sessions)
	editor := NewGridEditorService(sessions, clipboard.NewMemoryStore(), nil, nil)

	_, err := editor.State(context.Background(), id)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestEditorDefaultsToOfficialReadOnly(t *testing.T) {
	editor, id := committedEditor(t)

	state, err := editor.State(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ViewModeOfficial, state.Mode)
	assert.False(t, state.Editable)
	assert.False(t, state.Dirty)
}

func TestEditRejectedInOfficialMode(t *testing.T) {
	editor, id := committedEditor(t)

	_, err := editor.Move(context.Background(), id, dto.MoveSlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
		To:   dto.CellRef{Day: "Tuesday", TimeRange: "09:00-10:00"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestMoveSlotMarksCustomAndDirty(t *testing.T) {
	editor, id := customEditor(t)

	state, err := editor.Move(context.Background(), id, dto.MoveSlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
		To:   dto.CellRef{Day: "Tuesday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)
	assert.True(t, state.Dirty)
	assert.Nil(t, state.Grid.At("Monday", "09:00-10:00"))

	moved := state.Grid.At("Tuesday", "09:00-10:00")
	require.NotNil(t, moved)
	assert.True(t, moved.IsCustom)
	assert.Equal(t, "Mathematics", moved.SubjectName)
}

func TestMoveOverwritesOccupiedTarget(t *testing.T) {
	editor, id := customEditor(t)

	// Fill Tuesday via paste so the target is occupied, then move on top.
	_, err := editor.Copy(context.Background(), id, dto.CopySlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)
	_, err = editor.Paste(context.Background(), id, dto.PasteSlotRequest{
		To: dto.CellRef{Day: "Tuesday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	state, err := editor.Move(context.Background(), id, dto.MoveSlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
		To:   dto.CellRef{Day: "Tuesday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	target := state.Grid.At("Tuesday", "09:00-10:00")
	require.NotNil(t, target)
	assert.Equal(t, "Mathematics", target.SubjectName)
	assert.Equal(t, 1, state.Grid.TotalSessions())
}

func TestMoveBreakRejected(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Move(context.Background(), id, dto.MoveSlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "10:00-10:15"},
		To:   dto.CellRef{Day: "Tuesday", TimeRange: "09:00-10:00"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMoveOntoBreakRejected(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Move(context.Background(), id, dto.MoveSlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
		To:   dto.CellRef{Day: "Monday", TimeRange: "10:00-10:15"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMoveFromEmptyCell(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Move(context.Background(), id, dto.MoveSlotRequest{
		From: dto.CellRef{Day: "Friday", TimeRange: "09:00-10:00"},
		To:   dto.CellRef{Day: "Tuesday", TimeRange: "09:00-10:00"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPasteAssignsFreshIdentifier(t *testing.T) {
	editor, id := customEditor(t)

	state, err := editor.State(context.Background(), id)
	require.NoError(t, err)
	original := state.Grid.At("Monday", "09:00-10:00")
	require.NotNil(t, original)

	_, err = editor.Copy(context.Background(), id, dto.CopySlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	state, err = editor.Paste(context.Background(), id, dto.PasteSlotRequest{
		To: dto.CellRef{Day: "Wednesday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	pasted := state.Grid.At("Wednesday", "09:00-10:00")
	require.NotNil(t, pasted)
	assert.NotEqual(t, original.ID, pasted.ID)
	assert.True(t, pasted.IsCustom)
	assert.Equal(t, original.SubjectName, pasted.SubjectName)
}

func TestPasteTwiceFromSameClipboard(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Copy(context.Background(), id, dto.CopySlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	_, err = editor.Paste(context.Background(), id, dto.PasteSlotRequest{
		To: dto.CellRef{Day: "Wednesday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	state, err := editor.Paste(context.Background(), id, dto.PasteSlotRequest{
		To: dto.CellRef{Day: "Thursday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	first := state.Grid.At("Wednesday", "09:00-10:00")
	second := state.Grid.At("Thursday", "09:00-10:00")
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPasteEmptyClipboard(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Paste(context.Background(), id, dto.PasteSlotRequest{
		To: dto.CellRef{Day: "Wednesday", TimeRange: "09:00-10:00"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestCopyBreakRejected(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Copy(context.Background(), id, dto.CopySlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "10:00-10:15"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDeleteBreakRejected(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Delete(context.Background(), id, dto.DeleteSlotRequest{
		At: dto.CellRef{Day: "Monday", TimeRange: "10:00-10:15"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDeleteClearsCell(t *testing.T) {
	editor, id := customEditor(t)

	state, err := editor.Delete(context.Background(), id, dto.DeleteSlotRequest{
		At: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)
	assert.Nil(t, state.Grid.At("Monday", "09:00-10:00"))
	assert.True(t, state.Dirty)
}

func TestResetRestoresOfficial(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Delete(context.Background(), id, dto.DeleteSlotRequest{
		At: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	state, err := editor.Reset(context.Background(), id, dto.ResetRequest{})
	require.NoError(t, err)
	assert.False(t, state.Dirty)

	restored := state.Grid.At("Monday", "09:00-10:00")
	require.NotNil(t, restored)
	assert.Equal(t, "Mathematics", restored.SubjectName)
	assert.False(t, restored.IsCustom)
}

func TestResetSingleCellLeavesOtherEdits(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Copy(context.Background(), id, dto.CopySlotRequest{
		From: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)
	_, err = editor.Paste(context.Background(), id, dto.PasteSlotRequest{
		To: dto.CellRef{Day: "Tuesday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)
	_, err = editor.Delete(context.Background(), id, dto.DeleteSlotRequest{
		At: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	state, err := editor.Reset(context.Background(), id, dto.ResetRequest{
		At: &dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	restored := state.Grid.At("Monday", "09:00-10:00")
	require.NotNil(t, restored)
	assert.Equal(t, "Mathematics", restored.SubjectName)
	assert.False(t, restored.IsCustom)
	// The paste on Tuesday survives a single-cell reset.
	require.NotNil(t, state.Grid.At("Tuesday", "09:00-10:00"))
	assert.True(t, state.Dirty)
}

func TestCustomEditsNeverTouchOfficial(t *testing.T) {
	editor, id := customEditor(t)

	_, err := editor.Delete(context.Background(), id, dto.DeleteSlotRequest{
		At: dto.CellRef{Day: "Monday", TimeRange: "09:00-10:00"},
	})
	require.NoError(t, err)

	state, err := editor.SetViewMode(context.Background(), id, dto.SetViewModeRequest{Mode: models.ViewModeOfficial})
	require.NoError(t, err)
	require.NotNil(t, state.Grid.At("Monday", "09:00-10:00"))
}
