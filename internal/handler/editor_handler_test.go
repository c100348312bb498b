package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
)

type gridEditorMock struct {
	moveReq  dto.MoveSlotRequest
	stateErr error
}

func (m *gridEditorMock) State(ctx context.Context, sessionID string) (*dto.EditorStateResponse, error) {
	if m.stateErr != nil {
		return nil, m.stateErr
	}
	return &dto.EditorStateResponse{SessionID: sessionID, Mode: models.ViewModeCustom, Editable: true}, nil
}

func (m *gridEditorMock) SetViewMode(ctx context.Context, sessionID string, req dto.SetViewModeRequest) (*dto.EditorStateResponse, error) {
	return &dto.EditorStateResponse{SessionID: sessionID, Mode: req.Mode}, nil
}

func (m *gridEditorMock) Move(ctx context.Context, sessionID string, req dto.MoveSlotRequest) (*dto.EditorStateResponse, error) {
	m.moveReq = req
	return &dto.EditorStateResponse{SessionID: sessionID}, nil
}

func (m *gridEditorMock) Copy(ctx context.Context, sessionID string, req dto.CopySlotRequest) (*dto.ClipboardResponse, error) {
	return &dto.ClipboardResponse{}, nil
}

func (m *gridEditorMock) Paste(ctx context.Context, sessionID string, req dto.PasteSlotRequest) (*dto.EditorStateResponse, error) {
	return &dto.EditorStateResponse{SessionID: sessionID}, nil
}

func (m *gridEditorMock) Delete(ctx context.Context, sessionID string, req dto.DeleteSlotRequest) (*dto.EditorStateResponse, error) {
	return &dto.EditorStateResponse{SessionID: sessionID}, nil
}

func (m *gridEditorMock) Reset(ctx context.Context, sessionID string, req dto.ResetRequest) (*dto.EditorStateResponse, error) {
	return &dto.EditorStateResponse{SessionID: sessionID}, nil
}

func TestEditorMoveSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &gridEditorMock{}
	handler := &EditorHandler{service: mockSvc}
	router := gin.New()
	router.POST("/sessions/:id/editor/move", handler.Move)

	payload := []byte(`{"from":{"day":"Monday","timeRange":"09:00-10:00"},"to":{"day":"Tuesday","timeRange":"09:00-10:00"}}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess-1/editor/move", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Monday", mockSvc.moveReq.From.Day)
	require.Equal(t, "Tuesday", mockSvc.moveReq.To.Day)
}

func TestEditorStateInvalidSessionState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &EditorHandler{service: &gridEditorMock{stateErr: appErrors.ErrInvalidState}}
	router := gin.New()
	router.GET("/sessions/:id/editor", handler.State)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/sessions/sess-1/editor", nil)

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestEditorMoveMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &EditorHandler{service: &gridEditorMock{}}
	router := gin.New()
	router.POST("/sessions/:id/editor/move", handler.Move)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/sessions/sess-1/editor/move", bytes.NewReader([]byte(`{"from":`)))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
