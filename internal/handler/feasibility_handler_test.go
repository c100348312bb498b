package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
)

type feasibilityMock struct {
	captured models.FeasibilityInput
	result   models.FeasibilityResult
}

func (m *feasibilityMock) Check(ctx context.Context, input models.FeasibilityInput) (*models.FeasibilityResult, error) {
	m.captured = input
	return &m.result, nil
}

func TestFeasibilityCheckEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &feasibilityMock{result: models.FeasibilityResult{OK: false, Available: 125, Required: 150, Message: "mismatch"}}
	handler := &FeasibilityHandler{service: mockSvc}

	payload := []byte(`{"input":{"teacher_count":5,"max_hours_per_teacher_per_day":5,"working_days_count":5,"branch_count":5,"max_class_hours_per_week":30}}`)
	req, _ := http.NewRequest(http.MethodPost, "/feasibility/check", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Check(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 5, mockSvc.captured.TeacherCount)

	var envelope struct {
		Data dto.FeasibilityCheckResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.False(t, envelope.Data.Result.OK)
	require.Equal(t, 125, envelope.Data.Result.Available)
	require.Equal(t, 150, envelope.Data.Result.Required)
}

func TestFeasibilityCheckMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &FeasibilityHandler{service: &feasibilityMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/feasibility/check", bytes.NewReader([]byte(`{"input":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Check(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
