package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
	"github.com/sathvik2377/timetable-api/pkg/storage"
)

type stubGridSource struct {
	grid       models.Grid
	days       []string
	timeRanges []string
	title      string
	err        error
}

func (s *stubGridSource) DisplayedGrid(_ context.Context, _ string) (models.Grid, []string, []string, string, error) {
	if s.err != nil {
		return nil, nil, nil, "", s.err
	}
	return s.grid.Clone(), s.days, s.timeRanges, s.title, nil
}

func exportFixture() *stubGridSource {
	days := []string{"Monday", "Tuesday"}
	timeRanges := []string{"09:00-10:00", "10:00-10:15"}
	grid := models.NewGrid(days)
	grid.Set("Monday", "09:00-10:00", &models.Slot{
		ID: "s1", SubjectName: "Mathematics", TeacherName: "A. Sharma", RoomName: "R-101", Kind: models.SlotKindTheory,
	})
	grid.Set("Monday", "10:00-10:15", &models.Slot{
		ID: "s2", SubjectName: "Break", Kind: models.SlotKindBreak,
	})
	return &stubGridSource{grid: grid, days: days, timeRanges: timeRanges, title: "Semester 1"}
}

func newExportService(t *testing.T, source gridSource) *ExportService {
	t.Helper()

	store, err := storage.NewArtifactStore(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	svc := NewExportService(source, store, signer, nil, nil, nil, ExportConfig{
		APIPrefix: "/api/v1",
		Workers:   1,
	})

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	t.Cleanup(func() {
		cancel()
		svc.Stop()
	})
	return svc
}

func waitReady(t *testing.T, svc *ExportService, exportID string) *dto.ExportResponse {
	t.Helper()
	var resp *dto.ExportResponse
	require.Eventually(t, func() bool {
		r, err := svc.Status(context.Background(), exportID)
		if err != nil {
			return false
		}
		resp = r
		return r.Status != ExportStatusPending
	}, 5*time.Second, 10*time.Millisecond)
	return resp
}

func TestExportCSVRoundTrip(t *testing.T) {
	svc := newExportService(t, exportFixture())

	created, err := svc.Create(context.Background(), "sess-1", dto.ExportRequest{Format: "csv"})
	require.NoError(t, err)
	assert.Equal(t, ExportStatusPending, created.Status)

	ready := waitReady(t, svc, created.ExportID)
	require.Equal(t, ExportStatusReady, ready.Status)
	require.NotEmpty(t, ready.DownloadURL)

	token := ready.DownloadURL[strings.LastIndex(ready.DownloadURL, "/")+1:]
	file, _, err := svc.Download(context.Background(), token)
	require.NoError(t, err)
	defer file.Close()

	raw, err := io.ReadAll(file)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Time,Monday,Tuesday")
	assert.Contains(t, content, "Mathematics / A. Sharma / R-101")
	assert.Contains(t, content, "BREAK")
}

func TestExportPDFProducesFile(t *testing.T) {
	svc := newExportService(t, exportFixture())

	created, err := svc.Create(context.Background(), "sess-1", dto.ExportRequest{Format: "pdf", Title: "Week 1"})
	require.NoError(t, err)

	ready := waitReady(t, svc, created.ExportID)
	assert.Equal(t, ExportStatusReady, ready.Status)
}

func TestExportXLSXProducesFile(t *testing.T) {
	svc := newExportService(t, exportFixture())

	created, err := svc.Create(context.Background(), "sess-1", dto.ExportRequest{Format: "xlsx"})
	require.NoError(t, err)

	ready := waitReady(t, svc, created.ExportID)
	assert.Equal(t, ExportStatusReady, ready.Status)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newExportService(t, exportFixture())

	_, err := svc.Create(context.Background(), "sess-1", dto.ExportRequest{Format: "docx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportPropagatesSessionErrors(t *testing.T) {
	svc := newExportService(t, &stubGridSource{err: appErrors.Clone(appErrors.ErrInvalidState, "commit a variant before opening the editor")})

	_, err := svc.Create(context.Background(), "sess-1", dto.ExportRequest{Format: "csv"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidState.Code, appErrors.FromError(err).Code)
}

func TestExportStatusUnknownID(t *testing.T) {
	svc := newExportService(t, exportFixture())

	_, err := svc.Status(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDownloadRejectsTamperedToken(t *testing.T) {
	svc := newExportService(t, exportFixture())

	_, _, err := svc.Download(context.Background(), "not.a.valid.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestBuildGridDatasetShape(t *testing.T) {
	fixture := exportFixture()
	dataset := BuildGridDataset(fixture.grid, fixture.days, fixture.timeRanges)

	require.Equal(t, []string{"Time", "Monday", "Tuesday"}, dataset.Headers)
	require.Len(t, dataset.Rows, 2)
	assert.Equal(t, "09:00-10:00", dataset.Rows[0]["Time"])
	assert.Equal(t, "Mathematics / A. Sharma / R-101", dataset.Rows[0]["Monday"])
	assert.Equal(t, "", dataset.Rows[0]["Tuesday"])
	assert.Equal(t, "BREAK", dataset.Rows[1]["Monday"])
}
