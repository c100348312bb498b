package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
	"github.com/sathvik2377/timetable-api/pkg/export"
	"github.com/sathvik2377/timetable-api/pkg/jobs"
	"github.com/sathvik2377/timetable-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type gridSource interface {
	DisplayedGrid(ctx context.Context, sessionID string) (models.Grid, []string, []string, string, error)
}

type exportMetrics interface {
	ObserveExport(format, outcome string)
}

// ExportStatus tracks render progress.
const (
	ExportStatusPending = "pending"
	ExportStatusReady   = "ready"
	ExportStatusFailed  = "failed"
)

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix       string
	ResultTTL       time.Duration
	CleanupInterval time.Duration
	Workers         int
}

type exportRecord struct {
	ID        string
	SessionID string
	Format    string
	Status    string
	RelPath   string
	Token     string
	ExpiresAt time.Time
	Error     string
}

type exportJobPayload struct {
	record  *exportRecord
	dataset export.Dataset
	title   string
}

// ExportService snapshots the displayed grid and renders it to a
// downloadable file. The snapshot is taken at request time, so later edits
// never leak into an export already underway. Rendering runs on a worker
// queue; a failed render is reported once and not retried.
type ExportService struct {
	grids     gridSource
	storage   fileStorage
	signer    *storage.SignedURLSigner
	csv       csvRenderer
	pdf       pdfRenderer
	xlsx      xlsxRenderer
	metrics   exportMetrics
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig

	queue *jobs.Queue

	mu      sync.RWMutex
	records map[string]*exportRecord
}

// NewExportService constructs an ExportService and its render queue. Call
// Start before accepting requests and Stop on shutdown.
func NewExportService(
	grids gridSource,
	store fileStorage,
	signer *storage.SignedURLSigner,
	metrics exportMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ExportConfig,
) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Hour
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}

	s := &ExportService{
		grids:     grids,
		storage:   store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		xlsx:      export.NewXLSXExporter(),
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		records:   make(map[string]*exportRecord),
	}
	s.queue = jobs.NewQueue("exports", s.renderJob, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: 0,
		Logger:     logger,
	})
	return s
}

// Start launches the render workers and the storage cleanup loop.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.cleanupLoop(ctx)
}

// Stop drains the render workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Create snapshots the currently displayed grid and enqueues rendering.
func (s *ExportService) Create(ctx context.Context, sessionID string, req dto.ExportRequest) (*dto.ExportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	grid, days, timeRanges, sessionTitle, err := s.grids.DisplayedGrid(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = sessionTitle
	}
	dataset := BuildGridDataset(grid, days, timeRanges)

	record := &exportRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Format:    req.Format,
		Status:    ExportStatusPending,
	}
	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()

	job := jobs.Job{
		ID:      record.ID,
		Type:    "render",
		Payload: exportJobPayload{record: record, dataset: dataset, title: title},
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.mu.Lock()
		record.Status = ExportStatusFailed
		record.Error = "export queue unavailable"
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, "export queue unavailable")
	}

	return s.view(record), nil
}

// Status reports render progress and, once ready, the signed download URL.
func (s *ExportService) Status(_ context.Context, exportID string) (*dto.ExportResponse, error) {
	s.mu.RLock()
	record, ok := s.records[exportID]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	return s.view(record), nil
}

// Download validates a signed token and opens the rendered file.
func (s *ExportService) Download(_ context.Context, token string) (*os.File, string, error) {
	exportID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		s.logger.Sugar().Warnw("export file missing", "export_id", exportID, "path", relPath)
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export file no longer available")
	}
	return file, relPath, nil
}

func (s *ExportService) renderJob(_ context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(exportJobPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	record := payload.record

	var data []byte
	var err error
	switch record.Format {
	case "csv":
		data, err = s.csv.Render(payload.dataset)
	case "pdf":
		data, err = s.pdf.Render(payload.dataset, payload.title)
	case "xlsx":
		data, err = s.xlsx.Render(payload.dataset, payload.title)
	default:
		err = fmt.Errorf("unsupported format %s", record.Format)
	}
	if err != nil {
		s.fail(record, err)
		return err
	}

	filename := fmt.Sprintf("%s/%s.%s", record.SessionID, record.ID, record.Format)
	relPath, err := s.storage.Save(filename, data)
	if err != nil {
		s.fail(record, err)
		return err
	}

	token, expiresAt, err := s.signer.Generate(record.ID, relPath)
	if err != nil {
		s.fail(record, err)
		return err
	}

	s.mu.Lock()
	record.Status = ExportStatusReady
	record.RelPath = relPath
	record.Token = token
	record.ExpiresAt = expiresAt
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.ObserveExport(record.Format, "ok")
	}
	s.logger.Sugar().Infow("export rendered",
		"export_id", record.ID,
		"session_id", record.SessionID,
		"format", record.Format,
		"bytes", len(data),
	)
	return nil
}

func (s *ExportService) fail(record *exportRecord, err error) {
	s.mu.Lock()
	record.Status = ExportStatusFailed
	record.Error = err.Error()
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.ObserveExport(record.Format, "error")
	}
}

func (s *ExportService) view(record *exportRecord) *dto.ExportResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := &dto.ExportResponse{
		ExportID: record.ID,
		Format:   record.Format,
		Status:   record.Status,
	}
	if record.Status == ExportStatusReady {
		resp.DownloadURL = fmt.Sprintf("%s/exports/download/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), record.Token)
		resp.ExpiresAt = record.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}

func (s *ExportService) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := s.storage.CleanupOlderThan(s.cfg.ResultTTL)
			if err != nil {
				s.logger.Sugar().Warnw("export cleanup failed", "error", err)
				continue
			}
			if len(deleted) > 0 {
				s.logger.Sugar().Infow("stale exports removed", "count", len(deleted))
			}
		}
	}
}

// BuildGridDataset flattens a weekly grid into tabular form, one row per
// time range with days as columns.
func BuildGridDataset(grid models.Grid, days, timeRanges []string) export.Dataset {
	headers := append([]string{"Time"}, days...)
	rows := make([]map[string]string, 0, len(timeRanges))
	for _, tr := range timeRanges {
		row := map[string]string{"Time": tr}
		for _, day := range days {
			row[day] = formatSlotCell(grid.At(day, tr))
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func formatSlotCell(slot *models.Slot) string {
	if slot == nil {
		return ""
	}
	if slot.IsBreak() {
		return "BREAK"
	}
	parts := []string{slot.SubjectName}
	if slot.TeacherName != "" {
		parts = append(parts, slot.TeacherName)
	}
	if slot.RoomName != "" {
		parts = append(parts, slot.RoomName)
	}
	return strings.Join(parts, " / ")
}
