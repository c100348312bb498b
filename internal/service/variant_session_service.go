package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sathvik2377/timetable-api/internal/dto"
	"github.com/sathvik2377/timetable-api/internal/models"
	"github.com/sathvik2377/timetable-api/internal/solver"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
)

// officialGridCache persists the committed grid outside the process so other
// replicas and restarts can serve reads. Best-effort; failures are logged,
// never surfaced.
type officialGridCache interface {
	StoreOfficialGrid(ctx context.Context, sessionID string, grid models.Grid) error
}

// sessionMetrics records generation/commit outcomes and solver latency.
type sessionMetrics interface {
	ObserveGeneration(outcome string, duration time.Duration)
	ObserveCommit(outcome string)
}

// VariantSessionConfig governs session behaviour.
type VariantSessionConfig struct {
	SessionTTL      time.Duration
	DefaultVariants int
}

// VariantSessionService drives the generate/select/commit lifecycle against
// the external solving backend. Candidate sets live only in memory; the
// official grid is the sole durable outcome and a commit replaces it
// atomically or leaves it untouched.
type VariantSessionService struct {
	store       *sessionStore
	solver      solver.Client
	feasibility *FeasibilityService
	cache       officialGridCache
	metrics     sessionMetrics
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         VariantSessionConfig
}

// NewVariantSessionService wires session lifecycle dependencies.
func NewVariantSessionService(
	solverClient solver.Client,
	feasibility *FeasibilityService,
	cache officialGridCache,
	metrics sessionMetrics,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg VariantSessionConfig,
) *VariantSessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultVariants <= 0 {
		cfg.DefaultVariants = 3
	}
	return &VariantSessionService{
		store:       newSessionStore(cfg.SessionTTL),
		solver:      solverClient,
		feasibility: feasibility,
		cache:       cache,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

// ActiveSessions reports how many sessions the store currently holds.
func (s *VariantSessionService) ActiveSessions() int {
	return s.store.Len()
}

// Create opens a session. The feasibility gate is evaluated immediately so
// the caller learns about supply/demand mismatches before requesting
// generation.
func (s *VariantSessionService) Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	if err := s.feasibility.Ensure(ctx, req.Feasibility); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &variantSession{
		ID:            uuid.NewString(),
		InstitutionID: req.InstitutionID,
		Title:         req.Title,
		Days:          models.OrderedDays(req.IncludeSaturday),
		TimeRanges:    append([]string(nil), req.TimeRanges...),
		Feasibility:   req.Feasibility,
		Status:        models.SessionStatusIdle,
		Mode:          models.ViewModeOfficial,
		CreatedAt:     now,
		TouchedAt:     now,
	}
	s.store.Save(session)

	s.logger.Sugar().Infow("variant session created",
		"session_id", session.ID,
		"institution_id", session.InstitutionID,
	)
	return s.snapshot(session), nil
}

// Generate asks the solver for a fresh batch of candidates. On success the
// previous candidate set is discarded wholesale and the selection cleared.
// A second generate or commit while one is in flight is rejected
// synchronously.
func (s *VariantSessionService) Generate(ctx context.Context, token, sessionID string, req dto.GenerateVariantsRequest) (*dto.SessionResponse, error) {
	return s.generate(ctx, token, sessionID, req, false)
}

// Regenerate behaves like Generate but is only reachable once a prior
// generation attempt has concluded: allowed from ready, committed, or failed.
func (s *VariantSessionService) Regenerate(ctx context.Context, token, sessionID string, req dto.GenerateVariantsRequest) (*dto.SessionResponse, error) {
	return s.generate(ctx, token, sessionID, req, true)
}

func (s *VariantSessionService) generate(ctx context.Context, token, sessionID string, req dto.GenerateVariantsRequest, regenerating bool) (*dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}

	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or expired")
	}

	session.mu.Lock()
	if session.busy {
		session.mu.Unlock()
		return nil, appErrors.ErrSessionBusy
	}
	if regenerating {
		switch session.Status {
		case models.SessionStatusReady, models.SessionStatusCommitted, models.SessionStatusFailed:
		default:
			session.mu.Unlock()
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "nothing to regenerate yet; generate first")
		}
	}
	priorStatus := session.Status
	session.busy = true
	session.Status = models.SessionStatusGenerating
	session.LastError = ""

	count := req.VariantCount
	if count <= 0 {
		count = s.cfg.DefaultVariants
	}
	solverReq := solver.GenerateRequest{
		InstitutionID: session.InstitutionID,
		VariantCount:  count,
		Days:          append([]string(nil), session.Days...),
		TimeRanges:    append([]string(nil), session.TimeRanges...),
		Feasibility:   session.Feasibility,
		Constraints:   req.Constraints,
	}
	session.mu.Unlock()

	if err := s.feasibility.Ensure(ctx, solverReq.Feasibility); err != nil {
		session.mu.Lock()
		session.busy = false
		session.Status = priorStatus
		session.mu.Unlock()
		return nil, err
	}

	start := time.Now()
	variants, err := s.solver.GenerateVariants(ctx, token, solverReq)
	elapsed := time.Since(start)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.busy = false

	if err != nil {
		session.Status = models.SessionStatusFailed
		session.LastError = appErrors.FromError(err).Message
		if s.metrics != nil {
			s.metrics.ObserveGeneration("error", elapsed)
		}
		s.logger.Sugar().Warnw("variant generation failed", "session_id", session.ID, "error", err)
		return nil, err
	}
	if len(variants) == 0 {
		session.Status = models.SessionStatusFailed
		session.LastError = "solver returned no variants"
		if s.metrics != nil {
			s.metrics.ObserveGeneration("empty", elapsed)
		}
		return nil, appErrors.Clone(appErrors.ErrSolverUnavailable, "solver returned no variants")
	}

	session.Candidates = variants
	session.SelectedID = ""
	session.Status = models.SessionStatusReady
	if s.metrics != nil {
		s.metrics.ObserveGeneration("ok", elapsed)
	}

	s.logger.Sugar().Infow("variants generated",
		"session_id", session.ID,
		"count", len(variants),
		"elapsed", elapsed.String(),
	)
	return s.snapshotLocked(session), nil
}

// Select marks one candidate as the working choice. Selection never triggers
// a commit; scores play no part in it.
func (s *VariantSessionService) Select(ctx context.Context, sessionID string, req dto.SelectVariantRequest) (*dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or expired")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.busy {
		return nil, appErrors.ErrSessionBusy
	}
	if len(session.Candidates) == 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "no candidates to select from")
	}
	if session.findCandidate(req.VariantID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "variant not found in the current candidate set")
	}

	session.SelectedID = req.VariantID
	return s.snapshotLocked(session), nil
}

// Commit promotes the selected candidate to the official grid. The swap is
// all-or-nothing: if the backend rejects the commit, the previous official
// grid stays in place. A successful commit discards the candidate set.
func (s *VariantSessionService) Commit(ctx context.Context, token, sessionID string, req dto.CommitVariantRequest) (*dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid commit payload")
	}

	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or expired")
	}

	session.mu.Lock()
	if session.busy {
		session.mu.Unlock()
		return nil, appErrors.ErrSessionBusy
	}
	if session.SelectedID == "" {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "select a variant before committing")
	}
	if session.SelectedID != req.VariantID {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrInvalidState, "commit target does not match the selected variant")
	}
	candidate := session.findCandidate(req.VariantID)
	if candidate == nil {
		session.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "variant not found in the current candidate set")
	}

	grid := candidate.Grid.Clone()
	session.busy = true
	session.Status = models.SessionStatusCommitting
	session.LastError = ""
	solverReq := solver.CommitRequest{
		InstitutionID: session.InstitutionID,
		VariantID:     req.VariantID,
		Grid:          grid,
	}
	session.mu.Unlock()

	err := s.solver.CommitVariant(ctx, token, solverReq)

	session.mu.Lock()
	defer session.mu.Unlock()
	session.busy = false

	if err != nil {
		session.Status = models.SessionStatusReady
		session.LastError = appErrors.FromError(err).Message
		if s.metrics != nil {
			s.metrics.ObserveCommit("error")
		}
		s.logger.Sugar().Warnw("variant commit failed", "session_id", session.ID, "variant_id", req.VariantID, "error", err)
		return nil, err
	}

	session.Official = grid
	session.CommittedAt = time.Now().UTC()
	session.Custom = grid.Clone()
	session.Dirty = false
	session.Mode = models.ViewModeOfficial
	session.Candidates = nil
	session.SelectedID = ""
	session.Status = models.SessionStatusCommitted
	if s.metrics != nil {
		s.metrics.ObserveCommit("ok")
	}

	if s.cache != nil {
		if cacheErr := s.cache.StoreOfficialGrid(ctx, session.ID, session.Official); cacheErr != nil {
			s.logger.Sugar().Warnw("official grid cache write failed", "session_id", session.ID, "error", cacheErr)
		}
	}

	s.logger.Sugar().Infow("variant committed",
		"session_id", session.ID,
		"variant_id", req.VariantID,
		"sessions_total", session.Official.TotalSessions(),
	)
	return s.snapshotLocked(session), nil
}

// Get returns the session's external view.
func (s *VariantSessionService) Get(_ context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or expired")
	}
	return s.snapshot(session), nil
}

// GetVariant returns one candidate with its full grid.
func (s *VariantSessionService) GetVariant(_ context.Context, sessionID, variantID string) (*dto.VariantDetailResponse, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or expired")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	candidate := session.findCandidate(variantID)
	if candidate == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "variant not found in the current candidate set")
	}
	return &dto.VariantDetailResponse{
		VariantID: candidate.VariantID,
		Grid:      candidate.Grid.Clone(),
		Metrics:   candidate.Metrics,
		Selected:  session.SelectedID == candidate.VariantID,
	}, nil
}

// Official returns the committed grid, if one exists.
func (s *VariantSessionService) Official(_ context.Context, sessionID string) (*dto.OfficialGridResponse, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found or expired")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Official == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no committed timetable for this session")
	}
	return &dto.OfficialGridResponse{
		SessionID:   session.ID,
		Grid:        session.Official.Clone(),
		CommittedAt: session.CommittedAt.Format(time.RFC3339),
	}, nil
}

func (s *VariantSessionService) snapshot(session *variantSession) *dto.SessionResponse {
	session.mu.Lock()
	defer session.mu.Unlock()
	return s.snapshotLocked(session)
}

// snapshotLocked assumes the caller holds session.mu.
func (s *VariantSessionService) snapshotLocked(session *variantSession) *dto.SessionResponse {
	candidates := make([]dto.VariantSummary, 0, len(session.Candidates))
	for i := range session.Candidates {
		candidates = append(candidates, dto.VariantSummary{
			VariantID: session.Candidates[i].VariantID,
			Metrics:   session.Candidates[i].Metrics,
			Selected:  session.SelectedID == session.Candidates[i].VariantID,
		})
	}
	return &dto.SessionResponse{
		SessionID:     session.ID,
		InstitutionID: session.InstitutionID,
		Title:         session.Title,
		Status:        session.Status,
		Candidates:    candidates,
		SelectedID:    session.SelectedID,
		HasOfficial:   session.Official != nil,
		LastError:     session.LastError,
	}
}

// session exposes the raw entry to sibling services in this package.
func (s *VariantSessionService) session(sessionID string) (*variantSession, bool) {
	return s.store.Get(sessionID)
}
