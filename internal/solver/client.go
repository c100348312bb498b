package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
)

// GenerateRequest is the payload sent to the external solving backend.
type GenerateRequest struct {
	InstitutionID string                  `json:"institution_id"`
	VariantCount  int                     `json:"variant_count"`
	Days          []string                `json:"days"`
	TimeRanges    []string                `json:"time_ranges"`
	Feasibility   models.FeasibilityInput `json:"feasibility"`
	Constraints   map[string]any          `json:"constraints,omitempty"`
}

// CommitRequest asks the backend to persist the chosen variant as official.
type CommitRequest struct {
	InstitutionID string      `json:"institution_id"`
	VariantID     string      `json:"variant_id"`
	Grid          models.Grid `json:"grid"`
}

// Generator produces candidate schedules.
type Generator interface {
	GenerateVariants(ctx context.Context, token string, req GenerateRequest) ([]models.Variant, error)
}

// Committer records a chosen variant on the backend of record.
type Committer interface {
	CommitVariant(ctx context.Context, token string, req CommitRequest) error
}

// Client combines the two solver operations this service depends on.
type Client interface {
	Generator
	Committer
}

// HTTPClient talks to the constraint-solving backend over JSON/HTTP. The
// caller's bearer token is forwarded unchanged.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient builds a client against the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// The backend reports failures in-band as well as via HTTP status: a 200
// carrying success=false is still a failure and its message must reach the
// caller. An absent success field is trusted to mean the status code told
// the whole story.
type generateResponse struct {
	Success         *bool            `json:"success"`
	Variants        []models.Variant `json:"variants"`
	SuccessfulCount int              `json:"successful_count"`
	Message         string           `json:"message"`
	Error           string           `json:"error"`
}

type commitResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type backendError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// GenerateVariants requests a batch of candidate schedules.
func (c *HTTPClient) GenerateVariants(ctx context.Context, token string, req GenerateRequest) ([]models.Variant, error) {
	start := time.Now()
	var out generateResponse
	if err := c.post(ctx, "/generate-variants", token, req, &out); err != nil {
		return nil, err
	}
	if out.Success != nil && !*out.Success {
		return nil, c.inBandFailure("generate-variants", out.Message, out.Error)
	}
	c.logger.Sugar().Infow("solver generated variants",
		"institution_id", req.InstitutionID,
		"count", len(out.Variants),
		"elapsed", time.Since(start).String(),
	)
	return out.Variants, nil
}

// CommitVariant records the chosen variant with the backend of record.
func (c *HTTPClient) CommitVariant(ctx context.Context, token string, req CommitRequest) error {
	var out commitResponse
	if err := c.post(ctx, "/commit-variant", token, req, &out); err != nil {
		return err
	}
	if out.Success != nil && !*out.Success {
		return c.inBandFailure("commit-variant", out.Message, out.Error)
	}
	return nil
}

// inBandFailure turns a success=false body into an error carrying the
// backend's own message.
func (c *HTTPClient) inBandFailure(op, message, fallback string) error {
	msg := message
	if msg == "" {
		msg = fallback
	}
	if msg == "" {
		msg = "solver reported failure"
	}
	c.logger.Sugar().Warnw("solver reported in-band failure", "op", op, "message", msg)
	return appErrors.Clone(appErrors.ErrSolverUnavailable, msg)
}

func (c *HTTPClient) post(ctx context.Context, path, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode solver request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build solver request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, appErrors.ErrSolverUnavailable.Message)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, "read solver response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.asBackendError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrSolverUnavailable.Code, appErrors.ErrSolverUnavailable.Status, "decode solver response")
		}
	}
	return nil
}

// asBackendError surfaces the backend's own message so the user can act on
// infeasibility details the backend reports.
func (c *HTTPClient) asBackendError(status int, raw []byte) error {
	var be backendError
	msg := ""
	if err := json.Unmarshal(raw, &be); err == nil {
		if be.Message != "" {
			msg = be.Message
		} else if be.Error != "" {
			msg = be.Error
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("solver returned status %d", status)
	}

	c.logger.Sugar().Warnw("solver request rejected", "status", status, "message", msg)

	if status == http.StatusUnprocessableEntity {
		return appErrors.Clone(appErrors.ErrInfeasible, msg)
	}
	if status >= 400 && status < 500 {
		return appErrors.New(appErrors.ErrValidation.Code, status, msg)
	}
	return appErrors.Clone(appErrors.ErrSolverUnavailable, msg)
}
