package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
)

// FeasibilityService recomputes the setup-form supply/demand comparison. The
// gate passes only when aggregate teacher hours exactly equal aggregate class
// hours; both a shortfall and a surplus block generation.
type FeasibilityService struct {
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeasibilityService wires the validator and logger.
func NewFeasibilityService(validate *validator.Validate, logger *zap.Logger) *FeasibilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeasibilityService{validator: validate, logger: logger}
}

// Check compares teacher-hour supply against class-hour demand.
func (s *FeasibilityService) Check(_ context.Context, input models.FeasibilityInput) (*models.FeasibilityResult, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feasibility input")
	}

	available := input.TeacherCount * input.MaxHoursPerTeacherPerDay * input.WorkingDaysCount
	required := input.BranchCount * input.MaxClassHoursPerWeek

	result := &models.FeasibilityResult{
		OK:        available == required,
		Available: available,
		Required:  required,
	}
	if !result.OK {
		result.Message = fmt.Sprintf(
			"teacher-hour supply (%d = %d teachers x %d hours/day x %d days) must equal class-hour demand (%d = %d branches x %d hours/week)",
			available, input.TeacherCount, input.MaxHoursPerTeacherPerDay, input.WorkingDaysCount,
			required, input.BranchCount, input.MaxClassHoursPerWeek,
		)
	}

	s.logger.Sugar().Debugw("feasibility checked", "available", available, "required", required, "ok", result.OK)
	return result, nil
}

// Ensure returns an error unless the gate passes. Used before any solver call.
func (s *FeasibilityService) Ensure(ctx context.Context, input models.FeasibilityInput) error {
	result, err := s.Check(ctx, input)
	if err != nil {
		return err
	}
	if !result.OK {
		return appErrors.Clone(appErrors.ErrInfeasible, result.Message)
	}
	return nil
}
