package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathvik2377/timetable-api/internal/models"
	appErrors "github.com/sathvik2377/timetable-api/pkg/errors"
)

func TestFeasibilityCheckExactMatch(t *testing.T) {
	svc := NewFeasibilityService(nil, nil)

	result, err := svc.Check(context.Background(), models.FeasibilityInput{
		TeacherCount:             5,
		MaxHoursPerTeacherPerDay: 6,
		WorkingDaysCount:         5,
		BranchCount:              2,
		MaxClassHoursPerWeek:     75,
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 150, result.Available)
	assert.Equal(t, 150, result.Required)
	assert.Empty(t, result.Message)
}

func TestFeasibilityCheckShortfall(t *testing.T) {
	svc := NewFeasibilityService(nil, nil)

	result, err := svc.Check(context.Background(), models.FeasibilityInput{
		TeacherCount:             5,
		MaxHoursPerTeacherPerDay: 5,
		WorkingDaysCount:         5,
		BranchCount:              2,
		MaxClassHoursPerWeek:     25,
	})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, 125, result.Available)
	assert.Equal(t, 50, result.Required)
	assert.Contains(t, result.Message, "125")
	assert.Contains(t, result.Message, "50")
}

func TestFeasibilityCheckSurplusAlsoFails(t *testing.T) {
	svc := NewFeasibilityService(nil, nil)

	result, err := svc.Check(context.Background(), models.FeasibilityInput{
		TeacherCount:             10,
		MaxHoursPerTeacherPerDay: 6,
		WorkingDaysCount:         5,
		BranchCount:              5,
		MaxClassHoursPerWeek:     30,
	})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, 300, result.Available)
}

func TestFeasibilityCheckRejectsInvalidInput(t *testing.T) {
	svc := NewFeasibilityService(nil, nil)

	_, err := svc.Check(context.Background(), models.FeasibilityInput{
		TeacherCount:     -1,
		WorkingDaysCount: 9,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFeasibilityEnsureBlocksMismatch(t *testing.T) {
	svc := NewFeasibilityService(nil, nil)

	err := svc.Ensure(context.Background(), models.FeasibilityInput{
		TeacherCount:             5,
		MaxHoursPerTeacherPerDay: 5,
		WorkingDaysCount:         5,
		BranchCount:              5,
		MaxClassHoursPerWeek:     30,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInfeasible.Code, appErrors.FromError(err).Code)
}
