package solver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/sathvik2377/timetable-api/internal/models"
)

// subjects used by the mock to fill grids during local development.
var mockSubjects = []string{
	"Mathematics", "Physics", "Chemistry", "Biology", "English",
	"History", "Geography", "Computer Science", "Economics", "Art",
}

var mockTeachers = []string{
	"A. Sharma", "B. Iyer", "C. Rao", "D. Kulkarni", "E. Menon",
	"F. Das", "G. Reddy", "H. Nair",
}

// MockSolver generates deterministic pseudo-random variants without a
// backend. Intended for local development and tests.
type MockSolver struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockSolver seeds the mock; the same seed yields the same variants.
func NewMockSolver(seed int64) *MockSolver {
	if seed == 0 {
		seed = 1
	}
	return &MockSolver{rng: rand.New(rand.NewSource(seed))}
}

// GenerateVariants fills each requested variant's grid with pseudo-random
// subject-teacher pairs. The second time range of each day is a break.
func (m *MockSolver) GenerateVariants(_ context.Context, _ string, req GenerateRequest) ([]models.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := req.VariantCount
	if count <= 0 {
		count = 3
	}

	variants := make([]models.Variant, 0, count)
	for i := 0; i < count; i++ {
		grid := models.NewGrid(req.Days)
		for _, day := range req.Days {
			for j, tr := range req.TimeRanges {
				if j == 1 && len(req.TimeRanges) > 2 {
					grid.Set(day, tr, &models.Slot{
						ID:          uuid.NewString(),
						SubjectName: "Break",
						Kind:        models.SlotKindBreak,
					})
					continue
				}
				grid.Set(day, tr, &models.Slot{
					ID:          uuid.NewString(),
					SubjectName: mockSubjects[m.rng.Intn(len(mockSubjects))],
					TeacherName: mockTeachers[m.rng.Intn(len(mockTeachers))],
					RoomName:    fmt.Sprintf("R-%d", 100+m.rng.Intn(20)),
					Kind:        models.SlotKindTheory,
				})
			}
		}

		variants = append(variants, models.Variant{
			VariantID: uuid.NewString(),
			Grid:      grid,
			Metrics: models.VariantMetrics{
				QualityScore:      60 + m.rng.Float64()*40,
				TotalSessions:     grid.TotalSessions(),
				ConflictsResolved: m.rng.Intn(5),
			},
		})
	}
	return variants, nil
}

// CommitVariant is a no-op for the mock.
func (m *MockSolver) CommitVariant(_ context.Context, _ string, _ CommitRequest) error {
	return nil
}
