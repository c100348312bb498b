package models

// SlotKind classifies the content of a timetable cell.
type SlotKind string

const (
	SlotKindTheory    SlotKind = "theory"
	SlotKindPractical SlotKind = "practical"
	SlotKindTutorial  SlotKind = "tutorial"
	SlotKindBreak     SlotKind = "break"
)

// Slot is one cell of the weekly grid.
type Slot struct {
	ID           string   `json:"id"`
	SubjectName  string   `json:"subject_name"`
	TeacherName  string   `json:"teacher_name,omitempty"`
	RoomName     string   `json:"room_name,omitempty"`
	Kind         SlotKind `json:"kind"`
	StudentCount int      `json:"student_count"`
	GroupLabel   string   `json:"group_label,omitempty"`
	IsCustom     bool     `json:"is_custom"`
}

// IsBreak reports whether the slot is an immutable break period.
func (s *Slot) IsBreak() bool {
	return s != nil && s.Kind == SlotKindBreak
}

// Clone returns an independent copy of the slot.
func (s *Slot) Clone() *Slot {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// NormalizeBreak strips attributes a break period must not carry.
func (s *Slot) NormalizeBreak() {
	if !s.IsBreak() {
		return
	}
	s.TeacherName = ""
	s.RoomName = ""
	s.GroupLabel = ""
}

// Weekday order for rendering and iteration. Saturday is optional per
// institution configuration.
var weekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// OrderedDays returns the canonical day ordering for a working week.
func OrderedDays(includeSaturday bool) []string {
	if includeSaturday {
		return append([]string(nil), weekDays...)
	}
	return append([]string(nil), weekDays[:5]...)
}

// DayIndex returns the position of a day in the canonical week ordering, or -1
// for unknown day names.
func DayIndex(day string) int {
	for i, d := range weekDays {
		if d == day {
			return i
		}
	}
	return -1
}

// Grid maps day name to time-range label to slot contents. Each (day, time)
// key holds at most one slot; Set enforces this by construction through
// overwrite semantics.
type Grid map[string]map[string]*Slot

// NewGrid returns an empty grid covering the given days.
func NewGrid(days []string) Grid {
	g := make(Grid, len(days))
	for _, day := range days {
		g[day] = make(map[string]*Slot)
	}
	return g
}

// At returns the slot stored under (day, timeRange), or nil when empty.
func (g Grid) At(day, timeRange string) *Slot {
	row, ok := g[day]
	if !ok {
		return nil
	}
	return row[timeRange]
}

// Set writes the slot into the cell, replacing whatever was there.
func (g Grid) Set(day, timeRange string, slot *Slot) {
	if g[day] == nil {
		g[day] = make(map[string]*Slot)
	}
	g[day][timeRange] = slot
}

// Remove clears the cell at (day, timeRange).
func (g Grid) Remove(day, timeRange string) {
	if row, ok := g[day]; ok {
		delete(row, timeRange)
	}
}

// Clone returns a deep copy of the grid, slots included.
func (g Grid) Clone() Grid {
	clone := make(Grid, len(g))
	for day, row := range g {
		cloneRow := make(map[string]*Slot, len(row))
		for timeRange, slot := range row {
			cloneRow[timeRange] = slot.Clone()
		}
		clone[day] = cloneRow
	}
	return clone
}

// TotalSessions counts occupied non-break cells.
func (g Grid) TotalSessions() int {
	total := 0
	for _, row := range g {
		for _, slot := range row {
			if slot != nil && !slot.IsBreak() {
				total++
			}
		}
	}
	return total
}
