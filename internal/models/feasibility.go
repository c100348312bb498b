package models

// FeasibilityInput is the setup-form arithmetic recomputed on every change.
type FeasibilityInput struct {
	TeacherCount             int `json:"teacher_count" validate:"min=0"`
	MaxHoursPerTeacherPerDay int `json:"max_hours_per_teacher_per_day" validate:"min=0"`
	WorkingDaysCount         int `json:"working_days_count" validate:"min=0,max=7"`
	BranchCount              int `json:"branch_count" validate:"min=0"`
	MaxClassHoursPerWeek     int `json:"max_class_hours_per_week" validate:"min=0"`
}

// FeasibilityResult reports whether aggregate teacher-hour supply exactly
// matches aggregate class-hour demand, with both totals for display.
type FeasibilityResult struct {
	OK        bool   `json:"ok"`
	Available int    `json:"available"`
	Required  int    `json:"required"`
	Message   string `json:"message,omitempty"`
}
