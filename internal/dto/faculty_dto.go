package dto

// FacultyOverviewResponse holds the per-faculty counts.
type FacultyOverviewResponse struct {
	CoursesCount int64 `json:"coursesCount"`
	ClassesCount int64 `json:"classesCount"`
	ReportsCount int64 `json:"reportsCount"`
}
