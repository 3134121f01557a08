package dto

import (
	"encoding/json"

	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// ClassCreateRequest is the payload for POST /api/classes.
type ClassCreateRequest struct {
	CourseID        uint   `json:"course_id" validate:"required"`
	Name            string `json:"name" validate:"required,max=255"`
	ScheduledTime   string `json:"scheduled_time" validate:"max=64"`
	Venue           string `json:"venue" validate:"max=255"`
	TotalRegistered int    `json:"total_registered" validate:"gte=0"`
	LecturerID      uint   `json:"lecturer_id" validate:"required"`
}

// UnmarshalJSON accepts the numeric fields as numbers or numeric strings. An empty
// total_registered counts as zero.
func (r *ClassCreateRequest) UnmarshalJSON(data []byte) error {
	type plain ClassCreateRequest
	wire := struct {
		*plain
		CourseID        formNumber `json:"course_id"`
		TotalRegistered formNumber `json:"total_registered"`
		LecturerID      formNumber `json:"lecturer_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var err error
	if r.CourseID, err = wire.CourseID.id("course_id"); err != nil {
		return err
	}
	if r.LecturerID, err = wire.LecturerID.id("lecturer_id"); err != nil {
		return err
	}
	r.TotalRegistered = wire.TotalRegistered.asInt()
	return nil
}

// ClassResponse is a class joined with its course and lecturer names.
type ClassResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	ScheduledTime   string  `json:"scheduled_time"`
	Venue           string  `json:"venue"`
	TotalRegistered int     `json:"total_registered"`
	CourseID        uint    `json:"course_id"`
	CourseName      string  `json:"course_name"`
	CourseCode      string  `json:"course_code"`
	LecturerID      *uint   `json:"lecturer_id"`
	LecturerName    *string `json:"lecturer_name"`
}

// NewClassResponse maps a joined class row.
func NewClassResponse(row repository.ClassDetail) ClassResponse {
	return ClassResponse{
		ID:              row.ID,
		Name:            row.Name,
		ScheduledTime:   row.ScheduledTime,
		Venue:           row.Venue,
		TotalRegistered: row.TotalRegistered,
		CourseID:        row.CourseID,
		CourseName:      row.CourseName,
		CourseCode:      row.CourseCode,
		LecturerID:      row.LecturerID,
		LecturerName:    row.LecturerName,
	}
}
