package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/course-reporting-api/internal/models"
	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// ReportCreateRequest is the payload for POST /api/reports. ActualStudentsPresent is a
// pointer so an explicit zero passes the presence check.
type ReportCreateRequest struct {
	ClassID               uint   `json:"class_id" validate:"required"`
	TopicTaught           string `json:"topic_taught" validate:"required"`
	ActualStudentsPresent *int   `json:"actual_students_present" validate:"required,gte=0"`
	PRLID                 uint   `json:"prl_id" validate:"required"`
}

// UnmarshalJSON accepts the numeric fields as numbers or numeric strings. An empty
// actual_students_present stays nil and fails the presence check.
func (r *ReportCreateRequest) UnmarshalJSON(data []byte) error {
	type plain ReportCreateRequest
	wire := struct {
		*plain
		ClassID               formNumber `json:"class_id"`
		ActualStudentsPresent formNumber `json:"actual_students_present"`
		PRLID                 formNumber `json:"prl_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var err error
	if r.ClassID, err = wire.ClassID.id("class_id"); err != nil {
		return err
	}
	if r.PRLID, err = wire.PRLID.id("prl_id"); err != nil {
		return err
	}
	r.ActualStudentsPresent = wire.ActualStudentsPresent.intPtr()
	return nil
}

// ReportFeedbackRequest is the payload for POST /api/reports/:id/feedback.
type ReportFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
	Status   string `json:"status" validate:"required"`
}

// ReportResponse is a report joined with its class, course and people.
type ReportResponse struct {
	ID                    uint                `json:"id"`
	TopicTaught           string              `json:"topic_taught"`
	ActualStudentsPresent int                 `json:"actual_students_present"`
	Status                models.ReportStatus `json:"status"`
	PRLFeedback           *string             `json:"prl_feedback"`
	PRLID                 uint                `json:"prl_id"`
	ClassName             string              `json:"class_name"`
	CourseName            string              `json:"course_name"`
	CourseCode            string              `json:"course_code"`
	LecturerName          string              `json:"lecturer_name"`
	PRLName               string              `json:"prl_name"`
	CreatedAt             time.Time           `json:"created_at"`
}

// NewReportResponse maps a joined report row. Missing feedback serializes as null.
func NewReportResponse(row repository.ReportDetail) ReportResponse {
	response := ReportResponse{
		ID:                    row.ID,
		TopicTaught:           row.TopicTaught,
		ActualStudentsPresent: row.ActualStudentsPresent,
		Status:                row.Status,
		PRLID:                 row.PRLID,
		ClassName:             row.ClassName,
		CourseName:            row.CourseName,
		CourseCode:            row.CourseCode,
		LecturerName:          row.LecturerName,
		PRLName:               row.PRLName,
		CreatedAt:             row.CreatedAt,
	}
	if row.PRLFeedback != "" {
		feedback := row.PRLFeedback
		response.PRLFeedback = &feedback
	}
	return response
}
