package models

import "time"

// ReportStatus tracks the review state of a lecture report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
)

// Report is a lecturer's record of a taught session, reviewed by a PRL.
type Report struct {
	ID                    uint         `gorm:"primaryKey" json:"id"`
	LecturerID            uint         `gorm:"index;not null" json:"lecturer_id"`
	Lecturer              User         `gorm:"foreignKey:LecturerID" json:"-"`
	ClassID               uint         `gorm:"index;not null" json:"class_id"`
	Class                 Class        `json:"-"`
	TopicTaught           string       `gorm:"type:text;not null" json:"topic_taught"`
	ActualStudentsPresent int          `gorm:"not null;default:0" json:"actual_students_present"`
	Status                ReportStatus `gorm:"size:16;not null;default:pending" json:"status"`
	PRLID                 uint         `gorm:"column:prl_id;index;not null" json:"prl_id"`
	PRL                   User         `gorm:"foreignKey:PRLID" json:"-"`
	PRLFeedback           string       `gorm:"column:prl_feedback;type:text" json:"prl_feedback"`
	CreatedAt             time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}
