package models

import "time"

// Class is a scheduled delivery of a course with an assigned lecturer.
type Class struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CourseID           uint      `gorm:"index;not null" json:"course_id"`
	Course             Course    `json:"-"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	ScheduledTime      string    `gorm:"size:64" json:"scheduled_time"`
	Venue              string    `gorm:"size:255" json:"venue"`
	TotalRegistered    int       `gorm:"not null;default:0" json:"total_registered"`
	AssignedLecturerID *uint     `gorm:"index" json:"assigned_lecturer_id"`
	AssignedLecturer   *User     `gorm:"foreignKey:AssignedLecturerID" json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
