package models

import "time"

// Rating is a student's score for a lecturer on a module.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LecturerID uint      `gorm:"index;not null" json:"lecturer_id"`
	Lecturer   User      `gorm:"foreignKey:LecturerID" json:"-"`
	RaterID    uint      `gorm:"index;not null" json:"rater_id"`
	Rater      User      `gorm:"foreignKey:RaterID" json:"-"`
	Module     string    `gorm:"size:255;not null" json:"module"`
	Score      int       `gorm:"not null" json:"score"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
