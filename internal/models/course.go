package models

import "time"

// Course is a taught unit owned by a faculty.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      string    `gorm:"size:64;not null" json:"code"`
	Faculty   string    `gorm:"size:255;index;not null" json:"faculty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
