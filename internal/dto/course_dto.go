package dto

import "github.com/noah-isme/course-reporting-api/internal/models"

// CourseCreateRequest is the payload for POST /api/courses.
type CourseCreateRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Code    string `json:"code" validate:"required,max=64"`
	Faculty string `json:"faculty" validate:"required,max=255"`
}

// CourseResponse serializes a course.
type CourseResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Faculty string `json:"faculty"`
}

// NewCourseResponse maps a course model.
func NewCourseResponse(course models.Course) CourseResponse {
	return CourseResponse{
		ID:      course.ID,
		Name:    course.Name,
		Code:    course.Code,
		Faculty: course.Faculty,
	}
}
