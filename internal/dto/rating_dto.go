package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/course-reporting-api/internal/repository"
)

// Rating score bounds shared with the frontend form.
const (
	MinRatingScore = 1
	MaxRatingScore = 10
)

// RatingCreateRequest is the payload for POST /api/ratings.
type RatingCreateRequest struct {
	LecturerID uint   `json:"lecturer_id" validate:"required"`
	Module     string `json:"module" validate:"required,max=255"`
	Score      int    `json:"score" validate:"required,min=1,max=10"`
	Comment    string `json:"comment" validate:"max=2000"`
}

// UnmarshalJSON accepts lecturer_id and score as numbers or numeric strings.
func (r *RatingCreateRequest) UnmarshalJSON(data []byte) error {
	type plain RatingCreateRequest
	wire := struct {
		*plain
		LecturerID formNumber `json:"lecturer_id"`
		Score      formNumber `json:"score"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var err error
	if r.LecturerID, err = wire.LecturerID.id("lecturer_id"); err != nil {
		return err
	}
	r.Score = wire.Score.asInt()
	return nil
}

// RatingReceipt names the people involved in a stored rating.
type RatingReceipt struct {
	ID           uint   `json:"id"`
	LecturerName string `json:"lecturer_name"`
	RaterName    string `json:"rater_name"`
}

// RatingResponse is a rating as seen by its lecturer.
type RatingResponse struct {
	ID        uint      `json:"id"`
	Module    string    `json:"module"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment"`
	RaterName string    `json:"rater_name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRatingResponse maps a joined rating row.
func NewRatingResponse(row repository.RatingDetail) RatingResponse {
	return RatingResponse{
		ID:        row.ID,
		Module:    row.Module,
		Score:     row.Score,
		Comment:   row.Comment,
		RaterName: row.RaterName,
		CreatedAt: row.CreatedAt,
	}
}
