package dto

type RegisterUserRequest struct {
	ID          int64  `json:"id" binding:"required,gt=0"`
	DisplayName string `json:"display_name"`
}

type AdjustCreditsRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// BookRequest carries the date as YYYY-MM-DD and the start as HH:MM, both in
// the studio zone.
type BookRequest struct {
	UserID          int64  `json:"user_id" binding:"required,gt=0"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
	Override        bool   `json:"override"`
}
