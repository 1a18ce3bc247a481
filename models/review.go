package models

import "time"

const (
	MinRating = 1
	MaxRating = 5

	MaxReviewLength = 2000

	// ReviewDateLayout renders review timestamps at calendar-day granularity.
	ReviewDateLayout = "2006-01-02"
)

type Review struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	UserID    int       `json:"user_id"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewSummary struct {
	AverageRating *float64 `json:"average_rating"`
	TotalCount    int      `json:"total_count"`
}
