package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxProductImages is the number of image slots a product row carries.
const MaxProductImages = 4

type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Manufacturer  string          `json:"manufacturer"`
	Description   string          `json:"description"`
	Images        []string        `json:"images"`
	AverageRating *float64        `json:"average_rating"`
	ReviewCount   int             `json:"review_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ProductDetail struct {
	Product Product       `json:"product"`
	Reviews []Review      `json:"reviews"`
	Summary ReviewSummary `json:"summary"`
}
