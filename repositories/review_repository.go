package repositories

import (
	"context"
	"fmt"

	"storefront/models"
)

const reviewProductFK = "reviews_product_id_fkey"

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts the review and fills in ID. A review for a product that does
// not exist comes back as models.ErrNotFound.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (product_id, user_id, rating, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Body,
		review.CreatedAt,
	).Scan(&review.ID)

	if code, constraint := pgErrorCode(err); code == pgForeignKeyViolation && constraint == reviewProductFK {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int) ([]models.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, body, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Summary(ctx context.Context, productID int) (models.ReviewSummary, error) {
	query := `SELECT AVG(rating)::float8, COUNT(*) FROM reviews WHERE product_id = $1`

	var summary models.ReviewSummary
	if err := r.db.QueryRow(ctx, query, productID).Scan(&summary.AverageRating, &summary.TotalCount); err != nil {
		return models.ReviewSummary{}, fmt.Errorf("summarize reviews: %w", err)
	}
	return summary, nil
}
