package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"storefront/models"
	"storefront/repositories"
)

type ReviewService struct {
	reviews repositories.ReviewStore
	cache   CatalogCache
	now     func() time.Time
}

func NewReviewService(reviews repositories.ReviewStore, cache CatalogCache) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		cache:   cache,
		now:     time.Now,
	}
}

// AddReview appends a review authored by the caller. Submitting twice stores
// two reviews.
func (s *ReviewService) AddReview(ctx context.Context, author models.Identity, req models.AddReviewRequest) (*models.Review, error) {
	if author.IsZero() {
		return nil, models.ErrSignInRequired
	}
	if req.UserID != 0 && req.UserID != author.UserID {
		return nil, models.ErrForbidden
	}
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		return nil, models.NewValidationError("Rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	body := strings.TrimSpace(req.Text)
	if utf8.RuneCountInString(body) > models.MaxReviewLength {
		return nil, models.NewValidationError("Review must be at most %d characters", models.MaxReviewLength)
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserID:    author.UserID,
		Rating:    req.Rating,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}
	err := s.reviews.Create(ctx, review)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.NewStorageError("create review", err)
	}
	review.Date = review.CreatedAt.Format(models.ReviewDateLayout)

	// Cached catalog pages carry average ratings that are now stale.
	if err := s.cache.Invalidate(ctx, catalogCachePattern); err != nil {
		log.Printf("catalog cache invalidate: %v", err)
	}
	return review, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID int) ([]models.Review, error) {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, models.NewStorageError("list reviews", err)
	}
	return stampReviewDates(reviews), nil
}

func stampReviewDates(reviews []models.Review) []models.Review {
	for i := range reviews {
		reviews[i].Date = reviews[i].CreatedAt.Format(models.ReviewDateLayout)
	}
	return reviews
}
