package services

import (
	"context"
	"errors"
	"log"

	"storefront/models"
	"storefront/repositories"

	"golang.org/x/sync/errgroup"
)

type ImageResolver interface {
	Resolve(ref string) string
}

type ProductService struct {
	products repositories.ProductStore
	reviews  repositories.ReviewStore
	cache    CatalogCache
	images   ImageResolver
}

func NewProductService(products repositories.ProductStore, reviews repositories.ReviewStore, cache CatalogCache, images ImageResolver) *ProductService {
	return &ProductService{
		products: products,
		reviews:  reviews,
		cache:    cache,
		images:   images,
	}
}

// ListProducts validates the raw query, then serves from cache when possible.
// Cache failures are logged and never fail the request.
func (s *ProductService) ListProducts(ctx context.Context, q models.ShopQuery) ([]models.Product, error) {
	filter, err := models.ParseProductFilter(q)
	if err != nil {
		return nil, err
	}

	key := filter.CacheKey()
	var cached []models.Product
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("catalog cache read %s: %v", key, err)
	}
	if hit {
		return cached, nil
	}

	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, models.NewStorageError("list products", err)
	}
	for i := range products {
		s.resolveImages(&products[i])
	}

	if err := s.cache.Set(ctx, key, products); err != nil {
		log.Printf("catalog cache write %s: %v", key, err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.NewStorageError("get product", err)
	}
	s.resolveImages(product)
	return product, nil
}

// GetProductDetail loads the product, its reviews and their summary
// concurrently.
func (s *ProductService) GetProductDetail(ctx context.Context, id int) (*models.ProductDetail, error) {
	var (
		detail  models.ProductDetail
		product *models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = s.GetProduct(gctx, id)
		return err
	})
	g.Go(func() error {
		reviews, err := s.reviews.ListByProduct(gctx, id)
		if err != nil {
			return models.NewStorageError("list reviews", err)
		}
		detail.Reviews = stampReviewDates(reviews)
		return nil
	})
	g.Go(func() error {
		summary, err := s.reviews.Summary(gctx, id)
		if err != nil {
			return models.NewStorageError("summarize reviews", err)
		}
		detail.Summary = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail.Product = *product
	return &detail, nil
}

func (s *ProductService) resolveImages(p *models.Product) {
	if s.images == nil {
		return
	}
	resolved := make([]string, 0, len(p.Images))
	for _, ref := range p.Images {
		resolved = append(resolved, s.images.Resolve(ref))
	}
	p.Images = resolved
}
