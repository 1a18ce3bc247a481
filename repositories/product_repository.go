package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productSelect = `SELECT p.id, p.name, p.price, p.manufacturer, p.description,
	COALESCE(p.image1, ''), COALESCE(p.image2, ''), COALESCE(p.image3, ''), COALESCE(p.image4, ''),
	p.created_at, AVG(r.rating)::float8 AS average_rating, COUNT(r.id) AS review_count
FROM products p
LEFT JOIN reviews r ON r.product_id = p.id`

// Only these fragments are ever concatenated into ORDER BY.
var productOrderBy = map[models.SortBy]string{
	models.SortPriceAsc:   "p.price ASC, p.id ASC",
	models.SortPriceDesc:  "p.price DESC, p.id ASC",
	models.SortNameAsc:    "p.name ASC, p.id ASC",
	models.SortNameDesc:   "p.name DESC, p.id ASC",
	models.SortRatingAsc:  "average_rating ASC NULLS LAST, p.id ASC",
	models.SortRatingDesc: "average_rating DESC NULLS LAST, p.id ASC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildListQuery renders the catalog query. Price and rating predicates go in
// HAVING so they apply after the review join and aggregation. Every value is
// a bound parameter.
func buildListQuery(f models.ProductFilter) (string, []interface{}) {
	var (
		sb     strings.Builder
		args   []interface{}
		having []string
	)
	param := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString(productSelect)

	if f.Search != "" {
		sb.WriteString("\nWHERE p.name ILIKE " + param("%"+likeEscaper.Replace(f.Search)+"%"))
	}

	sb.WriteString("\nGROUP BY p.id")

	if f.PriceFrom != nil {
		having = append(having, "p.price >= "+param(*f.PriceFrom))
	}
	if f.PriceTo != nil {
		having = append(having, "p.price <= "+param(*f.PriceTo))
	}
	if f.MinRating != nil {
		having = append(having, "AVG(r.rating) >= "+param(*f.MinRating))
	}
	if len(having) > 0 {
		sb.WriteString("\nHAVING " + strings.Join(having, " AND "))
	}

	orderBy, ok := productOrderBy[f.SortBy]
	if !ok {
		orderBy = productOrderBy[models.DefaultSort]
	}
	sb.WriteString("\nORDER BY " + orderBy)

	return sb.String(), args
}

func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := productSelect + "\nWHERE p.id = $1\nGROUP BY p.id"

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	query := productSelect + "\nWHERE p.id = ANY($1)\nGROUP BY p.id\nORDER BY p.id"

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query products by id: %w", err)
	}
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p      models.Product
		images [models.MaxProductImages]string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Manufacturer, &p.Description,
		&images[0], &images[1], &images[2], &images[3],
		&p.CreatedAt, &p.AverageRating, &p.ReviewCount)
	if err != nil {
		return models.Product{}, err
	}

	p.Images = []string{}
	for _, img := range images {
		if img != "" {
			p.Images = append(p.Images, img)
		}
	}
	return p, nil
}
