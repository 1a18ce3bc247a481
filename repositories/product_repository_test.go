package repositories

import (
	"context"
	"strings"
	"testing"

	"storefront/models"
	"storefront/repositories/mocks"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubRow struct {
	scan func(dest ...interface{}) error
}

func (r stubRow) Scan(dest ...interface{}) error {
	return r.scan(dest...)
}

func errRow(err error) stubRow {
	return stubRow{scan: func(...interface{}) error { return err }}
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBuildListQueryWithoutFilters(t *testing.T) {
	query, args := buildListQuery(models.ProductFilter{SortBy: models.DefaultSort})

	assert.Empty(t, args)
	assert.Contains(t, query, "LEFT JOIN reviews r ON r.product_id = p.id")
	assert.Contains(t, query, "GROUP BY p.id")
	assert.NotContains(t, query, "HAVING")
	assert.NotContains(t, query, "WHERE")
	assert.True(t, strings.HasSuffix(query, "ORDER BY p.price ASC, p.id ASC"))
}

func TestBuildListQueryPriceBoundsGoInHaving(t *testing.T) {
	from, to := decimalPtr("10"), decimalPtr("50.5")
	query, args := buildListQuery(models.ProductFilter{PriceFrom: from, PriceTo: to, SortBy: models.SortNameDesc})

	require.Len(t, args, 2)
	assert.Equal(t, *from, args[0])
	assert.Equal(t, *to, args[1])
	assert.Contains(t, query, "HAVING p.price >= $1 AND p.price <= $2")
	assert.Less(t, strings.Index(query, "GROUP BY"), strings.Index(query, "HAVING"))
	assert.True(t, strings.HasSuffix(query, "ORDER BY p.name DESC, p.id ASC"))
}

func TestBuildListQuerySingleBound(t *testing.T) {
	query, args := buildListQuery(models.ProductFilter{PriceTo: decimalPtr("20"), SortBy: models.SortPriceDesc})

	require.Len(t, args, 1)
	assert.Contains(t, query, "HAVING p.price <= $1")
	assert.NotContains(t, query, ">=")
}

func TestBuildListQuerySearchAndRating(t *testing.T) {
	rating := 4.0
	query, args := buildListQuery(models.ProductFilter{
		Search:    "50%_off",
		MinRating: &rating,
		PriceFrom: decimalPtr("1"),
		SortBy:    models.SortRatingDesc,
	})

	require.Len(t, args, 3)
	assert.Equal(t, `%50\%\_off%`, args[0])
	assert.Contains(t, query, "WHERE p.name ILIKE $1")
	assert.Contains(t, query, "HAVING p.price >= $2 AND AVG(r.rating) >= $3")
	assert.Contains(t, query, "average_rating DESC NULLS LAST, p.id ASC")
	assert.NotContains(t, query, "50%")
}

func TestBuildListQueryRejectsUnknownSort(t *testing.T) {
	query, _ := buildListQuery(models.ProductFilter{SortBy: models.SortBy("price; DROP TABLE products")})

	assert.NotContains(t, query, "DROP")
	assert.True(t, strings.HasSuffix(query, "ORDER BY p.price ASC, p.id ASC"))
}

func TestBuildListQueryEverySortIsStable(t *testing.T) {
	for sort := range productOrderBy {
		query, _ := buildListQuery(models.ProductFilter{SortBy: sort})
		assert.True(t, strings.HasSuffix(query, "p.id ASC"), sort)
	}
}

func TestProductFindByIDNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockDBTX(ctrl)
	db.EXPECT().QueryRow(gomock.Any(), gomock.Any(), 7).Return(errRow(pgx.ErrNoRows))

	_, err := NewProductRepository(db).FindByID(context.Background(), 7)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProductFindByIDCollectsImages(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockDBTX(ctrl)
	db.EXPECT().QueryRow(gomock.Any(), gomock.Any(), 3).Return(stubRow{scan: func(dest ...interface{}) error {
		*dest[0].(*int) = 3
		*dest[1].(*string) = "Desk Lamp"
		*dest[5].(*string) = "lamp-front.jpg"
		*dest[7].(*string) = "lamp-side.jpg"
		return nil
	}})

	p, err := NewProductRepository(db).FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", p.Name)
	assert.Equal(t, []string{"lamp-front.jpg", "lamp-side.jpg"}, p.Images)
	assert.Nil(t, p.AverageRating)
}

func TestProductFindByIDsSkipsQueryForEmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockDBTX(ctrl)

	products, err := NewProductRepository(db).FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}
