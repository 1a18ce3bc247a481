package controllers

import (
	"errors"
	"net/http"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// @Summary List products
// @Description Catalog filtered by inclusive price range and sorted by the selector. Unknown sortBy falls back to price-asc.
// @Tags Products
// @Produce json
// @Param priceFrom query number false "Minimum price (inclusive)"
// @Param priceTo query number false "Maximum price (inclusive)"
// @Param sortBy query string false "Sort order" Enums(price-asc, price-desc, name-asc, name-desc, rating-asc, rating-desc)
// @Param minRating query number false "Minimum average rating (1-5)"
// @Param search query string false "Case-insensitive name search"
// @Success 200 {object} models.Response{data=[]models.Product}
// @Failure 400 {object} models.ErrorResponse
// @Router /shop [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	var query models.ShopQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, "Invalid query")
		return
	}

	products, err := ctrl.products.ListProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Products retrieved", products)
}

// @Summary Get product
// @Description Single product with its average rating
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /product/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.products.GetProduct(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Product retrieved", product)
}
