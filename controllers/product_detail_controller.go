package controllers

import (
	"errors"
	"net/http"

	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type ProductDetailController struct {
	products *services.ProductService
}

func NewProductDetailController(products *services.ProductService) *ProductDetailController {
	return &ProductDetailController{products: products}
}

// @Summary Get product detail
// @Description Product together with its reviews and rating summary
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.ProductDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /product/{id}/detail [get]
func (ctrl *ProductDetailController) GetProductDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.products.GetProductDetail(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Product detail retrieved", detail)
}
