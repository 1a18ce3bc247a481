package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	orders *services.OrderService
}

func NewHistoryController(orders *services.OrderService) *HistoryController {
	return &HistoryController{orders: orders}
}

// @Summary Get order history
// @Description Orders of the signed-in user, newest first
// @Tags History
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=[]models.Order}
// @Failure 401 {object} models.ErrorResponse
// @Router /orders [get]
func (ctrl *HistoryController) GetHistory(c *gin.Context) {
	orders, err := ctrl.orders.ListOrders(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Order history retrieved", orders)
}
