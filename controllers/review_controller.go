package controllers

import (
	"errors"
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// @Summary List reviews
// @Description Reviews of a product in the order they were written
// @Tags Reviews
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response{data=[]models.Review}
// @Router /reviews/{productId} [get]
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	reviews, err := ctrl.reviews.ListReviews(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Reviews retrieved", reviews)
}

// @Summary Add review
// @Description Add a 1-5 star review for a product as the signed-in user
// @Tags Reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.AddReviewRequest true "Review"
// @Success 201 {object} models.Response{data=models.Review}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /addreview [post]
func (ctrl *ReviewController) AddReview(c *gin.Context) {
	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request")
		return
	}

	review, err := ctrl.reviews.AddReview(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Review added", review)
}
