package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type AddReviewRequest struct {
	ProductID int    `json:"productId" form:"productId" binding:"required"`
	UserID    int    `json:"userId" form:"userId"`
	Rating    int    `json:"rating" form:"rating"`
	Text      string `json:"text" form:"text"`
}

type CreateOrderRequest struct {
	UserID int               `json:"userId"`
	Cart   []CartLineRequest `json:"cart"`
}

// ShopQuery is the raw, unvalidated catalog query string.
type ShopQuery struct {
	PriceFrom string `form:"priceFrom"`
	PriceTo   string `form:"priceTo"`
	SortBy    string `form:"sortBy"`
	MinRating string `form:"minRating"`
	Search    string `form:"search"`
}
