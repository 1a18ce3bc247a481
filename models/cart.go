package models

// CartLineRequest is one cart line as sent by a client at checkout.
type CartLineRequest struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity"`
}
