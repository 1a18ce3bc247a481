package services

import (
	"context"
	"log"
	"time"

	"storefront/cart"
	"storefront/models"
	"storefront/repositories"

	"github.com/google/uuid"
)

// Notifier is told about every stored order. Its errors are logged only.
type Notifier interface {
	OrderPlaced(ctx context.Context, customer models.Identity, order models.Order) error
}

type OrderService struct {
	products repositories.ProductStore
	orders   repositories.OrderStore
	notifier Notifier
	now      func() time.Time
}

func NewOrderService(products repositories.ProductStore, orders repositories.OrderStore, notifier Notifier) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		notifier: notifier,
		now:      time.Now,
	}
}

// PlaceOrder prices the submitted lines from the catalog and stores one order
// holding a snapshot of them. Resubmitting the same cart creates a second
// order.
func (s *OrderService) PlaceOrder(ctx context.Context, customer models.Identity, req models.CreateOrderRequest) (*models.Order, error) {
	if customer.IsZero() {
		return nil, models.ErrSignInRequired
	}
	if req.UserID != 0 && req.UserID != customer.UserID {
		return nil, models.ErrForbidden
	}
	if len(req.Cart) == 0 {
		return nil, models.NewValidationError("Cart is empty")
	}

	ids := make([]int, 0, len(req.Cart))
	seen := make(map[int]bool, len(req.Cart))
	for _, line := range req.Cart {
		if line.Quantity < 1 {
			return nil, models.NewValidationError("Quantity for product %d must be at least 1", line.ProductID)
		}
		if line.Quantity > models.MaxLineQuantity {
			return nil, models.NewValidationError("Quantity for product %d must be at most %d", line.ProductID, models.MaxLineQuantity)
		}
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewStorageError("load order products", err)
	}
	byID := make(map[int]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	c := cart.Cart{}
	for _, line := range req.Cart {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, models.NewValidationError("Product %d does not exist", line.ProductID)
		}
		c = c.Add(product, line.Quantity)
	}
	for _, l := range c.Lines() {
		if l.Quantity > models.MaxLineQuantity {
			return nil, models.NewValidationError("Quantity for product %d must be at most %d", l.ProductID, models.MaxLineQuantity)
		}
	}
	if c.Total().GreaterThan(models.MaxOrderTotal) {
		return nil, models.NewValidationError("Order total must not exceed %s", models.MaxOrderTotal.StringFixed(2))
	}

	order := &models.Order{
		OrderNumber: "ORD-" + uuid.NewString(),
		UserID:      customer.UserID,
		Items:       snapshotItems(c),
		Total:       c.Total(),
		Status:      models.OrderStatusUnfulfilled,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, models.NewStorageError("create order", err)
	}

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, customer, *order); err != nil {
			log.Printf("order %s confirmation: %v", order.OrderNumber, err)
		}
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, customer models.Identity) ([]models.Order, error) {
	if customer.IsZero() {
		return nil, models.ErrSignInRequired
	}
	orders, err := s.orders.ListByUser(ctx, customer.UserID)
	if err != nil {
		return nil, models.NewStorageError("list orders", err)
	}
	return orders, nil
}

func snapshotItems(c cart.Cart) []models.OrderItem {
	lines := c.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
		})
	}
	return items
}
