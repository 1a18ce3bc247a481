package client

import (
	"context"
	"fmt"
	"sync"

	"storefront/cart"
	"storefront/models"
)

// CartNotClearedError means the server stored Order but the local cart could
// not be cleared afterwards. Submitting again creates a second order.
type CartNotClearedError struct {
	Order *models.Order
	Err   error
}

func (e *CartNotClearedError) Error() string {
	return fmt.Sprintf("order %s placed but cart not cleared: %v", e.Order.OrderNumber, e.Err)
}

func (e *CartNotClearedError) Unwrap() error {
	return e.Err
}

// Shop is the single owner of the shopper's cart, session and preferences.
// Every mutation is persisted before it becomes visible. Methods are safe for
// concurrent use.
type Shop struct {
	mu    sync.Mutex
	api   *Client
	store Store
	state State
}

func NewShop(api *Client, store Store) (*Shop, error) {
	state, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Shop{api: api, store: store, state: state}, nil
}

func (s *Shop) Cart() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Cart
}

func (s *Shop) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Session == nil {
		return nil
	}
	session := *s.state.Session
	return &session
}

func (s *Shop) Prefs() FilterPrefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Prefs
}

// update persists fn's result and only then swaps it in. The caller must not
// hold s.mu.
func (s *Shop) update(fn func(State) State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(fn(s.state))
}

func (s *Shop) commit(next State) error {
	if err := s.store.Save(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Shop) AddToCart(p models.Product, quantity int) error {
	return s.update(func(st State) State {
		st.Cart = st.Cart.Add(p, quantity)
		return st
	})
}

// SetQuantity ignores input that is not a positive integer.
func (s *Shop) SetQuantity(productID int, raw string) error {
	quantity, ok := cart.ParseQuantity(raw)
	if !ok {
		return nil
	}
	return s.update(func(st State) State {
		st.Cart = st.Cart.SetQuantity(productID, quantity)
		return st
	})
}

func (s *Shop) IncreaseQuantity(productID int) error {
	return s.update(func(st State) State {
		st.Cart = st.Cart.Increase(productID)
		return st
	})
}

func (s *Shop) DecreaseQuantity(productID int) error {
	return s.update(func(st State) State {
		st.Cart = st.Cart.Decrease(productID)
		return st
	})
}

func (s *Shop) RemoveFromCart(productID int) error {
	return s.update(func(st State) State {
		st.Cart = st.Cart.Remove(productID)
		return st
	})
}

func (s *Shop) ClearCart() error {
	return s.update(func(st State) State {
		st.Cart = st.Cart.Clear()
		return st
	})
}

func (s *Shop) SetPrefs(prefs FilterPrefs) error {
	return s.update(func(st State) State {
		st.Prefs = prefs
		return st
	})
}

// Browse lists the catalog with the saved preferences.
func (s *Shop) Browse(ctx context.Context) ([]models.Product, error) {
	return s.api.ListProducts(ctx, s.Prefs())
}

func (s *Shop) SignIn(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.update(func(st State) State {
		st.Session = &Session{Token: resp.Token, User: resp.User}
		return st
	})
}

func (s *Shop) SignOut() error {
	return s.update(func(st State) State {
		st.Session = nil
		return st
	})
}

// PlaceOrder submits the cart and clears it once the server has stored the
// order. On any failure before that the cart is left as it was. The lock is
// held throughout so additions made meanwhile wait rather than being cleared
// with the submitted lines.
func (s *Shop) PlaceOrder(ctx context.Context) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Session == nil || s.state.Session.Token == "" {
		return nil, models.ErrSignInRequired
	}
	if s.state.Cart.IsEmpty() {
		return nil, models.NewValidationError("Cart is empty")
	}

	lines := s.state.Cart.Lines()
	req := models.CreateOrderRequest{
		UserID: s.state.Session.User.ID,
		Cart:   make([]models.CartLineRequest, 0, len(lines)),
	}
	for _, l := range lines {
		req.Cart = append(req.Cart, models.CartLineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	order, err := s.api.CreateOrder(ctx, s.state.Session.Token, req)
	if err != nil {
		return nil, err
	}

	next := s.state
	next.Cart = next.Cart.Clear()
	if err := s.commit(next); err != nil {
		return order, &CartNotClearedError{Order: order, Err: err}
	}
	return order, nil
}
