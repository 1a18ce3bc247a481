package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	lamp  = models.Product{ID: 1, Name: "Lamp", Price: decimal.RequireFromString("10")}
	shade = models.Product{ID: 2, Name: "Shade", Price: decimal.RequireFromString("5")}
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": status < 300,
		"message": message,
		"data":    data,
	})
}

type fakeAPI struct {
	orderStatus int
	orders      atomic.Int32

	mu        sync.Mutex
	lastOrder models.CreateOrderRequest
}

func (f *fakeAPI) last() models.CreateOrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastOrder
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "correct horse" {
			writeEnvelope(w, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Login successful", models.LoginResponse{
			Token: "tok-123",
			User:  models.User{ID: 42, Email: req.Email},
		})
	})
	mux.HandleFunc("/order", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			writeEnvelope(w, http.StatusUnauthorized, "Please sign in to continue", nil)
			return
		}
		var req models.CreateOrderRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.lastOrder = req
		f.mu.Unlock()
		if f.orderStatus != 0 && f.orderStatus != http.StatusCreated {
			writeEnvelope(w, f.orderStatus, "Internal server error", nil)
			return
		}
		n := f.orders.Add(1)
		writeEnvelope(w, http.StatusCreated, "Order created", models.Order{
			ID:          int(n),
			OrderNumber: "ORD-test",
			UserID:      req.UserID,
			Status:      models.OrderStatusUnfulfilled,
		})
	})
	mux.HandleFunc("/shop", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("priceFrom") == "abc" {
			writeEnvelope(w, http.StatusBadRequest, "priceFrom must be a number", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Products retrieved", []models.Product{lamp, shade})
	})
	return mux
}

func newShop(t *testing.T, api *fakeAPI, store Store) *Shop {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	shop, err := NewShop(New(srv.URL, srv.Client()), store)
	require.NoError(t, err)
	return shop
}

// failingStore accepts saves until failAfter is reached.
type failingStore struct {
	mu        sync.Mutex
	saves     int
	failAfter int
}

func (s *failingStore) Load() (State, error) { return State{}, nil }

func (s *failingStore) Save(State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.failAfter > 0 && s.saves > s.failAfter {
		return errors.New("disk full")
	}
	return nil
}

func TestCartSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	api := &fakeAPI{}

	shop := newShop(t, api, NewFileStore(path))
	require.NoError(t, shop.AddToCart(lamp, 2))
	require.NoError(t, shop.AddToCart(shade, 1))
	require.NoError(t, shop.SetPrefs(FilterPrefs{PriceFrom: "5", SortBy: "name-asc"}))

	reopened := newShop(t, api, NewFileStore(path))
	c := reopened.Cart()
	require.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Lines()[0].ProductID)
	assert.Equal(t, "25.00", c.TotalString())
	assert.Equal(t, "name-asc", reopened.Prefs().SortBy)
}

func TestPlaceOrderWithoutSessionKeepsCart(t *testing.T) {
	api := &fakeAPI{}
	shop := newShop(t, api, NewFileStore(filepath.Join(t.TempDir(), "s.json")))
	require.NoError(t, shop.AddToCart(lamp, 1))

	_, err := shop.PlaceOrder(context.Background())
	assert.ErrorIs(t, err, models.ErrSignInRequired)
	assert.Equal(t, 1, shop.Cart().Len())
	assert.Zero(t, api.orders.Load())
}

func TestPlaceOrderClearsCartAfterSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	api := &fakeAPI{}
	shop := newShop(t, api, NewFileStore(path))

	require.NoError(t, shop.SignIn(context.Background(), "ann@example.com", "correct horse"))
	require.NoError(t, shop.AddToCart(lamp, 1))
	require.NoError(t, shop.AddToCart(shade, 3))

	order, err := shop.PlaceOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-test", order.OrderNumber)
	assert.Equal(t, 42, api.last().UserID)
	assert.Equal(t, []models.CartLineRequest{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 3}}, api.last().Cart)

	assert.True(t, shop.Cart().IsEmpty())
	reopened := newShop(t, api, NewFileStore(path))
	assert.True(t, reopened.Cart().IsEmpty())
	assert.NotNil(t, reopened.Session(), "session persists across restarts")
}

func TestPlaceOrderServerFailureKeepsCart(t *testing.T) {
	api := &fakeAPI{orderStatus: http.StatusInternalServerError}
	shop := newShop(t, api, NewFileStore(filepath.Join(t.TempDir(), "s.json")))
	require.NoError(t, shop.SignIn(context.Background(), "ann@example.com", "correct horse"))
	require.NoError(t, shop.AddToCart(lamp, 2))

	_, err := shop.PlaceOrder(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, 2, shop.Cart().Quantity(1))
}

func TestPlaceOrderCartNotCleared(t *testing.T) {
	api := &fakeAPI{}
	// sign-in and add succeed, the post-order clear fails
	store := &failingStore{failAfter: 2}
	shop := newShop(t, api, store)
	require.NoError(t, shop.SignIn(context.Background(), "ann@example.com", "correct horse"))
	require.NoError(t, shop.AddToCart(lamp, 1))

	order, err := shop.PlaceOrder(context.Background())

	var notCleared *CartNotClearedError
	require.ErrorAs(t, err, &notCleared)
	assert.Equal(t, order, notCleared.Order)
	assert.Equal(t, int32(1), api.orders.Load())
	assert.Equal(t, 1, shop.Cart().Len(), "in-memory cart matches what is persisted")
}

func TestResubmissionCreatesSecondOrder(t *testing.T) {
	api := &fakeAPI{}
	shop := newShop(t, api, &failingStore{failAfter: 2})
	require.NoError(t, shop.SignIn(context.Background(), "ann@example.com", "correct horse"))
	require.NoError(t, shop.AddToCart(lamp, 1))

	_, err := shop.PlaceOrder(context.Background())
	require.Error(t, err)
	_, err = shop.PlaceOrder(context.Background())
	require.Error(t, err)

	assert.Equal(t, int32(2), api.orders.Load())
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	shop := newShop(t, &fakeAPI{}, &failingStore{failAfter: 1})
	require.NoError(t, shop.AddToCart(lamp, 1))

	assert.Error(t, shop.AddToCart(lamp, 1))
	assert.Equal(t, 1, shop.Cart().Quantity(1))
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	shop := newShop(t, &fakeAPI{}, NewFileStore(filepath.Join(t.TempDir(), "s.json")))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, shop.AddToCart(lamp, 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, shop.Cart().Quantity(1))
}

func TestQuantityControls(t *testing.T) {
	shop := newShop(t, &fakeAPI{}, &failingStore{})
	require.NoError(t, shop.AddToCart(lamp, 1))

	require.NoError(t, shop.SetQuantity(1, "abc"))
	assert.Equal(t, 1, shop.Cart().Quantity(1))
	require.NoError(t, shop.SetQuantity(1, "4"))
	assert.Equal(t, 4, shop.Cart().Quantity(1))
	require.NoError(t, shop.IncreaseQuantity(1))
	require.NoError(t, shop.DecreaseQuantity(1))
	require.NoError(t, shop.DecreaseQuantity(1))
	assert.Equal(t, 3, shop.Cart().Quantity(1))
	require.NoError(t, shop.RemoveFromCart(1))
	assert.True(t, shop.Cart().IsEmpty())
}

func TestSignInFailureLeavesNoSession(t *testing.T) {
	shop := newShop(t, &fakeAPI{}, &failingStore{})

	err := shop.SignIn(context.Background(), "ann@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.Nil(t, shop.Session())

	require.NoError(t, shop.SignOut())
}

func TestBrowseUsesPrefs(t *testing.T) {
	shop := newShop(t, &fakeAPI{}, &failingStore{})

	products, err := shop.Browse(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	require.NoError(t, shop.SetPrefs(FilterPrefs{PriceFrom: "abc"}))
	_, err = shop.Browse(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}
