// Package client talks to the storefront API and owns the shopper's local
// state: cart, session and catalog preferences.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/models"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for baseURL. A nil httpClient gets a 15s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) ListProducts(ctx context.Context, prefs FilterPrefs) ([]models.Product, error) {
	q := url.Values{}
	if prefs.PriceFrom != "" {
		q.Set("priceFrom", prefs.PriceFrom)
	}
	if prefs.PriceTo != "" {
		q.Set("priceTo", prefs.PriceTo)
	}
	if prefs.SortBy != "" {
		q.Set("sortBy", prefs.SortBy)
	}
	path := "/shop"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var products []models.Product
	err := c.do(ctx, http.MethodGet, path, "", nil, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/product/"+strconv.Itoa(id), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListReviews(ctx context.Context, productID int) ([]models.Review, error) {
	var reviews []models.Review
	err := c.do(ctx, http.MethodGet, "/reviews/"+strconv.Itoa(productID), "", nil, &reviews)
	return reviews, err
}

func (c *Client) AddReview(ctx context.Context, token string, req models.AddReviewRequest) (*models.Review, error) {
	var review models.Review
	if err := c.do(ctx, http.MethodPost, "/addreview", token, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (c *Client) Register(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	req := models.RegisterRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/register", "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/order", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}
