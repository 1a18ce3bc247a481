package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"storefront/models"
)

type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
	failReads   bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failReads {
		return false, errors.New("cache down")
	}
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

type prefixResolver string

func (p prefixResolver) Resolve(ref string) string {
	return string(p) + ref
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Verify(encodedHash, password string) (bool, error) {
	return encodedHash == "hashed:"+password, nil
}

type staticTokens string

func (t staticTokens) Generate(userID int, email, role string) (string, error) {
	return string(t), nil
}

type recordingNotifier struct {
	orders []models.Order
	err    error
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, _ models.Identity, order models.Order) error {
	n.orders = append(n.orders, order)
	return n.err
}
