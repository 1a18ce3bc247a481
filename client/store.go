package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"storefront/cart"
	"storefront/models"
)

type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// FilterPrefs are the last catalog query the shopper used, kept verbatim.
type FilterPrefs struct {
	PriceFrom string `json:"priceFrom,omitempty"`
	PriceTo   string `json:"priceTo,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
}

// State is everything that survives a restart.
type State struct {
	Cart    cart.Cart   `json:"cart"`
	Session *Session    `json:"session,omitempty"`
	Prefs   FilterPrefs `json:"prefs"`
}

type Store interface {
	Load() (State, error)
	Save(State) error
}

// FileStore keeps State as one JSON document. Saves replace the file
// atomically so a crash never leaves a half-written cart.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the zero State when nothing has been saved yet.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("decode state %s: %w", s.path, err)
	}
	return state, nil
}

func (s *FileStore) Save(state State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}
