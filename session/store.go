package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store persists the selected location identifier across process restarts.
// It is a single string key in a small JSON file; the host owns where the
// file lives.
type Store struct {
	path string
}

// savedState is the on-disk shape
type savedState struct {
	SelectedLocation string `json:"selectedLocation"`
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the selected location identifier
func (s *Store) Save(locationID string) error {
	data, err := json.Marshal(savedState{SelectedLocation: locationID})
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Load reads the saved selection. A missing file means no selection was
// ever saved and is not an error.
func (s *Store) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read state file: %w", err)
	}

	var state savedState
	if err := json.Unmarshal(data, &state); err != nil {
		return "", false, fmt.Errorf("failed to decode state file: %w", err)
	}

	if state.SelectedLocation == "" {
		return "", false, nil
	}
	return state.SelectedLocation, true, nil
}
