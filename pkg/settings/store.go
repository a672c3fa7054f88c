// Package settings persists the user delivery preferences as a single JSON blob
// stored under a fixed key.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/resumo-news/resumo/pkg/domain"
)

// Store loads and saves user settings. Load reports whether a stored blob existed.
type Store interface {
	Load(ctx context.Context) (domain.UserSettings, bool, error)
	Save(ctx context.Context, s domain.UserSettings) error
}

// Decode parses a settings blob, returns error for malformed content
func Decode(blob string) (domain.UserSettings, error) {
	var s domain.UserSettings
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return domain.UserSettings{}, fmt.Errorf("malformed settings blob: %w", err)
	}
	if s.SubscribedCategories == nil {
		s.SubscribedCategories = []domain.Category{}
	}
	return s, nil
}

// Encode serializes settings to the blob format
func Encode(s domain.UserSettings) (string, error) {
	if s.SubscribedCategories == nil {
		s.SubscribedCategories = []domain.Category{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(data), nil
}
