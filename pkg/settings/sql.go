package settings

import (
	"context"
	"fmt"

	"github.com/resumo-news/resumo/pkg/domain"
)

// KeyValue is the key/value storage used by SQLStore, satisfied by repository.SettingRepository
type KeyValue interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// SQLStore keeps settings in the database settings table
type SQLStore struct {
	kv KeyValue
}

// NewSQLStore makes a store on top of a key/value repository
func NewSQLStore(kv KeyValue) *SQLStore {
	return &SQLStore{kv: kv}
}

// Load reads and decodes the blob stored under the settings key
func (s *SQLStore) Load(ctx context.Context) (domain.UserSettings, bool, error) {
	blob, err := s.kv.GetSetting(ctx, domain.SettingsKey)
	if err != nil {
		return domain.UserSettings{}, false, fmt.Errorf("load settings: %w", err)
	}
	if blob == "" {
		return domain.UserSettings{}, false, nil
	}
	us, err := Decode(blob)
	if err != nil {
		return domain.UserSettings{}, true, err
	}
	return us, true, nil
}

// Save writes the full settings blob
func (s *SQLStore) Save(ctx context.Context, us domain.UserSettings) error {
	blob, err := Encode(us)
	if err != nil {
		return err
	}
	if err := s.kv.SetSetting(ctx, domain.SettingsKey, blob); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
