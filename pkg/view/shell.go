// Package view holds the news view state shared by the html pages and the api:
// the selected category, its articles and the loaded user settings.
package view

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/resumo-news/resumo/pkg/domain"
	"github.com/resumo-news/resumo/pkg/llm"
	"github.com/resumo-news/resumo/pkg/settings"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports ../settings Store

// ErrStale is returned by Load when a newer load started before this one finished.
// The result of the stale load is discarded.
var ErrStale = errors.New("stale load discarded")

// Fetcher fetches headlines for a category
type Fetcher interface {
	Fetch(ctx context.Context, category domain.Category) llm.Batch
}

// Shell is the news view state machine: idle -> loading -> loaded.
// Every load bumps the generation and cancels the load in flight, so the newest request wins.
type Shell struct {
	fetcher Fetcher
	store   settings.Store

	mu         sync.Mutex
	state      domain.LoadState
	category   domain.Category
	articles   []domain.Article
	generation uint64
	cancel     context.CancelFunc
	settings   domain.UserSettings
}

// New makes a shell in idle state and reads the saved settings once.
// Missing settings give defaults, unreadable or malformed ones give defaults with a warning.
func New(ctx context.Context, fetcher Fetcher, store settings.Store) *Shell {
	s := &Shell{
		fetcher:  fetcher,
		store:    store,
		state:    domain.StateIdle,
		category: domain.CategoryGeneral,
		articles: []domain.Article{},
		settings: domain.DefaultSettings(),
	}

	us, found, err := store.Load(ctx)
	switch {
	case err != nil:
		log.Printf("[WARN] can't load saved settings, using defaults: %v", err)
	case !found:
		log.Printf("[DEBUG] no saved settings, using defaults")
	default:
		s.settings = us
	}
	return s
}

// Load replaces the article list with a fresh fetch of the category
func (s *Shell) Load(ctx context.Context, category domain.Category) (llm.Batch, error) {
	if !category.Valid() {
		return llm.Batch{}, fmt.Errorf("unknown category %q", category)
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel() // previous load is superseded
	}
	s.generation++
	gen := s.generation
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = domain.StateLoading
	s.category = category
	s.articles = []domain.Article{}
	s.mu.Unlock()

	batch := s.fetcher.Fetch(loadCtx, category)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		cancel()
		log.Printf("[DEBUG] discarded stale load of %s, generation %d, current %d", category, gen, s.generation)
		return llm.Batch{}, ErrStale
	}
	s.cancel()
	s.cancel = nil

	if batch.Articles == nil {
		batch.Articles = []domain.Article{}
	}
	s.state = domain.StateLoaded
	s.articles = slices.Clone(batch.Articles)
	return batch, nil
}

// Refresh reloads the current category
func (s *Shell) Refresh(ctx context.Context) (llm.Batch, error) {
	s.mu.Lock()
	category := s.category
	s.mu.Unlock()
	return s.Load(ctx, category)
}

// Snapshot returns a copy of the current view state
func (s *Shell) Snapshot() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ViewState{
		State:      s.state,
		Category:   s.category,
		Articles:   slices.Clone(s.articles),
		Generation: s.generation,
	}
}

// Article finds an article of the current list by id
func (s *Shell) Article(id string) (domain.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Article{}, false
}

// Settings returns a copy of the current settings
func (s *Shell) Settings() domain.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// SaveSettings persists the full settings and makes them current
func (s *Shell) SaveSettings(ctx context.Context, us domain.UserSettings) error {
	us = us.Clone()
	if us.SubscribedCategories == nil {
		us.SubscribedCategories = []domain.Category{}
	}
	if err := s.store.Save(ctx, us); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	s.mu.Lock()
	s.settings = us
	s.mu.Unlock()
	log.Printf("[INFO] settings saved, email %q at %s, %d categories", us.Email, us.EmailTime, len(us.SubscribedCategories))
	return nil
}
