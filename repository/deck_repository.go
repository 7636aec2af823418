package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"happywrap-deck/models"
)

// ErrDeckNotFound is returned for unknown deck ids
var ErrDeckNotFound = errors.New("deck not found")

// DeckRepository keeps decks in memory for the life of the process
type DeckRepository struct {
	mu    sync.RWMutex
	decks map[string]*models.Deck
}

// Ensure DeckRepository implements DeckRepositoryInterface
var _ DeckRepositoryInterface = (*DeckRepository)(nil)

// NewDeckRepository creates an empty repository
func NewDeckRepository() *DeckRepository {
	return &DeckRepository{decks: make(map[string]*models.Deck)}
}

// Create stores a copy of deck
func (r *DeckRepository) Create(_ context.Context, deck *models.Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.decks[deck.ID]; exists {
		return fmt.Errorf("deck %s already exists", deck.ID)
	}
	r.decks[deck.ID] = deck.Snapshot()
	return nil
}

// Get returns a snapshot of the deck
func (r *DeckRepository) Get(_ context.Context, id string) (*models.Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	deck, ok := r.decks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	return deck.Snapshot(), nil
}

// Update runs fn on a working copy and stores it only when fn succeeds
func (r *DeckRepository) Update(_ context.Context, id string, fn func(*models.Deck) error) (*models.Deck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deck, ok := r.decks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	working := deck.Snapshot()
	if err := fn(working); err != nil {
		return nil, err
	}
	r.decks[id] = working
	return working.Snapshot(), nil
}

// Delete removes the deck
func (r *DeckRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decks[id]; !ok {
		return fmt.Errorf("%w: %s", ErrDeckNotFound, id)
	}
	delete(r.decks, id)
	return nil
}
