// Package store owns the live game state. Every mutation goes through Update,
// which works on a private copy and swaps it in only when the callback
// succeeds, so readers never observe a half-applied change.
package store

import (
	"sync"

	"github.com/KirkDiggler/rpg-director/internal/entities"
)

// State is the full savable session
type State struct {
	Character    entities.Character
	World        entities.World
	Game         entities.GameState
	Settings     entities.Settings
	ImagePrompts []string
}

// DefaultState returns a fresh onboarding session with the given settings
func DefaultState(settings entities.Settings) *State {
	return &State{
		Character:    entities.NewCharacter(),
		World:        entities.NewWorld(),
		Game:         entities.NewGameState(),
		Settings:     settings.Clone(),
		ImagePrompts: []string{},
	}
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	return &State{
		Character:    s.Character.Clone(),
		World:        s.World.Clone(),
		Game:         s.Game.Clone(),
		Settings:     s.Settings.Clone(),
		ImagePrompts: append([]string{}, s.ImagePrompts...),
	}
}

// Patch is a synchronous mutation of the state
type Patch func(*State)

// Listener receives a snapshot after each committed update. Listeners run
// synchronously in commit order and must not call Update.
type Listener func(*State)

// Store holds the current state
type Store struct {
	// writeMu serializes writers and notification so listeners see updates
	// in commit order
	writeMu sync.Mutex

	mu    sync.RWMutex
	state *State

	subMu     sync.Mutex
	listeners map[int]Listener
	nextSub   int
}

// New creates a store seeded with initial
func New(initial *State) *Store {
	return &Store{
		state:     initial.Clone(),
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update runs fn against a copy of the state. When fn returns nil the copy
// replaces the current state and listeners are notified. When fn returns an
// error the state is left untouched and the error is returned.
func (s *Store) Update(fn func(*State) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := s.state.Clone()
	s.mu.RUnlock()

	if err := fn(next); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.notify(next)
	return nil
}

// Apply commits a patch
func (s *Store) Apply(p Patch) {
	_ = s.Update(func(st *State) error {
		p(st)
		return nil
	})
}

// Subscribe registers a listener. The returned func removes it.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.listeners, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(committed *State) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.subMu.Unlock()

	for _, l := range listeners {
		l(committed.Clone())
	}
}
