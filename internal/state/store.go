// Package state holds the application-wide options shared between the
// chat view and the commands that change them.
package state

import (
	"sync"

	"github.com/diogo/playground/internal/config"
)

// Options is the shared, user-editable view state.
type Options struct {
	UserName string
}

// OptionsReader is the read-only view handed to renderers.
type OptionsReader interface {
	UserName() string
}

// Store guards Options and notifies subscribers on change.
type Store struct {
	mu   sync.RWMutex
	opts Options
	subs []chan Options
}

// NewStore creates a store seeded with opts.
func NewStore(opts Options) *Store {
	return &Store{opts: opts}
}

// NewStoreFromConfig seeds a store from the user configuration.
func NewStoreFromConfig(cfg config.Config) *Store {
	return NewStore(Options{UserName: cfg.UserName})
}

// Options returns a snapshot of the current options.
func (s *Store) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// UserName returns the current display name, possibly empty.
func (s *Store) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts.UserName
}

// SetUserName updates the display name and notifies subscribers.
func (s *Store) SetUserName(name string) {
	s.mu.Lock()
	s.opts.UserName = name
	opts := s.opts
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		publish(ch, opts)
	}
}

// Subscribe returns a channel that receives the latest Options after
// every change. Slow readers only see the most recent value.
func (s *Store) Subscribe() <-chan Options {
	ch := make(chan Options, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// publish replaces any undelivered value with opts.
func publish(ch chan Options, opts Options) {
	for {
		select {
		case ch <- opts:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Static is an OptionsReader over a fixed name, for one-shot rendering.
type Static string

// UserName returns the fixed name.
func (s Static) UserName() string {
	return string(s)
}
