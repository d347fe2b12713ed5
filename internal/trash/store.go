// Package trash keeps the set of asset ids staged for deletion.
//
// The set is loaded lazily from a kv.Storage the first time it is needed and
// written back in full after every mutation. Storage failures never reach the
// caller: reads degrade to an empty set and writes keep the in-memory change.
package trash

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/babarot/sweep/internal/kv"
)

// DefaultKey is the storage key holding the JSON array of trashed ids.
const DefaultKey = "trashed_photo_ids"

type Store struct {
	storage kv.Storage
	key     string
	logger  *slog.Logger
	onError func(*StoreError)

	// mu is held across read-modify-persist so mutations reach storage in
	// the order they were applied.
	mu      sync.Mutex
	loaded  bool
	members []string
	index   map[string]struct{}
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorHandler replaces the default handler, which logs at error level.
func WithErrorHandler(fn func(*StoreError)) Option {
	return func(s *Store) {
		s.onError = fn
	}
}

func New(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		logger:  slog.Default(),
		index:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.onError == nil {
		s.onError = s.logError
	}
	return s
}

func (s *Store) logError(err *StoreError) {
	s.logger.Error("trash storage failure", "op", err.Op, "key", err.Key, "error", err.Err)
}

// Preload triggers the lazy load. Calling it again is a no-op.
func (s *Store) Preload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
}

// List returns a copy of the trashed ids in insertion order.
func (s *Store) List(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return slices.Clone(s.members)
}

func (s *Store) Contains(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	_, found := s.index[id]
	return found
}

func (s *Store) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)
	return len(s.members)
}

// Add stages id for deletion and persists the set. Adding a present id
// still persists.
func (s *Store) Add(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if _, found := s.index[id]; !found {
		s.index[id] = struct{}{}
		s.members = append(s.members, id)
		s.logger.Debug("trashed", "id", id, "count", len(s.members))
	}
	s.persist(ctx)
}

func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	if _, found := s.index[id]; found {
		delete(s.index, id)
		s.members = lo.Without(s.members, id)
		s.logger.Debug("restored", "id", id, "count", len(s.members))
	}
	s.persist(ctx)
}

// Clear empties the set and persists it without reading the previous state.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.members = []string{}
	s.index = make(map[string]struct{})
	s.loaded = true
	s.logger.Debug("trash cleared")
	s.persist(ctx)
}

func (s *Store) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	ids := s.load(ctx).or(s.onError, nil)
	s.members = make([]string, 0, len(ids))
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.members = append(s.members, id)
	}
	s.logger.Debug("trash loaded", "key", s.key, "count", len(s.members))
}

func (s *Store) load(ctx context.Context) result[[]string] {
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return fail[[]string](OpLoad, s.key, err)
	}
	if !found {
		return ok[[]string](nil)
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return fail[[]string](OpDecode, s.key, err)
	}
	return ok(ids)
}

func (s *Store) persist(ctx context.Context) {
	s.save(ctx).or(s.onError, struct{}{})
}

func (s *Store) save(ctx context.Context) result[struct{}] {
	ids := s.members
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fail[struct{}](OpPersist, s.key, err)
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		return fail[struct{}](OpPersist, s.key, err)
	}
	return ok(struct{}{})
}
