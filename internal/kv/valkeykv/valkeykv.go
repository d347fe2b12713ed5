// Package valkeykv stores key-value pairs in a Valkey (or Redis) server, so
// several devices can share one trash set.
package valkeykv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/babarot/sweep/internal/kv"
)

type Store struct {
	valkey valkey.Client
	prefix string
}

var _ kv.Storage = (*Store)(nil)

// Open connects to the server at address. Keys are stored as "prefix:key".
func Open(address, prefix string) (*Store, error) {
	if address == "" {
		return nil, errors.New("valkey address is required")
	}
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{address},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}
	return New(client, prefix), nil
}

// New wraps an existing client
func New(client valkey.Client, prefix string) *Store {
	return &Store{
		valkey: client,
		prefix: strings.TrimSuffix(prefix, ":"),
	}
}

func (s *Store) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := s.valkey.B().Get().Key(s.key(key)).Build()
	value, err := s.valkey.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	cmd := s.valkey.B().Set().Key(s.key(key)).Value(value).Build()
	if err := s.valkey.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	s.valkey.Close()
	return nil
}
