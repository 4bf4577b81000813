// Package parsecache memoizes /v1/lex results in the httpapi service,
// keyed by a hash of the submitted source and lexer configuration.
// Adapted from the teacher's internal/web/cache (same Get/Put-with-TTL
// shape); backends are swappable behind the Store interface.
package parsecache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/faridmehrhesam/kusto-language/lexer"
)

// Store is the memoization backend for lex results.
type Store interface {
	GetTokens(ctx context.Context, key string) (interface{}, bool)
	PutTokens(ctx context.Context, key string, value interface{}) error
}

// Key derives a stable cache key from source text and the lexer
// configuration that produced a result. blake2b (from golang.org/x/crypto,
// a direct requirement in go.mod) is used in place of a
// non-cryptographic hash purely because it's already present in go.mod.
func Key(source string, cfg lexer.Config) string {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write([]byte(source))
	_, _ = fmt.Fprintf(h, "|%v|%v", cfg.AlwaysProduceEndTokens, cfg.AllowLiteralsWithLineBreaks)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// EntryID mints a unique identifier for a cache entry, used by the
// sqlite/postgres-backed stores as a primary key.
func EntryID() string {
	return uuid.New().String()
}

// cacheItem is the TTL-bearing value every backend stores.
type cacheItem struct {
	Value   json.RawMessage `json:"value"`
	Expires time.Time       `json:"expires"`
}

func marshalItem(value interface{}, ttl time.Duration) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	item := cacheItem{Value: raw, Expires: time.Now().Add(ttl)}
	return json.Marshal(item)
}

func unmarshalItem(data []byte) (interface{}, bool) {
	var item cacheItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, false
	}
	if !item.Expires.IsZero() && time.Now().After(item.Expires) {
		return nil, false
	}
	var value interface{}
	if err := json.Unmarshal(item.Value, &value); err != nil {
		return nil, false
	}
	return value, true
}

// MemoryStore is an in-process Store with TTL-based expiry, adapted from
// the teacher's MemoryCache.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  time.Duration
}

// NewMemoryStore builds a MemoryStore whose entries expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), ttl: ttl}
}

// GetTokens implements Store.
func (m *MemoryStore) GetTokens(ctx context.Context, key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, false
	}
	value, ok := unmarshalItem(raw)
	if !ok {
		delete(m.data, key)
	}
	return value, ok
}

// PutTokens implements Store.
func (m *MemoryStore) PutTokens(ctx context.Context, key string, value interface{}) error {
	raw, err := marshalItem(value, m.ttl)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}
