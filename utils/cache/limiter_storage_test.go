package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	values map[string][]byte
	ttls   map[string]time.Duration
	closed bool
}

func newMapStore() *mapStore {
	return &mapStore{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return val, nil
}

func (m *mapStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	m.values[key] = value.([]byte)
	m.ttls[key] = expiration
	return nil
}

func (m *mapStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *mapStore) DeletePrefix(_ context.Context, prefix string) error {
	for key := range m.values {
		if strings.HasPrefix(key, prefix) {
			delete(m.values, key)
		}
	}
	return nil
}

func (m *mapStore) Close() error {
	m.closed = true
	return nil
}

func TestLimiterStorage(t *testing.T) {
	store := newMapStore()
	storage := NewLimiterStorage(store)

	val, err := storage.Get("203.0.113.9")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("203.0.113.9", []byte("1"), time.Minute))
	assert.Equal(t, []byte("1"), store.values[defaultLimiterPrefix+"203.0.113.9"])
	assert.Equal(t, time.Minute, store.ttls[defaultLimiterPrefix+"203.0.113.9"])

	val, err = storage.Get("203.0.113.9")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	require.NoError(t, storage.Delete("203.0.113.9"))
	assert.Empty(t, store.values)
}

func TestLimiterStorageResetKeepsForeignKeys(t *testing.T) {
	store := newMapStore()
	store.values["session:abc"] = []byte("x")
	storage := NewLimiterStorage(store)

	require.NoError(t, storage.Set("a", []byte("1"), 0))
	require.NoError(t, storage.Set("b", []byte("2"), 0))
	require.NoError(t, storage.Reset())

	assert.Equal(t, map[string][]byte{"session:abc": []byte("x")}, store.values)

	require.NoError(t, storage.Close())
	assert.True(t, store.closed)
}

func TestLimiterStorageIgnoresEmptyKeys(t *testing.T) {
	store := newMapStore()
	storage := NewLimiterStorage(store)

	require.NoError(t, storage.Set("", []byte("1"), 0))
	require.NoError(t, storage.Set("k", nil, 0))
	assert.Empty(t, store.values)
}
