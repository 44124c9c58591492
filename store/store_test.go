package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(7, []byte(`{"trip": {"name": "Lisbon"}}`)))

	entry, err := s.Get(7)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(7), entry.TripID)
	assert.JSONEq(t, `{"trip": {"name": "Lisbon"}}`, string(entry.Snapshot))
	assert.NotZero(t, entry.CreationTimestamp)
	assert.NotZero(t, entry.UpdateTimestamp)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.Get(99)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(7, []byte(`{"v": 1}`)))
	first, err := s.Get(7)
	require.NoError(t, err)

	require.NoError(t, s.Save(7, []byte(`{"v": 2}`)))
	second, err := s.Get(7)
	require.NoError(t, err)

	assert.JSONEq(t, `{"v": 2}`, string(second.Snapshot))
	assert.Equal(t, first.CreationTimestamp, second.CreationTimestamp)

	// One draft per trip; other trips are untouched.
	require.NoError(t, s.Save(8, []byte(`{"v": 3}`)))
	entry, err := s.Get(7)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v": 2}`, string(entry.Snapshot))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(7, []byte(`{}`)))
	require.NoError(t, s.Delete(7))

	entry, err := s.Get(7)
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Deleting a missing draft is not an error.
	require.NoError(t, s.Delete(7))
}
