package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSessionRepository_CreateAndGet(t *testing.T) {
	repo := NewCacheSessionRepository(time.Hour)

	sess := repo.Create()
	_, err := uuid.Parse(sess.ID)
	require.NoError(t, err)

	got, ok := repo.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	other := repo.Create()
	assert.NotEqual(t, sess.ID, other.ID)
}

func TestCacheSessionRepository_UnknownID(t *testing.T) {
	repo := NewCacheSessionRepository(time.Hour)

	_, ok := repo.Get("")
	assert.False(t, ok)

	_, ok = repo.Get(uuid.NewString())
	assert.False(t, ok)
}

func TestCacheSessionRepository_SweepEvictsExpired(t *testing.T) {
	repo := NewCacheSessionRepository(20 * time.Millisecond)

	expired := repo.Create()
	time.Sleep(40 * time.Millisecond)
	fresh := repo.Create()

	assert.Equal(t, 1, repo.Sweep())

	_, ok := repo.Get(expired.ID)
	assert.False(t, ok)
	_, ok = repo.Get(fresh.ID)
	assert.True(t, ok)
}

func TestCacheSessionRepository_GetRefreshesExpiry(t *testing.T) {
	repo := NewCacheSessionRepository(60 * time.Millisecond)
	sess := repo.Create()

	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		_, ok := repo.Get(sess.ID)
		require.True(t, ok, "session expired after %d refreshes", i)
	}
}
