package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/basel-ax/reimagine/internal/domain"
)

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Get returns the session with the given ID and refreshes its expiry
	Get(id string) (*domain.Session, bool)
	// Create stores a new empty session under a fresh ID
	Create() *domain.Session
	// Sweep evicts expired sessions and returns how many remain
	Sweep() int
}

// CacheSessionRepository implements SessionRepository on an in-memory expiring cache
type CacheSessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewCacheSessionRepository creates a session repository whose entries expire after ttl of inactivity.
// Expired entries are only evicted by Sweep.
func NewCacheSessionRepository(ttl time.Duration) *CacheSessionRepository {
	return &CacheSessionRepository{
		cache: cache.New(ttl, 0),
		ttl:   ttl,
	}
}

// Get retrieves a session and slides its expiry forward
func (r *CacheSessionRepository) Get(id string) (*domain.Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*domain.Session)
	r.cache.Set(id, sess, r.ttl)
	return sess, true
}

// Create stores a new session
func (r *CacheSessionRepository) Create() *domain.Session {
	sess := domain.NewSession(uuid.NewString())
	r.cache.Set(sess.ID, sess, r.ttl)
	return sess
}

// Sweep removes expired sessions
func (r *CacheSessionRepository) Sweep() int {
	r.cache.DeleteExpired()
	return r.cache.ItemCount()
}

var _ SessionRepository = (*CacheSessionRepository)(nil)
