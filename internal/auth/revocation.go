package auth

import (
	"sync"
	"time"
)

// Revocations is an in-memory denylist of token ids, kept until each token would have expired.
type Revocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocations creates an empty denylist.
func NewRevocations() *Revocations {
	return &Revocations{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke denies tokenID until expiresAt.
func (r *Revocations) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	r.revoked[tokenID] = expiresAt
}

// IsRevoked reports whether tokenID has been logged out.
func (r *Revocations) IsRevoked(tokenID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenID]
	if !ok {
		return false
	}
	if !r.now().Before(until) {
		delete(r.revoked, tokenID)
		return false
	}
	return true
}

// Len returns the number of tracked token ids.
func (r *Revocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked()
	return len(r.revoked)
}

func (r *Revocations) purgeLocked() {
	now := r.now()
	for id, until := range r.revoked {
		if !now.Before(until) {
			delete(r.revoked, id)
		}
	}
}
