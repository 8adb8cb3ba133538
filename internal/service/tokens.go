package service

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// DefaultTokenTTL is how long an issued access token stays valid.
const DefaultTokenTTL = 30 * time.Minute

// TokenAuthority issues and validates the opaque access tokens that gate the
// energy endpoints. Tokens live only in process memory and are never
// persisted. Expiry is enforced lazily: every Validate call first sweeps
// tokens whose expiry is strictly in the past, so an expired token becomes
// unobservable the next time any validation happens. There is no background
// timer.
type TokenAuthority struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	active map[string]time.Time
}

// NewTokenAuthority creates a TokenAuthority with the given token lifetime.
// A zero or negative ttl falls back to DefaultTokenTTL.
func NewTokenAuthority(ttl time.Duration) *TokenAuthority {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenAuthority{
		ttl:    ttl,
		now:    time.Now,
		active: map[string]time.Time{},
	}
}

// Issue generates a new access token and records it with an expiry of
// now + TTL. Issuance is unlimited and never affects other live tokens.
// The value carries 128 bits of entropy from crypto/rand, encoded URL-safe.
func (a *TokenAuthority) Issue() (value string, expiresAt time.Time) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic("token entropy unavailable: " + err.Error())
	}
	value = base64.RawURLEncoding.EncodeToString(buf)

	a.mu.Lock()
	defer a.mu.Unlock()
	expiresAt = a.now().Add(a.ttl).UTC()
	a.active[value] = expiresAt
	return value, expiresAt
}

// Validate sweeps all strictly-expired tokens and then reports whether the
// given value is still active. A token exactly at its expiry instant is
// still valid; only tokens whose expiry is strictly before now are swept.
func (a *TokenAuthority) Validate(value string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	for v, exp := range a.active {
		if exp.Before(now) {
			delete(a.active, v)
		}
	}

	_, ok := a.active[value]
	return ok
}

// ActiveCount returns the number of tokens currently stored. Expired tokens
// that have not yet been swept are included; the count is a storage figure,
// not a validity guarantee.
func (a *TokenAuthority) ActiveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.active)
}
