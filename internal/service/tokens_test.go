package service

import (
	"testing"
	"time"
)

func TestIssueThenValidate(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)

	value, expiresAt := a.Issue()
	if value == "" {
		t.Fatal("expected non-empty token value")
	}
	if len(value) < 22 {
		t.Errorf("token %q too short for 128 bits of entropy", value)
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expected future expiry, got %v", expiresAt)
	}
	if !a.Validate(value) {
		t.Error("freshly issued token should validate")
	}
}

func TestValidateUnknownToken(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)
	if a.Validate("no-such-token") {
		t.Error("unknown token should not validate")
	}
	if a.Validate("") {
		t.Error("empty token should not validate")
	}
}

func TestIssuedTokensAreUnique(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		value, _ := a.Issue()
		if seen[value] {
			t.Fatalf("duplicate token issued: %q", value)
		}
		seen[value] = true
	}
}

func TestIssuanceDoesNotInvalidateOtherTokens(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)

	first, _ := a.Issue()
	for i := 0; i < 50; i++ {
		a.Issue()
	}
	if !a.Validate(first) {
		t.Error("issuing more tokens must not invalidate earlier ones")
	}
	if got := a.ActiveCount(); got != 51 {
		t.Errorf("expected 51 stored tokens, got %d", got)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)
	value, _ := a.Issue()

	// Move the clock past expiry.
	a.now = func() time.Time { return time.Now().Add(31 * time.Minute) }

	if a.Validate(value) {
		t.Error("expired token should not validate")
	}
}

func TestTokenValidExactlyAtExpiry(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return base }

	value, expiresAt := a.Issue()

	// Exactly at the expiry instant the token is still valid; only
	// strictly-past tokens are swept.
	a.now = func() time.Time { return expiresAt }
	if !a.Validate(value) {
		t.Error("token exactly at expiresAt should still validate")
	}

	a.now = func() time.Time { return expiresAt.Add(time.Nanosecond) }
	if a.Validate(value) {
		t.Error("token strictly past expiresAt should not validate")
	}
}

func TestValidateSweepsAllExpiredTokens(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return base }

	for i := 0; i < 10; i++ {
		a.Issue()
	}

	// Issue one more later so it survives the sweep.
	a.now = func() time.Time { return base.Add(20 * time.Minute) }
	survivor, _ := a.Issue()

	// 31 minutes after base: the first ten are strictly expired.
	a.now = func() time.Time { return base.Add(31 * time.Minute) }
	if !a.Validate(survivor) {
		t.Fatal("survivor token should still validate")
	}
	if got := a.ActiveCount(); got != 1 {
		t.Errorf("sweep should leave exactly the survivor, got %d stored tokens", got)
	}
}

func TestSweepRunsOnAnyValidation(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return base }
	a.Issue()
	a.Issue()

	a.now = func() time.Time { return base.Add(time.Hour) }

	// Validating a completely unknown value still sweeps.
	a.Validate("unrelated")
	if got := a.ActiveCount(); got != 0 {
		t.Errorf("expected empty store after sweep, got %d tokens", got)
	}
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	a := NewTokenAuthority(0)
	if a.ttl != DefaultTokenTTL {
		t.Errorf("expected default TTL %v, got %v", DefaultTokenTTL, a.ttl)
	}
}

func TestConcurrentIssueAndValidate(t *testing.T) {
	a := NewTokenAuthority(30 * time.Minute)

	done := make(chan string, 100)
	for i := 0; i < 100; i++ {
		go func() {
			value, _ := a.Issue()
			done <- value
		}()
	}
	for i := 0; i < 100; i++ {
		value := <-done
		if !a.Validate(value) {
			t.Error("concurrently issued token should validate")
		}
	}
}
