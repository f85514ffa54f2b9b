package middleware

import (
	"sync"
	"time"
)

// revocationList holds jtis of logged-out tokens until their natural
// expiry, after which the signature check rejects them anyway.
type revocationList struct {
	revoked map[string]time.Time
	mu      sync.Mutex
}

var revocations *revocationList

func InitRevocationList() {
	revocations = &revocationList{
		revoked: make(map[string]time.Time),
	}

	// Drop expired entries every 10 minutes
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			revocations.cleanup()
		}
	}()
}

func (rl *revocationList) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for jti, expiresAt := range rl.revoked {
		if now.After(expiresAt) {
			delete(rl.revoked, jti)
		}
	}
}

// RevokeToken invalidates a session token until expiresAt.
func RevokeToken(jti string, expiresAt time.Time) {
	if revocations == nil || jti == "" {
		return
	}
	revocations.mu.Lock()
	defer revocations.mu.Unlock()
	revocations.revoked[jti] = expiresAt
}

func IsTokenRevoked(jti string) bool {
	if revocations == nil || jti == "" {
		return false
	}
	revocations.mu.Lock()
	defer revocations.mu.Unlock()

	expiresAt, ok := revocations.revoked[jti]
	if !ok {
		return false
	}
	if time.Now().After(expiresAt) {
		delete(revocations.revoked, jti)
		return false
	}
	return true
}
