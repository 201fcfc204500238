package cache

import "time"

// BytesCache is a minimal cache API storing raw payloads with TTL.
// Entries are immutable once written and simply expire; callers key by the
// exact request parameters so stale data is never reused across inputs.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

// Nop is a no-op cache for tests and for disabling caching outright.
type Nop struct{}

func (Nop) GetBytes(string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) SetBytes(string, []byte, time.Duration) error { return nil }
