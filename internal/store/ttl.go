package store

// Expire sets key to expire after seconds, replacing any existing
// expiry. Returns 1 if applied, 0 if key is absent.
func (s *Store) Expire(key string, seconds int64) int {
	return s.expireMillis(key, seconds*1000)
}

// PExpire is Expire with millisecond resolution.
func (s *Store) PExpire(key string, millis int64) int {
	return s.expireMillis(key, millis)
}

func (s *Store) expireMillis(key string, millis int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, _ := s.lockedGet(key)
	if e == nil {
		return 0
	}
	e.expiresAt = nowMillis() + millis
	return 1
}

// TTL returns the remaining seconds until expiry, -1 if the key has no
// expiry, or -2 if the key is absent.
func (s *Store) TTL(key string) int64 {
	ms := s.PTTL(key)
	if ms < 0 {
		return ms
	}
	secs := ms / 1000
	if ms%1000 != 0 {
		secs++
	}
	return secs
}

// PTTL is TTL with millisecond resolution.
func (s *Store) PTTL(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, _ := s.lockedGet(key)
	if e == nil {
		return -2
	}
	if e.expiresAt == 0 {
		return -1
	}
	remaining := e.expiresAt - nowMillis()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Persist removes any existing expiry, returning 1 if one was removed
// and 0 if the key was absent or already had no expiry.
func (s *Store) Persist(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, _ := s.lockedGet(key)
	if e == nil || e.expiresAt == 0 {
		return 0
	}
	e.expiresAt = 0
	return 1
}
