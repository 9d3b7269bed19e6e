package store

import (
	"math"
	"strconv"
)

// SetOptions captures the positional option tokens SET accepts, per
// spec.md §4.2: NX/XX are mutually exclusive gates, TTLMillis (when >0)
// sets an absolute expiry EX/PX seconds/millis from now, KeepTTL
// preserves any existing expiry instead of the implicit clear, and
// GetOld requests the previous value be returned atomically with the
// write. The command layer is responsible for rejecting contradictory
// combinations (NX+XX, EX+PX) before calling Set.
type SetOptions struct {
	NX        bool
	XX        bool
	KeepTTL   bool
	TTLMillis int64
	GetOld    bool
}

// Set implements spec.md §4.2's set_scalar. It returns the previous
// scalar value (only meaningful when opts.GetOld), whether a previous
// scalar existed, and whether the write was applied (false when an
// NX/XX gate rejected it).
func (s *Store) Set(key string, val []byte, opts SetOptions) (old []byte, hadOld bool, applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	present := e != nil

	if opts.GetOld && present && e.kind != kindString {
		return nil, false, false, ErrWrongType
	}
	if present && e.kind == kindString {
		old, hadOld = e.str, true
	}

	if opts.NX && present {
		return old, hadOld, false, nil
	}
	if opts.XX && !present {
		return nil, false, false, nil
	}

	ne := &entry{kind: kindString, str: val}
	if opts.KeepTTL && present {
		ne.expiresAt = e.expiresAt
	} else if opts.TTLMillis > 0 {
		ne.expiresAt = nowMillis() + opts.TTLMillis
	}
	s.data[key] = ne
	return old, hadOld, true, nil
}

// Get implements get_scalar: lazy-expire, then type-check.
func (s *Store) Get(key string) (val []byte, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return nil, false, nil
	}
	if e.kind != kindString {
		return nil, false, ErrWrongType
	}
	return e.str, true, nil
}

// GetSet atomically replaces a scalar (or absent key) and returns the
// previous value, preserving any existing TTL.
func (s *Store) GetSet(key string, val []byte) (old []byte, hadOld bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	var preserveTTL int64
	if e != nil {
		if e.kind != kindString {
			return nil, false, ErrWrongType
		}
		old, hadOld = e.str, true
		preserveTTL = e.expiresAt
	}
	s.data[key] = &entry{kind: kindString, str: val, expiresAt: preserveTTL}
	return old, hadOld, nil
}

// IncrBy implements incr_by (shared by INCR/DECR/INCRBY/DECRBY):
// absent keys are treated as 0; overflow fails without mutating state.
func (s *Store) IncrBy(key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	var cur int64
	var preserveTTL int64
	if e != nil {
		if e.kind != kindString {
			return 0, ErrWrongType
		}
		parsed, perr := strconv.ParseInt(string(e.str), 10, 64)
		if perr != nil {
			return 0, ErrNotInteger
		}
		cur = parsed
		preserveTTL = e.expiresAt
	}

	if (delta > 0 && cur > math.MaxInt64-delta) || (delta < 0 && cur < math.MinInt64-delta) {
		return 0, ErrOverflow
	}
	next := cur + delta
	s.data[key] = &entry{kind: kindString, str: []byte(strconv.FormatInt(next, 10)), expiresAt: preserveTTL}
	return next, nil
}

// Append implements append(key, suffix). Absent keys create a new
// scalar equal to suffix.
func (s *Store) Append(key string, suffix []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		buf := append([]byte(nil), suffix...)
		s.data[key] = &entry{kind: kindString, str: buf}
		return len(buf), nil
	}
	if e.kind != kindString {
		return 0, ErrWrongType
	}
	buf := make([]byte, 0, len(e.str)+len(suffix))
	buf = append(buf, e.str...)
	buf = append(buf, suffix...)
	s.data[key] = &entry{kind: kindString, str: buf, expiresAt: e.expiresAt}
	return len(buf), nil
}

// KV is one key/value pair for a batched MSet.
type KV struct {
	Key string
	Val []byte
}

// MSet implements mset(pairs): every pair is written under a single
// lock acquisition so the batch is linearizable as a whole, matching
// spec.md §5's requirement that MSET/MGET "still appear atomic" under
// the single-global-lock model. Each key's existing TTL is cleared,
// matching plain SET's implicit-clear semantics.
func (s *Store) MSet(pairs []KV) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pairs {
		s.data[p.Key] = &entry{kind: kindString, str: p.Val}
	}
}

// MGet implements mget(keys): every key is resolved under one lock
// acquisition. A key that is absent or holds a non-string value reports
// nil at that index, matching MGET's "nil for anything but a string"
// semantics.
func (s *Store) MGet(keys []string) [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		e, _ := s.lockedGet(k)
		if e != nil && e.kind == kindString {
			out[i] = e.str
		}
	}
	return out
}

// Strlen returns the length of a scalar value, 0 for an absent key.
func (s *Store) Strlen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != kindString {
		return 0, ErrWrongType
	}
	return len(e.str), nil
}
