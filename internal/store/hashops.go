package store

import (
	"math"
	"strconv"
)

// HField is one field/value pair, used by HSet's variadic argument list.
type HField struct {
	Field []byte
	Value []byte
}

// HSet sets variadic field/value pairs, returning the count of fields
// that were newly created (updating an existing field contributes 0).
func (s *Store) HSet(key string, pairs ...HField) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e != nil && e.kind != kindHash {
		return 0, ErrWrongType
	}
	if e == nil {
		e = &entry{kind: kindHash, hash: make(map[string][]byte)}
		s.data[key] = e
	}
	created := 0
	for _, p := range pairs {
		f := string(p.Field)
		if _, exists := e.hash[f]; !exists {
			created++
		}
		e.hash[f] = p.Value
	}
	return created, nil
}

// HGet returns a single field's value.
func (s *Store) HGet(key string, field []byte) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return nil, false, nil
	}
	if e.kind != kindHash {
		return nil, false, ErrWrongType
	}
	v, ok := e.hash[string(field)]
	return v, ok, nil
}

// HMGet returns one slot per requested field, nil for each missing one.
func (s *Store) HMGet(key string, fields [][]byte) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	out := make([][]byte, len(fields))
	if e == nil {
		return out, nil
	}
	if e.kind != kindHash {
		return nil, ErrWrongType
	}
	for i, f := range fields {
		if v, ok := e.hash[string(f)]; ok {
			out[i] = v
		}
	}
	return out, nil
}

// HGetAll returns the flat field,value,field,value,... sequence.
func (s *Store) HGetAll(key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return [][]byte{}, nil
	}
	if e.kind != kindHash {
		return nil, ErrWrongType
	}
	out := make([][]byte, 0, len(e.hash)*2)
	for f, v := range e.hash {
		out = append(out, []byte(f), v)
	}
	return out, nil
}

// HDel removes variadic fields, returning the count that changed state.
func (s *Store) HDel(key string, fields [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != kindHash {
		return 0, ErrWrongType
	}
	removed := 0
	for _, f := range fields {
		k := string(f)
		if _, exists := e.hash[k]; exists {
			delete(e.hash, k)
			removed++
		}
	}
	s.removeIfEmpty(key, e)
	return removed, nil
}

// HExists reports whether a field exists.
func (s *Store) HExists(key string, field []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return false, nil
	}
	if e.kind != kindHash {
		return false, ErrWrongType
	}
	_, ok := e.hash[string(field)]
	return ok, nil
}

// HLen returns the field count, 0 for an absent key.
func (s *Store) HLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != kindHash {
		return 0, ErrWrongType
	}
	return len(e.hash), nil
}

// HKeys returns every field name.
func (s *Store) HKeys(key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return [][]byte{}, nil
	}
	if e.kind != kindHash {
		return nil, ErrWrongType
	}
	out := make([][]byte, 0, len(e.hash))
	for f := range e.hash {
		out = append(out, []byte(f))
	}
	return out, nil
}

// HVals returns every field value.
func (s *Store) HVals(key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return [][]byte{}, nil
	}
	if e.kind != kindHash {
		return nil, ErrWrongType
	}
	out := make([][]byte, 0, len(e.hash))
	for _, v := range e.hash {
		out = append(out, v)
	}
	return out, nil
}

// HIncrBy applies the same overflow rules as IncrBy to a single field.
func (s *Store) HIncrBy(key string, field []byte, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e != nil && e.kind != kindHash {
		return 0, ErrWrongType
	}
	if e == nil {
		e = &entry{kind: kindHash, hash: make(map[string][]byte)}
		s.data[key] = e
	}
	f := string(field)
	var cur int64
	if raw, ok := e.hash[f]; ok {
		parsed, perr := strconv.ParseInt(string(raw), 10, 64)
		if perr != nil {
			return 0, ErrNotInteger
		}
		cur = parsed
	}
	if (delta > 0 && cur > math.MaxInt64-delta) || (delta < 0 && cur < math.MinInt64-delta) {
		return 0, ErrOverflow
	}
	next := cur + delta
	e.hash[f] = []byte(strconv.FormatInt(next, 10))
	return next, nil
}
