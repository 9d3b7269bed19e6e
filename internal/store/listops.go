package store

// LPush/RPush push variadic values; LPUSH a b c leaves head = c,b,a
// per spec.md §4.2 (each value is pushed in argument order).
func (s *Store) push(key string, values [][]byte, left bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e != nil && e.kind != kindList {
		return 0, ErrWrongType
	}
	if e == nil {
		e = &entry{kind: kindList, list: newList()}
		s.data[key] = e
	}
	n := 0
	for _, v := range values {
		if left {
			n = e.list.leftPush(v)
		} else {
			n = e.list.rightPush(v)
		}
	}
	return n, nil
}

func (s *Store) LPush(key string, values ...[]byte) (int, error) { return s.push(key, values, true) }
func (s *Store) RPush(key string, values ...[]byte) (int, error) { return s.push(key, values, false) }

func (s *Store) pop(key string, left bool) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return nil, false, nil
	}
	if e.kind != kindList {
		return nil, false, ErrWrongType
	}
	var val []byte
	var ok bool
	if left {
		val, ok = e.list.leftPop()
	} else {
		val, ok = e.list.rightPop()
	}
	if !ok {
		return nil, false, nil
	}
	s.removeIfEmpty(key, e)
	return val, true, nil
}

func (s *Store) LPop(key string) ([]byte, bool, error) { return s.pop(key, true) }
func (s *Store) RPop(key string) ([]byte, bool, error) { return s.pop(key, false) }

// LLen returns the list's length, 0 for an absent key.
func (s *Store) LLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return 0, nil
	}
	if e.kind != kindList {
		return 0, ErrWrongType
	}
	return e.list.length, nil
}

// LIndex returns the element at i (negative counts from the tail), or
// ok=false when out of range or absent.
func (s *Store) LIndex(key string, i int) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return nil, false, nil
	}
	if e.kind != kindList {
		return nil, false, ErrWrongType
	}
	v, ok := e.list.index(i)
	return v, ok, nil
}

// LRange returns the inclusive, negative-normalized, clamped slice
// [start, stop], or an empty slice for an absent key.
func (s *Store) LRange(key string, start, stop int) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return [][]byte{}, nil
	}
	if e.kind != kindList {
		return nil, ErrWrongType
	}
	return e.list.rangeSlice(start, stop), nil
}

// LSet writes at index i, per spec.md §4.2's documented error surface.
func (s *Store) LSet(key string, i int, val []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, _ := s.lockedGet(key)
	if e == nil {
		return ErrNoSuchKey
	}
	if e.kind != kindList {
		return ErrWrongType
	}
	if !e.list.set(i, val) {
		return ErrIndexRange
	}
	return nil
}
