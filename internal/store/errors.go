package store

import "errors"

// Sentinel errors whose Error() text matches the wire error message
// verbatim (the command layer's errorReply maps each one to a RESP
// error frame carrying the same text).
var (
	ErrWrongType  = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
	ErrNotInteger = errors.New("ERR value is not an integer or out of range")
	ErrOverflow   = errors.New("ERR increment or decrement would overflow")
	ErrNoSuchKey  = errors.New("ERR no such key")
	ErrIndexRange = errors.New("ERR index out of range")
	ErrSyntax     = errors.New("ERR syntax error")
)
