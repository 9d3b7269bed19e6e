// Package command dispatches decoded RESP requests against the store
// and shapes RESP replies, generalizing the teacher's processCommand
// switch (protocol.go) from the custom binary opcode table to a
// case-folded name table over resp.Value arguments.
package command

import (
	"strings"
	"sync"
	"time"

	"gofast/internal/resp"
	"gofast/internal/store"
)

// Handler executes one command given its arguments (excluding the
// command name itself) against conn state, returning the RESP reply.
type Handler func(c *Context, args []resp.Value) resp.Value

// Context carries everything a handler needs beyond its arguments: the
// shared store, the calling connection's per-client state, and the
// server-wide introspection a few commands (CLIENT LIST, INFO) need.
type Context struct {
	Store  *store.Store
	Client *ClientState

	// Info describes the server for INFO. Nil in contexts (e.g. unit
	// tests) that don't wire one in; INFO falls back to zero values.
	Info *ServerInfo
	// Clients lists every connected client for CLIENT LIST. Nil falls
	// back to reporting just the calling connection.
	Clients ClientLister
}

// ServerInfo is the process-wide information INFO reports, populated
// by the server from the values it was started with.
type ServerInfo struct {
	Version   string
	StartedAt time.Time
}

// ClientInfo is one row of CLIENT LIST's output.
type ClientInfo struct {
	ID   uint64
	Addr string
	Name string
}

// ClientLister returns a snapshot of every client currently connected
// to the server, wired in from a shared registry the server keeps.
type ClientLister func() []ClientInfo

// ClientState is the per-connection state a handful of commands
// (CLIENT, INFO, QUIT) read or mutate. Name is guarded by its own
// mutex because CLIENT LIST can read it from a different connection's
// goroutine than the one that set it via CLIENT SETNAME.
type ClientState struct {
	ID   uint64
	Addr string
	// Closing is set by the QUIT handler to tell the server loop to
	// close the connection after writing the reply.
	Closing bool

	nameMu sync.Mutex
	name   string
}

// Name returns the client's name, or "" if it was never set.
func (cs *ClientState) Name() string {
	cs.nameMu.Lock()
	defer cs.nameMu.Unlock()
	return cs.name
}

// SetName sets the client's name (CLIENT SETNAME).
func (cs *ClientState) SetName(name string) {
	cs.nameMu.Lock()
	defer cs.nameMu.Unlock()
	cs.name = name
}

type entry struct {
	handler Handler
	arity   int // minimum argument count (excluding the command name); -1 means variadic
}

// Registry is a name -> Handler dispatch table.
type Registry struct {
	commands map[string]entry
}

// NewRegistry builds the full command table: string, list, set, hash,
// keyspace, and connection commands.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]entry)}
	registerStringCommands(r)
	registerListCommands(r)
	registerSetCommands(r)
	registerHashCommands(r)
	registerKeyspaceCommands(r)
	registerConnectionCommands(r)
	return r
}

func (r *Registry) register(name string, minArgs int, h Handler) {
	r.commands[name] = entry{handler: h, arity: minArgs}
}

// Dispatch looks up and invokes the command named by args[0], running
// arity validation first. args must contain the command name at index 0.
func (r *Registry) Dispatch(c *Context, args []resp.Value) resp.Value {
	if len(args) == 0 {
		return resp.Error("ERR", "empty command")
	}
	name := strings.ToUpper(string(args[0].Bulk))
	e, ok := r.commands[name]
	if !ok {
		return resp.Error("ERR", "unknown command '"+name+"'")
	}
	rest := args[1:]
	if e.arity >= 0 && len(rest) < e.arity {
		return resp.Error("ERR", "wrong number of arguments for '"+strings.ToLower(name)+"' command")
	}
	return e.handler(c, rest)
}

func bulkStrings(vs []resp.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v.Bulk)
	}
	return out
}

func bulkBytes(vs []resp.Value) [][]byte {
	out := make([][]byte, len(vs))
	for i, v := range vs {
		out[i] = v.Bulk
	}
	return out
}

func bulkReplyOrNull(val []byte, ok bool) resp.Value {
	if !ok {
		return resp.NullBulk()
	}
	return resp.Bulk(val)
}

func arrayOfBulk(vals [][]byte) resp.Value {
	out := make([]resp.Value, len(vals))
	for i, v := range vals {
		out[i] = resp.Bulk(v)
	}
	return resp.Array(out)
}

func arrayOfBulkOrNull(vals [][]byte) resp.Value {
	out := make([]resp.Value, len(vals))
	for i, v := range vals {
		if v == nil {
			out[i] = resp.NullBulk()
		} else {
			out[i] = resp.Bulk(v)
		}
	}
	return resp.Array(out)
}

func errorReply(err error) resp.Value {
	switch err {
	case store.ErrWrongType:
		return resp.Error("WRONGTYPE", "Operation against a key holding the wrong kind of value")
	case store.ErrNotInteger:
		return resp.Error("ERR", "value is not an integer or out of range")
	case store.ErrOverflow:
		return resp.Error("ERR", "increment or decrement would overflow")
	case store.ErrNoSuchKey:
		return resp.Error("ERR", "no such key")
	case store.ErrIndexRange:
		return resp.Error("ERR", "index out of range")
	case store.ErrSyntax:
		return resp.Error("ERR", "syntax error")
	default:
		return resp.Error("ERR", err.Error())
	}
}
