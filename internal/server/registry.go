package server

import (
	"sync"

	"gofast/internal/command"
)

// clientRegistry tracks every connected client so CLIENT LIST can
// report the whole server instead of just the calling connection.
type clientRegistry struct {
	mu      sync.Mutex
	clients map[uint64]*command.ClientState
}

func newClientRegistry() *clientRegistry {
	return &clientRegistry{clients: make(map[uint64]*command.ClientState)}
}

func (r *clientRegistry) add(c *command.ClientState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
}

func (r *clientRegistry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

func (r *clientRegistry) list() []command.ClientInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]command.ClientInfo, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, command.ClientInfo{ID: c.ID, Addr: c.Addr, Name: c.Name()})
	}
	return out
}
