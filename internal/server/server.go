// Package server drives the TCP accept loop and one goroutine per
// client connection, adapted from the teacher's Start/handleConnection
// pair (server.go) and generalized from its binary framing to RESP2
// decode/encode plus the store's active-expiration sweep.
package server

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"gofast/internal/command"
	"gofast/internal/metrics"
	"gofast/internal/store"
)

// Server accepts RESP2 connections and dispatches their commands
// against a shared Store.
type Server struct {
	Addr       string
	Store      *store.Store
	Registry   *command.Registry
	Log        *logrus.Logger
	Metrics    *metrics.Metrics
	MaxBulkLen int
	Version    string

	TCPKeepAlive bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	listener   net.Listener
	stopSwp    func()
	nextID     uint64
	wg         sync.WaitGroup
	closing    atomic.Bool
	pool       *bytePool
	clientsReg *clientRegistry
	startedAt  time.Time
}

// ListenAndServe binds the listener, starts the active-expiration
// sweep, and blocks accepting connections until Shutdown is called.
func (s *Server) ListenAndServe(activeExpireInterval time.Duration) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.pool = newBytePool(readChunkSize)
	s.clientsReg = newClientRegistry()
	s.startedAt = time.Now()

	s.stopSwp = s.Store.RunActiveExpiration(activeExpireInterval, func(sampled, expired int) {
		if s.Metrics != nil {
			if expired > 0 {
				s.Metrics.ExpiredKeys.Add(float64(expired))
			}
			s.Metrics.KeyspaceSize.Set(float64(s.Store.DBSize()))
		}
		s.Log.WithFields(logrus.Fields{"sampled": sampled, "expired": expired}).Debug("active expire cycle")
	})

	s.Log.WithField("addr", s.Addr).Info("gofast server listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closing.Load() {
				return nil
			}
			s.Log.WithError(err).Warn("accept error")
			continue
		}
		s.wg.Add(1)
		go s.serve(conn)
	}
}

// Shutdown stops accepting new connections and the active-expiration
// sweep, then waits for in-flight connections to finish.
func (s *Server) Shutdown() {
	s.closing.Store(true)
	if s.listener != nil {
		s.listener.Close()
	}
	if s.stopSwp != nil {
		s.stopSwp()
	}
	s.wg.Wait()
}

func (s *Server) serve(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	if tcp, ok := conn.(*net.TCPConn); ok {
		tcp.SetKeepAlive(s.TCPKeepAlive)
	}

	id := atomic.AddUint64(&s.nextID, 1)
	traceID := xid.New().String()
	client := &command.ClientState{ID: id, Addr: conn.RemoteAddr().String()}

	log := s.Log.WithFields(logrus.Fields{"conn": id, "trace": traceID, "addr": client.Addr})
	log.Debug("client connected")

	if s.Metrics != nil {
		s.Metrics.ConnectionsOpen.Inc()
		defer s.Metrics.ConnectionsOpen.Dec()
	}

	if s.clientsReg != nil {
		s.clientsReg.add(client)
		defer s.clientsReg.remove(id)
	}

	c := &clientConn{
		nc:        conn,
		log:       log,
		registry:  s.Registry,
		store:     s.Store,
		client:    client,
		maxBulk:   s.MaxBulkLen,
		metrics:   s.Metrics,
		readDead:  s.ReadTimeout,
		writeDead: s.WriteTimeout,
		pool:      s.pool,
		info:      &command.ServerInfo{Version: s.Version, StartedAt: s.startedAt},
	}
	if s.clientsReg != nil {
		c.clients = s.clientsReg.list
	}
	c.run()

	log.Debug("client disconnected")
}
