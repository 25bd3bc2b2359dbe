// Package server implements the CQL connection driver (C8): a TCP listener
// accepting one goroutine per connection, speaking the Fresh -> Ready
// handshake and dispatching QUERY bodies to the executor, modeled on the
// teacher's client.CqlServer stub trimmed of client-dialing, heartbeat, and
// the multi-handler request chain this server has no use for (every
// connection speaks the same fixed protocol subset).
package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/rickfast/tarrasque-go/exec"
	"github.com/rickfast/tarrasque-go/parser"
	"github.com/rickfast/tarrasque-go/schema"
	"github.com/rickfast/tarrasque-go/storage"
)

const (
	stateNotStarted = int32(iota)
	stateRunning
	stateClosed
)

// Server accepts CQL connections on a TCP listener, wiring each one to the
// shared Executor/Catalog and a Parser of its own.
type Server struct {
	ListenAddress string

	catalog  *schema.Catalog
	store    *storage.Engine
	executor *exec.Executor
	parser   *parser.Parser

	listener  net.Listener
	ready     chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	waitGroup sync.WaitGroup
	state     int32
}

// New builds a Server backed by a storage engine rooted at storageDir.
func New(listenAddress string, storageDir string) (*Server, error) {
	store, err := storage.NewEngine(storageDir)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize storage engine: %w", err)
	}
	catalog := schema.NewCatalog()
	return &Server{
		ListenAddress: listenAddress,
		catalog:       catalog,
		store:         store,
		executor:      exec.New(catalog, store),
		parser:        parser.New(),
		ready:         make(chan struct{}),
	}, nil
}

// Addr blocks until the listener is bound (or ctx is done) and returns its
// address. Useful for tests and for ListenAddress values like "127.0.0.1:0"
// that defer port selection to the OS.
func (s *Server) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case <-s.ready:
		return s.listener.Addr(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Server) String() string {
	return fmt.Sprintf("CQL server [%s]", s.ListenAddress)
}

func (s *Server) transition(old, new int32) bool {
	return atomic.CompareAndSwapInt32(&s.state, old, new)
}

func (s *Server) isRunning() bool {
	return atomic.LoadInt32(&s.state) == stateRunning
}

func (s *Server) isClosed() bool {
	return atomic.LoadInt32(&s.state) == stateClosed
}

// Start binds the listener and begins accepting connections; it blocks
// until the server is closed or ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	if !s.transition(stateNotStarted, stateRunning) {
		return fmt.Errorf("%s: already started", s)
	}
	listener, err := net.Listen("tcp", s.ListenAddress)
	if err != nil {
		s.transition(stateRunning, stateClosed)
		return fmt.Errorf("%s: cannot bind: %w", s, err)
	}
	s.listener = listener
	s.ctx, s.cancel = context.WithCancel(ctx)
	close(s.ready)

	log.Info().Msgf("%s: listening", s)
	s.waitGroup.Add(1)
	go s.acceptLoop()

	<-s.ctx.Done()
	return s.Close()
}

func (s *Server) acceptLoop() {
	defer s.waitGroup.Done()
	for s.isRunning() {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.isClosed() {
				log.Error().Err(err).Msgf("%s: accept failed, shutting down", s)
				go s.Close()
			}
			return
		}
		log.Debug().Msgf("%s: accepted connection from %s", s, conn.RemoteAddr())
		handler := newConnection(conn, s.catalog, s.executor, parser.New())
		s.waitGroup.Add(1)
		go func() {
			defer s.waitGroup.Done()
			handler.serve()
		}()
	}
}

// Close stops accepting new connections. In-flight connections run to
// completion; it does not forcibly sever them.
func (s *Server) Close() error {
	if !s.transition(stateRunning, stateClosed) {
		return nil
	}
	log.Debug().Msgf("%s: closing", s)
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
	return err
}
