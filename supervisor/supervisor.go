// Package supervisor owns the server's listeners and the goroutines that
// accept connections on them, and coordinates graceful shutdown across
// every connection goroutine it has spawned.
package supervisor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sycrosity/statik/config"
	"github.com/sycrosity/statik/conn"
)

// Server owns the primary Minecraft-protocol listener and the reserved
// administrative listener, plus the bookkeeping needed to drain every
// in-flight connection on shutdown.
type Server struct {
	store *config.Store
	log   *zap.Logger
	icon  string

	limiter *rate.Limiter

	mu    sync.Mutex
	conns map[*conn.Connection]struct{}

	acceptWG sync.WaitGroup
	connWG   sync.WaitGroup

	readyOnce sync.Once
	ready     chan struct{}
	mcAddr    net.Addr
	apiAddr   net.Addr

	shutdownOnce sync.Once
	shutdownCh   chan struct{}
	shutdown     *conn.ShutdownSignal
}

// New constructs a Server from store. It best-effort loads and
// base64-encodes the configured server icon; a missing or unreadable icon
// degrades silently to no favicon, with a warning logged.
func New(store *config.Store, log *zap.Logger) *Server {
	cfg := store.Snapshot()
	shutdownCh := make(chan struct{})
	return &Server{
		store: store,
		log:   log,
		icon:  loadIcon(cfg.MC.Icon, log),
		// 50 accepted connections/sec sustained, bursts of 100 — generous
		// enough not to bother a normal server-list crawler, tight enough
		// to blunt a naive connection flood.
		limiter:    rate.NewLimiter(rate.Limit(50), 100),
		conns:      make(map[*conn.Connection]struct{}),
		ready:      make(chan struct{}),
		shutdownCh: shutdownCh,
		shutdown:   &conn.ShutdownSignal{C: shutdownCh},
	}
}

// broadcastShutdown wakes every connection's Run loop at once by closing
// the shared shutdown channel, after recording reason where every
// connection can read it post-receive. At-most-once: later callers are
// harmless no-ops.
func (s *Server) broadcastShutdown(reason string) {
	s.shutdownOnce.Do(func() {
		s.shutdown.Reason = reason
		close(s.shutdownCh)
	})
}

// WaitReady blocks until Run has bound both listeners, or ctx is done.
// Intended for tests that need the actual bound addresses (e.g. when the
// configured port is 0).
func (s *Server) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MCAddr returns the bound address of the primary listener. Only valid
// after WaitReady returns nil.
func (s *Server) MCAddr() net.Addr { return s.mcAddr }

// APIAddr returns the bound address of the administrative listener. Only
// valid after WaitReady returns nil.
func (s *Server) APIAddr() net.Addr { return s.apiAddr }

func loadIcon(path string, log *zap.Logger) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("could not read server icon, continuing without one",
			zap.String("path", path), zap.Error(err))
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

// Run binds both listeners and blocks until ctx is cancelled or a fatal
// bind error occurs. On return, every accepted connection has either
// finished on its own or been forcibly closed.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.store.Snapshot()

	mcAddr := net.JoinHostPort(cfg.General.Host, strconv.Itoa(int(cfg.MC.Port)))
	mcListener, err := net.Listen("tcp", mcAddr)
	if err != nil {
		return fmt.Errorf("binding mc listener on %s: %w", mcAddr, err)
	}

	apiAddr := net.JoinHostPort(cfg.General.Host, strconv.Itoa(int(cfg.API.Port)))
	apiListener, err := net.Listen("tcp", apiAddr)
	if err != nil {
		mcListener.Close()
		return fmt.Errorf("binding admin listener on %s: %w", apiAddr, err)
	}

	s.mcAddr = mcListener.Addr()
	s.apiAddr = apiListener.Addr()
	s.readyOnce.Do(func() { close(s.ready) })

	s.log.Info("listening", zap.String("mc", mcAddr), zap.String("admin", apiAddr))

	s.acceptWG.Add(2)
	go func() { defer s.acceptWG.Done(); s.acceptMC(ctx, mcListener) }()
	go func() { defer s.acceptWG.Done(); s.acceptAdmin(ctx, apiListener) }()

	<-ctx.Done()
	s.log.Info("shutdown signal received, draining connections")
	s.broadcastShutdown("server shutting down")

	var errs error
	errs = multierr.Append(errs, mcListener.Close())
	errs = multierr.Append(errs, apiListener.Close())

	s.acceptWG.Wait()
	s.closeAllTracked()
	s.connWG.Wait()

	s.log.Info("shutdown complete")
	return errs
}

func (s *Server) acceptMC(ctx context.Context, l net.Listener) {
	for {
		netConn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn("mc accept failed", zap.Error(err))
			continue
		}
		if !s.limiter.Allow() {
			netConn.Close()
			continue
		}
		s.connWG.Add(1)
		go s.serve(ctx, netConn)
	}
}

// acceptAdmin accepts connections on the reserved administrative listener
// and immediately closes them: the admin API is bound but not served.
func (s *Server) acceptAdmin(ctx context.Context, l net.Listener) {
	for {
		netConn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Warn("admin accept failed", zap.Error(err))
			continue
		}
		s.log.Info("admin API not implemented, closing connection", zap.String("remote", netConn.RemoteAddr().String()))
		netConn.Close()
	}
}

func (s *Server) serve(ctx context.Context, netConn net.Conn) {
	defer s.connWG.Done()

	c := conn.New(netConn, s.store, s.icon, s.log, s.shutdown)
	s.track(c)
	defer s.untrack(c)
	defer c.Close()

	if err := c.Run(ctx); err != nil && !errors.Is(err, io.EOF) {
		s.log.Debug("connection ended", zap.String("remote", c.RemoteAddr().String()), zap.Error(err))
	}
}

func (s *Server) track(c *conn.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[c] = struct{}{}
}

func (s *Server) untrack(c *conn.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
}

// closeAllTracked force-closes every connection still open once the
// listeners have stopped accepting. A connection blocked reading its next
// frame has no other way to notice ctx has been cancelled.
func (s *Server) closeAllTracked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.conns {
		c.Close()
	}
}
