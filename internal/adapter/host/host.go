package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Host is one named HTTP service bound to its own address.
type Host struct {
	Name   string
	server *http.Server
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// New creates a Host. Nothing listens until Open is called.
func New(name, addr string, handler http.Handler, logger *slog.Logger) *Host {
	return &Host{
		Name: name,
		server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger.With("component", "host", "host", name),
	}
}

// Open binds the listener and starts serving in the background. Serve
// failures are sent to errs.
func (h *Host) Open(ctx context.Context, errs chan<- error) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("open host %s: %w", h.Name, err)
	}

	h.mu.Lock()
	h.listener = ln
	h.mu.Unlock()

	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("host failed", "error", err)
			errs <- fmt.Errorf("host %s: %w", h.Name, err)
		}
	}()
	h.logger.Info("listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or the configured one before Open.
func (h *Host) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.server.Addr
}

func (h *Host) opened() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listener != nil
}

// Close gracefully shuts the host down.
func (h *Host) Close(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("close host %s: %w", h.Name, err)
	}
	h.logger.Info("closed")
	return nil
}

// Group opens and closes a set of hosts concurrently.
type Group struct {
	hosts  []*Host
	errs   chan error
	logger *slog.Logger
}

func NewGroup(logger *slog.Logger, hosts ...*Host) *Group {
	return &Group{
		hosts:  hosts,
		errs:   make(chan error, len(hosts)),
		logger: logger.With("component", "host_group"),
	}
}

// Open opens every host concurrently. If any host fails to open, the hosts
// that did open are closed again and the first error is returned.
func (g *Group) Open(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(len(g.hosts), 1))
	for _, h := range g.hosts {
		eg.Go(func() error {
			return h.Open(egCtx, g.errs)
		})
	}
	if err := eg.Wait(); err != nil {
		g.logger.Error("startup aborted", "error", err)
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := g.close(closeCtx, true); cerr != nil {
			g.logger.Warn("cleanup after failed startup incomplete", "error", cerr)
		}
		return err
	}
	g.logger.Info("all hosts ready", "count", len(g.hosts))
	return nil
}

// Errors reports hosts that stopped serving unexpectedly.
func (g *Group) Errors() <-chan error {
	return g.errs
}

// Shutdown closes every host concurrently and returns the first error.
func (g *Group) Shutdown(ctx context.Context) error {
	return g.close(ctx, false)
}

func (g *Group) close(ctx context.Context, onlyOpened bool) error {
	var eg errgroup.Group
	for _, h := range g.hosts {
		if onlyOpened && !h.opened() {
			continue
		}
		eg.Go(func() error {
			return h.Close(ctx)
		})
	}
	return eg.Wait()
}
