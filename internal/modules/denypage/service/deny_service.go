package service

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"hyprfocus/internal/modules/denypage/domain"
	denyout "hyprfocus/internal/modules/denypage/port/out"
	"hyprfocus/internal/platform/clock"
	apperrors "hyprfocus/internal/platform/errors"
	"hyprfocus/internal/platform/logging"
)

const (
	defaultStartTimeout = 5 * time.Second
	defaultStopTimeout  = 2 * time.Second
	pollInterval        = 100 * time.Millisecond
	shutdownGrace       = 2 * time.Second
	readHeaderTimeout   = 10 * time.Second
)

type Options struct {
	HTTPAddr     string
	HTTPSAddr    string
	StartTimeout time.Duration
	StopTimeout  time.Duration
	// OnListen is called with the bound address once a listener accepts.
	OnListen func(name, addr string)
}

type DenyService struct {
	source  denyout.ContextSource
	certs   denyout.CertificateSource
	runtime denyout.Runtime
	pids    denyout.PIDStore
	clock   clock.Clock
	opts    Options
	logger  *slog.Logger
}

func NewDenyService(
	source denyout.ContextSource,
	certs denyout.CertificateSource,
	runtime denyout.Runtime,
	pids denyout.PIDStore,
	clk clock.Clock,
	opts Options,
	logger *slog.Logger,
) *DenyService {
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = defaultStartTimeout
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = defaultStopTimeout
	}
	return &DenyService{
		source:  source,
		certs:   certs,
		runtime: runtime,
		pids:    pids,
		clock:   clk,
		opts:    opts,
		logger:  logging.OrDiscard(logger),
	}
}

// Page resolves the session context at request time. A failing source
// degrades to the defaults rather than failing the request.
func (s *DenyService) Page(ctx context.Context, host string) domain.Page {
	current, err := s.source.Current(ctx)
	if err != nil {
		s.logger.Warn("deny page context unavailable", "error", err)
		current = domain.DefaultContext()
	}
	return domain.NewPage(host, current)
}

// Serve runs the HTTP and HTTPS listeners until ctx is cancelled. A listener
// that fails is logged and the other keeps serving; Serve returns an error
// only when every configured listener failed.
func (s *DenyService) Serve(ctx context.Context, handler http.Handler) error {
	listeners := domain.Listeners(s.opts.HTTPAddr, s.opts.HTTPSAddr)
	errs := make([]error, len(listeners))
	attempted := 0

	var g errgroup.Group
	for i, l := range listeners {
		if l.Addr == "" {
			s.logger.Info("listener disabled", "listener", l.Name)
			continue
		}
		attempted++
		g.Go(func() error {
			err := s.listen(ctx, l, handler)
			if err != nil {
				s.logger.Error("listener stopped", "listener", l.Name, "addr", l.Addr, "error", err)
			}
			errs[i] = err
			return nil
		})
	}
	if attempted == 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, domain.ErrNoListeners)
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == attempted {
		return errors.Join(errs...)
	}
	return nil
}

func (s *DenyService) listen(ctx context.Context, l domain.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	if l.TLS {
		if err := s.certs.Available(); err != nil {
			return fmt.Errorf("https disabled: %w", err)
		}
		srv.TLSConfig = &tls.Config{
			GetCertificate: s.certs.GetCertificate,
			MinVersion:     tls.VersionTLS12,
		}
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", l.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", l.Addr, err)
	}
	if l.TLS {
		ln = tls.NewListener(ln, srv.TLSConfig)
	}
	bound := ln.Addr().String()
	s.logger.Info("deny page listening", "listener", l.Name, "addr", bound)
	if s.opts.OnListen != nil {
		s.opts.OnListen(l.Name, bound)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", l.Name, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("listener shutdown", "listener", l.Name, "error", err)
		}
		<-errCh
		return nil
	}
}

// EnsureRunning treats any listener already answering on the HTTP address as
// the deny server. Otherwise it spawns a detached server and waits for the
// port to open.
func (s *DenyService) EnsureRunning(ctx context.Context) (domain.Status, error) {
	if s.runtime.Reachable(ctx, s.opts.HTTPAddr) {
		pid, _ := s.pids.Read(ctx)
		s.logger.Debug("deny server already answering", "addr", s.opts.HTTPAddr)
		return domain.Status{PID: pid, Running: true, HTTPReachable: true}, nil
	}

	pid, err := s.runtime.Spawn(ctx)
	if err != nil {
		return domain.Status{}, fmt.Errorf("%w: %v", domain.ErrStartFailed, err)
	}
	if err := s.pids.Write(ctx, pid); err != nil {
		return domain.Status{}, err
	}

	deadline := s.clock.Now().Add(s.opts.StartTimeout)
	for {
		if s.runtime.Reachable(ctx, s.opts.HTTPAddr) {
			s.logger.Info("deny server started", "pid", pid, "addr", s.opts.HTTPAddr)
			return domain.Status{PID: pid, Running: true, Spawned: true, HTTPReachable: true}, nil
		}
		if !s.runtime.Alive(pid) {
			_ = s.pids.Clear(ctx)
			return domain.Status{}, fmt.Errorf("%w: process %d exited", domain.ErrStartFailed, pid)
		}
		if !s.clock.Now().Before(deadline) {
			_ = s.runtime.Terminate(pid)
			_ = s.pids.Clear(ctx)
			return domain.Status{}, fmt.Errorf("%w: %s not reachable after %s", domain.ErrStartFailed, s.opts.HTTPAddr, s.opts.StartTimeout)
		}
		if err := s.clock.Sleep(ctx, pollInterval); err != nil {
			return domain.Status{}, err
		}
	}
}

// Stop terminates the detached server recorded in the pid file, escalating
// to a kill when it does not exit in time.
func (s *DenyService) Stop(ctx context.Context) error {
	pid, err := s.pids.Read(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotRunning
		}
		return err
	}
	if pid <= 0 || !s.runtime.Alive(pid) {
		_ = s.pids.Clear(ctx)
		return apperrors.ErrNotRunning
	}
	if err := s.runtime.Terminate(pid); err != nil {
		return fmt.Errorf("stop deny server pid=%d: %w", pid, err)
	}
	deadline := s.clock.Now().Add(s.opts.StopTimeout)
	for s.runtime.Alive(pid) && s.clock.Now().Before(deadline) {
		if err := s.clock.Sleep(ctx, pollInterval); err != nil {
			return err
		}
	}
	if s.runtime.Alive(pid) {
		s.logger.Warn("deny server ignored SIGTERM", "pid", pid)
		_ = s.runtime.Kill(pid)
	}
	s.logger.Info("deny server stopped", "pid", pid)
	return s.pids.Clear(ctx)
}

func (s *DenyService) Status(ctx context.Context) (domain.Status, error) {
	var out domain.Status
	pid, err := s.pids.Read(ctx)
	switch {
	case err == nil:
		out.PID = pid
		out.Running = s.runtime.Alive(pid)
	case !errors.Is(err, apperrors.ErrNotFound):
		return domain.Status{}, err
	}
	out.HTTPReachable = s.runtime.Reachable(ctx, s.opts.HTTPAddr)
	if s.opts.HTTPSAddr != "" {
		out.HTTPSReachable = s.runtime.Reachable(ctx, s.opts.HTTPSAddr)
	}
	if out.HTTPReachable {
		out.Running = true
	}
	return out, nil
}

func (s *DenyService) Addrs() (string, string) {
	return s.opts.HTTPAddr, s.opts.HTTPSAddr
}
