package service_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"io"
	"math/big"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"hyprfocus/internal/modules/denypage/domain"
	"hyprfocus/internal/modules/denypage/service"
	"hyprfocus/internal/platform/clock"
	apperrors "hyprfocus/internal/platform/errors"
)

type switchingSource struct {
	mu  sync.Mutex
	cur domain.Context
	err error
}

func (s *switchingSource) set(c domain.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = c
}

func (s *switchingSource) Current(context.Context) (domain.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur, s.err
}

type staticCerts struct {
	cert *tls.Certificate
	err  error
}

func (c staticCerts) Available() error { return c.err }

func (c staticCerts) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cert, nil
}

type fakeRuntime struct {
	mu         sync.Mutex
	reachable  bool
	reachAfter int
	checks     int
	spawnPID   int
	spawnErr   error
	spawned    int
	alive      map[int]bool
	ignoreTerm bool
	terminated []int
	killed     []int
}

func (r *fakeRuntime) Reachable(context.Context, string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks++
	if r.reachAfter > 0 && r.spawned > 0 && r.checks >= r.reachAfter {
		return true
	}
	return r.reachable
}

func (r *fakeRuntime) Spawn(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spawnErr != nil {
		return 0, r.spawnErr
	}
	r.spawned++
	r.alive[r.spawnPID] = true
	return r.spawnPID, nil
}

func (r *fakeRuntime) Alive(pid int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alive[pid]
}

func (r *fakeRuntime) Terminate(pid int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terminated = append(r.terminated, pid)
	if !r.ignoreTerm {
		r.alive[pid] = false
	}
	return nil
}

func (r *fakeRuntime) Kill(pid int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.killed = append(r.killed, pid)
	r.alive[pid] = false
	return nil
}

type memoryPIDs struct {
	pid int
	set bool
}

func (m *memoryPIDs) Read(context.Context) (int, error) {
	if !m.set {
		return 0, apperrors.ErrNotFound
	}
	return m.pid, nil
}

func (m *memoryPIDs) Write(_ context.Context, pid int) error {
	m.pid, m.set = pid, true
	return nil
}

func (m *memoryPIDs) Clear(context.Context) error {
	m.pid, m.set = 0, false
	return nil
}

func newRuntime() *fakeRuntime {
	return &fakeRuntime{spawnPID: 4242, alive: map[int]bool{}}
}

func newService(source *switchingSource, certs staticCerts, rt *fakeRuntime, pids *memoryPIDs, opts service.Options) *service.DenyService {
	clk := clock.NewFake(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return service.NewDenyService(source, certs, rt, pids, clk, opts, nil)
}

func TestPageReflectsContextChangesPerRequest(t *testing.T) {
	t.Parallel()
	source := &switchingSource{cur: domain.Context{Goal: "Work", Intention: "Write report"}}
	svc := newService(source, staticCerts{}, newRuntime(), &memoryPIDs{}, service.Options{})

	first := svc.Page(context.Background(), "reddit.com:443")
	if first.Goal != "Work" || first.Intention != "Write report" || first.Host != "reddit.com" {
		t.Fatalf("unexpected first page: %+v", first)
	}
	source.set(domain.Context{Goal: "Work", Intention: "Review PRs"})
	second := svc.Page(context.Background(), "reddit.com")
	if second.Intention != "Review PRs" {
		t.Fatalf("expected updated intention, got %+v", second)
	}
}

func TestPageFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	source := &switchingSource{err: errors.New("status unreadable")}
	svc := newService(source, staticCerts{}, newRuntime(), &memoryPIDs{}, service.Options{})

	page := svc.Page(context.Background(), "x.com")
	if page.Goal != domain.DefaultGoal || page.Intention != domain.DefaultIntention {
		t.Fatalf("expected defaults, got %+v", page)
	}
}

type bound struct {
	name string
	addr string
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "Access Denied")
	})
}

func waitBound(t *testing.T, ch <-chan bound, name string) string {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case b := <-ch:
			if b.name == name {
				return b.addr
			}
		case <-timeout:
			t.Fatalf("listener %s never bound", name)
		}
	}
}

func get(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestServeKeepsHTTPWhenCertificateMissing(t *testing.T) {
	t.Parallel()
	ch := make(chan bound, 4)
	svc := newService(&switchingSource{}, staticCerts{err: apperrors.ErrTLSUnavailable}, newRuntime(), &memoryPIDs{}, service.Options{
		HTTPAddr:  "127.0.0.1:0",
		HTTPSAddr: "127.0.0.1:0",
		OnListen:  func(name, addr string) { ch <- bound{name, addr} },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, okHandler()) }()

	addr := waitBound(t, ch, "http")
	if body := get(t, http.DefaultClient, "http://"+addr+"/anything"); !strings.Contains(body, "Access Denied") {
		t.Fatalf("unexpected body: %q", body)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("serve returned: %v", err)
	}
}

func TestServeKeepsHTTPWhenHTTPSPortTaken(t *testing.T) {
	t.Parallel()
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("occupy port: %v", err)
	}
	defer taken.Close()

	ch := make(chan bound, 4)
	cert := selfSigned(t)
	svc := newService(&switchingSource{}, staticCerts{cert: &cert}, newRuntime(), &memoryPIDs{}, service.Options{
		HTTPAddr:  "127.0.0.1:0",
		HTTPSAddr: taken.Addr().String(),
		OnListen:  func(name, addr string) { ch <- bound{name, addr} },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, okHandler()) }()

	addr := waitBound(t, ch, "http")
	if body := get(t, http.DefaultClient, "http://"+addr+"/"); !strings.Contains(body, "Access Denied") {
		t.Fatalf("unexpected body: %q", body)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("serve returned: %v", err)
	}
}

func TestServeReturnsErrorWhenEveryListenerFails(t *testing.T) {
	t.Parallel()
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("occupy port: %v", err)
	}
	defer taken.Close()

	svc := newService(&switchingSource{}, staticCerts{err: apperrors.ErrTLSUnavailable}, newRuntime(), &memoryPIDs{}, service.Options{
		HTTPAddr:  taken.Addr().String(),
		HTTPSAddr: "127.0.0.1:0",
	})
	err = svc.Serve(context.Background(), okHandler())
	if err == nil {
		t.Fatalf("expected error when both listeners fail")
	}
	if !errors.Is(err, apperrors.ErrTLSUnavailable) {
		t.Fatalf("expected tls cause in joined error, got %v", err)
	}
}

func TestServeTLSUsesCertificateSource(t *testing.T) {
	t.Parallel()
	ch := make(chan bound, 4)
	cert := selfSigned(t)
	svc := newService(&switchingSource{}, staticCerts{cert: &cert}, newRuntime(), &memoryPIDs{}, service.Options{
		HTTPSAddr: "127.0.0.1:0",
		OnListen:  func(name, addr string) { ch <- bound{name, addr} },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, okHandler()) }()

	addr := waitBound(t, ch, "https")
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}}
	if body := get(t, client, "https://"+addr+"/"); !strings.Contains(body, "Access Denied") {
		t.Fatalf("unexpected body: %q", body)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("serve returned: %v", err)
	}
}

func TestServeWithoutAddressesIsInvalid(t *testing.T) {
	t.Parallel()
	svc := newService(&switchingSource{}, staticCerts{}, newRuntime(), &memoryPIDs{}, service.Options{})
	if err := svc.Serve(context.Background(), okHandler()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestEnsureRunningReusesExistingListener(t *testing.T) {
	t.Parallel()
	rt := newRuntime()
	rt.reachable = true
	svc := newService(&switchingSource{}, staticCerts{}, rt, &memoryPIDs{}, service.Options{HTTPAddr: ":80"})

	status, err := svc.EnsureRunning(context.Background())
	if err != nil {
		t.Fatalf("ensure running: %v", err)
	}
	if !status.Running || status.Spawned {
		t.Fatalf("expected reuse, got %+v", status)
	}
	if rt.spawned != 0 {
		t.Fatalf("must not spawn when port answers")
	}
}

func TestEnsureRunningSpawnsAndWaitsForPort(t *testing.T) {
	t.Parallel()
	rt := newRuntime()
	rt.reachAfter = 4
	pids := &memoryPIDs{}
	svc := newService(&switchingSource{}, staticCerts{}, rt, pids, service.Options{HTTPAddr: ":80"})

	status, err := svc.EnsureRunning(context.Background())
	if err != nil {
		t.Fatalf("ensure running: %v", err)
	}
	if !status.Spawned || status.PID != 4242 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if pid, _ := pids.Read(context.Background()); pid != 4242 {
		t.Fatalf("pid not recorded: %d", pid)
	}
}

func TestEnsureRunningReportsEarlyExit(t *testing.T) {
	t.Parallel()
	rt := &exitingRuntime{fakeRuntime: newRuntime()}
	pids := &memoryPIDs{}
	svc := service.NewDenyService(&switchingSource{}, staticCerts{}, rt, pids, clock.NewFake(time.Now()), service.Options{HTTPAddr: ":80"}, nil)

	_, err := svc.EnsureRunning(context.Background())
	if !errors.Is(err, domain.ErrStartFailed) {
		t.Fatalf("expected start failure, got %v", err)
	}
	if _, err := pids.Read(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("pid must be cleared after failed start")
	}
}

// exitingRuntime spawns children that die immediately.
type exitingRuntime struct {
	*fakeRuntime
}

func (e *exitingRuntime) Alive(int) bool { return false }

func TestEnsureRunningTimesOut(t *testing.T) {
	t.Parallel()
	rt := newRuntime()
	pids := &memoryPIDs{}
	svc := newService(&switchingSource{}, staticCerts{}, rt, pids, service.Options{HTTPAddr: ":80", StartTimeout: time.Second})

	_, err := svc.EnsureRunning(context.Background())
	if !errors.Is(err, domain.ErrStartFailed) {
		t.Fatalf("expected start failure, got %v", err)
	}
	if len(rt.terminated) != 1 || rt.terminated[0] != 4242 {
		t.Fatalf("expected the unresponsive child to be terminated, got %v", rt.terminated)
	}
}

func TestStopWithoutPIDIsNotRunning(t *testing.T) {
	t.Parallel()
	svc := newService(&switchingSource{}, staticCerts{}, newRuntime(), &memoryPIDs{}, service.Options{HTTPAddr: ":80"})
	if err := svc.Stop(context.Background()); !errors.Is(err, apperrors.ErrNotRunning) {
		t.Fatalf("expected not running, got %v", err)
	}
}

func TestStopTerminatesAndClearsPID(t *testing.T) {
	t.Parallel()
	rt := newRuntime()
	rt.alive[99] = true
	pids := &memoryPIDs{pid: 99, set: true}
	svc := newService(&switchingSource{}, staticCerts{}, rt, pids, service.Options{HTTPAddr: ":80"})

	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(rt.terminated) != 1 || len(rt.killed) != 0 {
		t.Fatalf("expected a clean terminate, got term=%v kill=%v", rt.terminated, rt.killed)
	}
	if pids.set {
		t.Fatalf("pid must be cleared")
	}
}

func TestStopEscalatesToKill(t *testing.T) {
	t.Parallel()
	rt := newRuntime()
	rt.alive[99] = true
	rt.ignoreTerm = true
	pids := &memoryPIDs{pid: 99, set: true}
	svc := newService(&switchingSource{}, staticCerts{}, rt, pids, service.Options{HTTPAddr: ":80"})

	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if len(rt.killed) != 1 {
		t.Fatalf("expected kill after ignored SIGTERM, got %v", rt.killed)
	}
}

func selfSigned(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "FocusMode"},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}
