package domain

import (
	"errors"
	"net"
	"strings"
)

const (
	DefaultGoal      = "Focus"
	DefaultIntention = "Stay on task"
)

var (
	ErrStartFailed      = errors.New("deny server failed to start")
	ErrNoListeners      = errors.New("no listener address configured")
	ErrListenerDisabled = errors.New("listener disabled")
)

// Context is what the page tells the user about the session they are in.
type Context struct {
	Goal      string
	Intention string
}

func DefaultContext() Context {
	return Context{Goal: DefaultGoal, Intention: DefaultIntention}
}

// Page is one rendered deny response.
type Page struct {
	Host      string
	Goal      string
	Intention string
}

// NewPage fills blank fields of c with the defaults and drops any port from
// the requested host.
func NewPage(host string, c Context) Page {
	goal := strings.TrimSpace(c.Goal)
	if goal == "" {
		goal = DefaultGoal
	}
	intention := strings.TrimSpace(c.Intention)
	if intention == "" {
		intention = DefaultIntention
	}
	return Page{Host: hostOnly(host), Goal: goal, Intention: intention}
}

func hostOnly(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// Listener is one of the two sockets the deny server binds.
type Listener struct {
	Name string
	Addr string
	TLS  bool
}

func Listeners(httpAddr, httpsAddr string) []Listener {
	return []Listener{
		{Name: "http", Addr: httpAddr},
		{Name: "https", Addr: httpsAddr, TLS: true},
	}
}

// Status describes the detached deny server as seen from another process.
type Status struct {
	PID            int
	Running        bool
	Spawned        bool
	HTTPReachable  bool
	HTTPSReachable bool
}
