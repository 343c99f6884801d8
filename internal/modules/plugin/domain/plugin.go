package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Capability is one collaborator role a plugin can take over from the
// exec adapters.
type Capability string

const (
	CapabilityNotify          Capability = "notify"
	CapabilityTheme           Capability = "theme"
	CapabilityPromptIntention Capability = "prompt_intention"
	CapabilityFeedback        Capability = "feedback"
)

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrPluginTimeout     = errors.New("plugin timeout")
	ErrPluginFailed      = errors.New("plugin reported failure")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityNotify, CapabilityTheme, CapabilityPromptIntention, CapabilityFeedback:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

// Interactive capabilities wait on the user and get a longer call budget.
func (c Capability) Interactive() bool {
	return c == CapabilityPromptIntention || c == CapabilityFeedback
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// InvokeContext tells the plugin which session it is acting for.
type InvokeContext struct {
	Goal      string
	Intention string
	HomeDir   string
	Env       map[string]string
}

type InvokeRequest struct {
	Capability  Capability
	PayloadJSON string
	Context     InvokeContext
}

func (r InvokeRequest) Validate() error {
	if err := r.Capability.Validate(); err != nil {
		return err
	}
	if r.PayloadJSON != "" && !json.Valid([]byte(r.PayloadJSON)) {
		return fmt.Errorf("payload must be valid JSON")
	}
	return nil
}

// InvokeResult carries the capability's answer. Cancelled means the user
// dismissed an interactive prompt; it is not a failure.
type InvokeResult struct {
	OutputJSON string
	Cancelled  bool
}
