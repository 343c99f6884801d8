package domain_test

import (
	"strings"
	"testing"

	"hyprfocus/internal/modules/plugin/domain"
)

var validSHA = strings.Repeat("a", 64)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	notify := []domain.Capability{domain.CapabilityNotify}
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA, Enabled: true, Capabilities: notify}},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/p", SHA256: validSHA, Capabilities: notify}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "p", Binary: "/tmp/p", SHA256: validSHA, Capabilities: notify}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "p", Version: "1", SHA256: validSHA, Capabilities: notify}, shouldErr: true},
		{name: "missing sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", Capabilities: notify}, shouldErr: true},
		{name: "uppercase sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: strings.Repeat("A", 64), Capabilities: notify}, shouldErr: true},
		{name: "no capabilities", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA}, shouldErr: true},
		{name: "duplicate capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA, Capabilities: []domain.Capability{"theme", "theme"}}, shouldErr: true},
		{name: "invalid capability", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: validSHA, Capabilities: []domain.Capability{"command"}}, shouldErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	t.Parallel()
	manifest := domain.Manifest{Capabilities: []domain.Capability{domain.CapabilityNotify, domain.CapabilityFeedback}}
	if !manifest.HasCapability(domain.CapabilityFeedback) || manifest.HasCapability(domain.CapabilityTheme) {
		t.Fatalf("HasCapability mismatch")
	}
	if !domain.CapabilityPromptIntention.Interactive() || domain.CapabilityNotify.Interactive() {
		t.Fatalf("only prompts are interactive")
	}
}

func TestInvokeRequestValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.InvokeRequest{Capability: domain.CapabilityTheme, PayloadJSON: `{"theme":"nord"}`}).Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := (domain.InvokeRequest{Capability: domain.CapabilityNotify}).Validate(); err != nil {
		t.Fatalf("empty payload is allowed: %v", err)
	}
	if err := (domain.InvokeRequest{Capability: domain.CapabilityTheme, PayloadJSON: `nord`}).Validate(); err == nil {
		t.Fatalf("expected invalid payload error")
	}
	if err := (domain.InvokeRequest{Capability: "shutdown"}).Validate(); err == nil {
		t.Fatalf("expected unknown capability error")
	}
}
