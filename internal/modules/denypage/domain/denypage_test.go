package domain_test

import (
	"testing"

	"hyprfocus/internal/modules/denypage/domain"
)

func TestNewPageFillsDefaults(t *testing.T) {
	t.Parallel()

	page := domain.NewPage("reddit.com", domain.Context{Goal: "  ", Intention: ""})
	if page.Goal != domain.DefaultGoal || page.Intention != domain.DefaultIntention {
		t.Fatalf("expected defaults, got %+v", page)
	}
	if page.Host != "reddit.com" {
		t.Fatalf("unexpected host: %q", page.Host)
	}
}

func TestNewPageStripsPort(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"youtube.com:443":  "youtube.com",
		"127.0.0.1:80":     "127.0.0.1",
		"[::1]:8080":       "::1",
		"news.example.org": "news.example.org",
	}
	for in, want := range cases {
		page := domain.NewPage(in, domain.Context{Goal: "Work", Intention: "Ship"})
		if page.Host != want {
			t.Fatalf("host %q: expected %q, got %q", in, want, page.Host)
		}
		if page.Goal != "Work" || page.Intention != "Ship" {
			t.Fatalf("context not kept: %+v", page)
		}
	}
}

func TestListenersOrder(t *testing.T) {
	t.Parallel()

	ls := domain.Listeners(":80", ":443")
	if len(ls) != 2 || ls[0].TLS || !ls[1].TLS {
		t.Fatalf("unexpected listeners: %+v", ls)
	}
}
