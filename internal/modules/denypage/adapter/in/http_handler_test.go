package in_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	denyin "hyprfocus/internal/modules/denypage/adapter/in"
	"hyprfocus/internal/modules/denypage/dto"
)

type stubUsecase struct {
	page  dto.PageOutput
	err   error
	hosts []string
}

func (s *stubUsecase) Page(_ context.Context, host string) (dto.PageOutput, error) {
	s.hosts = append(s.hosts, host)
	out := s.page
	out.Host = host
	return out, s.err
}
func (s *stubUsecase) Serve(context.Context, http.Handler) error { return nil }
func (s *stubUsecase) EnsureRunning(context.Context) (dto.StatusOutput, error) {
	return dto.StatusOutput{}, nil
}
func (s *stubUsecase) Stop(context.Context) error { return nil }
func (s *stubUsecase) Status(context.Context) (dto.StatusOutput, error) {
	return dto.StatusOutput{}, nil
}

func TestRouterServesDenyPageForEveryPath(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{page: dto.PageOutput{Goal: "Study", Intention: "Chapter <3>"}}
	router := denyin.NewRouter(uc, io.Discard)

	for _, path := range []string{"/", "/watch?v=abc", "/r/golang/comments/1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Host = "youtube.com"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{"Access Denied", "Focus Mode Active", "Study", "youtube.com", "Stay Hard."} {
			if !strings.Contains(body, want) {
				t.Fatalf("%s: body missing %q", path, want)
			}
		}
		if !strings.Contains(body, "Chapter &lt;3&gt;") {
			t.Fatalf("%s: intention must be html-escaped", path)
		}
	}
}

func TestRouterHealthz(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{}
	router := denyin.NewRouter(uc, io.Discard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("unexpected healthz: %d %s", rec.Code, rec.Body.String())
	}
	if len(uc.hosts) != 0 {
		t.Fatalf("healthz must not render the deny page")
	}
}

func TestRouterDegradesOnUsecaseError(t *testing.T) {
	t.Parallel()
	uc := &stubUsecase{err: errors.New("boom")}
	router := denyin.NewRouter(uc, io.Discard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
