package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hyprfocus/internal/modules/plugin/domain"
	"hyprfocus/internal/modules/plugin/dto"
	"hyprfocus/internal/modules/plugin/service"
	"hyprfocus/internal/modules/plugin/usecase"
	apperrors "hyprfocus/internal/platform/errors"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	outputs  map[domain.Capability]domain.InvokeResult
	requests *[]domain.InvokeRequest
}

func (fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "p1", Version: "1"}, nil
}
func (h fakeHost) Invoke(_ context.Context, _ domain.Manifest, req domain.InvokeRequest) (domain.InvokeResult, error) {
	if h.requests != nil {
		*h.requests = append(*h.requests, req)
	}
	if out, ok := h.outputs[req.Capability]; ok {
		return out, nil
	}
	if req.Capability == domain.CapabilityFeedback {
		return domain.InvokeResult{Cancelled: true}, nil
	}
	return domain.InvokeResult{}, nil
}

func TestUsecaseListDoctorAndInvoke(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	uc := usecase.NewInteractor(service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, fakeHost{}, nil))
	ctx := context.Background()

	list, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "p1" || len(list[0].Capabilities) != 4 {
		t.Fatalf("unexpected list: %+v", list)
	}

	docs, err := uc.Doctor(ctx)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(docs) != 1 || !docs[0].LifecycleOK || !docs[0].ChecksumValid {
		t.Fatalf("unexpected doctor result: %+v", docs)
	}

	out, err := uc.Invoke(ctx, dto.InvokeInput{PluginName: "p1", Capability: "notify", PayloadJSON: `{"summary":"hi"}`})
	if err != nil || out.Cancelled {
		t.Fatalf("unexpected notify result %+v (%v)", out, err)
	}
	out, err = uc.Invoke(ctx, dto.InvokeInput{PluginName: "p1", Capability: "feedback"})
	if err != nil || !out.Cancelled {
		t.Fatalf("feedback dismissal must come back as cancelled, got %+v (%v)", out, err)
	}
}

func TestTypedCapabilitiesEncodeAndDecode(t *testing.T) {
	t.Parallel()
	var requests []domain.InvokeRequest
	host := fakeHost{requests: &requests, outputs: map[domain.Capability]domain.InvokeResult{
		domain.CapabilityPromptIntention: {OutputJSON: `{"intention":"Write tests"}`},
		domain.CapabilityFeedback:        {OutputJSON: `{"rating":9,"comment":"flow"}`},
	}}
	manifest := manifestWithBinary(t)
	uc := usecase.NewInteractor(service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, host, nil))
	ctx := context.Background()

	if err := uc.Notify(ctx, "p1", dto.NotifyPayload{Summary: "Pomodoro Started", Body: "Focus: Ship", Urgency: "normal"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	var note dto.NotifyPayload
	if err := json.Unmarshal([]byte(requests[0].PayloadJSON), &note); err != nil || note.Body != "Focus: Ship" {
		t.Fatalf("unexpected notify payload %q", requests[0].PayloadJSON)
	}
	if err := uc.SetTheme(ctx, "p1", "nord"); err != nil || requests[1].Capability != domain.CapabilityTheme {
		t.Fatalf("set theme: %+v (%v)", requests[1], err)
	}
	answer, err := uc.PromptIntention(ctx, "p1", dto.PromptIntentionPayload{Goal: "Work", Current: "Ship"})
	if err != nil || answer.Intention != "Write tests" {
		t.Fatalf("unexpected check-in %+v (%v)", answer, err)
	}
	if got := requests[2].Context; got.Goal != "Work" || got.Intention != "Ship" {
		t.Fatalf("prompt must carry the session context, got %+v", got)
	}
	fb, err := uc.CollectFeedback(ctx, "p1", dto.FeedbackPayload{Goal: "Work", Intention: "Ship"})
	if err != nil || fb.Rating != 9 || fb.Comment != "flow" {
		t.Fatalf("unexpected feedback %+v (%v)", fb, err)
	}
}

func TestTypedFeedbackMapsDismissalToCancelled(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	uc := usecase.NewInteractor(service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, fakeHost{}, nil))
	if _, err := uc.CollectFeedback(context.Background(), "p1", dto.FeedbackPayload{Goal: "Work"}); !errors.Is(err, apperrors.ErrPromptCancelled) {
		t.Fatalf("expected prompt cancelled, got %v", err)
	}
	if err := uc.Notify(context.Background(), "missing", dto.NotifyPayload{Summary: "x"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected unknown plugin to be not found, got %v", err)
	}
}

func manifestWithBinary(t *testing.T) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:    "p1",
		Version: "1",
		Binary:  binPath,
		SHA256:  hex.EncodeToString(hash[:]),
		Enabled: true,
		Capabilities: []domain.Capability{
			domain.CapabilityNotify, domain.CapabilityTheme,
			domain.CapabilityPromptIntention, domain.CapabilityFeedback,
		},
	}
}
