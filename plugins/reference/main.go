// Command reference is a collaborator plugin covering all four
// capabilities with desktop tools: notify-send for notifications, a state
// file plus an optional switch script for themes, and zenity dialogs for
// the check-in and feedback prompts.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-plugin"

	pluginrpc "hyprfocus/internal/modules/plugin/adapter/out/rpc"
	"hyprfocus/internal/modules/plugin/dto"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"notify", "theme", "prompt_intention", "feedback"},
	}, nil
}

func (s *server) Invoke(ctx context.Context, in *pluginrpc.InvokeRequest) (*pluginrpc.InvokeResponse, error) {
	switch in.Capability {
	case "notify":
		var p dto.NotifyPayload
		if err := json.Unmarshal([]byte(in.PayloadJSON), &p); err != nil {
			return failure(err), nil
		}
		return result(nil, notify(ctx, in.Context.HomeDir, p))
	case "theme":
		var p dto.ThemePayload
		if err := json.Unmarshal([]byte(in.PayloadJSON), &p); err != nil {
			return failure(err), nil
		}
		return result(nil, applyTheme(ctx, in.Context.HomeDir, p.Theme))
	case "prompt_intention":
		var p dto.PromptIntentionPayload
		_ = json.Unmarshal([]byte(in.PayloadJSON), &p)
		answer, err := zenity(ctx, "--entry", "--title", "Check-in: "+p.Goal, "--text", "What are you working on next?", "--entry-text", p.Current)
		if err != nil {
			return cancelled(), nil
		}
		return result(dto.PromptIntentionResult{Intention: answer}, nil)
	case "feedback":
		var p dto.FeedbackPayload
		_ = json.Unmarshal([]byte(in.PayloadJSON), &p)
		return collectFeedback(ctx, p)
	default:
		return nil, fmt.Errorf("unknown capability: %s", in.Capability)
	}
}

func notify(ctx context.Context, home string, p dto.NotifyPayload) error {
	if path, err := exec.LookPath("notify-send"); err == nil {
		urgency := p.Urgency
		if urgency == "" {
			urgency = "normal"
		}
		return exec.CommandContext(ctx, path, "-u", urgency, p.Summary, p.Body).Run()
	}
	return appendState(home, "notifications.log", p.Summary+": "+p.Body)
}

func applyTheme(ctx context.Context, home, theme string) error {
	if strings.TrimSpace(theme) == "" {
		return errors.New("theme name is required")
	}
	if err := writeState(home, "theme", theme); err != nil {
		return err
	}
	script := filepath.Join(home, ".config", "hypr", "scripts", "switch_theme.sh")
	if info, err := os.Stat(script); err == nil && info.Mode()&0o111 != 0 {
		return exec.CommandContext(ctx, script, theme).Run()
	}
	return nil
}

func collectFeedback(ctx context.Context, p dto.FeedbackPayload) (*pluginrpc.InvokeResponse, error) {
	title := "Session feedback: " + p.Goal
	rawRating, err := zenity(ctx, "--scale", "--title", title, "--text", "Rate: "+p.Intention, "--min-value", "1", "--max-value", "10", "--value", "5")
	if err != nil {
		return cancelled(), nil
	}
	rating, err := strconv.Atoi(rawRating)
	if err != nil {
		return failure(err), nil
	}
	comment, err := zenity(ctx, "--entry", "--title", title, "--text", "Any comments?")
	if err != nil {
		comment = ""
	}
	return result(dto.FeedbackResult{Rating: rating, Comment: comment}, nil)
}

func zenity(ctx context.Context, args ...string) (string, error) {
	path, err := exec.LookPath("zenity")
	if err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func stateDir(home string) (string, error) {
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", err
		}
	}
	dir := filepath.Join(home, ".cache", "hyprfocus")
	return dir, os.MkdirAll(dir, 0o755)
}

func writeState(home, name, value string) error {
	dir, err := stateDir(home)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o644)
}

func appendState(home, name, line string) error {
	dir, err := stateDir(home)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, line)
	return err
}

func result(v any, err error) (*pluginrpc.InvokeResponse, error) {
	if err != nil {
		return failure(err), nil
	}
	if v == nil {
		return &pluginrpc.InvokeResponse{}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &pluginrpc.InvokeResponse{OutputJSON: string(raw)}, nil
}

func failure(err error) *pluginrpc.InvokeResponse {
	return &pluginrpc.InvokeResponse{Error: err.Error()}
}

func cancelled() *pluginrpc.InvokeResponse {
	return &pluginrpc.InvokeResponse{Cancelled: true}
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
