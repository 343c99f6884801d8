package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	pluginrpc "hyprfocus/internal/modules/plugin/adapter/out/rpc"
	"hyprfocus/internal/modules/plugin/domain"
	pluginout "hyprfocus/internal/modules/plugin/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout       = 3 * time.Second
	defaultCallTimeout        = 5 * time.Second
	defaultInteractiveTimeout = 10 * time.Minute
)

// GRPCHost starts the plugin binary for every call and kills it afterwards.
// Plugin stderr and go-plugin's own diagnostics go to logOutput.
type GRPCHost struct {
	logOutput io.Writer
	homeDir   string
}

func NewGRPCHost(logOutput io.Writer, homeDir string) pluginout.Host {
	if logOutput == nil {
		logOutput = io.Discard
	}
	return &GRPCHost{logOutput: logOutput, homeDir: homeDir}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Invoke(ctx context.Context, manifest domain.Manifest, input domain.InvokeRequest) (domain.InvokeResult, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.InvokeResult{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, timeoutFor(input.Capability))
	defer cancel()
	home := input.Context.HomeDir
	if home == "" {
		home = h.homeDir
	}
	response, err := client.Invoke(callCtx, &pluginrpc.InvokeRequest{
		Capability:  string(input.Capability),
		PayloadJSON: input.PayloadJSON,
		Context: pluginrpc.InvokeContext{
			Goal:      input.Context.Goal,
			Intention: input.Context.Intention,
			HomeDir:   home,
			Env:       input.Context.Env,
		},
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.InvokeResult{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, input.Capability)
		}
		return domain.InvokeResult{}, fmt.Errorf("invoke %s: %w", input.Capability, err)
	}
	if response.Error != "" {
		return domain.InvokeResult{}, fmt.Errorf("%w: %s", domain.ErrPluginFailed, response.Error)
	}
	return domain.InvokeResult{OutputJSON: response.OutputJSON, Cancelled: response.Cancelled}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (pluginrpc.CollaboratorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Stderr:           h.logOutput,
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:       "plugin." + manifest.Name,
			Output:     h.logOutput,
			Level:      hclog.Warn,
			JSONFormat: true,
		}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.CollaboratorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func timeoutFor(capability domain.Capability) time.Duration {
	if capability.Interactive() {
		return defaultInteractiveTimeout
	}
	return defaultCallTimeout
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
