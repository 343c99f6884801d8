package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "collaborator"
	serviceName       = "hyprfocus.collaborator.v1.Collaborator"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodInvoke      = "/" + serviceName + "/Invoke"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "HYPRFOCUS_PLUGIN",
	MagicCookieValue: "hyprfocus-collaborator",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type InvokeContext struct {
	Goal      string            `json:"goal"`
	Intention string            `json:"intention"`
	HomeDir   string            `json:"home_dir"`
	Env       map[string]string `json:"env"`
}

type InvokeRequest struct {
	Capability  string        `json:"capability"`
	PayloadJSON string        `json:"payload_json"`
	Context     InvokeContext `json:"context"`
}

// InvokeResponse reports capability-level failures in Error so that a
// plugin can refuse a call without tearing down the RPC.
type InvokeResponse struct {
	OutputJSON string `json:"output_json"`
	Cancelled  bool   `json:"cancelled"`
	Error      string `json:"error"`
}

type CollaboratorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Invoke(ctx context.Context, in *InvokeRequest) (*InvokeResponse, error)
}

type CollaboratorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Invoke(ctx context.Context, in *InvokeRequest) (*InvokeResponse, error)
}

type collaboratorClient struct {
	conn *grpc.ClientConn
}

func NewCollaboratorClient(conn *grpc.ClientConn) CollaboratorClient {
	return &collaboratorClient{conn: conn}
}

func (c *collaboratorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *collaboratorClient) Invoke(ctx context.Context, in *InvokeRequest) (*InvokeResponse, error) {
	out := &InvokeResponse{}
	if err := c.conn.Invoke(ctx, methodInvoke, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterCollaboratorServer(server grpc.ServiceRegistrar, impl CollaboratorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*CollaboratorServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Invoke",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &InvokeRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Invoke(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodInvoke}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*InvokeRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Invoke(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "hyprfocus/collaborator/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl CollaboratorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterCollaboratorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewCollaboratorClient(conn), nil
}

func PluginMap(impl CollaboratorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
