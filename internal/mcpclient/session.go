// Package mcpclient drives a tool-provider session over the Model Context
// Protocol: one stdio subprocess per session, an initialize handshake, lazy
// tool discovery with caching, and capability-based tool resolution.
package mcpclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/pr-review-agent/internal/logging"
)

type Config struct {
	Command     string
	Args        []string
	Env         []string
	CallTimeout time.Duration
	Capability  CapabilityMap
	Logger      logging.Logger
}

// ErrNoTool reports that no discovered tool satisfies a capability. Callers
// treat it as a per-phase condition, not a fatal one.
var ErrNoTool = errors.New("no tool matches capability")

// Session owns one provider subprocess. It must be closed on every exit path.
type Session struct {
	client   *client.Client
	log      logging.Logger
	to       time.Duration
	pinned   CapabilityMap
	tools    []mcp.Tool
	resolved map[Capability]string
}

// Open starts the provider process and performs the initialize handshake. The
// subprocess is torn down if the handshake fails.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Command == "" {
		return nil, fmt.Errorf("mcp command is required")
	}

	c, err := client.NewStdioMCPClient(cfg.Command, cfg.Env, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("start mcp provider: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "pr-review-agent", Version: "1.0.0"}

	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("initialize mcp session: %w", err)
	}

	return &Session{client: c, log: cfg.Logger, to: cfg.CallTimeout, pinned: cfg.Capability}, nil
}

// Tools returns the provider's tool list, fetching and caching it on first
// use. Capability resolution happens alongside the first successful fetch.
func (s *Session) Tools(ctx context.Context) ([]mcp.Tool, error) {
	if s.tools != nil {
		return s.tools, nil
	}
	res, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	s.tools = res.Tools
	s.resolved = resolveCapabilities(s.tools, s.pinned)
	s.log.Debug("discovered provider tools", "count", len(s.tools))
	return s.tools, nil
}

// Resolve maps a capability to a discovered tool name. It returns ErrNoTool
// when discovery succeeded but nothing matched.
func (s *Session) Resolve(ctx context.Context, capability Capability) (string, error) {
	if _, err := s.Tools(ctx); err != nil {
		return "", err
	}
	name, ok := s.resolved[capability]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoTool, capability)
	}
	return name, nil
}

// Resolved exposes the capability table computed at discovery time. It is nil
// before the first successful Tools call.
func (s *Session) Resolved() map[Capability]string {
	return s.resolved
}

// Call invokes a tool by name and returns the textual content of its result.
func (s *Session) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", s.annotateError(name, err)
	}
	text := resultText(res)
	if res.IsError {
		return "", fmt.Errorf("tool %s returned an error: %s", name, text)
	}
	return text, nil
}

// CallCapability resolves a capability and invokes the matching tool.
func (s *Session) CallCapability(ctx context.Context, capability Capability, args map[string]any) (string, error) {
	name, err := s.Resolve(ctx, capability)
	if err != nil {
		return "", err
	}
	return s.Call(ctx, name, args)
}

// Close releases the provider subprocess.
func (s *Session) Close() error {
	return s.client.Close()
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.to <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.to)
}

func (s *Session) annotateError(name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("tool %s timed out after %s: %w", name, s.to, err)
	}
	return fmt.Errorf("tool %s: %w", name, err)
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
