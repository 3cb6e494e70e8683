package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/internal/logging"
	httpAdapter "github.com/aretw0/cantype/pkg/adapters/http"
	"github.com/aretw0/cantype/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CoerceArgs are the arguments of the coerce tool.
type CoerceArgs struct {
	Type   string `json:"type"`
	Policy string `json:"policy,omitempty"`
	Value  string `json:"value"`
}

// CoerceResponse is the structured result of the coerce tool. Exactly one
// of Value and Error is meaningful.
type CoerceResponse struct {
	Type  string `json:"type" jsonschema_description:"The name of the type the value was passed through"`
	Value any    `json:"value,omitempty" jsonschema_description:"The coerced value"`
	Error string `json:"error,omitempty" jsonschema_description:"Why the value was rejected"`
}

// SchemaArgs are the arguments of the schema tool.
type SchemaArgs struct {
	Type   string `json:"type"`
	Policy string `json:"policy,omitempty"`
}

// Server exposes a catalog of types as MCP tools.
type Server struct {
	catalog   httpAdapter.Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(catalog httpAdapter.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		catalog:   catalog,
		logger:    logger,
		mcpServer: server.NewMCPServer("cantype-mcp", cantype.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_types",
		mcp.WithDescription("List the names of the declared record types."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.catalog.Names())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	coerceTool := mcp.NewTool("coerce",
		mcp.WithDescription("Pass a JSON value through a type. Strict policies reject non-members, lenient ones convert them."),
		mcp.WithString("type", mcp.Required(), mcp.Description("A primitive (Number, String, Boolean, Any) or a declared record name")),
		mcp.WithString("policy", mcp.Description("check, convert, maybe or maybeConvert (default: convert)")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value as a JSON document")),
		mcp.WithOutputSchema[CoerceResponse](),
	)
	s.mcpServer.AddTool(coerceTool, mcp.NewStructuredToolHandler(s.handleCoerce))

	s.mcpServer.AddTool(mcp.NewTool("schema",
		mcp.WithDescription("Describe the values a type accepts as an OpenAPI schema."),
		mcp.WithString("type", mcp.Required(), mcp.Description("A primitive or a declared record name")),
		mcp.WithString("policy", mcp.Description("check, convert, maybe or maybeConvert (default: check)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SchemaArgs
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		text, err := s.describe(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})
}

func (s *Server) handleCoerce(ctx context.Context, request mcp.CallToolRequest, args CoerceArgs) (CoerceResponse, error) {
	if args.Policy == "" {
		args.Policy = cantype.PolicyConvert.String()
	}
	typ, err := s.resolve(args.Type, args.Policy)
	if err != nil {
		return CoerceResponse{}, err
	}

	input, err := httpAdapter.DecodeValue([]byte(args.Value))
	if err != nil {
		return CoerceResponse{}, fmt.Errorf("value is not valid JSON: %w", err)
	}

	value, err := typ.New(input)
	if err != nil {
		s.logger.Debug("coerce rejected", "type", typ.Name(), "error", err)
		return CoerceResponse{Type: typ.Name(), Error: err.Error()}, nil
	}
	return CoerceResponse{Type: typ.Name(), Value: httpAdapter.JSONSafe(value)}, nil
}

func (s *Server) describe(args SchemaArgs) (string, error) {
	if args.Policy == "" {
		args.Policy = cantype.PolicyCheck.String()
	}
	typ, err := s.resolve(args.Type, args.Policy)
	if err != nil {
		return "", err
	}
	jsonBytes, err := json.Marshal(schema.OpenAPI(typ.Schema()))
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

func (s *Server) resolve(name, policy string) (cantype.TypeObject, error) {
	if name == "" {
		return nil, errors.New("type is required")
	}
	p, err := cantype.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	return s.catalog.Resolve(name, p)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("cantype://types", "Declared Types",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.typesDocument()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "cantype://types",
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

// typesDocument maps every declared record to its check schema.
func (s *Server) typesDocument() (string, error) {
	doc := make(map[string]schema.Schema)
	for _, name := range s.catalog.Names() {
		typ, err := s.catalog.Resolve(name, cantype.PolicyCheck)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", name, err)
		}
		doc[name] = typ.Schema()
	}
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
