package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/internal/logging"
	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/schema"
	"github.com/go-chi/chi/v5"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Catalog resolves type names to type objects.
type Catalog interface {
	Names() []string
	Resolve(name string, p cantype.Policy) (cantype.TypeObject, error)
}

// Server serves the types of a catalog over HTTP.
type Server struct {
	Catalog Catalog
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the catalog.
func NewHandler(catalog Catalog, opts ...Option) http.Handler {
	s := &Server{Catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/types", s.ListTypes)
	r.Get("/types/{name}/schema", s.GetSchema)
	r.Get("/types/{name}/openapi", s.GetOpenAPI)
	r.Post("/types/{name}/{policy}", s.Coerce)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{
		"app":     "cantype-http",
		"version": cantype.Version,
	})
}

// ListTypes handles the GET /types request.
func (s *Server) ListTypes(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string][]string{"types": s.Catalog.Names()})
}

// GetSchema handles the GET /types/{name}/schema request.
// The optional policy query parameter defaults to check.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	typ, ok := s.resolve(w, chi.URLParam(r, "name"), r.URL.Query().Get("policy"))
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, map[string]any{
		"name":   typ.Name(),
		"schema": typ.Schema(),
	})
}

// GetOpenAPI handles the GET /types/{name}/openapi request.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	typ, ok := s.resolve(w, chi.URLParam(r, "name"), r.URL.Query().Get("policy"))
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, schema.OpenAPI(typ.Schema()))
}

// Coerce handles the POST /types/{name}/{policy} request. The body is any
// JSON value; objects keep their key order.
func (s *Server) Coerce(w http.ResponseWriter, r *http.Request) {
	typ, ok := s.resolve(w, chi.URLParam(r, "name"), chi.URLParam(r, "policy"))
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	input, err := DecodeValue(body)
	if err != nil {
		s.fail(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if om, isOrdered := input.(*orderedmap.OrderedMap[string, any]); isOrdered {
		if _, composite := typ.(*cantype.Composite); !composite {
			input = plainMap(om)
		}
	}

	value, err := typ.New(input)
	if err != nil {
		s.logger.Debug("Coerce: value rejected", "type", typ.Name(), "error", err)
		s.respond(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	s.respond(w, http.StatusOK, map[string]any{"value": JSONSafe(value)})
}

func (s *Server) resolve(w http.ResponseWriter, name, policy string) (cantype.TypeObject, bool) {
	p := cantype.PolicyCheck
	if policy != "" {
		var err error
		if p, err = cantype.ParsePolicy(policy); err != nil {
			s.fail(w, http.StatusBadRequest, err.Error(), err)
			return nil, false
		}
	}

	typ, err := s.Catalog.Resolve(name, p)
	if err != nil {
		s.fail(w, http.StatusNotFound, err.Error(), err)
		return nil, false
	}
	return typ, true
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string, err error) {
	s.logger.Warn("request failed", "status", status, "error", err)
	s.respond(w, status, map[string]string{"error": msg})
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
		http.Error(w, "response encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// DecodeValue decodes a JSON document. Top-level objects are decoded into
// an ordered map so composite types see fields in document order.
func DecodeValue(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return kind.Undefined, nil
	}
	if trimmed[0] == '{' {
		om := orderedmap.New[string, any]()
		if err := json.Unmarshal(trimmed, om); err != nil {
			return nil, err
		}
		return om, nil
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v, nil
}

// JSONSafe replaces values JSON cannot carry: NaN and infinities by their
// display form, undefined by null. Records, maps and slices are handled at
// any depth.
func JSONSafe(v any) any {
	return kind.JSONSafe(v)
}

func plainMap(om *orderedmap.OrderedMap[string, any]) map[string]any {
	m := make(map[string]any, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}
