// Package httpapi exposes the lexer and parser over HTTP as
// POST /v1/lex and POST /v1/parse. It only ever republishes the token/tree
// shapes the lexer and parser already produce; it performs no semantic
// analysis of its own.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/faridmehrhesam/kusto-language/lexer"
	"github.com/faridmehrhesam/kusto-language/parser"
	"github.com/faridmehrhesam/kusto-language/service/parsecache"
)

// Server is the HTTP API's handler set.
type Server struct {
	auth   *AuthService
	cache  parsecache.Store
	logger *zap.Logger
	mux    chi.Router
}

// NewServer builds a Server backed by store for memoized lex/parse results
// and auth for bearer-token validation.
func NewServer(auth *AuthService, store parsecache.Store, logger *zap.Logger) *Server {
	s := &Server{auth: auth, cache: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(auth.RequireBearer)
	r.Post("/v1/lex", s.handleLex)
	r.Post("/v1/parse", s.handleParse)
	s.mux = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type lexRequest struct {
	Source                      string `json:"source"`
	AlwaysProduceEndTokens      *bool  `json:"always_produce_end_tokens,omitempty"`
	AllowLiteralsWithLineBreaks *bool  `json:"allow_literals_with_line_breaks,omitempty"`
}

func (req lexRequest) lexerConfig() lexer.Config {
	cfg := lexer.DefaultConfig()
	if req.AlwaysProduceEndTokens != nil {
		cfg = cfg.WithAlwaysProduceEndTokens(*req.AlwaysProduceEndTokens)
	}
	if req.AllowLiteralsWithLineBreaks != nil {
		cfg = cfg.WithAllowLiteralsWithLineBreaks(*req.AllowLiteralsWithLineBreaks)
	}
	return cfg
}

func (s *Server) handleLex(w http.ResponseWriter, r *http.Request) {
	var req lexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg := req.lexerConfig()
	key := parsecache.Key(req.Source, cfg)
	if cached, ok := s.cache.GetTokens(r.Context(), key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	ts := lexer.Lex([]byte(req.Source), cfg)
	resp := encodeTokenStream(ts)
	if err := s.cache.PutTokens(r.Context(), key, resp); err != nil {
		s.logger.Warn("failed to cache lex result", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req lexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg := req.lexerConfig()
	ts := lexer.Lex([]byte(req.Source), cfg)
	tree, errs := parser.Parse(ts)

	resp := parseResponse{
		Tree:   encodeExpr(tree),
		Errors: encodeParseErrors(errs),
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
