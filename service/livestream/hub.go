// Package livestream pushes a token/diagnostic stream to subscribed
// clients as a query is edited, over a websocket connection per client.
// Adapted from the teacher's internal/web/websocket hub, collapsed to a
// single implicit room (there is one editing session per connection; no
// cross-client rooms are needed for this domain).
package livestream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/faridmehrhesam/kusto-language/lexer"
	"github.com/faridmehrhesam/kusto-language/parser"
)

// QueryUpdate is the inbound message a client sends as it edits a query.
type QueryUpdate struct {
	Source string `json:"source"`
}

// StreamResult is the outbound message pushed back after re-lexing and
// re-parsing an updated source.
type StreamResult struct {
	Tokens []TokenSummary `json:"tokens"`
	Errors []ErrorSummary `json:"errors"`
}

// TokenSummary is the wire shape for one lexed token.
type TokenSummary struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// ErrorSummary is the wire shape for one parse diagnostic.
type ErrorSummary struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Hub tracks registered clients and relays each one's own query edits back
// to itself; it does not broadcast across clients.
type Hub struct {
	register   chan *Client
	unregister chan *Client

	clientsMu sync.RWMutex
	clients   map[*Client]bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub builds a Hub bound to ctx; call Run in a goroutine to start its
// event loop.
func NewHub(ctx context.Context) *Hub {
	hubCtx, cancel := context.WithCancel(ctx)
	return &Hub{
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		clients:    make(map[*Client]bool),
		ctx:        hubCtx,
		cancel:     cancel,
	}
}

// Run processes register/unregister events until ctx is cancelled.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.clientsMu.Lock()
			h.clients[c] = true
			h.clientsMu.Unlock()
		case c := <-h.unregister:
			h.clientsMu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.clientsMu.Unlock()
		}
	}
}

// Stop cancels the hub's event loop.
func (h *Hub) Stop() { h.cancel() }

// Upgrader upgrades HTTP connections into Hub-registered clients.
type Upgrader struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewUpgrader builds an Upgrader bound to hub.
func NewUpgrader(hub *Hub) *Upgrader {
	return &Upgrader{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades r into a websocket connection and registers a Client
// for it.
func (u *Upgrader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := u.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := newClient(u.hub, conn)
	u.hub.register <- client
	go client.writePump()
	go client.readPump()
}

// analyze re-lexes and re-parses src, producing the wire-level summary
// pushed to the client. It never performs semantic analysis: token kinds
// and parse error codes are republished as-is.
func analyze(src string) StreamResult {
	ts := lexer.Lex([]byte(src), lexer.DefaultConfig())
	tree, errs := parser.Parse(ts)
	_ = tree // the tree itself isn't streamed; /v1/parse on httpapi returns it

	result := StreamResult{
		Tokens: make([]TokenSummary, 0, len(ts.Tokens)),
		Errors: make([]ErrorSummary, 0, len(errs)),
	}
	for _, tok := range ts.Tokens {
		result.Tokens = append(result.Tokens, TokenSummary{
			Kind: tok.Kind.String(),
			Text: tok.Text.Text(ts.Source),
		})
	}
	for _, e := range errs {
		result.Errors = append(result.Errors, ErrorSummary{Code: e.Code, Message: e.Message})
	}
	return result
}

func marshalResult(r StreamResult) []byte {
	raw, _ := json.Marshal(r)
	return raw
}
