package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/internal/logging"
	"github.com/aretw0/tictactoe/internal/presentation/graph"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/runner"
	"github.com/aretw0/tictactoe/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is reported by GET /info.
const APIVersion = "1"

// DefaultSettleTimeout bounds how long ?wait=true waits for the opponent.
const DefaultSettleTimeout = 10 * time.Second

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Server serves game sessions over JSON and Server-Sent Events.
type Server struct {
	Sessions *session.Manager
	Logger   *slog.Logger

	settleTimeout time.Duration
	states        []domain.StateInfo
	metrics       http.Handler
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithSettleTimeout overrides DefaultSettleTimeout.
func WithSettleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.settleTimeout = d
		}
	}
}

// NewHandler creates a new HTTP handler for the session manager.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions:      sessions,
		Logger:        logging.NewNop(),
		settleTimeout: DefaultSettleTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if g, err := tictactoe.New(); err == nil {
		s.states = g.Inspect()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(HandlerWithOptions(s, ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: s.badParam,
	}))
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Tic-Tac-Toe API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// badParam answers query and path parameters that do not bind.
func (s *Server) badParam(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
	s.Logger.Warn("Invalid request parameter", "path", r.URL.Path, "err", err)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Info{
		App:        "tictactoe-http",
		Version:    strings.TrimSpace(tictactoe.Version),
		ApiVersion: APIVersion,
	})
}

// GetGraph handles GET /graph. ?format=mermaid and ?format=dot return text,
// anything else the state table as JSON.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request, params GetGraphParams) {
	format := Json
	if params.Format != nil {
		format = *params.Format
	}
	switch format {
	case Mermaid:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, graph.GenerateMermaid(s.states, nil))
	case Dot:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		fmt.Fprint(w, string(graph.GenerateDOT(s.states, "")))
	default:
		writeJSON(w, http.StatusOK, s.states)
	}
}

// CreateGame handles POST /games.
func (s *Server) CreateGame(w http.ResponseWriter, r *http.Request) {
	id, snap, err := s.Sessions.Create(r.Context())
	if err != nil {
		s.fail(w, "CreateGame", err)
		return
	}
	w.Header().Set("Location", "/games/"+id)
	writeJSON(w, http.StatusCreated, snap)
}

// ListGames handles GET /games.
func (s *Server) ListGames(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListGames", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, GameList{Games: ids})
}

// GetGame handles GET /games/{id}.
func (s *Server) GetGame(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := s.Sessions.Snapshot(r.Context(), id)
	if err != nil {
		s.fail(w, "GetGame", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteGame handles DELETE /games/{id}.
func (s *Server) DeleteGame(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteGame", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetGame handles POST /games/{id}/reset.
func (s *Server) ResetGame(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := s.Sessions.Reset(r.Context(), id)
	if err != nil {
		s.fail(w, "ResetGame", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SendEvent handles POST /games/{id}/events. An event the current state does
// not accept is not an error: the unchanged snapshot is returned.
// With ?wait=true the response is held until the game awaits the human again
// or has finished.
func (s *Server) SendEvent(w http.ResponseWriter, r *http.Request, id string, params SendEventParams) {
	var body SendEventJSONRequestBody
	r.Body = http.MaxBytesReader(w, r.Body, int64(runner.DefaultMaxInputSize))
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("SendEvent: Invalid request body", "err", err)
		return
	}
	eventType, err := runner.SanitizeInput(body.Type)
	if err != nil || eventType == "" {
		http.Error(w, "Invalid event type", http.StatusBadRequest)
		s.Logger.Warn("SendEvent: Input rejected", "err", err, "size", len(body.Type))
		return
	}

	var payload any
	if len(body.Payload) > 0 && string(body.Payload) != "null" {
		payload = body.Payload
	}

	snap, err := s.Sessions.Send(r.Context(), id, domain.NewEvent(domain.EventType(eventType), payload))
	if err != nil {
		s.fail(w, "SendEvent", err)
		return
	}

	if params.Wait != nil && *params.Wait && !snap.StateName.Settled() {
		g, err := s.Sessions.Game(id)
		if err != nil {
			s.fail(w, "SendEvent", err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), s.settleTimeout)
		defer cancel()
		if snap, err = g.AwaitSettled(ctx); err != nil {
			http.Error(w, "Game did not settle", http.StatusGatewayTimeout)
			s.Logger.Warn("SendEvent: settle wait failed", "session_id", id, "err", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}
	http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
	s.Logger.Error(op+" failed", "err", err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
