package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/tictactoe"
	"github.com/aretw0/tictactoe/internal/logging"
	"github.com/aretw0/tictactoe/internal/presentation/graph"
	"github.com/aretw0/tictactoe/pkg/domain"
	"github.com/aretw0/tictactoe/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultSettleTimeout bounds how long a tool waits for the opponent.
const DefaultSettleTimeout = 10 * time.Second

// GameView is the structured result of every game tool.
type GameView struct {
	SessionID string     `json:"session_id" jsonschema_description:"Session to pass to later calls"`
	State     string     `json:"state" jsonschema_description:"Current state of the game machine"`
	Board     [][]string `json:"board" jsonschema_description:"Rows of cells: x, o or - for empty"`
	Human     string     `json:"human_symbol,omitempty" jsonschema_description:"Symbol played by the caller"`
	Active    string     `json:"active_symbol,omitempty" jsonschema_description:"Symbol whose turn it is"`
	Message   string     `json:"message" jsonschema_description:"Status line"`
	Terminal  bool       `json:"terminal" jsonschema_description:"Indicates if the game is over"`
	Accepted  bool       `json:"accepted" jsonschema_description:"False when the move or choice was ignored"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type chooseArgs struct {
	SessionID string `json:"session_id"`
	Symbol    string `json:"symbol"`
}

type playArgs struct {
	SessionID string `json:"session_id"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
}

// Server exposes game sessions as MCP tools so an agent can play the human side.
type Server struct {
	sessions  *session.Manager
	mcpServer *server.MCPServer
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithSettleTimeout overrides DefaultSettleTimeout.
func WithSettleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("tictactoe-mcp", strings.TrimSpace(tictactoe.Version)),
		timeout:   DefaultSettleTimeout,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Listen serves JSON-RPC on in/out until ctx is done.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("new_game",
		mcp.WithDescription("Start a new game. Returns the session ID used by the other tools."),
		mcp.WithOutputSchema[GameView](),
	), mcp.NewStructuredToolHandler(s.handleNewGame))

	s.mcpServer.AddTool(mcp.NewTool("choose",
		mcp.WithDescription("Pick your symbol. X moves first; choosing o lets the computer open."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("x or o"), mcp.Enum("x", "o")),
		mcp.WithOutputSchema[GameView](),
	), mcp.NewStructuredToolHandler(s.handleChoose))

	s.mcpServer.AddTool(mcp.NewTool("play",
		mcp.WithDescription("Place your symbol on an empty cell, then wait for the computer's reply."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row 0..2")),
		mcp.WithNumber("col", mcp.Required(), mcp.Description("Column 0..2")),
		mcp.WithOutputSchema[GameView](),
	), mcp.NewStructuredToolHandler(s.handlePlay))

	s.mcpServer.AddTool(mcp.NewTool("get_snapshot",
		mcp.WithDescription("Show the board and whose turn it is."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID from new_game")),
		mcp.WithOutputSchema[GameView](),
	), mcp.NewStructuredToolHandler(s.handleGetSnapshot))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the state machine definition for introspection."),
		mcp.WithString("format", mcp.Description("json (default) or mermaid"), mcp.Enum("json", "mermaid")),
	), s.handleGetGraph)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("tictactoe://graph", "Game State Machine",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.inspect())
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "tictactoe://graph",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func (s *Server) handleNewGame(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (GameView, error) {
	_, snap, err := s.sessions.Create(ctx)
	if err != nil {
		return GameView{}, err
	}
	return newView(snap, true), nil
}

func (s *Server) handleChoose(ctx context.Context, _ mcp.CallToolRequest, args chooseArgs) (GameView, error) {
	mark, err := domain.ParseMark(args.Symbol)
	if err != nil {
		return GameView{}, err
	}
	return s.sendAndSettle(ctx, args.SessionID, domain.ChooseEvent(mark))
}

func (s *Server) handlePlay(ctx context.Context, _ mcp.CallToolRequest, args playArgs) (GameView, error) {
	snap, err := s.sessions.Snapshot(ctx, args.SessionID)
	if err != nil {
		return GameView{}, err
	}
	move := domain.Move{Row: args.Row, Col: args.Col}
	return s.sendAndSettle(ctx, args.SessionID, domain.PlayEvent(snap.Context.Active, move))
}

func (s *Server) handleGetSnapshot(ctx context.Context, _ mcp.CallToolRequest, args sessionArgs) (GameView, error) {
	snap, err := s.sessions.Snapshot(ctx, args.SessionID)
	if err != nil {
		return GameView{}, err
	}
	return newView(snap, true), nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	states := s.inspect()
	if request.GetString("format", "json") == "mermaid" {
		return mcp.NewToolResultText(graph.GenerateMermaid(states, nil)), nil
	}
	data, err := json.Marshal(states)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// sendAndSettle delivers ev and waits until the computer has replied.
func (s *Server) sendAndSettle(ctx context.Context, sessionID string, ev domain.Event) (GameView, error) {
	g, err := s.sessions.Game(sessionID)
	if err != nil {
		return GameView{}, err
	}
	before := g.Snapshot().Seq

	if _, err := s.sessions.Send(ctx, sessionID, ev); err != nil {
		s.logger.Warn("MCP: event rejected", "session_id", sessionID, "event", ev.Type, "err", err)
		return GameView{}, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	snap, err := g.AwaitSettled(waitCtx)
	if err != nil {
		return GameView{}, fmt.Errorf("game did not settle: %w", err)
	}
	return newView(snap, snap.Seq != before), nil
}

func (s *Server) inspect() []domain.StateInfo {
	g, err := tictactoe.New()
	if err != nil {
		s.logger.Error("MCP: failed to build game table", "err", err)
		return nil
	}
	return g.Inspect()
}

func newView(snap domain.Snapshot, accepted bool) GameView {
	board := make([][]string, domain.Size)
	for r, row := range snap.Context.Board {
		board[r] = make([]string, domain.Size)
		for c, cell := range row {
			board[r][c] = string(cell)
		}
	}
	return GameView{
		SessionID: snap.SessionID,
		State:     string(snap.StateName),
		Board:     board,
		Human:     string(snap.Context.Human),
		Active:    string(snap.Context.Active),
		Message:   snap.Message(),
		Terminal:  snap.Terminal(),
		Accepted:  accepted,
	}
}
