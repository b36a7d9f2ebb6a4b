// Package mcp exposes Abenteuer sessions as Model Context Protocol tools,
// so an assistant can play a story with the learner.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/abenteuer"
	"github.com/aretw0/abenteuer/internal/logging"
	"github.com/aretw0/abenteuer/internal/presentation/graph"
	"github.com/aretw0/abenteuer/internal/presentation/tui"
	"github.com/aretw0/abenteuer/pkg/catalog"
	"github.com/aretw0/abenteuer/pkg/domain"
	"github.com/aretw0/abenteuer/pkg/lexicon"
	"github.com/aretw0/abenteuer/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefaultAwaitTimeout bounds how long choose waits for a deferred transition.
const DefaultAwaitTimeout = 10 * time.Second

// SceneResponse is the structured result of every session tool.
type SceneResponse struct {
	SessionID string      `json:"session_id" jsonschema_description:"Session to pass to later calls"`
	View      domain.View `json:"view" jsonschema_description:"The current scene and navigation flags"`
	Markdown  string      `json:"markdown" jsonschema_description:"The scene rendered for display"`
	Feedback  string      `json:"feedback,omitempty" jsonschema_description:"Feedback shown before the scene changed"`
	Ignored   string      `json:"ignored,omitempty" jsonschema_description:"Why the request had no effect"`
}

// Engine defines what the MCP server needs from the Abenteuer core.
type Engine interface {
	Stories() []catalog.Entry
	Story(storyID string) (catalog.Entry, error)
	Manager() *session.Manager
	Lexicon() *lexicon.Lexicon
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine       Engine
	mcpServer    *server.MCPServer
	logger       *slog.Logger
	awaitTimeout time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger. Stdio transports must not log to stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAwaitTimeout bounds the wait for a deferred transition in choose.
func WithAwaitTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.awaitTimeout = d
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:       engine,
		mcpServer:    server.NewMCPServer("abenteuer-mcp", strings.TrimSpace(abenteuer.Version)),
		logger:       logging.NewNop(),
		awaitTimeout: DefaultAwaitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// -- Tool arguments --

type startArgs struct {
	Story string `json:"story"`
	Start string `json:"start,omitempty"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type chooseArgs struct {
	SessionID string `json:"session_id"`
	SceneID   string `json:"scene_id"`
	ChoiceID  string `json:"choice_id"`
}

type restartArgs struct {
	SessionID string `json:"session_id"`
	Start     string `json:"start,omitempty"`
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_stories",
		mcp.WithDescription("List the available German practice stories."),
	), s.handleListStories)

	s.mcpServer.AddTool(mcp.NewTool("start_story",
		mcp.WithDescription("Start a new session of a story. Returns the session id and the first scene."),
		mcp.WithString("story", mcp.Required(), mcp.Description("Story id, e.g. cafe or train")),
		mcp.WithString("start", mcp.Description("Scene id to start at (optional)")),
		mcp.WithOutputSchema[SceneResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("get_scene",
		mcp.WithDescription("Show the current scene of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_story")),
		mcp.WithOutputSchema[SceneResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetScene))

	s.mcpServer.AddTool(mcp.NewTool("choose",
		mcp.WithDescription("Pick a choice in the current scene. Choices with feedback return the feedback and the scene that follows."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_story")),
		mcp.WithString("scene_id", mcp.Required(), mcp.Description("Scene the choice belongs to")),
		mcp.WithString("choice_id", mcp.Required(), mcp.Description("Choice id")),
		mcp.WithOutputSchema[SceneResponse](),
	), mcp.NewStructuredToolHandler(s.handleChoose))

	s.mcpServer.AddTool(mcp.NewTool("go_back",
		mcp.WithDescription("Return to the previous scene."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_story")),
		mcp.WithOutputSchema[SceneResponse](),
	), mcp.NewStructuredToolHandler(s.handleBack))

	s.mcpServer.AddTool(mcp.NewTool("restart",
		mcp.WithDescription("Restart the session, optionally at another scene."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_story")),
		mcp.WithString("start", mcp.Description("Scene id to restart at (optional)")),
		mcp.WithOutputSchema[SceneResponse](),
	), mcp.NewStructuredToolHandler(s.handleRestart))

	s.mcpServer.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("End a session and release it."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from start_story")),
	), s.handleEnd)

	s.mcpServer.AddTool(mcp.NewTool("translate",
		mcp.WithDescription("Translate German text word by word with the built-in glossary."),
		mcp.WithString("text", mcp.Required(), mcp.Description("A German word or sentence")),
	), s.handleTranslate)
}

func (s *Server) handleListStories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, e := range s.engine.Stories() {
		fmt.Fprintf(&sb, "- %s: %s", e.ID, e.Title)
		if e.EnglishTitle != "" {
			fmt.Fprintf(&sb, " (%s)", e.EnglishTitle)
		}
		if e.Description != "" {
			fmt.Fprintf(&sb, ". %s", e.Description)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args startArgs) (SceneResponse, error) {
	sess, err := s.engine.Manager().Create(ctx, args.Story, args.Start)
	if err != nil {
		return SceneResponse{}, err
	}
	s.logger.Info("MCP session started", "session_id", sess.ID(), "story", args.Story)
	return s.response(sess, sess.View()), nil
}

func (s *Server) handleGetScene(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SceneResponse, error) {
	sess, err := s.engine.Manager().Get(args.SessionID)
	if err != nil {
		return SceneResponse{}, err
	}
	return s.response(sess, sess.View()), nil
}

// handleChoose applies the choice and, when it carries feedback, waits for
// the deferred transition so the caller gets the next scene in one call.
func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args chooseArgs) (SceneResponse, error) {
	sess, err := s.engine.Manager().Get(args.SessionID)
	if err != nil {
		return SceneResponse{}, err
	}

	view, err := sess.Choose(ctx, args.SceneID, args.ChoiceID)
	if err != nil {
		if domain.IsIgnorable(err) {
			resp := s.response(sess, view)
			resp.Ignored = err.Error()
			return resp, nil
		}
		return SceneResponse{}, err
	}

	feedback := view.PendingFeedback
	if feedback != "" {
		awaitCtx, cancel := context.WithTimeout(ctx, s.awaitTimeout)
		defer cancel()
		next, err := sess.Await(awaitCtx)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return SceneResponse{}, err
		}
		if err == nil {
			view = next
		}
	}

	resp := s.response(sess, view)
	resp.Feedback = feedback
	return resp, nil
}

func (s *Server) handleBack(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (SceneResponse, error) {
	sess, err := s.engine.Manager().Get(args.SessionID)
	if err != nil {
		return SceneResponse{}, err
	}
	view, err := sess.Back(ctx)
	return s.result(sess, view, err)
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest, args restartArgs) (SceneResponse, error) {
	sess, err := s.engine.Manager().Get(args.SessionID)
	if err != nil {
		return SceneResponse{}, err
	}
	var view domain.View
	if args.Start != "" {
		view, err = sess.Reset(ctx, args.Start)
	} else {
		view, err = sess.Restart(ctx)
	}
	return s.result(sess, view, err)
}

func (s *Server) handleEnd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.engine.Manager().Delete(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.logger.Info("MCP session ended", "session_id", id)
	return mcp.NewToolResultText("session " + id + " ended"), nil
}

func (s *Server) handleTranslate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	for _, tok := range s.engine.Lexicon().Annotate(text) {
		if tok.Kind != lexicon.TokenWord {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", tok.Text, tok.Translation)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) result(sess *session.Session, view domain.View, err error) (SceneResponse, error) {
	if err != nil {
		if !domain.IsIgnorable(err) {
			return SceneResponse{}, err
		}
		resp := s.response(sess, view)
		resp.Ignored = err.Error()
		return resp, nil
	}
	return s.response(sess, view), nil
}

func (s *Server) response(sess *session.Session, view domain.View) SceneResponse {
	return SceneResponse{
		SessionID: sess.ID(),
		View:      view,
		Markdown:  tui.SceneMarkdown(view),
	}
}

func (s *Server) registerResources() {
	for _, e := range s.engine.Stories() {
		entry := e
		uri := "abenteuer://stories/" + entry.ID

		s.mcpServer.AddResource(mcp.NewResource(uri, entry.Title,
			mcp.WithResourceDescription("Scene definitions of "+entry.ID),
			mcp.WithMIMEType("application/json"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			jsonBytes, err := json.Marshal(entry.Story)
			if err != nil {
				return nil, fmt.Errorf("failed to encode story: %w", err)
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(jsonBytes)},
			}, nil
		})

		graphURI := uri + "/graph"
		s.mcpServer.AddResource(mcp.NewResource(graphURI, entry.Title+" graph",
			mcp.WithResourceDescription("Mermaid diagram of "+entry.ID),
			mcp.WithMIMEType("text/plain"),
		), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: graphURI, MIMEType: "text/plain", Text: graph.GenerateMermaid(entry.Story, nil)},
			}, nil
		})
	}
}
