// Package mcptools exposes the calculator as Model Context Protocol tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"keypad-calculator/internal/keypad"
	"keypad-calculator/internal/session"
)

// Result is the JSON payload returned by every tool.
type Result struct {
	SessionID string   `json:"session_id,omitempty"`
	Keys      []string `json:"keys"`
	Display   string   `json:"display"`
	State     string   `json:"state"`
}

// Tools holds the state shared by the tool handlers.
type Tools struct {
	store  *session.Store
	logger *zap.Logger
}

func New(store *session.Store, logger *zap.Logger) *Tools {
	return &Tools{store: store, logger: logger}
}

// Register adds press_keys, evaluate and clear_session to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("press_keys",
		mcp.WithDescription("Press calculator keys in a session. Starts a new session when session_id is empty. "+
			"Keys form a compact string: digits, '.', '+', '-', '×' or '*', '÷' or '/', '±' or '~', '%', '=', 'AC'. "+
			"Operators evaluate left to right without precedence."),
		mcp.WithString("keys",
			mcp.Required(),
			mcp.Description("Keys to press, e.g. '12.5×4='"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session returned by an earlier press_keys call (optional)"),
		),
	), t.PressKeys)

	s.AddTool(mcp.NewTool("evaluate",
		mcp.WithDescription("Press keys on a fresh calculator and return the final display without keeping a session."),
		mcp.WithString("keys",
			mcp.Required(),
			mcp.Description("Keys to press, e.g. '1+2×3='"),
		),
	), t.Evaluate)

	s.AddTool(mcp.NewTool("clear_session",
		mcp.WithDescription("Discard a calculator session."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session to discard"),
		),
	), t.ClearSession)
}

func (t *Tools) PressKeys(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	buttons, err := keysArgument(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sess *session.Session
	if id, _ := args["session_id"].(string); id != "" {
		sess, err = t.store.Get(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("session %s: %v", id, err)), nil
		}
	} else {
		sess = t.store.Create()
	}

	steps := sess.Press(buttons...)
	snap := sess.Snapshot()

	t.logger.Info("mcp keys pressed",
		zap.String("session_id", sess.ID),
		zap.Int("keys", len(steps)),
		zap.String("display", snap.Display),
	)

	return jsonResult(Result{
		SessionID: sess.ID,
		Keys:      keyNames(buttons),
		Display:   snap.Display,
		State:     snap.State.String(),
	})
}

func (t *Tools) Evaluate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	buttons, err := keysArgument(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calc := keypad.NewAdapter()
	for _, b := range buttons {
		calc.Press(b)
	}

	t.logger.Info("mcp keys evaluated",
		zap.Int("keys", len(buttons)),
		zap.String("display", calc.Display()),
	)

	return jsonResult(Result{
		Keys:    keyNames(buttons),
		Display: calc.Display(),
		State:   calc.State().String(),
	})
}

func (t *Tools) ClearSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := request.GetArguments()["session_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("session_id is required"), nil
	}

	if err := t.store.Delete(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("session %s not found", id)), nil
		}
		return nil, err
	}

	return mcp.NewToolResultText(fmt.Sprintf("session %s cleared", id)), nil
}

func keysArgument(args map[string]any) ([]keypad.Button, error) {
	keys, ok := args["keys"].(string)
	if !ok || keys == "" {
		return nil, errors.New("keys is required")
	}

	buttons, err := keypad.ParseKeys(keys)
	if err != nil {
		return nil, err
	}
	if len(buttons) == 0 {
		return nil, errors.New("keys is required")
	}
	return buttons, nil
}

func keyNames(buttons []keypad.Button) []string {
	names := make([]string, len(buttons))
	for i, b := range buttons {
		names[i] = b.String()
	}
	return names
}

func jsonResult(r Result) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
