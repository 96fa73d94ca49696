package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/keypad"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/session"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

var (
	ErrNoKeys       = errors.New("no keys provided")
	ErrAmbiguousKey = errors.New("provide either keys or input, not both")
)

// Handler serves the session endpoints backed by store.
type Handler struct {
	store *session.Store
}

func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// ---------------------------------------------------------------------------
// Session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create")
	defer span.End()

	sess := h.store.Create()
	snap := sess.Snapshot()

	span.SetAttributes(attribute.String("calculator.session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, sessionResponse(snap))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	sess, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "get", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, sessionResponse(sess.Snapshot()))
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("calculator.session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "session not found", err, http.StatusNotFound, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Key presses
// ---------------------------------------------------------------------------

// Press handles POST /calculator/sessions/{id}/press. It feeds keys to the
// session's calculator in order, one child span per key.
func (h *Handler) Press(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.press",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	buttons, ok := decodeKeys(ctx, span, logger, "press", w, r)
	if !ok {
		return
	}

	sess, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "press", "session not found", err, http.StatusNotFound, w)
		return
	}

	var resp SessionResponse
	sess.Do(func(a *keypad.Adapter) {
		steps := pressKeys(ctx, a, buttons)
		resp = SessionResponse{
			ID:      sess.ID,
			Display: a.Display(),
			State:   a.State().String(),
			Steps:   steps,
		}
	})

	span.SetAttributes(attribute.String("calculator.display", resp.Display))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys pressed",
		zap.String("session_id", sess.ID),
		zap.Int("keys", len(buttons)),
		zap.String("display", resp.Display),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// Evaluate handles POST /calculator/evaluate. It replays keys on a fresh
// calculator without creating a session.
func Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	buttons, ok := decodeKeys(ctx, span, logger, "evaluate", w, r)
	if !ok {
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys_count", len(buttons)))

	a := keypad.NewAdapter()
	steps := pressKeys(ctx, a, buttons)

	span.AddEvent("evaluate.complete", trace.WithAttributes(
		attribute.String("display", a.Display()),
		attribute.Int("total_keys", len(buttons)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys evaluated",
		zap.Int("keys", len(buttons)),
		zap.String("display", a.Display()),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Steps:   steps,
		Display: a.Display(),
	})
}

// decodeKeys reads a PressRequest and resolves its keys. On failure it has
// already written the error response.
func decodeKeys(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, w http.ResponseWriter, r *http.Request) ([]keypad.Button, bool) {
	var req PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return nil, false
	}

	buttons, err := parseRequest(req)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return nil, false
	}
	return buttons, true
}

func parseRequest(req PressRequest) ([]keypad.Button, error) {
	switch {
	case len(req.Keys) > 0 && req.Input != "":
		return nil, ErrAmbiguousKey
	case req.Input != "":
		buttons, err := keypad.ParseKeys(req.Input)
		if err != nil {
			return nil, err
		}
		if len(buttons) == 0 {
			return nil, ErrNoKeys
		}
		return buttons, nil
	case len(req.Keys) > 0:
		buttons := make([]keypad.Button, 0, len(req.Keys))
		for i, k := range req.Keys {
			b, err := keypad.ParseButton(k)
			if err != nil {
				return nil, fmt.Errorf("key %d: %w", i, err)
			}
			buttons = append(buttons, b)
		}
		return buttons, nil
	default:
		return nil, ErrNoKeys
	}
}

// pressKeys presses each button on a, recording a child span and metrics per key.
func pressKeys(ctx context.Context, a *keypad.Adapter, buttons []keypad.Button) []StepResult {
	steps := make([]StepResult, 0, len(buttons))

	for i, b := range buttons {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.key.%d.%s", i, b.Name()),
			trace.WithAttributes(
				attribute.Int("calculator.key.index", i),
				attribute.String("calculator.key", b.String()),
			),
		)

		start := time.Now()
		display := a.Press(b)
		elapsed := float64(time.Since(start).Nanoseconds()) / 1e6 // ms

		attrs := metric.WithAttributes(attribute.String("button", b.Name()))
		pressCounter.Add(ctx, 1, attrs)
		pressHistogram.Record(ctx, elapsed, attrs)

		if b.Kind() == keypad.KindOperator {
			// Non-finite results only reach the display, never a gauge.
			if result := a.Result(); !math.IsInf(result, 0) && !math.IsNaN(result) {
				resultGauge.Record(ctx, result, attrs)
			}
		}

		stepSpan.SetAttributes(attribute.String("calculator.display", display))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		steps = append(steps, StepResult{Key: b.String(), Display: display})
	}

	return steps
}

func sessionResponse(snap session.Snapshot) SessionResponse {
	return SessionResponse{
		ID:      snap.ID,
		Display: snap.Display,
		State:   snap.State.String(),
	}
}
