package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
)

type contextKey string

const (
	RequestIDKey     contextKey = "request_id"
	CustomerIDKey    contextKey = "customer_id"
	ReservationIDKey contextKey = "reservation_id"
)

// StackTraceHandler is a handler that adds stack trace to error records
// and extracts request_id, customer_id and reservation_id from context
type StackTraceHandler struct {
	slog.Handler
}

func (h *StackTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
			r.AddAttrs(slog.String("request_id", reqID))
		}
		if cid, ok := ctx.Value(CustomerIDKey).(int); ok {
			r.AddAttrs(slog.Int("customer_id", cid))
		}
		if rid, ok := ctx.Value(ReservationIDKey).(string); ok {
			r.AddAttrs(slog.String("reservation_id", rid))
		}
	}

	if r.Level >= slog.LevelError {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		r.AddAttrs(slog.String("stack_trace", string(buf[:n])))
	}
	return h.Handler.Handle(ctx, r)
}

// WithBooking stores the ids of the booking being handled in ctx.
func WithBooking(ctx context.Context, customerID int, reservationID string) context.Context {
	ctx = context.WithValue(ctx, CustomerIDKey, customerID)
	if reservationID != "" {
		ctx = context.WithValue(ctx, ReservationIDKey, reservationID)
	}

	return ctx
}

// InitStructuredLogger initialize structured logger
func InitStructuredLogger(level slog.Leveler) {
	slog.SetDefault(NewLogger(os.Stdout, level))
}

// NewLogger builds the JSON logger used by the service.
func NewLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	if level.Level() == slog.LevelDebug {
		opts.AddSource = true
	}

	jsonHandler := slog.NewJSONHandler(w, opts)

	return slog.New(&StackTraceHandler{Handler: jsonHandler})
}
