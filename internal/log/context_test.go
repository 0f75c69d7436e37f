package log_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/KodyMike/rndSequencer/internal/log"
)

type testHandler struct {
	slog.Handler

	r slog.Record
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(ctx context.Context, r slog.Record) error {
	h.r = r
	return nil
}

func assertRecordAttrs(t *testing.T, r slog.Record, attrs []slog.Attr) {
	t.Helper()

	wantLen := len(attrs)
	gotLen := r.NumAttrs()
	if wantLen != gotLen {
		t.Errorf("record.NumAttrs() = %v; want %v", gotLen, wantLen)
	}

	r.Attrs(func(a slog.Attr) bool {
		for _, attr := range attrs {
			if a.Equal(attr) {
				return true
			}
		}
		t.Errorf("unexpected attr %v", a)
		return true
	})
}

func TestContextWithAttrs(t *testing.T) {
	attr1 := slog.String("target", "https://example.test/login")
	attr2 := slog.String("parameter", "session_id")
	attr3 := slog.Int("samples", 1000)

	h := &testHandler{}
	logger := slog.New(log.NewContextLogHandler(h))

	ctx := context.Background()
	ctx = log.ContextWithAttrs(ctx, attr1, attr2)
	logger.InfoContext(ctx, "test", "samples", 1000)
	assertRecordAttrs(t, h.r, []slog.Attr{attr1, attr2, attr3})
}

func TestContextWithAttrs_InnerCtx(t *testing.T) {
	attr1 := slog.String("target", "https://example.test")
	attr2 := slog.String("parameter", "csrf")
	attr3 := slog.String("mode", "full")

	h := &testHandler{}
	logger := slog.New(log.NewContextLogHandler(h))

	ctx := context.Background()
	ctx = log.ContextWithAttrs(ctx, attr1, attr2)

	innerCtx := log.ContextWithAttrs(ctx, attr3)
	logger.InfoContext(innerCtx, "test")
	assertRecordAttrs(t, h.r, []slog.Attr{attr1, attr2, attr3})
}

func TestContextWithAttrs_OuterAfterInnerCtx(t *testing.T) {
	attr1 := slog.String("target", "https://example.test")
	attr2 := slog.String("parameter", "csrf")
	attr3 := slog.String("mode", "quick")

	h := &testHandler{}
	logger := slog.New(log.NewContextLogHandler(h))

	ctx := context.Background()
	ctx = log.ContextWithAttrs(ctx, attr1, attr2)
	_ = log.ContextWithAttrs(ctx, attr3)

	// The earlier context must not pick up the inner attrs.
	logger.InfoContext(ctx, "test")
	assertRecordAttrs(t, h.r, []slog.Attr{attr1, attr2})
}

func TestContextWithAttrs_NoAttrs(t *testing.T) {
	attr1 := slog.String("a", "b")

	h := &testHandler{}
	logger := slog.New(log.NewContextLogHandler(h))

	ctx := context.Background()
	ctx = log.ContextWithAttrs(ctx)

	logger.InfoContext(ctx, "test", "a", "b")
	assertRecordAttrs(t, h.r, []slog.Attr{attr1})
}

func TestClearContextAttrs(t *testing.T) {
	attr1 := slog.String("target", "https://example.test")

	h := &testHandler{}
	logger := slog.New(log.NewContextLogHandler(h))

	ctx := log.ContextWithAttrs(context.Background(), attr1)
	ctx = log.ClearContextAttrs(ctx)

	logger.InfoContext(ctx, "test")
	assertRecordAttrs(t, h.r, nil)
}
