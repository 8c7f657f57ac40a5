package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	ctx := context.WithValue(context.Background(), TraceIDKey, "t-1")
	l.InfoContext(ctx, "with trace")
	l.Info("without trace")

	got := lines(t, &buf)
	require.Len(t, got, 2)
	assert.Equal(t, "t-1", got[0][TraceIDKey])
	assert.NotContains(t, got[1], TraceIDKey)
}

func TestRemoteOnlyReceivesTracedRecords(t *testing.T) {
	var local, remote bytes.Buffer
	h := NewTeeHandler(
		log.NewJSONHandler(&local, nil),
		NewRemoteFilterHandler(log.NewJSONHandler(&remote, nil)),
	)
	l := log.New(&ContextHandler{h}).With("service", "trendcast")

	l.Info("startup")
	l.InfoContext(context.WithValue(context.Background(), TraceIDKey, "t-2"), "request")

	assert.Len(t, lines(t, &local), 2)
	remoteLines := lines(t, &remote)
	require.Len(t, remoteLines, 1)
	assert.Equal(t, "request", remoteLines[0]["msg"])
	assert.Equal(t, "trendcast", remoteLines[0]["service"])
}

func TestTeeHandlerEnabledByAnyHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := NewTeeHandler(
		log.NewJSONHandler(&a, &log.HandlerOptions{Level: log.LevelError}),
		log.NewJSONHandler(&b, &log.HandlerOptions{Level: log.LevelDebug}),
	)
	assert.True(t, h.Enabled(context.Background(), log.LevelDebug))

	log.New(h).Debug("debug only")
	assert.Zero(t, a.Len())
	assert.NotZero(t, b.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, log.LevelError, ParseLevel("error"))
	assert.Equal(t, log.LevelInfo, ParseLevel("verbose"))
}
