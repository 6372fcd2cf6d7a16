package mcplog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixClock(t *testing.T, times ...time.Time) {
	t.Helper()
	orig := Now
	i := 0
	Now = func() time.Time {
		now := times[min(i, len(times)-1)]
		i++
		return now
	}
	t.Cleanup(func() { Now = orig })
}

func TestBegin_Target(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"project wins over path", map[string]any{"project": "/src/app", "path": "/src/app/types"}, "/src/app"},
		{"path for analyze tools", map[string]any{"path": "src/store"}, "src/store"},
		{"empty project falls back to path", map[string]any{"project": "", "path": "src"}, "src"},
		{"non-string ignored", map[string]any{"path": 42}, ""},
		{"no arguments", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Begin("analyze_types", tt.args).Target)
		})
	}
}

func TestFinish_Outcomes(t *testing.T) {
	start := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	fixClock(t, start, start.Add(40*time.Millisecond))

	c := Begin("generate_html", map[string]any{"project": "src"})
	c.Finish(mcp.NewToolResultText(`{"bytes":10}`), nil)
	assert.Equal(t, start, c.Time)
	assert.Equal(t, int64(40), c.ElapsedMs)
	assert.Equal(t, OutcomeOK, c.Outcome)
	assert.Empty(t, c.Message)

	c = Begin("analyze_stores", nil)
	c.Finish(mcp.NewToolResultError("path not found: src/store"), nil)
	assert.Equal(t, OutcomeRejected, c.Outcome)
	assert.Equal(t, "path not found: src/store", c.Message)

	c = Begin("analyze_stores", nil)
	c.Finish(nil, errors.New("encode report: broken pipe"))
	assert.Equal(t, OutcomeFailed, c.Outcome)
	assert.Equal(t, "encode report: broken pipe", c.Message)
}

func TestCall_SetFields(t *testing.T) {
	c := Begin("analyze_components", map[string]any{"path": "src"})
	c.SetRecords(0)
	require.NotNil(t, c.Records)
	assert.Zero(t, *c.Records)

	c.SetGeneration(Generation{Kind: "types", FailedStage: "rendering"})
	require.NotNil(t, c.Generation)
	assert.Equal(t, "rendering", c.Generation.FailedStage)
}

func TestCall_NilIsNoOp(t *testing.T) {
	var c *Call
	assert.NotPanics(t, func() {
		c.SetRecords(3)
		c.SetGeneration(Generation{Kind: "all"})
		c.Finish(nil, nil)
	})
	assert.Nil(t, CallFrom(context.Background()))
}

func TestCallFrom(t *testing.T) {
	c := Begin("generate_html", nil)
	ctx := WithCall(context.Background(), c)
	CallFrom(ctx).SetRecords(7)
	require.NotNil(t, c.Records)
	assert.Equal(t, 7, *c.Records)
}
