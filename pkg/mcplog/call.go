// Package mcplog keeps a JSONL journal of MCP tool calls: the path or
// project each call worked on, how long it took and what it produced.
package mcplog

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// Outcome classifies how a call ended.
type Outcome string

const (
	OutcomeOK Outcome = "ok"
	// OutcomeRejected means the tool answered with an error result, e.g. a
	// missing project directory.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means the handler itself returned an error.
	OutcomeFailed Outcome = "failed"
)

// Generation is what a generate_html call produced, or the stage it stopped
// in.
type Generation struct {
	Kind        string `json:"kind"`
	Output      string `json:"output,omitempty"`
	Bytes       int    `json:"bytes,omitempty"`
	Components  int    `json:"components"`
	Types       int    `json:"types"`
	Stores      int    `json:"stores"`
	FailedStage string `json:"failed_stage,omitempty"`
}

// Call is one journal line. Handlers add what they learned through the
// Set methods; every method is a no-op on a nil Call.
type Call struct {
	Time       time.Time   `json:"time"`
	Tool       string      `json:"tool"`
	Target     string      `json:"target,omitempty"`
	ElapsedMs  int64       `json:"elapsed_ms"`
	Outcome    Outcome     `json:"outcome"`
	Message    string      `json:"message,omitempty"`
	Records    *int        `json:"records,omitempty"`
	Generation *Generation `json:"generation,omitempty"`
}

// Now is a replaceable clock for testing.
var Now = time.Now

// Begin starts a call record. The target is the "project" argument, or
// "path" for the analyze tools.
func Begin(tool string, args map[string]any) *Call {
	c := &Call{Time: Now().UTC(), Tool: tool}
	for _, key := range []string{"project", "path"} {
		if s, ok := args[key].(string); ok && s != "" {
			c.Target = s
			break
		}
	}
	return c
}

// SetRecords records how many records an analysis returned.
func (c *Call) SetRecords(n int) {
	if c == nil {
		return
	}
	c.Records = &n
}

// SetGeneration records the outcome of a generation.
func (c *Call) SetGeneration(g Generation) {
	if c == nil {
		return
	}
	c.Generation = &g
}

// Finish stamps the elapsed time and the outcome of result and err.
func (c *Call) Finish(result *mcp.CallToolResult, err error) {
	if c == nil {
		return
	}
	c.ElapsedMs = Now().Sub(c.Time).Milliseconds()
	switch {
	case err != nil:
		c.Outcome = OutcomeFailed
		c.Message = err.Error()
	case result != nil && result.IsError:
		c.Outcome = OutcomeRejected
		c.Message = firstText(result)
	default:
		c.Outcome = OutcomeOK
	}
}

func firstText(result *mcp.CallToolResult) string {
	for _, content := range result.Content {
		switch t := content.(type) {
		case mcp.TextContent:
			return t.Text
		case *mcp.TextContent:
			return t.Text
		}
	}
	return ""
}

type callKey struct{}

// WithCall returns a context carrying c.
func WithCall(ctx context.Context, c *Call) context.Context {
	return context.WithValue(ctx, callKey{}, c)
}

// CallFrom returns the call carried by ctx, or nil.
func CallFrom(ctx context.Context) *Call {
	c, _ := ctx.Value(callKey{}).(*Call)
	return c
}
