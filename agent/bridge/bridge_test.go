package bridge

import (
	"context"
	"testing"

	"github.com/openai/openai-go"

	contractx "github.com/krishivaani/krishivaani/agent/contract"
	sessionx "github.com/krishivaani/krishivaani/agent/session"
	toolx "github.com/krishivaani/krishivaani/agent/tool"
)

func TestToolParamsMirrorCatalog(t *testing.T) {
	t.Parallel()

	params := ToolParams()
	infos := toolx.Infos()
	if len(params) != len(infos) {
		t.Fatalf("len(params) = %d, want %d", len(params), len(infos))
	}
	for i, p := range params {
		if p.Function.Name != infos[i].Name {
			t.Fatalf("params[%d].Function.Name = %q, want %q", i, p.Function.Name, infos[i].Name)
		}
		if len(p.Function.Parameters) == 0 {
			t.Fatalf("params[%d] has empty schema", i)
		}
	}
}

func TestParseToolCalls(t *testing.T) {
	t.Parallel()

	msg := openai.ChatCompletionMessage{
		ToolCalls: []openai.ChatCompletionMessageToolCall{
			{
				ID: "call_1",
				Function: openai.ChatCompletionMessageToolCallFunction{
					Name:      toolx.ToolCheckStatus,
					Arguments: `{"request_code":"A1B2C3"}`,
				},
			},
		},
	}

	reqs := ParseToolCalls(msg)
	if len(reqs) != 1 {
		t.Fatalf("len(reqs) = %d, want 1", len(reqs))
	}
	if reqs[0].CallID != "call_1" || reqs[0].Tool != toolx.ToolCheckStatus {
		t.Fatalf("unexpected request: %+v", reqs[0])
	}
	if got := reqs[0].Args["request_code"]; got != "A1B2C3" {
		t.Fatalf("args[request_code] = %v, want A1B2C3", got)
	}
}

func TestParseToolCallsMalformedArguments(t *testing.T) {
	t.Parallel()

	msg := openai.ChatCompletionMessage{
		ToolCalls: []openai.ChatCompletionMessageToolCall{
			{
				ID: "call_2",
				Function: openai.ChatCompletionMessageToolCallFunction{
					Name:      toolx.ToolCreateQuery,
					Arguments: `{"name": "Raj`,
				},
			},
		},
	}

	reqs := ParseToolCalls(msg)
	if len(reqs) != 1 {
		t.Fatalf("len(reqs) = %d, want 1", len(reqs))
	}
	// The dispatcher turns nil args into a corrective prompt; the call must
	// still reach it rather than being dropped here.
	if reqs[0].Args != nil {
		t.Fatalf("args = %v, want nil for malformed JSON", reqs[0].Args)
	}
}

func TestParseToolCallsEmptyMessage(t *testing.T) {
	t.Parallel()

	if got := ParseToolCalls(openai.ChatCompletionMessage{}); got != nil {
		t.Fatalf("ParseToolCalls() = %v, want nil", got)
	}
}

type fakeDispatcher struct {
	reqs []contractx.ToolRequest
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, sess *sessionx.Context, req contractx.ToolRequest) contractx.ToolResult {
	f.reqs = append(f.reqs, req)
	return contractx.ToolResult{
		CallID: req.CallID,
		Tool:   req.Tool,
		Speech: "done " + req.CallID,
	}
}

func TestExecuteToolCalls(t *testing.T) {
	t.Parallel()

	msg := openai.ChatCompletionMessage{
		ToolCalls: []openai.ChatCompletionMessageToolCall{
			{
				ID: "call_a",
				Function: openai.ChatCompletionMessageToolCallFunction{
					Name:      toolx.ToolCheckStatus,
					Arguments: `{"request_code":"A1B2C3"}`,
				},
			},
			{
				ID: "call_b",
				Function: openai.ChatCompletionMessageToolCallFunction{
					Name:      toolx.ToolCheckCropPrices,
					Arguments: `{"commodity":"onion"}`,
				},
			},
		},
	}

	d := &fakeDispatcher{}
	out := ExecuteToolCalls(context.Background(), d, nil, msg)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if len(d.reqs) != 2 || d.reqs[0].CallID != "call_a" || d.reqs[1].Tool != toolx.ToolCheckCropPrices {
		t.Fatalf("unexpected dispatched requests: %+v", d.reqs)
	}
}
