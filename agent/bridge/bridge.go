// Package bridge translates between the openai-go function-calling wire
// format used by the conversational layer and the backend's tool contract.
// It confines the loosely-typed JSON handling to this one seam: everything
// past it works with typed requests and speakable results.
package bridge

import (
	"context"
	"encoding/json"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/krishivaani/krishivaani/agent/contract"
	sessionx "github.com/krishivaani/krishivaani/agent/session"
	toolx "github.com/krishivaani/krishivaani/agent/tool"
)

// ToolParams exposes the dispatcher's catalog as chat-completion tool
// declarations for the voice session.
func ToolParams() []openai.ChatCompletionToolParam {
	infos := toolx.Infos()
	params := make([]openai.ChatCompletionToolParam, 0, len(infos))
	for _, info := range infos {
		params = append(params, openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        info.Name,
				Description: openai.String(info.Description),
				Parameters:  openai.FunctionParameters(info.Parameters),
			},
		})
	}
	return params
}

// ParseToolCalls extracts tool requests from an assistant message. Malformed
// argument JSON yields a request with nil args; the dispatcher then renders
// the corrective prompt instead of the call failing silently here.
func ParseToolCalls(msg openai.ChatCompletionMessage) []contractx.ToolRequest {
	if len(msg.ToolCalls) == 0 {
		return nil
	}

	reqs := make([]contractx.ToolRequest, 0, len(msg.ToolCalls))
	for _, call := range msg.ToolCalls {
		req := contractx.ToolRequest{
			CallID: call.ID,
			Tool:   call.Function.Name,
		}
		if raw := call.Function.Arguments; raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Args); err != nil {
				log.Warn().
					Str("tool", call.Function.Name).
					Err(err).
					Msg("malformed tool call arguments")
				req.Args = nil
			}
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// ResultMessage wraps a dispatcher result as the tool message fed back into
// the conversation.
func ResultMessage(res contractx.ToolResult) openai.ChatCompletionMessageParamUnion {
	return openai.ToolMessage(res.Speech, res.CallID)
}

// ExecuteToolCalls runs every tool call in an assistant message through the
// dispatcher and returns the tool messages to feed back into the session,
// in call order.
func ExecuteToolCalls(
	ctx context.Context,
	d contractx.Dispatcher,
	sess *sessionx.Context,
	msg openai.ChatCompletionMessage,
) []openai.ChatCompletionMessageParamUnion {
	reqs := ParseToolCalls(msg)
	if len(reqs) == 0 {
		return nil
	}

	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, ResultMessage(d.Dispatch(ctx, sess, req)))
	}
	return out
}
