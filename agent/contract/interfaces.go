package contract

import (
	"context"

	sessionx "github.com/krishivaani/krishivaani/agent/session"
)

// Dispatcher is the single seam between conversational input and stateful
// effects. Implementations must never return an unhandled fault: every
// outcome is rendered into ToolResult.Speech.
type Dispatcher interface {
	Dispatch(ctx context.Context, sess *sessionx.Context, req ToolRequest) ToolResult
}
