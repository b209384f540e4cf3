package contract

// ToolRequest is one discrete backend action extracted from free-form
// conversational input. It has no identity beyond the call itself.
type ToolRequest struct {
	// CallID correlates the request with the conversational layer's
	// function-call message. Optional.
	CallID string         `json:"call_id,omitempty"`
	Tool   string         `json:"tool"`
	Args   map[string]any `json:"args,omitempty"`
}

// ToolResult is the dispatcher's answer to a ToolRequest. Speech is a single
// natural-language-ready string the conversational layer can read aloud
// without further interpretation; it is populated on failure too, so callers
// never need to branch on Err to have something to say.
type ToolResult struct {
	CallID string `json:"call_id,omitempty"`
	Tool   string `json:"tool"`
	Speech string `json:"speech"`
	// Err carries the classified failure for logging and metrics. Never
	// exposed to the requester verbatim.
	Err error `json:"-"`
}
