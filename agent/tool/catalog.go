// Package tool implements the dispatch seam between the conversational layer
// and the backend: a fixed catalog of named tools, schema-checked argument
// binding, and rendering of every outcome into a single speakable string.
package tool

// Tool names understood by the dispatcher. The set is fixed: the
// conversational layer may not invent new ones.
const (
	ToolCreateQuery     = "create_query"
	ToolCheckStatus     = "check_status"
	ToolCheckCropPrices = "check_crop_prices"
)

// Info describes one tool for the conversational layer. Parameters is a
// minimal JSON-Schema-shaped map, ready to be translated into whatever the
// function-calling API of the session wants.
type Info struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Infos returns the catalog in a stable order.
func Infos() []Info {
	return []Info{
		{
			Name:        ToolCreateQuery,
			Description: "Create a consultation request to connect the farmer with an agricultural expert. Returns a tracking code.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string", "description": "Farmer's name"},
					"mobile":      map[string]any{"type": "string", "description": "Farmer's mobile number"},
					"location":    map[string]any{"type": "string", "description": "Village, district and state"},
					"description": map[string]any{"type": "string", "description": "What help is needed"},
				},
				"required": []string{"name", "mobile", "location", "description"},
			},
		},
		{
			Name:        ToolCheckStatus,
			Description: "Check the status of a consultation request using its 6 character tracking code.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"request_code": map[string]any{"type": "string", "description": "6 character tracking code, e.g. A1B2C3"},
				},
				"required": []string{"request_code"},
			},
		},
		{
			Name:        ToolCheckCropPrices,
			Description: "Get current market prices for a crop from government mandis.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"commodity": map[string]any{"type": "string", "description": "Crop name, e.g. Onion, Wheat"},
					"state":     map[string]any{"type": "string", "description": "State name or abbreviation, optional"},
					"market":    map[string]any{"type": "string", "description": "Market or city name, optional"},
				},
				"required": []string{"commodity"},
			},
		},
	}
}
