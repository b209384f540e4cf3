package validate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Commodities supported by the government mandi feed.
var Commodities = []string{
	"Apple", "Banana", "Bhindi(Ladies Finger)", "Brinjal", "Cabbage", "Carrot",
	"Cauliflower", "Corn", "Garlic", "Ginger", "Grapes", "Lemon", "Mango",
	"Onion", "Orange", "Papaya", "Potato", "Rice", "Soyabean", "Tomato", "Wheat",
}

// states is ordered: partial matching scans it front to back, so ambiguous
// input ("uttar") always resolves to the same state.
var states = []struct{ abbrev, name string }{
	{"ap", "Andhra Pradesh"}, {"ar", "Arunachal Pradesh"}, {"as", "Assam"}, {"br", "Bihar"},
	{"cg", "Chhattisgarh"}, {"dl", "NCT of Delhi"}, {"ga", "Goa"}, {"gj", "Gujarat"},
	{"hr", "Haryana"}, {"hp", "Himachal Pradesh"}, {"jh", "Jharkhand"}, {"ka", "Karnataka"},
	{"kl", "Kerala"}, {"mp", "Madhya Pradesh"}, {"mh", "Maharashtra"}, {"mn", "Manipur"},
	{"ml", "Meghalaya"}, {"mz", "Mizoram"}, {"nl", "Nagaland"}, {"od", "Odisha"},
	{"pb", "Punjab"}, {"rj", "Rajasthan"}, {"sk", "Sikkim"}, {"tn", "Tamil Nadu"},
	{"ts", "Telangana"}, {"tr", "Tripura"}, {"up", "Uttar Pradesh"}, {"uk", "Uttarakhand"},
	{"wb", "West Bengal"},
}

var titleCaser = cases.Title(language.English)

// Commodity resolves voice-derived commodity names to the canonical feed
// name. Matching is forgiving: exact, substring in either direction, or the
// name with its parenthetical qualifier dropped ("bhindi" matches
// "Bhindi(Ladies Finger)").
func Commodity(s string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(s))
	if q == "" {
		return "", ErrMissingCommodity
	}

	for _, canonical := range Commodities {
		lower := strings.ToLower(canonical)
		base := strings.TrimSpace(strings.SplitN(lower, "(", 2)[0])
		if q == lower || q == base ||
			strings.Contains(lower, q) || strings.Contains(q, lower) {
			return canonical, nil
		}
	}
	return "", ErrUnknownCommodity
}

// State resolves full names, two-letter abbreviations, and partial matches
// to the feed's state spelling. Empty input is a valid "no refinement".
func State(s string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(s))
	if q == "" {
		return "", nil
	}

	for _, st := range states {
		if strings.ToLower(st.name) == q {
			return st.name, nil
		}
	}
	for _, st := range states {
		if st.abbrev == q {
			return st.name, nil
		}
	}
	for _, st := range states {
		if strings.Contains(strings.ToLower(st.name), q) {
			return st.name, nil
		}
	}
	return "", ErrUnknownState
}

// Market title-cases the optional market refinement. No registry exists for
// markets, so anything non-empty is accepted.
func Market(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	return titleCaser.String(trimmed)
}
