package tool

import (
	"errors"
	"fmt"
	"strings"
	"time"

	contractx "github.com/krishivaani/krishivaani/agent/contract"
	mandix "github.com/krishivaani/krishivaani/agent/mandi"
	queryx "github.com/krishivaani/krishivaani/agent/query"
	validatex "github.com/krishivaani/krishivaani/agent/validate"
)

// Rendering turns every outcome into one natural-language-ready string. The
// conversational layer reads these verbatim, so they must stand alone: no
// structured payloads, no raw error text.

const maxSpokenQuotes = 3

// Mandis run on IST regardless of where the process runs.
var indiaTZ = time.FixedZone("IST", 5*3600+30*60)

// spellCode spaces out the code so the voice rendering reads it letter by
// letter ("A 1 B 2 C 3").
func spellCode(code string) string {
	return strings.Join(strings.Split(code, ""), " ")
}

func renderBadArgument(err error) string {
	switch {
	case strings.Contains(err.Error(), "name"):
		return "Please tell me your name."
	case strings.Contains(err.Error(), "mobile"):
		return "Please tell me your mobile number."
	case strings.Contains(err.Error(), "location"):
		return "Please tell me your location."
	case strings.Contains(err.Error(), "description"):
		return "Please describe what help you need."
	case strings.Contains(err.Error(), "request_code"):
		return "Please provide a valid 6 character tracking code."
	case strings.Contains(err.Error(), "commodity"):
		return "Please tell me which crop you want prices for."
	default:
		return "Sorry, I didn't catch that. Could you repeat?"
	}
}

func renderCreateError(err error) string {
	switch {
	case errors.Is(err, validatex.ErrMissingName):
		return "Please provide your name."
	case errors.Is(err, validatex.ErrInvalidMobile):
		return "Please provide a valid mobile number. It should be 10 digits starting with 6, 7, 8 or 9."
	case errors.Is(err, validatex.ErrMissingLocation):
		return "Please provide your location."
	case errors.Is(err, validatex.ErrShortDescription):
		return "Please describe what help you need in a little more detail."
	case errors.Is(err, contractx.ErrValidation):
		return "Some of the details look incorrect. Could we go through them again?"
	case errors.Is(err, queryx.ErrCodeSpaceBusy):
		return "The request system is very busy right now. Please try again in a moment."
	default:
		return "Sorry, there was an error creating your request. Please try again, or contact support if the issue persists."
	}
}

func renderCommodityError(rawCommodity string, err error) string {
	if errors.Is(err, validatex.ErrMissingCommodity) {
		return "Please tell me which crop you want prices for."
	}
	available := strings.Join(validatex.Commodities[:10], ", ")
	return fmt.Sprintf("Crop %q is not supported. Available crops include %s and more.", rawCommodity, available)
}

func renderStatus(q *queryx.ConsultationRequest) string {
	var statusMsg string
	switch q.Status {
	case queryx.StatusPending:
		statusMsg = "Your request is pending. An expert will contact you soon."
	case queryx.StatusAssigned:
		expert := q.ExpertAssigned
		if expert == "" {
			expert = "an agricultural expert"
		}
		statusMsg = fmt.Sprintf("Your request is assigned. Expert assigned: %s.", expert)
	case queryx.StatusCompleted:
		statusMsg = "Your request has been completed."
	default:
		statusMsg = fmt.Sprintf("Your request status is %s.", q.Status)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Request code %s for %s. %s Created on %s.",
		spellCode(q.TrackingCode), q.Name, statusMsg,
		q.CreatedAt.UTC().Format("2 January 2006"))
	if q.Notes != "" {
		fmt.Fprintf(&b, " Notes: %s", q.Notes)
	}
	return b.String()
}

func renderQuotes(commodity, state, market string, quotes []mandix.PriceQuote, now time.Time) string {
	location := state
	if market != "" && location != "" {
		location = market + ", " + state
	} else if market != "" {
		location = market
	}

	if len(quotes) == 0 {
		return renderNoQuotes(commodity, location, now)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are %s prices", commodity)
	if location != "" {
		fmt.Fprintf(&b, " for %s", location)
	}
	b.WriteString(". ")

	spoken := quotes
	if len(spoken) > maxSpokenQuotes {
		spoken = spoken[:maxSpokenQuotes]
	}
	for i, quote := range spoken {
		fmt.Fprintf(&b, "%d: %s", i+1, quote.Market)
		if quote.District != "" {
			fmt.Fprintf(&b, " in %s", quote.District)
		}
		fmt.Fprintf(&b, ", ₹%.0f per quintal", quote.PricePerUnit)
		if quote.Variety != "" {
			fmt.Fprintf(&b, " for %s variety", quote.Variety)
		}
		b.WriteString(". ")
	}
	if remaining := len(quotes) - len(spoken); remaining > 0 {
		fmt.Fprintf(&b, "And %d more records are available. ", remaining)
	}
	b.WriteString("Note: prices are from government mandis and may vary.")
	return b.String()
}

func renderNoQuotes(commodity, location string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "No price data found for %s", commodity)
	if location != "" {
		fmt.Fprintf(&b, " in %s", location)
	}
	b.WriteString(" today.")

	switch now.In(indiaTZ).Weekday() {
	case time.Sunday:
		b.WriteString(" Today is Sunday and government mandis are closed, which is likely why no fresh data is available. Please try again on Monday.")
	case time.Saturday:
		b.WriteString(" Today is Saturday and many government mandis have limited operations. Please try again on Monday for current prices.")
	default:
		b.WriteString(" Try a different market or check again tomorrow.")
	}
	return b.String()
}
