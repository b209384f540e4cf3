package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/krishivaani/krishivaani/agent/contract"
	mandix "github.com/krishivaani/krishivaani/agent/mandi"
	queryx "github.com/krishivaani/krishivaani/agent/query"
	sessionx "github.com/krishivaani/krishivaani/agent/session"
	validatex "github.com/krishivaani/krishivaani/agent/validate"
)

// QueryStore is the dispatcher's view of the consultation ledger. The
// dispatcher is the only component allowed to mutate it on the voice path.
type QueryStore interface {
	Create(ctx context.Context, q queryx.NewQuery) (string, error)
	Get(ctx context.Context, trackingCode string) (*queryx.ConsultationRequest, error)
}

// PriceSource is the dispatcher's view of the market-price gateway.
type PriceSource interface {
	FetchPrices(ctx context.Context, q mandix.PriceQuery) ([]mandix.PriceQuote, error)
}

// Dispatcher routes tool requests to the backing components and renders a
// uniform speakable envelope. It holds no per-call state; per-session facts
// travel in the session context passed to Dispatch.
type Dispatcher struct {
	queries QueryStore
	prices  PriceSource
	now     func() time.Time
}

func NewDispatcher(queries QueryStore, prices PriceSource) (*Dispatcher, error) {
	if queries == nil {
		return nil, errors.New("query store is required")
	}
	if prices == nil {
		return nil, errors.New("price source is required")
	}
	return &Dispatcher{
		queries: queries,
		prices:  prices,
		now:     time.Now,
	}, nil
}

// Dispatch resolves, binds, invokes and renders a single tool call. It never
// returns an unhandled fault: whatever happens, ToolResult.Speech is a
// complete sentence the conversational layer can read aloud, and
// ToolResult.Err carries the classified failure for logging only.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *sessionx.Context, req contractx.ToolRequest) contractx.ToolResult {
	start := d.now()

	var res contractx.ToolResult
	switch req.Tool {
	case ToolCreateQuery:
		res = d.createQuery(ctx, sess, req.Args)
	case ToolCheckStatus:
		res = d.checkStatus(ctx, sess, req.Args)
	case ToolCheckCropPrices:
		res = d.checkCropPrices(ctx, req.Args)
	default:
		res = contractx.ToolResult{
			Speech: "Sorry, I can't do that. I can create an expert request, check its status, or check crop prices.",
			Err:    fmt.Errorf("%w: %s", contractx.ErrUnknownTool, req.Tool),
		}
	}

	res.Tool = req.Tool
	res.CallID = req.CallID

	evt := log.Info()
	if res.Err != nil {
		evt = log.Warn().Err(res.Err)
	}
	evt.Str("tool", req.Tool).
		Dur("duration", d.now().Sub(start)).
		Msg("tool dispatched")
	return res
}

func (d *Dispatcher) createQuery(ctx context.Context, sess *sessionx.Context, args map[string]any) contractx.ToolResult {
	name, err := stringArg(args, "name")
	if err != nil {
		return badArgs(err)
	}
	mobile, err := stringArg(args, "mobile")
	if err != nil {
		return badArgs(err)
	}
	location, err := stringArg(args, "location")
	if err != nil {
		return badArgs(err)
	}
	description, err := stringArg(args, "description")
	if err != nil {
		return badArgs(err)
	}

	code, err := d.queries.Create(ctx, queryx.NewQuery{
		Name:        name,
		Mobile:      mobile,
		Location:    location,
		Description: description,
	})
	if err != nil {
		return contractx.ToolResult{Speech: renderCreateError(err), Err: err}
	}

	if sess != nil {
		sess.LastTrackingCode = code
		sess.Touch(d.now())
	}
	return contractx.ToolResult{
		Speech: fmt.Sprintf(
			"Thank you %s! Your request has been created successfully. Your tracking code is %s. To check status, say: check status %s.",
			name, spellCode(code), spellCode(code)),
	}
}

func (d *Dispatcher) checkStatus(ctx context.Context, sess *sessionx.Context, args map[string]any) contractx.ToolResult {
	rawCode, err := optionalStringArg(args, "request_code")
	if err != nil {
		return badArgs(err)
	}
	if rawCode == "" && sess != nil {
		rawCode = sess.LastTrackingCode
	}

	code := queryx.NormalizeCode(rawCode)
	if !queryx.ValidCode(code) {
		return badArgs(fmt.Errorf("%w: request_code must be a 6 character code", contractx.ErrBadArgument))
	}

	q, err := d.queries.Get(ctx, code)
	if errors.Is(err, queryx.ErrNotFound) {
		return contractx.ToolResult{
			Speech: fmt.Sprintf("No request found with code %s. Please check your code.", spellCode(code)),
			Err:    err,
		}
	}
	if err != nil {
		return contractx.ToolResult{
			Speech: "Sorry, there was an error checking your request status. Please try again.",
			Err:    err,
		}
	}

	return contractx.ToolResult{Speech: renderStatus(q)}
}

func (d *Dispatcher) checkCropPrices(ctx context.Context, args map[string]any) contractx.ToolResult {
	rawCommodity, err := stringArg(args, "commodity")
	if err != nil {
		return badArgs(err)
	}
	rawState, err := optionalStringArg(args, "state")
	if err != nil {
		return badArgs(err)
	}
	rawMarket, err := optionalStringArg(args, "market")
	if err != nil {
		return badArgs(err)
	}

	commodity, err := validatex.Commodity(rawCommodity)
	if err != nil {
		return contractx.ToolResult{Speech: renderCommodityError(rawCommodity, err), Err: err}
	}
	state, err := validatex.State(rawState)
	if err != nil {
		return contractx.ToolResult{
			Speech: fmt.Sprintf("State %q is not recognized. Please use the full state name or an abbreviation like UP or Maharashtra.", rawState),
			Err:    err,
		}
	}
	market := validatex.Market(rawMarket)

	quotes, err := d.prices.FetchPrices(ctx, mandix.PriceQuery{
		Commodity: commodity,
		State:     state,
		Market:    market,
	})
	if errors.Is(err, mandix.ErrUnavailable) {
		return contractx.ToolResult{
			Speech: "Unable to fetch current prices. The price service may be temporarily unavailable, please try again later.",
			Err:    err,
		}
	}
	if err != nil {
		return contractx.ToolResult{
			Speech: "Sorry, there was an error checking crop prices. Please try again.",
			Err:    err,
		}
	}

	return contractx.ToolResult{Speech: renderQuotes(commodity, state, market, quotes, d.now())}
}

func badArgs(err error) contractx.ToolResult {
	return contractx.ToolResult{Speech: renderBadArgument(err), Err: err}
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", contractx.ErrBadArgument, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", contractx.ErrBadArgument, key)
	}
	return s, nil
}

func optionalStringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", contractx.ErrBadArgument, key)
	}
	return s, nil
}
