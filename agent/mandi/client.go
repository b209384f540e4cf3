// Package mandi wraps the government market-price feed. The upstream is an
// independently operated service: this client owns its timeout and degrades
// to ErrUnavailable instead of surfacing transport faults, and an empty
// result set is a successful answer, not an error.
package mandi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrUnavailable = errors.New("price service unavailable")

const maxResponseSizeBytes = 2 << 20

type Config struct {
	URL     string        `split_words:"true" required:"true"`
	APIKey  string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Limit   int           `split_words:"true" default:"5"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// PriceQuery filters the feed. Commodity and State are canonical names from
// the validate package; Market is an optional refinement.
type PriceQuery struct {
	Commodity string
	State     string
	Market    string
}

// PriceQuote is one observed mandi price. Ephemeral: never persisted.
type PriceQuote struct {
	Commodity    string
	Variety      string
	Market       string
	District     string
	State        string
	PricePerUnit float64
	ObservedAt   time.Time
}

// ClientOption customizes Client.
type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client is a best-effort snapshot reader over the price feed. The upstream
// paginates and rate-limits; callers must not assume completeness.
type Client struct {
	baseURL    string
	apiKey     string
	limit      int
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.URL)
	if baseURL == "" {
		return nil, errors.New("mandi feed url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid mandi feed url: %w", err)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("mandi feed api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 5
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		limit:   limit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// feedRecord mirrors the upstream row shape. Unknown upstream fields are
// ignored and prices arrive as strings or numbers depending on the dataset
// revision, so the price fields decode through flexFloat.
type feedRecord struct {
	State       string    `json:"state"`
	District    string    `json:"district"`
	Market      string    `json:"market"`
	Commodity   string    `json:"commodity"`
	Variety     string    `json:"variety"`
	ArrivalDate string    `json:"arrival_date"`
	ModalPrice  flexFloat `json:"modal_price"`
}

type feedResponse struct {
	Count   int          `json:"count"`
	Records []feedRecord `json:"records"`
}

// FetchPrices queries the feed with the client's own timeout, independent of
// the caller's deadline. Timeouts, transport errors and non-success statuses
// all come back as ErrUnavailable; zero matching records is an empty slice
// with a nil error.
func (c *Client) FetchPrices(ctx context.Context, q PriceQuery) ([]PriceQuote, error) {
	if strings.TrimSpace(q.Commodity) == "" {
		return nil, errors.New("commodity is required")
	}

	params := url.Values{}
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("filters[commodity]", q.Commodity)
	if q.State != "" {
		params.Set("filters[state]", q.State)
	}
	if q.Market != "" {
		params.Set("filters[market]", q.Market)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: feed status=%d", ErrUnavailable, resp.StatusCode)
	}

	var parsed feedResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	quotes := make([]PriceQuote, 0, len(parsed.Records))
	for _, rec := range parsed.Records {
		// Records without a usable modal price ("NA", malformed, missing)
		// decode to zero; a zero price is never worth announcing.
		if rec.ModalPrice <= 0 {
			continue
		}
		quotes = append(quotes, PriceQuote{
			Commodity:    rec.Commodity,
			Variety:      rec.Variety,
			Market:       rec.Market,
			District:     rec.District,
			State:        rec.State,
			PricePerUnit: float64(rec.ModalPrice),
			ObservedAt:   parseArrivalDate(rec.ArrivalDate),
		})
	}
	return quotes, nil
}

// flexFloat decodes JSON numbers that may be quoted.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" || strings.EqualFold(s, "NA") {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

func parseArrivalDate(s string) time.Time {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
