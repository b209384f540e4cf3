package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNilContext      = errors.New("session context is nil")
	ErrEmptySessionID  = errors.New("session id is empty")
)

const (
	defaultKeyPrefix     = "krishi:session:"
	defaultTTL           = 12 * time.Hour
	maxResponseSizeBytes = 1 << 20
)

// Store is the persistence contract for session contexts.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Context, error)
	Save(ctx context.Context, sess *Context) error
	Delete(ctx context.Context, sessionID string) error
}

type RedisConfig struct {
	URL     string        `split_words:"true" required:"true"`
	Token   string        `split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
	TTL     time.Duration `split_words:"true" default:"12h"`
}

// StoreOption customizes RedisStore.
type StoreOption func(*RedisStore)

func WithKeyPrefix(prefix string) StoreOption {
	return func(s *RedisStore) {
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			s.keyPrefix = trimmed
		}
	}
}

func WithHTTPClient(httpClient *http.Client) StoreOption {
	return func(s *RedisStore) {
		if httpClient != nil {
			s.httpClient = httpClient
		}
	}
}

// RedisStore keeps session contexts in Upstash Redis via its REST interface.
// Sessions expire with the TTL; consultation requests never live here.
type RedisStore struct {
	baseURL    string
	token      string
	keyPrefix  string
	ttl        time.Duration
	httpClient *http.Client
}

type redisResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func NewRedisStore(cfg RedisConfig, opts ...StoreOption) (*RedisStore, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("redis rest url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("redis rest token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	store := &RedisStore{
		baseURL:   baseURL,
		token:     token,
		keyPrefix: defaultKeyPrefix,
		ttl:       ttl,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store, nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Context, error) {
	key, err := s.key(sessionID)
	if err != nil {
		return nil, err
	}

	resp, err := s.exec(ctx, []any{"GET", key})
	if err != nil {
		return nil, err
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return nil, ErrSessionNotFound
	}

	var encoded string
	if err := json.Unmarshal(result, &encoded); err != nil {
		return nil, fmt.Errorf("decode session payload: %w", err)
	}
	var sess Context
	if err := json.Unmarshal([]byte(encoded), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session context: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Context) error {
	if sess == nil {
		return ErrNilContext
	}
	key, err := s.key(sess.ID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session context: %w", err)
	}

	seconds := int64(s.ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	_, err = s.exec(ctx, []any{"SET", key, string(payload), "EX", seconds})
	return err
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	key, err := s.key(sessionID)
	if err != nil {
		return err
	}
	_, err = s.exec(ctx, []any{"DEL", key})
	return err
}

func (s *RedisStore) key(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", ErrEmptySessionID
	}
	return s.keyPrefix + sessionID, nil
}

func (s *RedisStore) exec(ctx context.Context, command []any) (*redisResponse, error) {
	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}
