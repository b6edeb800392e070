package apiimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/ratelimit"
	"github.com/dvnguyen/socialapp-client/pkg/config"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Tokens  api.TokenSource
	Limiter ratelimit.Limiter
}

type ApiImpl struct {
	baseURL string
	http    *http.Client
	tokens  api.TokenSource
	limiter ratelimit.Limiter
	logger  logger.Logger

	mu             sync.Mutex
	onUnauthorized func()
}

func New(opts Opts) *ApiImpl {
	a := &ApiImpl{
		baseURL: strings.TrimRight(opts.Config.API.BaseURL, "/"),
		tokens:  opts.Tokens,
		limiter: opts.Limiter,
		logger:  opts.Logger.WithComponent("ApiClient"),
	}
	a.http = &http.Client{
		Timeout:   opts.Config.API.Timeout,
		Transport: &authTransport{base: http.DefaultTransport, tokens: opts.Tokens},
	}
	return a
}

var _ api.Client = (*ApiImpl)(nil)

func (a *ApiImpl) SetUnauthorizedHook(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUnauthorized = fn
}

func (a *ApiImpl) unauthorized() {
	a.mu.Lock()
	fn := a.onUnauthorized
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// authTransport attaches the bearer credential to every outgoing request,
// unless the caller already set one.
type authTransport struct {
	base   http.RoundTripper
	tokens api.TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" {
		if token := t.tokens.Token(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return t.base.RoundTrip(req)
}

// errorEnvelope is the error payload shape the API uses.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// do issues a JSON request and decodes the response into out (when non-nil).
// Non-2xx responses are mapped onto the pkg/errors taxonomy, carrying the
// server's message so the caller can surface it verbatim.
func (a *ApiImpl) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := a.limiter.Wait(ctx, routeKey(path)); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := a.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "failed to decode response")
		}
		return nil
	}

	var env errorEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	message := env.Message
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		a.logger.Warn("Received 401, forcing logout", "path", path)
		a.unauthorized()
	}

	return &errors.Error{
		Code:    strconv.Itoa(resp.StatusCode),
		Message: message,
		Err:     sentinelFor(resp.StatusCode),
	}
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.ErrValidation
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusServiceUnavailable:
		return errors.ErrUnavailable
	default:
		return errors.ErrServer
	}
}

// routeKey buckets requests for the rate limiter by top-level API group.
func routeKey(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}
