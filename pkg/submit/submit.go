package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrRejected reports that an options producer refused to provide a request.
// The validator logs it and skips the transport; it never surfaces to the
// caller of a validation pass.
var ErrRejected = errors.New("submit: options producer rejected")

// Config describes the follow-up request sent after a form validates. The
// zero value disables submission.
type Config struct {
	URL     string
	Method  string
	Header  http.Header
	Data    url.Values
	Timeout time.Duration
}

// Enabled reports whether the config names a destination.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// Provider produces submission options once the form validated. It receives
// the validator that ran the pass so producers can inspect form state. This
// is the single asynchronous point of a pass.
type Provider func(ctx context.Context, source any) (Config, error)

// Resolve turns the configured ajax value into a Config. Accepted values:
// nil (disabled), Config, *Config, and Provider. A producer error is wrapped
// in ErrRejected.
func Resolve(ctx context.Context, ajax any, source any) (Config, error) {
	switch v := ajax.(type) {
	case nil:
		return Config{}, nil
	case Config:
		return v, nil
	case *Config:
		if v == nil {
			return Config{}, nil
		}
		return *v, nil
	case Provider:
		return invoke(ctx, v, source)
	case func(ctx context.Context, source any) (Config, error):
		return invoke(ctx, v, source)
	default:
		return Config{}, fmt.Errorf("submit: unsupported ajax value %T", ajax)
	}
}

func invoke(ctx context.Context, provider Provider, source any) (Config, error) {
	cfg, err := provider(ctx, source)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return cfg, nil
}

// Transport delivers the resolved request. Implementations must honor ctx.
type Transport interface {
	Send(ctx context.Context, cfg Config, form url.Values) error
}

// HTTPTransport posts the form as an urlencoded body using a stock HTTP
// client. Config.Data, when set, replaces the serialized form values.
type HTTPTransport struct {
	Client *http.Client
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, cfg Config, form url.Values) error {
	if !cfg.Enabled() {
		return errors.New("submit: url is required")
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	method := cfg.Method
	if method == "" {
		method = http.MethodPost
	}

	payload := cfg.Data
	if len(payload) == 0 {
		payload = form
	}

	var body io.Reader
	if len(payload) > 0 {
		body = strings.NewReader(payload.Encode())
	}

	req, err := http.NewRequestWithContext(reqCtx, method, cfg.URL, body)
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	for name, values := range cfg.Header {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New("submit: unexpected status " + resp.Status)
	}
	return nil
}
