package submit_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/vitalishapovalov/html-form-validation/pkg/submit"
)

func TestResolveVariants(t *testing.T) {
	ctx := context.Background()

	cfg, err := submit.Resolve(ctx, nil, nil)
	if err != nil {
		t.Fatalf("nil ajax: %v", err)
	}
	if cfg.Enabled() {
		t.Fatalf("nil ajax must disable submission, got %+v", cfg)
	}

	static := submit.Config{URL: "https://api.example.com/signup"}
	cfg, err = submit.Resolve(ctx, static, nil)
	if err != nil {
		t.Fatalf("static config: %v", err)
	}
	if cfg.URL != static.URL {
		t.Fatalf("expected static config back, got %+v", cfg)
	}

	var produced bool
	provider := submit.Provider(func(_ context.Context, _ any) (submit.Config, error) {
		produced = true
		return submit.Config{URL: "https://api.example.com/late"}, nil
	})
	cfg, err = submit.Resolve(ctx, provider, nil)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	if !produced || cfg.URL != "https://api.example.com/late" {
		t.Fatalf("expected produced config, got %+v", cfg)
	}

	if _, err := submit.Resolve(ctx, 42, nil); err == nil {
		t.Fatalf("expected error for unsupported ajax value")
	}
}

func TestResolveWrapsProviderErrors(t *testing.T) {
	provider := submit.Provider(func(_ context.Context, _ any) (submit.Config, error) {
		return submit.Config{}, errors.New("not ready")
	})

	_, err := submit.Resolve(context.Background(), provider, nil)
	if !errors.Is(err, submit.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestResolveAcceptsBareFunc(t *testing.T) {
	fn := func(_ context.Context, _ any) (submit.Config, error) {
		return submit.Config{URL: "https://api.example.com"}, nil
	}

	cfg, err := submit.Resolve(context.Background(), fn, nil)
	if err != nil {
		t.Fatalf("bare func: %v", err)
	}
	if cfg.URL != "https://api.example.com" {
		t.Fatalf("expected produced config, got %+v", cfg)
	}
}

func TestHTTPTransportPostsForm(t *testing.T) {
	var (
		gotMethod string
		gotBody   string
		gotCT     string
		gotHeader string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod = r.Method
		gotBody = string(body)
		gotCT = r.Header.Get("Content-Type")
		gotHeader = r.Header.Get("X-Requested-With")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	transport := &submit.HTTPTransport{Client: server.Client()}
	form := url.Values{"name": {"Jo"}, "terms": {"yes"}}
	cfg := submit.Config{
		URL:    server.URL,
		Header: http.Header{"X-Requested-With": {"XMLHttpRequest"}},
	}

	if err := transport.Send(context.Background(), cfg, form); err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST default, got %s", gotMethod)
	}
	if gotBody != form.Encode() {
		t.Fatalf("expected serialized form body, got %q", gotBody)
	}
	if gotCT != "application/x-www-form-urlencoded" {
		t.Fatalf("content type: %q", gotCT)
	}
	if gotHeader != "XMLHttpRequest" {
		t.Fatalf("custom header lost: %q", gotHeader)
	}
}

func TestHTTPTransportConfigDataWinsOverForm(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
	}))
	defer server.Close()

	transport := &submit.HTTPTransport{Client: server.Client()}
	cfg := submit.Config{
		URL:  server.URL,
		Data: url.Values{"override": {"1"}},
	}

	if err := transport.Send(context.Background(), cfg, url.Values{"name": {"Jo"}}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotBody != "override=1" {
		t.Fatalf("explicit data must replace the form, got %q", gotBody)
	}
}

func TestHTTPTransportRejectsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	transport := &submit.HTTPTransport{Client: server.Client()}
	err := transport.Send(context.Background(), submit.Config{URL: server.URL}, nil)
	if err == nil {
		t.Fatalf("expected error for 502 response")
	}
}

func TestHTTPTransportHonorsTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	transport := &submit.HTTPTransport{Client: server.Client()}
	cfg := submit.Config{URL: server.URL, Timeout: 20 * time.Millisecond}

	start := time.Now()
	err := transport.Send(context.Background(), cfg, nil)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout took too long: %v", elapsed)
	}
}
