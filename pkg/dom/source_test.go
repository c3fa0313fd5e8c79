package dom_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
)

const loaderPage = `<form class="login">
  <div data-validation="required" data-validation-type="email">
    <input type="email" name="email" value="ada@example.com">
    <div class="form-input__error"></div>
  </div>
</form>`

func TestLoaderLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.html")
	if err := os.WriteFile(path, []byte(loaderPage), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := dom.NewLoader().Load(context.Background(), dom.FileSource(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := doc.Form("form.login"); err != nil {
		t.Fatalf("expected parsed form, got %v", err)
	}
}

func TestLoaderLoadsFromFS(t *testing.T) {
	files := fstest.MapFS{
		"pages/login.html": {Data: []byte(loaderPage)},
	}

	loader := dom.NewLoader(dom.WithLoaderFS(files))
	doc, err := loader.Load(context.Background(), dom.FSSource("pages/login.html"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := doc.Form("form.login"); err != nil {
		t.Fatalf("expected parsed form, got %v", err)
	}
}

func TestLoaderFSRequiresFilesystem(t *testing.T) {
	_, err := dom.NewLoader().Load(context.Background(), dom.FSSource("login.html"))
	if err == nil || !strings.Contains(err.Error(), "no fs configured") {
		t.Fatalf("expected missing fs error, got %v", err)
	}
}

func TestLoaderLoadsURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(loaderPage))
	}))
	defer srv.Close()

	doc, err := dom.NewLoader().Load(context.Background(), dom.URLSource(srv.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := doc.Form("form.login"); err != nil {
		t.Fatalf("expected parsed form, got %v", err)
	}
}

func TestLoaderRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := dom.NewLoader().Load(context.Background(), dom.URLSource(srv.URL))
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoaderRejectsNilSource(t *testing.T) {
	if _, err := dom.NewLoader().Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestLoaderHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dom.NewLoader().Load(ctx, dom.FileSource("login.html"))
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
