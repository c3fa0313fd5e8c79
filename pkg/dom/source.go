package dom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// defaultRequestTimeout bounds URL fetches when the caller supplies neither a
// client timeout nor a deadline on the context.
const defaultRequestTimeout = 30 * time.Second

// Source identifies where a markup document originates so loaders can fetch
// pages from disk, an fs.FS, or a URL without leaking the access mechanism.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Kind() SourceKind { return SourceKindFile }

func (s fileSource) Location() string { return s.path }

// FileSource returns a Source pointing at an on-disk document.
func FileSource(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Kind() SourceKind { return SourceKindFS }

func (s fsSource) Location() string { return s.name }

// FSSource returns a Source identifying a document inside the loader's fs.FS.
func FSSource(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Kind() SourceKind { return SourceKindURL }

func (s urlSource) Location() string { return s.raw }

// URLSource returns a Source referencing an HTTP or HTTPS endpoint.
func URLSource(raw string) Source {
	return urlSource{raw: raw}
}

// Loader fetches a document from a Source and parses it. The zero value is
// not usable; construct one with NewLoader.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithLoaderFS supplies the filesystem consulted for FSSource documents.
func WithLoaderFS(files fs.FS) LoaderOption {
	return func(l *Loader) {
		if files != nil {
			l.fs = files
		}
	}
}

// WithLoaderHTTPClient replaces the client used for URLSource documents.
func WithLoaderHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithLoaderTimeout bounds each URL fetch. Zero or negative restores the
// default.
func WithLoaderTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// NewLoader constructs a Loader with URL fetching enabled by default.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{
		http:    &http.Client{},
		timeout: defaultRequestTimeout,
	}
	for _, option := range options {
		if option != nil {
			option(l)
		}
	}
	return l
}

// Load fetches the document identified by src and parses it.
func (l *Loader) Load(ctx context.Context, src Source) (*Document, error) {
	if src == nil {
		return nil, errors.New("dom: load source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = readFileSource(ctx, src.Location())
	case SourceKindFS:
		data, err = readFSSource(ctx, l.fs, src.Location())
	case SourceKindURL:
		data, err = l.readURLSource(ctx, src.Location())
	default:
		err = fmt.Errorf("dom: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, err
	}

	return Parse(bytes.NewReader(data))
}

func readFileSource(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("dom: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func readFSSource(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("dom: fs path is required")
	}
	if files == nil {
		return nil, errors.New("dom: loader has no fs configured")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return fs.ReadFile(files, name)
}

func (l *Loader) readURLSource(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("dom: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if l.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("dom: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}
