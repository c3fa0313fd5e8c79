package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/vitalishapovalov/html-form-validation/pkg/validator"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// ErrUnknownFormat is returned when a report format is not text or html.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects one of the bundled report templates.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

const templateExt = ".tpl"

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

type config struct {
	templates  fs.FS
	globalData any
	filters    map[string]FilterFunc
}

// Option configures the report engine.
type Option func(*config)

// FilterFunc is the shape of a template filter before it is adapted to the
// template engine.
type FilterFunc func(input, param any) (any, error)

// WithTemplates replaces the embedded templates with a caller-supplied tree.
func WithTemplates(fsys fs.FS) Option {
	return func(c *config) {
		if fsys != nil {
			c.templates = fsys
		}
	}
}

// WithGlobalData exposes data to every template under its top-level keys.
func WithGlobalData(data any) Option {
	return func(c *config) {
		c.globalData = data
	}
}

// WithFilter registers a custom filter during construction.
func WithFilter(name string, fn FilterFunc) Option {
	return func(c *config) {
		if name == "" || fn == nil {
			return
		}
		if c.filters == nil {
			c.filters = make(map[string]FilterFunc)
		}
		c.filters[name] = fn
	}
}

// Engine renders validation results through pongo2 templates.
type Engine struct {
	templateSet *pongo2.TemplateSet
	mu          sync.RWMutex
	templates   map[string]*pongo2.Template
}

// New builds an engine over the embedded templates unless WithTemplates
// points it elsewhere.
func New(options ...Option) (*Engine, error) {
	cfg := config{templates: defaultTemplates()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	registerDefaultFilters()

	engine := &Engine{
		templateSet: pongo2.NewSet("formvalid", pongo2.NewFSLoader(cfg.templates)),
		templates:   make(map[string]*pongo2.Template),
	}

	if cfg.globalData != nil {
		if err := engine.GlobalContext(cfg.globalData); err != nil {
			return nil, err
		}
	}
	for name, fn := range cfg.filters {
		if err := engine.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("report: register filter %q: %w", name, err)
		}
	}

	return engine, nil
}

// Render writes a validation result in the requested format. Any writers in
// out receive a copy of the rendered report.
func (e *Engine) Render(format Format, result validator.Result, out ...io.Writer) (string, error) {
	name, err := templateFor(format)
	if err != nil {
		return "", err
	}
	return e.RenderTemplate(name, map[string]any{"report": result}, out...)
}

// RenderTemplate renders a named template from the engine's template tree.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("report: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, templateExt) {
		templatePath += templateExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}

	viewContext, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("report: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("report: execute template %q: %w", templatePath, err)
	}

	return fanOut(buf.String(), out)
}

// RenderString renders inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("report: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(content)
	if err != nil {
		return "", fmt.Errorf("report: parse template string: %w", err)
	}

	viewContext, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("report: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("report: execute template string: %w", err)
	}

	return fanOut(buf.String(), out)
}

// RegisterFilter adapts fn into a template filter. Registration is
// process-wide; an already-registered name is left untouched.
func (e *Engine) RegisterFilter(name string, fn FilterFunc) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("report: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return nil
	}
	return pongo2.RegisterFilter(name, filter)
}

// GlobalContext merges data into the context shared by every template.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.templateSet == nil {
		return errors.New("report: engine is nil")
	}

	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("report: convert global data: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	for key, value := range ctx {
		e.templateSet.Globals[key] = value
	}
	return nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

func templateFor(format Format) (string, error) {
	switch format {
	case FormatText:
		return "report.text" + templateExt, nil
	case FormatHTML:
		return "report.html" + templateExt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

func defaultTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

func fanOut(rendered string, out []io.Writer) (string, error) {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		return pongo2.Context(decoded), nil
	}
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("pad") {
		_ = pongo2.RegisterFilter("pad", filterPad)
	}
	if !pongo2.FilterExists("ellipsis") {
		_ = pongo2.RegisterFilter("ellipsis", filterEllipsis)
	}
}

// filterPad right-pads its input with spaces up to the width in param.
func filterPad(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in == nil || in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	text := in.String()
	width := 0
	if param != nil {
		width = param.Integer()
	}
	if gap := width - len([]rune(text)); gap > 0 {
		text += strings.Repeat(" ", gap)
	}
	return pongo2.AsValue(text), nil
}

// filterEllipsis truncates its input to param runes, marking the cut with
// three dots.
func filterEllipsis(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in == nil || in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	text := in.String()
	limit := 0
	if param != nil {
		limit = param.Integer()
	}
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return pongo2.AsValue(text), nil
	}
	if limit <= 3 {
		return pongo2.AsValue(string(runes[:limit])), nil
	}
	return pongo2.AsValue(string(runes[:limit-3]) + "..."), nil
}
