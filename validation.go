package formvalidation

import (
	"context"
	"io"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/vitalishapovalov/html-form-validation/pkg/decor"
	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/lifecycle"
	"github.com/vitalishapovalov/html-form-validation/pkg/submit"
	"github.com/vitalishapovalov/html-form-validation/pkg/validator"
)

// Validator runs declarative validation passes over one form; alias exported
// via the root package for convenience.
type Validator = validator.Validator

// Option configures a Validator.
type Option = validator.Option

// Result is the outcome of one validation pass.
type Result = validator.Result

// FieldResult describes how one container fared during a pass.
type FieldResult = validator.FieldResult

// Decor holds the classes and selectors used to mark validation state.
type Decor = decor.Decor

// AjaxConfig describes the follow-up request sent after a valid pass.
type AjaxConfig = submit.Config

// AjaxProvider resolves ajax configuration lazily, per pass.
type AjaxProvider = submit.Provider

// Document wraps a parsed HTML tree.
type Document = dom.Document

// Dispatcher carries trigger and observer events between a host application
// and bound validators.
type Dispatcher = lifecycle.Dispatcher

// Binder couples a Validator to a Dispatcher's events.
type Binder = lifecycle.Binder

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	return dom.Parse(r)
}

// ParseString reads an HTML document from a string.
func ParseString(html string) (*Document, error) {
	return dom.ParseString(html)
}

// New resolves the form inside doc and builds a Validator over it.
func New(doc *Document, formSelector string, options ...Option) (*Validator, error) {
	return validator.New(doc, formSelector, options...)
}

// Validate is the one-shot entry point: it parses the document, builds a
// Validator, and runs a single pass. The returned Document carries the
// markers and error texts the pass wrote.
func Validate(ctx context.Context, r io.Reader, formSelector string, options ...Option) (Result, *Document, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return Result{}, nil, err
	}

	v, err := validator.New(doc, formSelector, options...)
	if err != nil {
		return Result{}, nil, err
	}

	result, err := v.Validate(ctx)
	if err != nil {
		return Result{}, nil, err
	}
	return result, doc, nil
}

// ValidateString runs Validate over in-memory markup.
func ValidateString(ctx context.Context, html, formSelector string, options ...Option) (Result, *Document, error) {
	doc, err := dom.ParseString(html)
	if err != nil {
		return Result{}, nil, err
	}

	v, err := validator.New(doc, formSelector, options...)
	if err != nil {
		return Result{}, nil, err
	}

	result, err := v.Validate(ctx)
	if err != nil {
		return Result{}, nil, err
	}
	return result, doc, nil
}

// NewDispatcher builds an event dispatcher for trigger and observer wiring.
func NewDispatcher() *Dispatcher {
	return lifecycle.NewDispatcher()
}

// Bind subscribes v to the dispatcher's trigger event, and to the observer
// events its options ask for.
func Bind(ctx context.Context, bus *Dispatcher, v *Validator, options ...lifecycle.BinderOption) *Binder {
	return lifecycle.Bind(ctx, bus, v, options...)
}

// DecorFromTheme resolves marker classes and the error selector from a
// registered theme.
func DecorFromTheme(selector theme.ThemeSelector, name, variant string) (Decor, error) {
	return decor.FromTheme(selector, name, variant)
}

// WithLang selects the message locale.
func WithLang(lang string) Option {
	return validator.WithLang(lang)
}

// WithFieldsSelector overrides the selector that picks validation containers.
func WithFieldsSelector(selector string) Option {
	return validator.WithFieldsSelector(selector)
}

// WithModal opts the validator into clearing markers when an overlay closes.
func WithModal(modal bool) Option {
	return validator.WithModal(modal)
}

// WithRemoveErrorOnFocusOut opts the validator into clearing markers on
// outside interaction.
func WithRemoveErrorOnFocusOut(remove bool) Option {
	return validator.WithRemoveErrorOnFocusOut(remove)
}

// WithAjax sets the follow-up request configuration: an AjaxConfig, an
// AjaxProvider, or nil to disable.
func WithAjax(ajax any) Option {
	return validator.WithAjax(ajax)
}

// WithBeforeValidation runs a hook before each pass.
func WithBeforeValidation(hook any) Option {
	return validator.WithBeforeValidation(hook)
}

// WithAfterValidation runs a hook after each pass, valid or not.
func WithAfterValidation(hook any) Option {
	return validator.WithAfterValidation(hook)
}

// WithOnValid runs a hook when a pass finds the form valid.
func WithOnValid(hook any) Option {
	return validator.WithOnValid(hook)
}

// WithDecor replaces the marker classes and error selector.
func WithDecor(d Decor) Option {
	return validator.WithDecor(d)
}

// WithThemeSelection derives Decor from a resolved theme selection.
func WithThemeSelection(selection *theme.Selection) Option {
	return validator.WithThemeSelection(selection)
}

// WithTransport replaces the transport used for the follow-up request.
func WithTransport(transport submit.Transport) Option {
	return validator.WithTransport(transport)
}

// WithLogger sets the validator's logger.
func WithLogger(log zerolog.Logger) Option {
	return validator.WithLogger(log)
}
