package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vitalishapovalov/html-form-validation/pkg/decor"
	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/field"
	"github.com/vitalishapovalov/html-form-validation/pkg/messages"
	"github.com/vitalishapovalov/html-form-validation/pkg/submit"
)

const defaultFieldsSelector = ".form-input"

// Validator runs validation passes over one form. It is configured once and
// reads the document fresh on every pass; nothing about a pass is persisted.
//
// Form validity is two-part: a pass marks the form valid as soon as any field
// passes (the marker is never unset mid-pass), and the form counts as valid
// only when that marker is set and no field carries the incorrect marker.
// Both parts are cleared at the start of every pass.
type Validator struct {
	doc  *dom.Document
	form *dom.Form

	fieldsSelector        string
	lang                  string
	modal                 bool
	removeErrorOnFocusOut bool

	ajax             any
	beforeValidation any
	afterValidation  any
	onValid          any

	decor    decor.Decor
	decorSet bool

	catalog   messages.Catalog
	transport submit.Transport
	log       zerolog.Logger
}

// Result is the outcome snapshot of a single pass.
type Result struct {
	// Valid reports whole-form validity under the two-part rule.
	Valid bool
	// Submitted reports that the transport delivered the follow-up request.
	Submitted bool
	// Fields holds one entry per evaluated container, in document order.
	Fields []FieldResult
}

// FieldResult describes how one container fared.
type FieldResult struct {
	Name string
	Type field.Type
	// Accepted reports that the container passed: not empty and its rule
	// satisfied.
	Accepted bool
	// Empty reports that the emptiness check failed before the rule ran.
	Empty bool
	// Message is the text written to the container's error element, empty
	// when the container passed.
	Message string
}

// New resolves the form and configuration, failing fast on an unknown
// locale, a malformed selector, or a missing form.
func New(doc *dom.Document, formSelector string, options ...Option) (*Validator, error) {
	if doc == nil {
		return nil, errors.New("validator: document is required")
	}

	v := &Validator{
		doc:            doc,
		fieldsSelector: defaultFieldsSelector,
		lang:           messages.LangEN,
		log:            zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	v.applyDefaults()

	catalog, err := messages.For(v.lang)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}
	v.catalog = catalog

	form, err := doc.Form(formSelector)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}
	v.form = form

	// Compile both configurable selectors now so a malformed one cannot
	// surface mid-pass.
	if _, err := form.Fields(v.fieldsSelector); err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}
	if err := dom.CheckSelector(v.decor.ErrorSelector); err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	return v, nil
}

func (v *Validator) applyDefaults() {
	if v.fieldsSelector == "" {
		v.fieldsSelector = defaultFieldsSelector
	}
	if v.lang == "" {
		v.lang = messages.LangEN
	}
	if !v.decorSet {
		v.decor = decor.Default()
	}
	if v.transport == nil {
		v.transport = &submit.HTTPTransport{}
	}
}

// Validate runs one pass: clear markers, run the before hook, evaluate every
// required container, decide validity, submit when valid, run the after
// hook. The returned error is reserved for a cancelled context; a form that
// fails validation is a Result, not an error.
func (v *Validator) Validate(ctx context.Context) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("validator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	fields, err := v.form.Fields(v.fieldsSelector)
	if err != nil {
		return Result{}, err
	}

	v.reset(fields)
	v.runHook(v.beforeValidation, "beforeValidation")

	result := Result{}
	for _, f := range fields {
		if !f.Required() {
			continue
		}
		desc := f.Snapshot()
		outcome := field.Evaluate(desc, v.catalog)
		result.Fields = append(result.Fields, v.apply(f, desc, outcome))
	}

	result.Valid = v.decide(fields)

	if result.Valid {
		v.runHook(v.onValid, "onValid")
		result.Submitted = v.submit(ctx)
	}

	v.runHook(v.afterValidation, "afterValidation")

	v.log.Debug().
		Bool("valid", result.Valid).
		Bool("submitted", result.Submitted).
		Int("fields", len(result.Fields)).
		Msg("validation pass finished")

	return result, nil
}

// ClearMarkers removes every marker a pass applied: the incorrect class from
// all matching containers and the form-level valid class. Lifecycle
// observers call this when an overlay closes or focus leaves the form.
func (v *Validator) ClearMarkers() {
	fields, err := v.form.Fields(v.fieldsSelector)
	if err != nil {
		return
	}
	v.reset(fields)
}

// Form exposes the bound form for hooks and observers.
func (v *Validator) Form() *dom.Form {
	return v.form
}

// Document exposes the parsed document the validator works on.
func (v *Validator) Document() *dom.Document {
	return v.doc
}

// Catalog exposes the resolved message catalog.
func (v *Validator) Catalog() messages.Catalog {
	return v.catalog
}

// Decor exposes the marker names in effect.
func (v *Validator) Decor() decor.Decor {
	return v.decor
}

// Lang reports the configured locale.
func (v *Validator) Lang() string {
	return v.lang
}

// FieldsSelector reports the container selector in effect.
func (v *Validator) FieldsSelector() string {
	return v.fieldsSelector
}

// Modal reports whether overlay dismissal should clear markers.
func (v *Validator) Modal() bool {
	return v.modal
}

// RemoveErrorOnFocusOut reports whether outside interaction should clear
// markers.
func (v *Validator) RemoveErrorOnFocusOut() bool {
	return v.removeErrorOnFocusOut
}

func (v *Validator) reset(fields []*dom.Field) {
	for _, f := range fields {
		f.ClearIncorrect(v.decor.IncorrectClass)
	}
	v.form.ClearValid(v.decor.ValidFormClass)
}

// apply writes one outcome into the tree. Emptiness wins over everything and
// never touches the form-level marker; a satisfied field sets it and nothing
// unsets it until the next pass.
func (v *Validator) apply(f *dom.Field, desc field.Descriptor, outcome field.Outcome) FieldResult {
	entry := FieldResult{Name: desc.Name, Type: desc.Type}

	switch {
	case outcome.ValueLength == 0:
		entry.Empty = true
		entry.Message = v.catalog.EmptyField
		f.MarkIncorrect(v.decor.IncorrectClass)
		f.WriteError(v.decor.ErrorSelector, entry.Message)
	case !outcome.Satisfied:
		entry.Message = outcome.ErrorText
		if entry.Message == "" {
			entry.Message = v.catalog.EmptyField
		}
		f.MarkIncorrect(v.decor.IncorrectClass)
		f.WriteError(v.decor.ErrorSelector, entry.Message)
	default:
		entry.Accepted = true
		v.form.MarkValid(v.decor.ValidFormClass)
	}

	return entry
}

func (v *Validator) decide(fields []*dom.Field) bool {
	if !v.form.IsMarkedValid(v.decor.ValidFormClass) {
		return false
	}
	for _, f := range fields {
		if f.IsMarkedIncorrect(v.decor.IncorrectClass) {
			return false
		}
	}
	return true
}

// submit resolves the configured ajax value and hands the serialized form to
// the transport. Producer rejections and transport failures are logged and
// swallowed; they never fail the pass.
func (v *Validator) submit(ctx context.Context) bool {
	cfg, err := submit.Resolve(ctx, v.ajax, v)
	if err != nil {
		v.log.Warn().Err(err).Msg("submission options rejected, skipping transport")
		return false
	}
	if !cfg.Enabled() {
		return false
	}

	if err := v.transport.Send(ctx, cfg, v.form.Serialize()); err != nil {
		v.log.Error().Err(err).Str("url", cfg.URL).Msg("submission failed")
		return false
	}
	return true
}

func (v *Validator) runHook(hook any, name string) {
	switch fn := hook.(type) {
	case nil:
	case func(*Validator):
		fn(v)
	case func():
		fn()
	default:
		v.log.Warn().
			Str("hook", name).
			Str("type", fmt.Sprintf("%T", hook)).
			Msg("hook is not callable, skipping")
	}
}
