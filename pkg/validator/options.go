package validator

import (
	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/vitalishapovalov/html-form-validation/pkg/decor"
	"github.com/vitalishapovalov/html-form-validation/pkg/submit"
)

// Option customises a Validator at construction. Options apply once; the
// configuration is immutable afterwards.
type Option func(*Validator)

// WithFieldsSelector overrides the selector that picks field containers
// inside the form.
func WithFieldsSelector(selector string) Option {
	return func(v *Validator) {
		if selector == "" {
			return
		}
		v.fieldsSelector = selector
	}
}

// WithLang selects the message catalog locale.
func WithLang(lang string) Option {
	return func(v *Validator) {
		if lang == "" {
			return
		}
		v.lang = lang
	}
}

// WithModal marks the form as living inside an overlay, so dismissing the
// overlay clears validation markers once the lifecycle observers are bound.
func WithModal(modal bool) Option {
	return func(v *Validator) {
		v.modal = modal
	}
}

// WithRemoveErrorOnFocusOut clears validation markers when the user
// interacts outside the form, once the lifecycle observers are bound.
func WithRemoveErrorOnFocusOut(remove bool) Option {
	return func(v *Validator) {
		v.removeErrorOnFocusOut = remove
	}
}

// WithAjax configures the follow-up request sent when the form validates.
// Accepted values: a submit.Config, a *submit.Config, a submit.Provider (or
// bare function of the same shape), or nil to disable submission.
func WithAjax(ajax any) Option {
	return func(v *Validator) {
		v.ajax = ajax
	}
}

// WithBeforeValidation registers the hook that runs before every pass.
// Invocable values are func(*Validator) and func(); anything else non-nil is
// reported once per pass and skipped.
func WithBeforeValidation(hook any) Option {
	return func(v *Validator) {
		v.beforeValidation = hook
	}
}

// WithAfterValidation registers the hook that runs after every pass,
// whatever its outcome.
func WithAfterValidation(hook any) Option {
	return func(v *Validator) {
		v.afterValidation = hook
	}
}

// WithOnValid registers the hook that runs when the whole form validates,
// before submission options are resolved.
func WithOnValid(hook any) Option {
	return func(v *Validator) {
		v.onValid = hook
	}
}

// WithDecor overrides the presentation marker names.
func WithDecor(d decor.Decor) Option {
	return func(v *Validator) {
		v.decor = d
		v.decorSet = true
	}
}

// WithThemeSelection derives the marker names from a resolved go-theme
// selection.
func WithThemeSelection(selection *theme.Selection) Option {
	return func(v *Validator) {
		v.decor = decor.FromSelection(selection)
		v.decorSet = true
	}
}

// WithTransport injects the transport that delivers the follow-up request.
func WithTransport(transport submit.Transport) Option {
	return func(v *Validator) {
		if transport == nil {
			return
		}
		v.transport = transport
	}
}

// WithLogger injects the logger used for hook misuse and submission
// failures. The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(v *Validator) {
		v.log = log
	}
}
