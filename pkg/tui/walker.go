package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/field"
	"github.com/vitalishapovalov/html-form-validation/pkg/messages"
)

// Walker prompts for every required container of a form, re-asking until the
// answer satisfies the container's rule, and collects the accepted answers.
type Walker struct {
	driver  PromptDriver
	catalog messages.Catalog
	log     zerolog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithDriver replaces the terminal-backed prompt driver.
func WithDriver(d PromptDriver) Option {
	return func(w *Walker) {
		if d != nil {
			w.driver = d
		}
	}
}

// WithLogger sets the walker's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Walker) {
		w.log = log
	}
}

// New builds a Walker speaking the given locale's messages.
func New(lang string, options ...Option) (*Walker, error) {
	catalog, err := messages.For(lang)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	w := &Walker{
		driver:  newSurveyDriver(),
		catalog: catalog,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Run walks the form's required containers in document order and returns the
// collected answers keyed by control name.
func (w *Walker) Run(ctx context.Context, form *dom.Form, fieldsSelector string) (url.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if form == nil {
		return nil, errors.New("tui: form is required")
	}

	fields, err := form.Fields(fieldsSelector)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	values := url.Values{}
	for _, f := range fields {
		if !f.Required() {
			continue
		}
		if err := w.promptField(ctx, f, values); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func (w *Walker) promptField(ctx context.Context, f *dom.Field, values url.Values) error {
	snapshot := f.Snapshot()
	if snapshot.Name == "" {
		w.log.Warn().Str("field", f.Locator()).Msg("container has no named control, skipping")
		return nil
	}

	switch snapshot.Type {
	case field.TypeRadio, field.TypeSelect:
		return w.promptChoice(ctx, f, snapshot, values)
	case field.TypeCheckbox:
		return w.promptCheckbox(ctx, f, snapshot, values)
	default:
		return w.promptText(ctx, f, snapshot, values)
	}
}

func (w *Walker) promptText(ctx context.Context, f *dom.Field, snapshot field.Descriptor, values url.Values) error {
	cfg := InputConfig{
		Message: f.Label(),
		Default: snapshot.Value,
		Help:    w.helpFor(snapshot),
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		answer, err := w.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}

		probe := snapshot
		probe.Value = strings.TrimSpace(answer)
		outcome := field.Evaluate(probe, w.catalog)
		if msg := w.rejection(outcome); msg != "" {
			if err := w.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}

		values.Set(snapshot.Name, probe.Value)
		return nil
	}
}

func (w *Walker) promptChoice(ctx context.Context, f *dom.Field, snapshot field.Descriptor, values url.Values) error {
	choices := f.Choices()
	if len(choices) == 0 {
		w.log.Warn().Str("field", f.Locator()).Msg("container has no options, skipping")
		return nil
	}

	options := make([]string, len(choices))
	defaultIdx := -1
	for i, choice := range choices {
		options[i] = choice.Label
		if choice.Checked && defaultIdx < 0 {
			defaultIdx = i
		}
	}

	cfg := SelectConfig{
		Message:      f.Label(),
		Options:      options,
		DefaultIndex: defaultIdx,
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx, err := w.driver.Select(ctx, cfg)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(choices) {
			if err := w.driver.Info(ctx, w.catalog.IncorrectSelect); err != nil {
				return err
			}
			continue
		}
		chosen := choices[idx]

		probe := snapshot
		if snapshot.Type == field.TypeRadio {
			probe.CheckedVisible = 1
		} else {
			probe.Value = chosen.Value
		}
		outcome := field.Evaluate(probe, w.catalog)
		if msg := w.rejection(outcome); msg != "" {
			if err := w.driver.Info(ctx, msg); err != nil {
				return err
			}
			continue
		}

		values.Set(snapshot.Name, chosen.Value)
		return nil
	}
}

// promptCheckbox records the box's value only when confirmed, matching how an
// unchecked box stays out of a urlencoded body.
func (w *Walker) promptCheckbox(ctx context.Context, f *dom.Field, snapshot field.Descriptor, values url.Values) error {
	checked, err := w.driver.Confirm(ctx, ConfirmConfig{
		Message: f.Label(),
		Default: snapshot.Checked,
	})
	if err != nil {
		return err
	}

	if checked {
		value := snapshot.Value
		if value == "" {
			value = "on"
		}
		values.Set(snapshot.Name, value)
	}
	return nil
}

// rejection mirrors the message precedence of a validation pass: emptiness
// first, then the rule's own message.
func (w *Walker) rejection(outcome field.Outcome) string {
	if outcome.ValueLength == 0 {
		return w.catalog.EmptyField
	}
	if !outcome.Satisfied {
		if outcome.ErrorText != "" {
			return outcome.ErrorText
		}
		return w.catalog.EmptyField
	}
	return ""
}

func (w *Walker) helpFor(snapshot field.Descriptor) string {
	switch snapshot.Condition {
	case field.ConditionLength:
		bounds := snapshot.Bounds
		switch {
		case bounds.Length != nil:
			return w.catalog.ReqFieldLength(*bounds.Length)
		case bounds.Min != nil && bounds.Max != nil:
			return w.catalog.MinMaxFieldLength(*bounds.Min, *bounds.Max)
		case bounds.Max != nil:
			return w.catalog.MaxFieldLength(*bounds.Max)
		case bounds.Min != nil:
			return w.catalog.MinFieldLength(*bounds.Min)
		}
	case field.ConditionEqual:
		return w.catalog.NotEqual
	}
	return ""
}
