package lint

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/field"
)

// Violation flags one markup-contract problem inside a form.
type Violation struct {
	Location string
	Message  string
}

// Config scopes a lint run. Zero values fall back to the engine defaults.
type Config struct {
	FormSelector   string
	FieldsSelector string
	ErrorSelector  string
}

func (c *Config) applyDefaults() {
	if c.FormSelector == "" {
		c.FormSelector = "form"
	}
	if c.FieldsSelector == "" {
		c.FieldsSelector = ".form-input"
	}
	if c.ErrorSelector == "" {
		c.ErrorSelector = ".form-input__error"
	}
}

var knownTypes = strings.Join([]string{
	string(field.TypeText),
	string(field.TypePhone),
	string(field.TypeEmail),
	string(field.TypeCheckbox),
	string(field.TypeRadio),
	string(field.TypeSelect),
}, ", ")

// Check lints the validation markup of the form cfg selects. Violations come
// back sorted by location then message; structural problems (missing form,
// malformed selector) are errors, not violations.
func Check(doc *dom.Document, cfg Config) ([]Violation, error) {
	cfg.applyDefaults()

	form, err := doc.Form(cfg.FormSelector)
	if err != nil {
		return nil, err
	}
	fields, err := form.Fields(cfg.FieldsSelector)
	if err != nil {
		return nil, err
	}
	if err := dom.CheckSelector(cfg.ErrorSelector); err != nil {
		return nil, err
	}

	var violations []Violation
	for i, f := range fields {
		location := fmt.Sprintf("field[%d] %s", i, f.Locator())
		report := func(format string, args ...any) {
			violations = append(violations, Violation{
				Location: location,
				Message:  fmt.Sprintf(format, args...),
			})
		}
		lintContainer(f, cfg, report)
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Location == violations[j].Location {
			return violations[i].Message < violations[j].Message
		}
		return violations[i].Location < violations[j].Location
	})
	return violations, nil
}

func lintContainer(f *dom.Field, cfg Config, report func(string, ...any)) {
	validation, hasValidation := f.Attr(dom.AttrValidation)
	if hasValidation && validation != dom.ValidationRequired {
		report("%s must be %q, found %q", dom.AttrValidation, dom.ValidationRequired, validation)
	}

	rawType, hasType := f.Attr(dom.AttrType)
	typ, typeKnown := field.ParseType(rawType)
	if hasType && !typeKnown {
		report("unknown validation type %q (known: %s)", rawType, knownTypes)
	}
	if f.Required() && !hasType {
		report("no %s set, the container always passes", dom.AttrType)
	}

	rawCondition, hasCondition := f.Attr(dom.AttrCondition)
	condition, conditionKnown := field.ParseCondition(rawCondition)
	if hasCondition && !conditionKnown {
		report("unknown validation condition %q (known: length, equal)", rawCondition)
	}

	lintBounds(f, report)

	if conditionKnown && condition != field.ConditionNone && typeKnown {
		switch typ {
		case field.TypeText, field.TypePhone:
		default:
			report("condition %q is ignored for type %q", rawCondition, rawType)
		}
	}

	if condition == field.ConditionLength && conditionKnown {
		if !hasAnyAttr(f, dom.AttrLength, dom.AttrMinLength, dom.AttrMaxLength) {
			report("length condition without %s, %s or %s has no effect",
				dom.AttrLength, dom.AttrMinLength, dom.AttrMaxLength)
		}
	}
	if condition == field.ConditionEqual && conditionKnown {
		if _, ok := f.Attr(dom.AttrEqual); !ok {
			report("equal condition requires %s", dom.AttrEqual)
		}
	}

	if f.Required() {
		if !f.Has(cfg.ErrorSelector) {
			report("no error element matching %q", cfg.ErrorSelector)
		}
		lintControls(f, typ, typeKnown, report)
	}
}

func lintBounds(f *dom.Field, report func(string, ...any)) {
	for _, name := range []string{dom.AttrLength, dom.AttrMinLength, dom.AttrMaxLength} {
		raw, ok := f.Attr(name)
		if !ok {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
			report("%s=%q is not an integer", name, raw)
		}
	}
}

func lintControls(f *dom.Field, typ field.Type, typeKnown bool, report func(string, ...any)) {
	if !typeKnown {
		return
	}
	switch typ {
	case field.TypeText, field.TypePhone, field.TypeEmail:
		if !f.Has("input") && !f.Has("textarea") {
			report("no input or textarea control for type %q", typ)
		}
	case field.TypeSelect:
		if !f.Has("select") {
			report("no select control for type %q", typ)
		}
	case field.TypeRadio:
		if !f.Has("input[type=radio]") {
			report("no radio controls for type %q", typ)
		}
	case field.TypeCheckbox:
		if !f.Has("input[type=checkbox]") {
			report("no checkbox control for type %q", typ)
		}
	}
}

func hasAnyAttr(f *dom.Field, names ...string) bool {
	for _, name := range names {
		if _, ok := f.Attr(name); ok {
			return true
		}
	}
	return false
}
