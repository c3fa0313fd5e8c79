package lint_test

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/vitalishapovalov/html-form-validation/pkg/dom"
	"github.com/vitalishapovalov/html-form-validation/pkg/lint"
)

func check(t *testing.T, markup string) []lint.Violation {
	t.Helper()
	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	violations, err := lint.Check(doc, lint.Config{})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	return violations
}

func messages(violations []lint.Violation) string {
	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, v.Message)
	}
	return strings.Join(parts, "\n")
}

func TestCheckAcceptsWellFormedMarkup(t *testing.T) {
	const markup = `<form>
	  <div class="form-input" data-validation="required" data-validation-type="text"
	       data-validation-condition="length" data-min-length="2" data-max-length="10">
	    <input type="text" name="name">
	    <div class="form-input__error"></div>
	  </div>
	  <div class="form-input" data-validation="required" data-validation-type="select">
	    <select name="country"><option value="0">Pick</option></select>
	    <div class="form-input__error"></div>
	  </div>
	</form>`

	if violations := check(t, markup); len(violations) != 0 {
		t.Fatalf("expected clean markup, got:\n%s", messages(violations))
	}
}

func TestCheckFlagsContractProblems(t *testing.T) {
	const markup = `<form>
	  <div class="form-input" data-validation="mandatory" data-validation-type="datetime"
	       data-validation-condition="regex" data-length="five">
	    <input type="text" name="a">
	    <div class="form-input__error"></div>
	  </div>
	  <div class="form-input" data-validation="required" data-validation-type="text"
	       data-validation-condition="length">
	    <input type="text" name="b">
	    <div class="form-input__error"></div>
	  </div>
	  <div class="form-input" data-validation="required" data-validation-type="text"
	       data-validation-condition="equal">
	    <input type="text" name="c">
	    <div class="form-input__error"></div>
	  </div>
	  <div class="form-input" data-validation="required" data-validation-type="email">
	    <div class="form-input__error"></div>
	  </div>
	  <div class="form-input" data-validation="required" data-validation-type="text">
	    <input type="text" name="e">
	  </div>
	  <div class="form-input" data-validation="required">
	    <input type="text" name="f">
	    <div class="form-input__error"></div>
	  </div>
	  <div class="form-input" data-validation="required" data-validation-type="select"
	       data-validation-condition="length" data-min-length="2">
	    <select name="g"><option value="1">One</option></select>
	    <div class="form-input__error"></div>
	  </div>
	</form>`

	violations := check(t, markup)
	got := messages(violations)

	wantFragments := []string{
		`data-validation must be "required", found "mandatory"`,
		`unknown validation type "datetime"`,
		`unknown validation condition "regex"`,
		`data-length="five" is not an integer`,
		`length condition without data-length, data-min-length or data-max-length has no effect`,
		`equal condition requires data-equal`,
		`no input or textarea control for type "email"`,
		`no error element matching ".form-input__error"`,
		`no data-validation-type set, the container always passes`,
		`condition "length" is ignored for type "select"`,
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(got, fragment) {
			t.Fatalf("missing violation %q in:\n%s", fragment, got)
		}
	}

	if !sort.SliceIsSorted(violations, func(i, j int) bool {
		if violations[i].Location == violations[j].Location {
			return violations[i].Message < violations[j].Message
		}
		return violations[i].Location < violations[j].Location
	}) {
		t.Fatalf("violations must come back sorted")
	}
}

func TestCheckStructuralErrors(t *testing.T) {
	doc, err := dom.ParseString(`<div>no form here</div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := lint.Check(doc, lint.Config{}); !errors.Is(err, dom.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}

	doc, err = dom.ParseString(`<form></form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := lint.Check(doc, lint.Config{FieldsSelector: "[[["}); !errors.Is(err, dom.ErrInvalidSelector) {
		t.Fatalf("expected ErrInvalidSelector, got %v", err)
	}
	if _, err := lint.Check(doc, lint.Config{ErrorSelector: "[[["}); !errors.Is(err, dom.ErrInvalidSelector) {
		t.Fatalf("expected ErrInvalidSelector for error selector, got %v", err)
	}
}

func TestCheckIgnoresUnannotatedContainers(t *testing.T) {
	const markup = `<form>
	  <div class="form-input">
	    <input type="text" name="plain">
	  </div>
	</form>`

	if violations := check(t, markup); len(violations) != 0 {
		t.Fatalf("containers without validation attributes are fine, got:\n%s", messages(violations))
	}
}
