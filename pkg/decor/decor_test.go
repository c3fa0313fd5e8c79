package decor_test

import (
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/vitalishapovalov/html-form-validation/pkg/decor"
)

func TestDefaultMarkerNames(t *testing.T) {
	d := decor.Default()
	if d.IncorrectClass != "form-input--incorrect" {
		t.Fatalf("incorrect class: %q", d.IncorrectClass)
	}
	if d.ValidFormClass != "form--valid" {
		t.Fatalf("valid form class: %q", d.ValidFormClass)
	}
	if d.ErrorSelector != ".form-input__error" {
		t.Fatalf("error selector: %q", d.ErrorSelector)
	}
}

func TestFromSelectionAppliesVariantOverBase(t *testing.T) {
	selection := &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				decor.TokenIncorrectClass: "field-error",
				decor.TokenValidFormClass: "form-ok",
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{
						decor.TokenIncorrectClass: "field-error-dark",
					},
				},
			},
		},
	}

	d := decor.FromSelection(selection)
	if d.IncorrectClass != "field-error-dark" {
		t.Fatalf("variant token must win, got %q", d.IncorrectClass)
	}
	if d.ValidFormClass != "form-ok" {
		t.Fatalf("base token must apply, got %q", d.ValidFormClass)
	}
	if d.ErrorSelector != ".form-input__error" {
		t.Fatalf("missing token keeps the default, got %q", d.ErrorSelector)
	}
}

func TestFromSelectionNilFallsBackToDefault(t *testing.T) {
	if got := decor.FromSelection(nil); got != decor.Default() {
		t.Fatalf("nil selection must yield defaults, got %+v", got)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestFromTheme(t *testing.T) {
	selection := &theme.Selection{
		Theme: "acme",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{decor.TokenErrorSelector: ".acme-error"},
		},
	}

	d, err := decor.FromTheme(stubSelector{selection: selection}, "acme", "")
	if err != nil {
		t.Fatalf("from theme: %v", err)
	}
	if d.ErrorSelector != ".acme-error" {
		t.Fatalf("expected themed selector, got %q", d.ErrorSelector)
	}

	wantErr := errors.New("missing theme")
	if _, err := decor.FromTheme(stubSelector{err: wantErr}, "nope", ""); !errors.Is(err, wantErr) {
		t.Fatalf("expected selector error wrapped, got %v", err)
	}
}
