package decor

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme token keys that override the stock marker names.
const (
	TokenIncorrectClass = "validation.incorrectClass"
	TokenValidFormClass = "validation.validFormClass"
	TokenErrorSelector  = "validation.errorSelector"
)

// Decor names the presentation hooks the validator writes: the per-field
// incorrect marker class, the form-level valid marker class, and the selector
// of the error element inside each field container.
type Decor struct {
	IncorrectClass string
	ValidFormClass string
	ErrorSelector  string
}

// Default returns the stock marker names.
func Default() Decor {
	return Decor{
		IncorrectClass: "form-input--incorrect",
		ValidFormClass: "form--valid",
		ErrorSelector:  ".form-input__error",
	}
}

// FromSelection overlays Default with the validation tokens of a resolved
// theme selection. Variant tokens take precedence over the base manifest
// tokens, matching how themes layer everywhere else.
func FromSelection(selection *theme.Selection) Decor {
	d := Default()
	if selection == nil || selection.Manifest == nil {
		return d
	}

	tokens := mergeTokens(selection.Manifest, selection.Variant)
	if v := strings.TrimSpace(tokens[TokenIncorrectClass]); v != "" {
		d.IncorrectClass = v
	}
	if v := strings.TrimSpace(tokens[TokenValidFormClass]); v != "" {
		d.ValidFormClass = v
	}
	if v := strings.TrimSpace(tokens[TokenErrorSelector]); v != "" {
		d.ErrorSelector = v
	}
	return d
}

// FromTheme resolves name/variant through a go-theme selector and applies the
// selection's validation tokens.
func FromTheme(selector theme.ThemeSelector, name, variant string) (Decor, error) {
	if selector == nil {
		return Default(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Decor{}, fmt.Errorf("decor: select theme %q/%q: %w", name, variant, err)
	}
	return FromSelection(selection), nil
}

func mergeTokens(manifest *theme.Manifest, variant string) map[string]string {
	merged := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		merged[key] = value
	}
	if variant == "" {
		return merged
	}
	if override, ok := manifest.Variants[variant]; ok {
		for key, value := range override.Tokens {
			merged[key] = value
		}
	}
	return merged
}
