package messages

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Supported locale identifiers.
const (
	LangEN = "en"
	LangRU = "ru"
)

// ErrUnknownLocale reports a locale outside the supported set.
var ErrUnknownLocale = errors.New("messages: unknown locale")

var (
	supported = []language.Tag{
		language.English,
		language.Russian,
	}
	matcher = language.NewMatcher(supported)
)

// Catalog holds the validation messages for one locale. Fixed messages are
// plain fields; length-bound messages interpolate their bounds verbatim with
// no pluralization.
type Catalog struct {
	Locale string

	EmptyField      string
	IncorrectPhone  string
	IncorrectEmail  string
	IncorrectSelect string
	NotEqual        string

	reqFieldLength    string
	maxFieldLength    string
	minFieldLength    string
	minMaxFieldLength string
}

// ReqFieldLength returns the message for an exact-length requirement.
func (c Catalog) ReqFieldLength(n int) string {
	return fmt.Sprintf(c.reqFieldLength, n)
}

// MaxFieldLength returns the message for an upper length bound.
func (c Catalog) MaxFieldLength(n int) string {
	return fmt.Sprintf(c.maxFieldLength, n)
}

// MinFieldLength returns the message for a lower length bound.
func (c Catalog) MinFieldLength(n int) string {
	return fmt.Sprintf(c.minFieldLength, n)
}

// MinMaxFieldLength returns the message for a combined length range.
func (c Catalog) MinMaxFieldLength(min, max int) string {
	return fmt.Sprintf(c.minMaxFieldLength, min, max)
}

var catalogs = map[string]Catalog{
	LangEN: {
		Locale:            LangEN,
		EmptyField:        "This field is required",
		IncorrectPhone:    "Enter a valid phone number",
		IncorrectEmail:    "Enter a valid email address",
		IncorrectSelect:   "Select an option",
		NotEqual:          "Values do not match",
		reqFieldLength:    "Must be exactly %d characters",
		maxFieldLength:    "Must be no more than %d characters",
		minFieldLength:    "Must be at least %d characters",
		minMaxFieldLength: "Must be between %d and %d characters",
	},
	LangRU: {
		Locale:            LangRU,
		EmptyField:        "Это поле обязательно",
		IncorrectPhone:    "Введите корректный номер телефона",
		IncorrectEmail:    "Введите корректный адрес электронной почты",
		IncorrectSelect:   "Выберите вариант",
		NotEqual:          "Значения не совпадают",
		reqFieldLength:    "Длина должна быть ровно %d символов",
		maxFieldLength:    "Длина должна быть не более %d символов",
		minFieldLength:    "Длина должна быть не менее %d символов",
		minMaxFieldLength: "Длина должна быть от %d до %d символов",
	},
}

// For resolves locale to its message catalog. Region variants of the
// supported languages match ("en-US", "ru-RU"); anything else fails with
// ErrUnknownLocale.
func For(locale string) (Catalog, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Catalog{}, fmt.Errorf("messages: parse locale %q: %w", locale, ErrUnknownLocale)
	}

	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return Catalog{}, fmt.Errorf("messages: locale %q: %w", locale, ErrUnknownLocale)
	}

	base, _ := supported[index].Base()
	catalog, ok := catalogs[base.String()]
	if !ok {
		return Catalog{}, fmt.Errorf("messages: locale %q: %w", locale, ErrUnknownLocale)
	}
	return catalog, nil
}

// MustFor is like For but panics on an unknown locale.
func MustFor(locale string) Catalog {
	catalog, err := For(locale)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Locales lists the supported locale identifiers.
func Locales() []string {
	return []string{LangEN, LangRU}
}
