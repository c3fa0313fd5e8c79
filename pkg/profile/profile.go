package profile

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vitalishapovalov/html-form-validation/pkg/decor"
	"github.com/vitalishapovalov/html-form-validation/pkg/submit"
	"github.com/vitalishapovalov/html-form-validation/pkg/validator"
)

// Profile is one named validation setup: which form to validate, how to mark
// it, and what follow-up request a valid pass sends.
type Profile struct {
	// Name is the profile's key in its source file.
	Name string `json:"-" yaml:"-"`
	// Source is the file the profile was read from.
	Source string `json:"-" yaml:"-"`

	Form                  string      `json:"form" yaml:"form"`
	Fields                string      `json:"fields" yaml:"fields"`
	Lang                  string      `json:"lang" yaml:"lang"`
	Format                string      `json:"format" yaml:"format"`
	Modal                 bool        `json:"modal" yaml:"modal"`
	RemoveErrorOnFocusOut bool        `json:"removeErrorOnFocusOut" yaml:"removeErrorOnFocusOut"`
	Decor                 DecorConfig `json:"decor" yaml:"decor"`
	Ajax                  *AjaxConfig `json:"ajax" yaml:"ajax"`
}

// DecorConfig overrides individual marker names; empty entries keep the
// defaults.
type DecorConfig struct {
	IncorrectClass string `json:"incorrectClass" yaml:"incorrectClass"`
	ValidFormClass string `json:"validFormClass" yaml:"validFormClass"`
	ErrorSelector  string `json:"errorSelector" yaml:"errorSelector"`
}

// AjaxConfig describes the follow-up request in file-friendly terms.
type AjaxConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	Data           map[string]string `json:"data" yaml:"data"`
	TimeoutSeconds int               `json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

// FormSelector returns the profile's form selector, defaulting to "form".
func (p Profile) FormSelector() string {
	if sel := strings.TrimSpace(p.Form); sel != "" {
		return sel
	}
	return "form"
}

// Options converts the profile into validator options.
func (p Profile) Options() []validator.Option {
	var opts []validator.Option

	if lang := strings.TrimSpace(p.Lang); lang != "" {
		opts = append(opts, validator.WithLang(lang))
	}
	if fields := strings.TrimSpace(p.Fields); fields != "" {
		opts = append(opts, validator.WithFieldsSelector(fields))
	}
	if p.Modal {
		opts = append(opts, validator.WithModal(true))
	}
	if p.RemoveErrorOnFocusOut {
		opts = append(opts, validator.WithRemoveErrorOnFocusOut(true))
	}
	if d, ok := p.Decor.overlay(); ok {
		opts = append(opts, validator.WithDecor(d))
	}
	if p.Ajax != nil {
		opts = append(opts, validator.WithAjax(p.Ajax.submitConfig()))
	}

	return opts
}

func (c DecorConfig) overlay() (decor.Decor, bool) {
	d := decor.Default()
	touched := false

	if v := strings.TrimSpace(c.IncorrectClass); v != "" {
		d.IncorrectClass = v
		touched = true
	}
	if v := strings.TrimSpace(c.ValidFormClass); v != "" {
		d.ValidFormClass = v
		touched = true
	}
	if v := strings.TrimSpace(c.ErrorSelector); v != "" {
		d.ErrorSelector = v
		touched = true
	}

	return d, touched
}

func (c *AjaxConfig) submitConfig() submit.Config {
	cfg := submit.Config{
		URL:    strings.TrimSpace(c.URL),
		Method: strings.ToUpper(strings.TrimSpace(c.Method)),
	}

	if len(c.Headers) > 0 {
		cfg.Header = http.Header{}
		for key, value := range c.Headers {
			cfg.Header.Set(key, value)
		}
	}
	if len(c.Data) > 0 {
		cfg.Data = url.Values{}
		for key, value := range c.Data {
			cfg.Data.Set(key, value)
		}
	}
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}

	return cfg
}
