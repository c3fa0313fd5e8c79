package field

import (
	"regexp"
	"unicode/utf8"

	"github.com/vitalishapovalov/html-form-validation/pkg/messages"
)

// emailSource is the historical address pattern, carried over verbatim. It
// accepts quoted local parts and bracketed IP hosts and is compiled
// case-insensitively.
const emailSource = `^(("[\w-\s]+")|([\w-]+(?:\.[\w-]+)*)|("[\w-\s]+")([\w-]+(?:\.[\w-]+)*))(@((?:[\w-]+\.)*\w[\w-]{0,66})\.([a-z]{2,6}(?:\.[a-z]{2})?)$)|(@\[?((25[0-5]\.|2[0-4][0-9]\.|1[0-9]{2}\.|[0-9]{1,2}\.))((25[0-5]|2[0-4][0-9]|1[0-9]{2}|[0-9]{1,2})\.){2}(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[0-9]{1,2})\]?$)`

var emailPattern = regexp.MustCompile(`(?i)` + emailSource)

// Evaluate applies the rule for desc's type and reports the outcome. It is
// pure: same descriptor and catalog, same outcome.
//
// A non-empty CustomErrorText replaces whatever message the rule computed.
// Emptiness is not handled here; the applier checks ValueLength first and
// always uses the catalog's EmptyField text for it.
func Evaluate(desc Descriptor, catalog messages.Catalog) Outcome {
	var out Outcome

	switch desc.Type {
	case TypeText:
		out = evaluateText(desc, catalog)
	case TypePhone:
		// Same rules as text, but a failed condition reports the phone
		// message. There is no phone-format check.
		out = evaluateText(desc, catalog)
		if !out.Satisfied {
			out.ErrorText = catalog.IncorrectPhone
		}
	case TypeEmail:
		out = Outcome{
			Satisfied:   emailPattern.MatchString(desc.Value),
			ErrorText:   catalog.IncorrectEmail,
			ValueLength: utf8.RuneCountInString(desc.Value),
		}
	case TypeRadio:
		out = Outcome{
			Satisfied:   desc.CheckedVisible >= 1,
			ErrorText:   catalog.IncorrectSelect,
			ValueLength: 1,
		}
	case TypeSelect:
		// "0" is the placeholder-option convention and counts as no choice.
		out = Outcome{
			Satisfied:   desc.Value != "" && desc.Value != "0",
			ErrorText:   catalog.IncorrectSelect,
			ValueLength: 1,
		}
	default:
		// Checkbox and unrecognised types are accepted as-is.
		out = Outcome{Satisfied: true, ValueLength: 1}
	}

	if desc.CustomErrorText != "" {
		out.ErrorText = desc.CustomErrorText
	}
	return out
}

func evaluateText(desc Descriptor, catalog messages.Catalog) Outcome {
	out := Outcome{ValueLength: utf8.RuneCountInString(desc.Value)}

	switch desc.Condition {
	case ConditionLength:
		bounds := desc.Bounds
		switch {
		case bounds.Length != nil:
			out.Satisfied = out.ValueLength == *bounds.Length
			out.ErrorText = catalog.ReqFieldLength(*bounds.Length)
		case bounds.Min != nil && bounds.Max != nil:
			out.Satisfied = out.ValueLength >= *bounds.Min && out.ValueLength <= *bounds.Max
			out.ErrorText = catalog.MinMaxFieldLength(*bounds.Min, *bounds.Max)
		case bounds.Max != nil:
			out.Satisfied = out.ValueLength <= *bounds.Max
			out.ErrorText = catalog.MaxFieldLength(*bounds.Max)
		case bounds.Min != nil:
			out.Satisfied = out.ValueLength >= *bounds.Min
			out.ErrorText = catalog.MinFieldLength(*bounds.Min)
		default:
			// A length condition without bounds constrains nothing and
			// carries no message.
			out.Satisfied = true
		}
	case ConditionEqual:
		var target string
		if desc.Bounds.EqualTo != nil {
			target = *desc.Bounds.EqualTo
		}
		out.Satisfied = desc.Value == target
		out.ErrorText = catalog.NotEqual
	default:
		out.Satisfied = true
		out.ErrorText = catalog.EmptyField
	}

	return out
}
