package dom

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Form wraps one form element. Field lookups are read fresh on every call so
// a pass always sees the current tree.
type Form struct {
	sel *goquery.Selection
}

// Fields returns every container inside the form matching fieldsSelector, in
// document order.
func (f *Form) Fields(fieldsSelector string) ([]*Field, error) {
	matcher, err := compileSelector(fieldsSelector)
	if err != nil {
		return nil, err
	}

	var fields []*Field
	f.sel.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
		fields = append(fields, &Field{sel: sel})
	})
	return fields, nil
}

// MarkValid sets the form-level valid marker class.
func (f *Form) MarkValid(class string) {
	f.sel.AddClass(class)
}

// ClearValid removes the form-level valid marker class.
func (f *Form) ClearValid(class string) {
	f.sel.RemoveClass(class)
}

// IsMarkedValid reports whether the form carries the valid marker class.
func (f *Form) IsMarkedValid(class string) bool {
	return f.sel.HasClass(class)
}

// Attr returns an attribute of the form element.
func (f *Form) Attr(name string) (string, bool) {
	return f.sel.Attr(name)
}

// Serialize collects the current values of every named, enabled control into
// url.Values, the shape the submit transport posts. Radio and checkbox
// controls contribute only when checked.
func (f *Form) Serialize() url.Values {
	values := url.Values{}

	f.sel.Find("input, textarea, select").Each(func(_ int, control *goquery.Selection) {
		name := control.AttrOr("name", "")
		if name == "" || hasAttr(control, "disabled") {
			return
		}

		switch goquery.NodeName(control) {
		case "textarea":
			values.Add(name, control.Text())
		case "select":
			values.Add(name, selectValue(control))
		default:
			typ := strings.ToLower(control.AttrOr("type", "text"))
			switch typ {
			case "radio", "checkbox":
				if hasAttr(control, "checked") {
					values.Add(name, control.AttrOr("value", "on"))
				}
			case "submit", "button", "reset", "image", "file":
				// Buttons serialize only on activation and file payloads
				// are not part of a urlencoded body.
			default:
				values.Add(name, control.AttrOr("value", ""))
			}
		}
	})

	return values
}
