package dom

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vitalishapovalov/html-form-validation/pkg/field"
)

// Field wraps one validation container inside a form.
type Field struct {
	sel *goquery.Selection
}

// Required reports whether the container opted into validation with
// data-validation="required".
func (f *Field) Required() bool {
	return f.sel.AttrOr(AttrValidation, "") == ValidationRequired
}

// Attr returns an attribute of the container element.
func (f *Field) Attr(name string) (string, bool) {
	return f.sel.Attr(name)
}

// Has reports whether any descendant matches selector. The selector must be
// a known-good literal; it is not revalidated here.
func (f *Field) Has(selector string) bool {
	return f.sel.Find(selector).Length() > 0
}

// Locator names the container for diagnostics: tag name plus id when one is
// set.
func (f *Field) Locator() string {
	name := goquery.NodeName(f.sel)
	if id := f.sel.AttrOr("id", ""); id != "" {
		return name + "#" + id
	}
	return name
}

// Label returns the container's label text, falling back to the active
// control's name.
func (f *Field) Label() string {
	if label := strings.TrimSpace(f.sel.Find("label").First().Text()); label != "" {
		return label
	}
	return f.Snapshot().Name
}

// Snapshot reads the container into a field.Descriptor. Values reflect the
// parsed tree: input values come from the value attribute, textareas from
// their text, selects from the explicitly selected option (else the first),
// and radio groups from their checked-and-visible count.
func (f *Field) Snapshot() field.Descriptor {
	desc := field.Descriptor{
		Required:        f.Required(),
		Type:            field.Type(f.sel.AttrOr(AttrType, "")),
		Condition:       field.Condition(f.sel.AttrOr(AttrCondition, "")),
		CustomErrorText: f.sel.AttrOr(AttrErrorText, ""),
		Bounds: field.Bounds{
			Length: intAttr(f.sel, AttrLength),
			Min:    intAttr(f.sel, AttrMinLength),
			Max:    intAttr(f.sel, AttrMaxLength),
		},
	}
	if equalTo, ok := f.sel.Attr(AttrEqual); ok {
		desc.Bounds.EqualTo = &equalTo
	}

	switch desc.Type {
	case field.TypeRadio:
		radios := f.sel.Find("input[type=radio]")
		desc.Name = radios.First().AttrOr("name", "")
		desc.CheckedVisible = countCheckedVisible(radios)
	case field.TypeSelect:
		control := f.sel.Find("select").First()
		desc.Name = control.AttrOr("name", "")
		desc.Value = selectValue(control)
	case field.TypeCheckbox:
		control := f.sel.Find("input[type=checkbox]").First()
		desc.Name = control.AttrOr("name", "")
		desc.Value = control.AttrOr("value", "")
		desc.Checked = hasAttr(control, "checked")
	default:
		control := f.activeControl()
		desc.Name = control.AttrOr("name", "")
		desc.Value = controlValue(control)
	}

	return desc
}

// Choices lists the options of a select or radio container, for callers that
// prompt instead of reading markup values.
func (f *Field) Choices() []Choice {
	var choices []Choice

	switch field.Type(f.sel.AttrOr(AttrType, "")) {
	case field.TypeSelect:
		f.sel.Find("select").First().Find("option").Each(func(_ int, option *goquery.Selection) {
			label := strings.TrimSpace(option.Text())
			choices = append(choices, Choice{
				Value:   option.AttrOr("value", label),
				Label:   label,
				Checked: hasAttr(option, "selected"),
			})
		})
	case field.TypeRadio:
		f.sel.Find("input[type=radio]").Each(func(_ int, radio *goquery.Selection) {
			value := radio.AttrOr("value", "")
			label := value
			if wrapper := radio.Closest("label"); wrapper.Length() > 0 {
				if text := strings.TrimSpace(wrapper.Text()); text != "" {
					label = text
				}
			}
			choices = append(choices, Choice{
				Value:   value,
				Label:   label,
				Checked: hasAttr(radio, "checked"),
			})
		})
	}

	return choices
}

// Choice is one selectable option of a select or radio container.
type Choice struct {
	Value   string
	Label   string
	Checked bool
}

// MarkIncorrect sets the incorrect marker class on the container.
func (f *Field) MarkIncorrect(class string) {
	f.sel.AddClass(class)
}

// ClearIncorrect removes the incorrect marker class from the container.
func (f *Field) ClearIncorrect(class string) {
	f.sel.RemoveClass(class)
}

// IsMarkedIncorrect reports whether the container carries the incorrect
// marker class.
func (f *Field) IsMarkedIncorrect(class string) bool {
	return f.sel.HasClass(class)
}

// WriteError sets the text of the container's error element. The text is
// sanitized first so markup smuggled through a data attribute never reaches
// the tree.
func (f *Field) WriteError(errorSelector, text string) {
	f.sel.Find(errorSelector).SetText(sanitizeText(text))
}

// ErrorText returns the current text of the container's error element.
func (f *Field) ErrorText(errorSelector string) string {
	return f.sel.Find(errorSelector).First().Text()
}

// activeControl picks the control whose value the rules inspect: the first
// input or textarea that is enabled and visible.
func (f *Field) activeControl() *goquery.Selection {
	return f.sel.Find("input, textarea").FilterFunction(func(_ int, control *goquery.Selection) bool {
		return !hasAttr(control, "disabled") && isVisible(control)
	}).First()
}

func controlValue(control *goquery.Selection) string {
	if goquery.NodeName(control) == "textarea" {
		return control.Text()
	}
	return control.AttrOr("value", "")
}

func selectValue(control *goquery.Selection) string {
	option := control.Find("option[selected]").First()
	if option.Length() == 0 {
		option = control.Find("option").First()
	}
	if option.Length() == 0 {
		return ""
	}
	if value, ok := option.Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(option.Text())
}

func countCheckedVisible(radios *goquery.Selection) int {
	count := 0
	radios.Each(func(_ int, radio *goquery.Selection) {
		if hasAttr(radio, "checked") && isVisible(radio) {
			count++
		}
	})
	return count
}

// isVisible applies the static-tree visibility rules: a control is hidden
// when it is type="hidden" or when it or an ancestor carries the hidden
// attribute or an inline display:none.
func isVisible(sel *goquery.Selection) bool {
	if strings.EqualFold(sel.AttrOr("type", ""), "hidden") {
		return false
	}
	for cur := sel; cur.Length() > 0; cur = cur.Parent() {
		if hasAttr(cur, "hidden") {
			return false
		}
		if style, ok := cur.Attr("style"); ok && styleHidesElement(style) {
			return false
		}
	}
	return true
}

func styleHidesElement(style string) bool {
	compact := strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(compact, "display:none")
}

func hasAttr(sel *goquery.Selection, name string) bool {
	_, ok := sel.Attr(name)
	return ok
}

func intAttr(sel *goquery.Selection, name string) *int {
	raw, ok := sel.Attr(name)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &parsed
}
