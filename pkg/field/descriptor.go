package field

// Type enumerates the supported control kinds, matching the
// data-validation-type attribute values.
type Type string

const (
	TypeText     Type = "text"
	TypePhone    Type = "phone"
	TypeEmail    Type = "email"
	TypeCheckbox Type = "checkbox"
	TypeRadio    Type = "radio"
	TypeSelect   Type = "select"
)

// Condition enumerates the rule selectors carried by the
// data-validation-condition attribute.
type Condition string

const (
	ConditionNone   Condition = ""
	ConditionLength Condition = "length"
	ConditionEqual  Condition = "equal"
)

// ParseType reports whether raw names a known control kind.
func ParseType(raw string) (Type, bool) {
	switch t := Type(raw); t {
	case TypeText, TypePhone, TypeEmail, TypeCheckbox, TypeRadio, TypeSelect:
		return t, true
	}
	return Type(raw), false
}

// ParseCondition reports whether raw names a known rule selector. The empty
// string is the valid "no condition" case.
func ParseCondition(raw string) (Condition, bool) {
	switch c := Condition(raw); c {
	case ConditionNone, ConditionLength, ConditionEqual:
		return c, true
	}
	return Condition(raw), false
}

// Bounds carries the optional rule parameters. Absent attributes stay nil so
// the evaluator can tell "no bound" from a zero bound.
type Bounds struct {
	Length  *int
	Min     *int
	Max     *int
	EqualTo *string
}

// Descriptor is a point-in-time snapshot of one annotated field container.
// Snapshots are read fresh from the document on every pass; the evaluator
// never reaches back into the DOM.
type Descriptor struct {
	Name            string
	Required        bool
	Type            Type
	Condition       Condition
	CustomErrorText string

	// Value is the active control's current value. For radio groups it is
	// unused; CheckedVisible carries the group state instead.
	Value          string
	Checked        bool
	CheckedVisible int

	Bounds Bounds
}

// Outcome is the result of evaluating one Descriptor. It lives for a single
// pass and is never stored.
type Outcome struct {
	Satisfied   bool
	ErrorText   string
	ValueLength int
}
