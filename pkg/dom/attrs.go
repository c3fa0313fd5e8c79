package dom

// Markup contract attributes. Containers opt into validation with
// data-validation="required"; every other attribute refines the rule.
const (
	AttrValidation = "data-validation"
	AttrType       = "data-validation-type"
	AttrCondition  = "data-validation-condition"
	AttrErrorText  = "data-validation-text"

	AttrLength    = "data-length"
	AttrMinLength = "data-min-length"
	AttrMaxLength = "data-max-length"
	AttrEqual     = "data-equal"

	// ValidationRequired is the only data-validation value that activates a
	// container. Anything else leaves the container untouched.
	ValidationRequired = "required"
)
