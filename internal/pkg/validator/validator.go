package validator

// Validator validates a struct against the rules declared on its type.
//
// A nil return means no violation. On failure implementations return a
// field-to-message error (see V10ValidationError) covering every invalid field.
type Validator interface {
	Validate(data any) error
}
