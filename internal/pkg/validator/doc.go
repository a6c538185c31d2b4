// Package validator provides the rule-set evaluator used for request and
// payload structs.
//
// Rules are declared with `validate` struct tags on the type being checked.
// Every field is evaluated and all violations are reported together, keyed by
// the field's JSON name, so callers can return the complete set to clients.
package validator
