package htc

import "fmt"

// ValidationError reports a malformed field on a chain entity. Field is
// a path into the offending structure, e.g. "hypotheses[2].confidence".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DomainError reports a violated domain invariant: the fields parse but
// the assessment asserts something the model forbids, such as confirmed
// intent with no supporting signal anywhere in the chain.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ReferentialError reports an evidence reference that does not resolve
// inside the assessment carrying it.
type ReferentialError struct {
	Ref Ref
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("dangling reference %s", e.Ref)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
