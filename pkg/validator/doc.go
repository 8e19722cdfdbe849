// Package validator builds declarative input checks out of small Rule values.
//
// Each rule pairs a Check function with the ValidationError reported when the
// check fails. Apply runs every rule and gathers the failures into a
// ValidationErrors value, so a caller learns about all invalid fields at once
// instead of the first one.
//
// # Usage
//
//	err := validator.Apply(
//		validator.Required("student", req.StudentID),
//		validator.ValidEmail("sender", req.Sender),
//		validator.MaxLen("subject", subject, 998),
//	)
//	if err != nil {
//		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
//	}
//
// ExtractValidationErrors recovers the field-level failures from a wrapped
// error, for instance to show them next to a form.
//
// Rules hold no state; they are safe to build and apply from any goroutine.
package validator
