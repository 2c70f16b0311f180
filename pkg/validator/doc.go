// Package validator provides small, composable validation rules for form input
// and rendering preconditions.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// Rules are evaluated with one of two helpers:
//
//   - Apply evaluates every rule and aggregates all failures into a
//     ValidationErrors value.
//   - ApplyFirst evaluates rules in order and stops at the first failure. The
//     order of the rules therefore decides which single error the caller sees.
//
// # Usage
//
//	err := validator.ApplyFirst(
//	    validator.RequiredString("name", name),
//	    validator.RequiredOneOf("contact", email, phone),
//	    validator.ValidEmailSimple("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    first := verrs[0] // field, message and i18n key
//	}
//
// # Error Handling
//
// ValidationErrors implements error, so it travels through ordinary error
// returns and can be recovered with errors.As or ExtractValidationErrors.
//
// The package has no global state and all rules are safe for concurrent use.
package validator
