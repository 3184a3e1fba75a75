// Package validation binds request bodies and turns validation failures
// into field-level 400 responses.
//
// Request types carry `validate` struct tags and implement Validatable.
package validation
