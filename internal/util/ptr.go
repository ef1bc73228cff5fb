// Package util holds small helpers shared by the parse schemas and tests.
package util

// Ptr returns a pointer to v. Optional schema fields are pointers so that
// zero values can be told apart from absent ones.
func Ptr[T any](v T) *T {
	return &v
}
