package utils

// Ptr returns a pointer to the given value.
// Useful for setting optional fields in struct literals.
func Ptr[T any](v T) *T {
	return &v
}
