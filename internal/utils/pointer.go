package utils

// Ptr returns a pointer to v. It avoids the need for a temporary variable
// when the address of a literal or computed value must be passed where a
// pointer is expected (e.g. ChatParams.Temperature).
func Ptr[T any](v T) *T {
	return &v
}
