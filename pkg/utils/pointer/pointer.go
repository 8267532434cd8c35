package pointer

func Ref[T any](t T) *T {
	return &t
}

func Deref[T any](ptr *T) T {
	return *ptr
}

// SafeDeref dereferences ptr, falling back to the zero value for nil.
func SafeDeref[T any](ptr *T) T {
	if ptr == nil {
		return *new(T)
	}
	return *ptr
}
