package mocks

// CallLog records the arguments of every call made against a mock method.
type CallLog[T any] []T

// Times counts the recorded calls.
func (l CallLog[T]) Times() uint {
	return uint(len(l))
}

// Last returns the arguments of the most recent call.
// It panics when nothing was recorded.
func (l CallLog[T]) Last() T {
	return l[len(l)-1]
}
