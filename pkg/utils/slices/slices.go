package slices

// Map converts each element of sli with mapper.
//
// The result at index N is mapper(sli[N]).
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// First finds the first element satisfying pred.
//
// When no element matches, it returns (zero-value, false).
func First[T any](sli []T, pred func(v T) bool) (T, bool) {
	for _, v := range sli {
		if pred(v) {
			return v, true
		}
	}
	return *new(T), false
}

// Contains tests whether sli has at least one element satisfying pred.
func Contains[T any](sli []T, pred func(v T) bool) bool {
	_, ok := First(sli, pred)
	return ok
}

// KeysOf lists keys of a map. Ordering is not defined.
func KeysOf[K comparable, V any](m map[K]V) []K {
	ret := make([]K, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	return ret
}

// ValuesOf lists values of a map. Ordering is not defined.
func ValuesOf[K comparable, V any](m map[K]V) []V {
	ret := make([]V, 0, len(m))
	for _, v := range m {
		ret = append(ret, v)
	}
	return ret
}

// Filter picks elements satisfying pred, keeping their order.
func Filter[T any](sli []T, pred func(v T) bool) []T {
	ret := []T{}
	for _, v := range sli {
		if pred(v) {
			ret = append(ret, v)
		}
	}
	return ret
}
