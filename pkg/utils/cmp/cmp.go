package cmp

// SliceEq tests a == b, element by element, order sensitive.
func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

// SliceEqWith is SliceEq with a custom equivalence.
func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}
	return true
}

// SliceContentEq tests that a and b have the same elements,
// ignoring ordering but counting duplicates.
func SliceContentEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	count := map[T]int{}
	for _, va := range a {
		count[va] += 1
	}
	for _, vb := range b {
		count[vb] -= 1
		if count[vb] < 0 {
			return false
		}
	}
	return true
}

// SliceContentEqWith is SliceContentEq with a custom equivalence.
//
// Each element of a must be matched by a distinct element of b.
func SliceContentEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, va := range a {
		found := false
		for nth, vb := range b {
			if used[nth] || !pred(va, vb) {
				continue
			}
			used[nth] = true
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// MapEq tests a == b, entry by entry.
func MapEq[K comparable, V comparable](a map[K]V, b map[K]V) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || va != vb {
			return false
		}
	}
	return true
}
