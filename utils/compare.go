package utils

import "cmp"

// IsInRange reports whether lo <= value <= hi.
func IsInRange[T cmp.Ordered](lo, value, hi T) bool {
	return cmp.Compare(lo, value) <= 0 && cmp.Compare(value, hi) <= 0
}
