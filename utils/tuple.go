package utils

// Pair is a named two-element tuple, used for ordered key/value sequences.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// PairOf builds a Pair.
func PairOf[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// Unpack returns both elements of the pair.
func (p Pair[K, V]) Unpack() (K, V) { return p.Key, p.Value }

func Second[T any](_ any, t T) T { return t }

func Unpack2[Slice ~[]T, T any](s Slice) (first T, second T) {
	switch len(s) {
	default:
		return s[0], s[1]
	case 0:
		return
	case 1:
		first = s[0]
		return
	}
}
