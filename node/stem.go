package node

import (
	"strconv"
	"strings"
)

// Stem hands out numbered member names, "item1", "item2" and so on, used for
// the positional dependencies of sequences and dictionaries. Reserved names
// are skipped.
type Stem struct {
	prefix   string
	reserved map[string]struct{}
	n        int
}

func NewStem(prefix string, reserved ...string) *Stem {
	s := &Stem{prefix: prefix, reserved: make(map[string]struct{}, len(reserved))}
	for _, name := range reserved {
		s.reserved[name] = struct{}{}
	}

	return s
}

func (s *Stem) Next() string {
	for {
		s.n++

		name := s.prefix + strconv.Itoa(s.n)
		if _, ok := s.reserved[name]; !ok {
			return name
		}
	}
}

// Index is the position Next handed name out at, counted from zero, when no
// name was reserved.
func (s *Stem) Index(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, s.prefix)
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}

	return n - 1, true
}
