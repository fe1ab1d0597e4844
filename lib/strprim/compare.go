package strprim

// The comparator works over all four {narrow, wide} operand combinations
// without materializing a re-encoded copy of either side: narrow units are
// widened to their numeric value on the fly during the scan.

type codeUnit interface {
	~byte | ~uint16
}

func scanEquals[A, B codeUnit](a []A, b []B) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if uint16(a[i]) != uint16(b[i]) {
			return false
		}
	}
	return true
}

func scanCompare[A, B codeUnit](a []A, b []B) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		au, bu := uint16(a[i]), uint16(b[i])
		if au != bu {
			if au < bu {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equals reports content equality of a and b. Identity is checked first:
// the same instance is equal to itself unconditionally, regardless of
// storage variant.
func Equals(a, b String) bool {
	if a == b {
		return true
	}
	return SliceEquals(a, 0, a.Length(), b)
}

// SliceEquals compares the window [start, start+length) of a against the
// whole of b. Window bounds are the caller's responsibility.
func SliceEquals(a String, start, length int, b String) bool {
	as := a.span().Slice(start, length)
	bs := b.span()
	switch {
	case as.IsNarrow() && bs.IsNarrow():
		return scanEquals(as.narrow, bs.narrow)
	case as.IsNarrow():
		return scanEquals(as.narrow, bs.wide)
	case bs.IsNarrow():
		return scanEquals(as.wide, bs.narrow)
	default:
		return scanEquals(as.wide, bs.wide)
	}
}

// Compare returns a three-way ordering of a and b, lexicographic over
// code-unit values. It is a total order: antisymmetric, transitive, and zero
// exactly when Equals holds.
func Compare(a, b String) int {
	as, bs := a.span(), b.span()
	switch {
	case as.IsNarrow() && bs.IsNarrow():
		return scanCompare(as.narrow, bs.narrow)
	case as.IsNarrow():
		return scanCompare(as.narrow, bs.wide)
	case bs.IsNarrow():
		return scanCompare(as.wide, bs.narrow)
	default:
		return scanCompare(as.wide, bs.wide)
	}
}
