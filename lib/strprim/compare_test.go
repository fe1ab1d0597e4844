package strprim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mk builds one string per encoding form used by the comparator tests.
func mk(t *testing.T, rt *Runtime, src Span) String {
	t.Helper()
	s, err := rt.Create(src)
	require.NoError(t, err)
	return s
}

func TestEqualsAcrossEncodings(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	narrow := mk(t, rt, Narrow([]byte("cafe")))
	wideSame := mk(t, rt, Wide([]uint16{'c', 'a', 'f', 'e'}))
	wideAccent := mk(t, rt, Wide([]uint16{'c', 'a', 'f', 0xE9}))

	testCases := []struct {
		name string
		a, b String
		want bool
	}{
		{"narrow/narrow", narrow, mk(t, rt, Narrow([]byte("cafe"))), true},
		{"narrow/wide", narrow, wideSame, true},
		{"wide/narrow", wideSame, narrow, true},
		{"wide/wide", wideSame, mk(t, rt, Wide([]uint16{'c', 'a', 'f', 'e'})), true},
		{"content mismatch", narrow, wideAccent, false},
		{"length mismatch", narrow, mk(t, rt, Narrow([]byte("caf"))), false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Equals(tc.a, tc.b))
			assert.Equal(t, tc.want, Compare(tc.a, tc.b) == 0)
		})
	}
}

func TestEqualsIdentityShortcut(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	s := mk(t, rt, Narrow([]byte("self")))
	assert.True(t, Equals(s, s))
	assert.True(t, Equals(rt.EmptyString(), rt.EmptyString()))
}

func TestCompareIsATotalOrder(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	// Deliberately mixes encodings for equal and near-equal content.
	sample := []String{
		rt.EmptyString(),
		mk(t, rt, Narrow([]byte("a"))),
		mk(t, rt, Wide([]uint16{'a'})),
		mk(t, rt, Narrow([]byte("ab"))),
		mk(t, rt, Narrow([]byte("b"))),
		mk(t, rt, Wide([]uint16{'b', 0x100})),
		mk(t, rt, Wide([]uint16{0x2603})),
	}

	for _, x := range sample {
		for _, y := range sample {
			xy := Compare(x, y)
			assert.Equal(t, -xy, Compare(y, x), "antisymmetry: %q vs %q", GoString(x), GoString(y))
			assert.Equal(t, xy == 0, Equals(x, y), "consistency with equals: %q vs %q", GoString(x), GoString(y))
			for _, z := range sample {
				if xy <= 0 && Compare(y, z) <= 0 {
					assert.LessOrEqual(t, Compare(x, z), 0,
						"transitivity: %q <= %q <= %q", GoString(x), GoString(y), GoString(z))
				}
			}
		}
	}
}

func TestCompareFirstDifferingUnit(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	narrow := mk(t, rt, Narrow([]byte("cafe")))
	wide := mk(t, rt, Wide([]uint16{'c', 'a', 'f', 0xE9}))

	// 'e' (0x65) < 'é' (0xE9) at the first differing position.
	assert.False(t, Equals(narrow, wide))
	assert.Negative(t, Compare(narrow, wide))
	assert.Positive(t, Compare(wide, narrow))

	// A prefix orders before its extension.
	prefix := mk(t, rt, Narrow([]byte("caf")))
	assert.Negative(t, Compare(prefix, narrow))
}

func TestSliceEquals(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	hello := mk(t, rt, Narrow([]byte("hello world")))
	world := mk(t, rt, Narrow([]byte("world")))
	wideWorld := mk(t, rt, Wide([]uint16{'w', 'o', 'r', 'l', 'd'}))

	assert.True(t, SliceEquals(hello, 6, 5, world))
	assert.True(t, SliceEquals(hello, 6, 5, wideWorld))
	assert.False(t, SliceEquals(hello, 0, 5, world))
	// The declared window length must match the other operand.
	assert.False(t, SliceEquals(hello, 6, 4, world))

	wideHello := mk(t, rt, Wide([]uint16{'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd'}))
	assert.True(t, SliceEquals(wideHello, 6, 5, world))
	assert.True(t, SliceEquals(wideHello, 6, 5, wideWorld))
}
