package strprim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/starlingvm/starling/lib/heap"
)

func newTestRuntime(t testing.TB, cfg Config) *Runtime {
	rt, err := NewRuntime(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(rt.Close)
	return rt
}

func TestCreateEfficientEmptySingleton(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	s, err := rt.CreateEfficient(Narrow(nil), false)
	require.NoError(t, err)
	assert.Same(t, rt.EmptyString(), s)

	s, err = rt.CreateEfficient(Wide([]uint16{}), false)
	require.NoError(t, err)
	assert.Same(t, rt.EmptyString(), s)
	assert.Equal(t, 0, s.Length())
}

func TestCreateEfficientCharacterCache(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	a1, err := rt.CreateEfficient(Narrow([]byte{'a'}), false)
	require.NoError(t, err)
	a2, err := rt.CreateEfficient(Narrow([]byte{'a'}), false)
	require.NoError(t, err)
	assert.Same(t, a1, a2)

	// Wide input with a narrow-range unit hits the same cache entry.
	a3, err := rt.CreateEfficient(Wide([]uint16{'a'}), false)
	require.NoError(t, err)
	assert.Same(t, a1, a3)
	assert.True(t, a3.IsNarrow())

	// Units past the narrow range allocate fresh wide strings.
	w1, err := rt.CreateEfficient(Wide([]uint16{0x2603}), false)
	require.NoError(t, err)
	w2, err := rt.CreateEfficient(Wide([]uint16{0x2603}), false)
	require.NoError(t, err)
	assert.NotSame(t, w1, w2)
	assert.False(t, w1.IsNarrow())
	assert.True(t, Equals(w1, w2))
}

func TestCreateEfficientAdoptsLargeOwnedBuffers(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{ExternalStringMinSize: null.IntFrom(8)})

	big := []byte("an owned buffer well past the threshold")
	s, err := rt.CreateEfficient(Narrow(big), true)
	require.NoError(t, err)
	assert.Equal(t, heap.KindExternalNarrow, s.HeapKind())
	assert.Equal(t, int64(len(big)), rt.Heap().ExternalBytes())

	// Same content unowned stays inline.
	s2, err := rt.CreateEfficient(Narrow(big), false)
	require.NoError(t, err)
	assert.Equal(t, heap.KindFlatNarrow, s2.HeapKind())
	assert.True(t, Equals(s, s2))

	// Owned but below the threshold is copied inline too.
	small, err := rt.CreateEfficient(Narrow([]byte("tiny")), true)
	require.NoError(t, err)
	assert.Equal(t, heap.KindFlatNarrow, small.HeapKind())
}

func TestCreateEfficientNarrowsASCIIWideInput(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	ascii, err := rt.CreateEfficient(Wide([]uint16{'h', 'i', '!'}), false)
	require.NoError(t, err)
	assert.True(t, ascii.IsNarrow())
	assert.Equal(t, "hi!", GoString(ascii))

	mixed, err := rt.CreateEfficient(Wide([]uint16{'h', 'i', 0x2603}), false)
	require.NoError(t, err)
	assert.False(t, mixed.IsNarrow())
}

func TestCreateRoundTrip(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	testCases := []Span{
		Narrow([]byte("hello world")),
		Narrow([]byte{0, 1, 127, 128, 255}),
		Wide([]uint16{'c', 'a', 'f', 0xE9}),
		Wide([]uint16{0xD83D, 0xDE00, 0}),
	}
	for _, src := range testCases {
		s, err := rt.CreateEfficient(src, false)
		require.NoError(t, err)
		require.Equal(t, src.Len(), s.Length())

		dst := make([]uint16, s.Length())
		CopyWide(s, dst)
		for i := 0; i < src.Len(); i++ {
			assert.Equal(t, src.At(i), dst[i])
		}

		grown := AppendWide([]uint16{'>'}, s)
		require.Len(t, grown, src.Len()+1)
		assert.Equal(t, uint16('>'), grown[0])
	}
}

func TestCreateLengthLimit(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})

	_, err := rt.NewBuilder(MaxStringLength+1, true)
	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Contains(t, rangeErr.Error(), "exceeds limit")

	// No allocation was admitted for the failed request.
	assert.Equal(t, int64(0), rt.Heap().Stats().HeapBytes)
}

func TestCreatePropagatesHeapErrors(t *testing.T) {
	t.Parallel()
	// Budget only covers the predefined strings plus a little slack.
	base := int64(257*headerBytes) + 256
	rt := newTestRuntime(t, Config{MaxHeapBytes: null.IntFrom(base + 64)})

	_, err := rt.Create(Narrow(make([]byte, 4096)))
	require.ErrorIs(t, err, heap.ErrOutOfMemory)
}

func TestCreateLongLivedPlacement(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})
	before := rt.Heap().Stats()

	s, err := rt.CreateLongLived(Narrow([]byte("function")))
	require.NoError(t, err)
	assert.Equal(t, "function", GoString(s))

	after := rt.Heap().Stats()
	assert.Equal(t, before.HeapBytes, after.HeapBytes)
	assert.Greater(t, after.LongLivedBytes, before.LongLivedBytes)
}

func TestCreateUniquedLongLived(t *testing.T) {
	t.Parallel()
	rt := newTestRuntime(t, Config{})
	id := rt.Symbols().Intern("Object")

	s, err := rt.CreateUniquedLongLived(Narrow([]byte("Object")), id)
	require.NoError(t, err)
	assert.Equal(t, heap.KindUniquedNarrow, s.HeapKind())
	got, ok := s.Uniqued()
	require.True(t, ok)
	assert.Equal(t, id, got)

	w, err := rt.CreateUniquedLongLived(Wide([]uint16{0x30AA}), id)
	require.NoError(t, err)
	assert.Equal(t, heap.KindUniquedWide, w.HeapKind())

	// Plain strings report no identifier.
	plain, err := rt.Create(Narrow([]byte("Object")))
	require.NoError(t, err)
	_, ok = plain.Uniqued()
	assert.False(t, ok)
}

func TestAddLengthsOverflow(t *testing.T) {
	t.Parallel()

	total, err := addLengths(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	_, err = addLengths(MaxStringLength, 1)
	var rangeErr *RangeError
	assert.True(t, errors.As(err, &rangeErr))
}
