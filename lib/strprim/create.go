package strprim

import (
	"github.com/starlingvm/starling/lib/heap"
	"github.com/starlingvm/starling/lib/symbol"
)

// CreateEfficient constructs a string from src with every allocation fast
// path applied, in priority order: the empty singleton, the single-character
// cache, adoption of an owned buffer as external storage, and inline storage
// with narrow demotion of all-ASCII wide input.
//
// owned declares that src's backing array is transferred to the runtime: the
// caller must not touch it afterwards. Large owned buffers become external
// strings without a copy.
func (rt *Runtime) CreateEfficient(src Span, owned bool) (String, error) {
	if src.Len() == 0 {
		return rt.empty, nil
	}
	if src.Len() == 1 {
		return rt.characterString(src.At(0))
	}

	// Adopt ownership of large buffers instead of copying them twice.
	if owned && src.Len() >= rt.externalMinSize {
		return rt.CreateExternal(src)
	}

	// We fit in narrow storage if the input is narrow already, or is wide
	// with purely ASCII content.
	if !src.IsNarrow() && isAllASCII(src.Units()) {
		s, err := rt.allocFlat(src.Len(), true, false)
		if err != nil {
			return nil, err
		}
		fillFromSpan(s, src)
		return s, nil
	}

	return rt.Create(src)
}

// Create allocates a fresh inline string holding a copy of src, skipping the
// CreateEfficient fast paths. Used by the Builder and by callers that know
// they need a fresh buffer.
func (rt *Runtime) Create(src Span) (String, error) {
	s, err := rt.allocFlat(src.Len(), src.IsNarrow(), false)
	if err != nil {
		return nil, err
	}
	fillFromSpan(s, src)
	return s, nil
}

// CreateLongLived is Create with placement in the collector's long-lived
// region, for values expected to outlive a typical collection cycle.
func (rt *Runtime) CreateLongLived(src Span) (String, error) {
	s, err := rt.allocFlat(src.Len(), src.IsNarrow(), true)
	if err != nil {
		return nil, err
	}
	fillFromSpan(s, src)
	return s, nil
}

// CreateUniquedLongLived constructs a long-lived inline string carrying the
// given identifier. The identifier is set exactly once, here.
func (rt *Runtime) CreateUniquedLongLived(src Span, id symbol.ID) (String, error) {
	if src.Len() > MaxStringLength {
		return nil, newRangeError("string length exceeds limit")
	}
	if src.IsNarrow() {
		if err := rt.heap.AllocLongLived(heap.KindUniquedNarrow, headerBytes+int64(src.Len())); err != nil {
			return nil, err
		}
		s := &uniquedNarrow{sym: id}
		s.data = make([]byte, src.Len())
		copy(s.data, src.narrow)
		return s, nil
	}
	if err := rt.heap.AllocLongLived(heap.KindUniquedWide, headerBytes+2*int64(src.Len())); err != nil {
		return nil, err
	}
	s := &uniquedWide{sym: id}
	s.data = make([]uint16, src.Len())
	copy(s.data, src.wide)
	return s, nil
}

// CreateExternal adopts ownership of src's backing buffer as an external
// string. The heap is credited with the buffer's byte size; the finalizer
// debits the same amount at reclamation.
func (rt *Runtime) CreateExternal(owned Span) (String, error) {
	return rt.createExternal(owned, symbol.Invalid, false)
}

// CreateExternalLongLived adopts an owned buffer as a long-lived uniqued
// external string. Long-lived allocations are not retried after a
// collection, so the external budget is checked up front.
func (rt *Runtime) CreateExternalLongLived(owned Span, id symbol.ID) (String, error) {
	if owned.Len() > MaxStringLength {
		return nil, newRangeError("string length exceeds limit")
	}
	if !rt.heap.CanAllocExternalMemory(externalByteSize(owned)) {
		return nil, newRangeError("cannot allocate an external string primitive")
	}
	return rt.createExternal(owned, id, true)
}

// CreateExternalZeroFilled constructs an external string of the given length
// with zero code units, checking the external budget before allocating.
func (rt *Runtime) CreateExternalZeroFilled(length int, narrow bool) (String, error) {
	if length > MaxStringLength {
		return nil, newRangeError("string length exceeds limit")
	}
	byteSize := int64(length)
	if !narrow {
		byteSize *= 2
	}
	if !rt.heap.CanAllocExternalMemory(byteSize) {
		return nil, newRangeError("cannot allocate an external string primitive")
	}
	var owned Span
	if narrow {
		owned = Narrow(make([]byte, length))
	} else {
		owned = Wide(make([]uint16, length))
	}
	return rt.createExternal(owned, symbol.Invalid, false)
}

func (rt *Runtime) createExternal(owned Span, id symbol.ID, longLived bool) (String, error) {
	if owned.Len() > MaxStringLength {
		return nil, newRangeError("string length exceeds limit")
	}
	alloc := rt.heap.Alloc
	if longLived {
		alloc = rt.heap.AllocLongLived
	}

	var cell heap.Finalizable
	var s String
	if owned.IsNarrow() {
		if err := alloc(heap.KindExternalNarrow, headerBytes); err != nil {
			return nil, err
		}
		es := &externalNarrow{data: owned.narrow, sym: id}
		cell, s = es, es
	} else {
		if err := alloc(heap.KindExternalWide, headerBytes); err != nil {
			return nil, err
		}
		es := &externalWide{data: owned.wide, sym: id}
		cell, s = es, es
	}
	rt.heap.RegisterFinalizer(cell)
	rt.heap.CreditExternalMemory(cell, externalByteSize(owned))
	return s, nil
}

// externalByteSize is the off-heap cost of a buffer: code units times unit
// width. The finalizer re-derives the same value from the live buffer.
func externalByteSize(s Span) int64 {
	if s.IsNarrow() {
		return int64(s.Len())
	}
	return 2 * int64(s.Len())
}

// allocFlat admits and constructs an inline string with a zeroed payload of
// the given length and encoding. The caller fills the payload before the
// value escapes.
func (rt *Runtime) allocFlat(length int, narrow, longLived bool) (String, error) {
	if length > MaxStringLength {
		return nil, newRangeError("string length exceeds limit")
	}
	alloc := rt.heap.Alloc
	if longLived {
		alloc = rt.heap.AllocLongLived
	}
	if narrow {
		if err := alloc(heap.KindFlatNarrow, headerBytes+int64(length)); err != nil {
			return nil, err
		}
		return &flatNarrow{data: make([]byte, length)}, nil
	}
	if err := alloc(heap.KindFlatWide, headerBytes+2*int64(length)); err != nil {
		return nil, err
	}
	return &flatWide{data: make([]uint16, length)}, nil
}

// fillFromSpan copies src into the freshly allocated dst. A wide source may
// fill a narrow destination only when its content is narrow-representable,
// which the encoding-selection rules guarantee.
func fillFromSpan(dst String, src Span) {
	switch d := dst.(type) {
	case *flatNarrow:
		if src.IsNarrow() {
			copy(d.data, src.narrow)
			return
		}
		for i, u := range src.wide {
			d.data[i] = byte(u)
		}
	case *flatWide:
		if src.IsNarrow() {
			for i, b := range src.narrow {
				d.data[i] = uint16(b)
			}
			return
		}
		copy(d.data, src.wide)
	default:
		panic("strprim: fill target is not an inline string")
	}
}
