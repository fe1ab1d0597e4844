// Package strprim implements the engine's string values: immutable,
// heap-allocated character sequences in two interoperating encodings, with
// inline and external storage, identity-preserving concatenation, fresh-copy
// slicing and zero-copy views.
package strprim

import (
	"github.com/starlingvm/starling/lib/heap"
	"github.com/starlingvm/starling/lib/symbol"
)

// MaxStringLength is the maximum number of code units in any string value.
const MaxStringLength = 256 * 1024 * 1024

// headerBytes approximates the heap cost of one cell header, charged on top
// of the payload for inline cells and alone for external ones.
const headerBytes = 32

// String is an immutable engine string value. The concrete set of
// implementations is closed: one inline flavor per encoding, their uniqued
// variants, and the external variants whose payload lives outside the cell.
// The unexported span method seals the set.
type String interface {
	heap.Cell

	// Length returns the number of code units.
	Length() int
	// IsNarrow reports whether the payload is single-byte units.
	IsNarrow() bool
	// Uniqued returns the identifier assigned at construction, for interned
	// variants.
	Uniqued() (symbol.ID, bool)

	span() Span
}

func init() {
	plain := func(*heap.MetadataBuilder) {}
	uniqued := func(mb *heap.MetadataBuilder) { mb.AddField("symbol") }
	heap.RegisterKind(heap.KindFlatNarrow, plain)
	heap.RegisterKind(heap.KindFlatWide, plain)
	heap.RegisterKind(heap.KindUniquedNarrow, uniqued)
	heap.RegisterKind(heap.KindUniquedWide, uniqued)
	// External headers carry the identifier slot whether or not it is set,
	// so their kinds declare it traced as well.
	heap.RegisterKind(heap.KindExternalNarrow, uniqued)
	heap.RegisterKind(heap.KindExternalWide, uniqued)
}

type flatNarrow struct {
	data []byte
}

func (s *flatNarrow) HeapKind() heap.Kind { return heap.KindFlatNarrow }
func (s *flatNarrow) Length() int { return len(s.data) }
func (s *flatNarrow) IsNarrow() bool { return true }
func (s *flatNarrow) Uniqued() (symbol.ID, bool) { return symbol.Invalid, false }
func (s *flatNarrow) span() Span { return Span{narrow: s.data} }

type flatWide struct {
	data []uint16
}

func (s *flatWide) HeapKind() heap.Kind { return heap.KindFlatWide }
func (s *flatWide) Length() int { return len(s.data) }
func (s *flatWide) IsNarrow() bool { return false }
func (s *flatWide) Uniqued() (symbol.ID, bool) { return symbol.Invalid, false }
func (s *flatWide) span() Span { return Span{wide: s.data} }

type uniquedNarrow struct {
	flatNarrow
	sym symbol.ID
}

func (s *uniquedNarrow) HeapKind() heap.Kind { return heap.KindUniquedNarrow }
func (s *uniquedNarrow) Uniqued() (symbol.ID, bool) { return s.sym, true }

type uniquedWide struct {
	flatWide
	sym symbol.ID
}

func (s *uniquedWide) HeapKind() heap.Kind { return heap.KindUniquedWide }
func (s *uniquedWide) Uniqued() (symbol.ID, bool) { return s.sym, true }

// externalNarrow owns a separately allocated buffer. The heap is credited
// with the buffer's byte size at construction and debited by the finalizer;
// both derive the amount from byteSize so the two cannot drift.
type externalNarrow struct {
	data []byte
	sym  symbol.ID
}

func (s *externalNarrow) HeapKind() heap.Kind { return heap.KindExternalNarrow }
func (s *externalNarrow) Length() int { return len(s.data) }
func (s *externalNarrow) IsNarrow() bool { return true }
func (s *externalNarrow) Uniqued() (symbol.ID, bool) { return s.sym, s.sym.Valid() }
func (s *externalNarrow) span() Span { return Span{narrow: s.data} }

func (s *externalNarrow) byteSize() int64 { return int64(len(s.data)) }

func (s *externalNarrow) Finalize(h *heap.Heap) {
	h.DebitExternalMemory(s, s.byteSize())
	s.data = nil
}

type externalWide struct {
	data []uint16
	sym  symbol.ID
}

func (s *externalWide) HeapKind() heap.Kind { return heap.KindExternalWide }
func (s *externalWide) Length() int { return len(s.data) }
func (s *externalWide) IsNarrow() bool { return false }
func (s *externalWide) Uniqued() (symbol.ID, bool) { return s.sym, s.sym.Valid() }
func (s *externalWide) span() Span { return Span{wide: s.data} }

func (s *externalWide) byteSize() int64 { return int64(len(s.data)) * 2 }

func (s *externalWide) Finalize(h *heap.Heap) {
	h.DebitExternalMemory(s, s.byteSize())
	s.data = nil
}

var (
	_ heap.Finalizable = (*externalNarrow)(nil)
	_ heap.Finalizable = (*externalWide)(nil)
)

// CopyWide flattens s into dst as wide code units, widening narrow units on
// the fly. dst must hold at least s.Length() units.
func CopyWide(s String, dst []uint16) {
	sp := s.span()
	if sp.wide != nil {
		copy(dst, sp.wide)
		return
	}
	for i, b := range sp.narrow {
		dst[i] = uint16(b)
	}
}

// AppendWide appends s's code units to dst and returns the extended slice.
func AppendWide(dst []uint16, s String) []uint16 {
	n := len(dst)
	dst = append(dst, make([]uint16, s.Length())...)
	CopyWide(s, dst[n:])
	return dst
}

// GoString decodes s into a native Go string.
func GoString(s String) string {
	return s.span().GoString()
}
