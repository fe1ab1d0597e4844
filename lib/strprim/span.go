package strprim

import "unicode/utf16"

// Span is a borrowed run of code units in one of the two encodings: narrow
// (one byte per unit, values 0–255) or wide (two bytes per unit, UTF-16 code
// units). A Span does not own its memory; its validity is bounded by whoever
// owns the backing array.
type Span struct {
	narrow []byte
	wide   []uint16
}

// Narrow wraps a single-byte code unit sequence.
func Narrow(b []byte) Span { return Span{narrow: b} }

// Wide wraps a two-byte code unit sequence. A nil slice degrades to the
// narrow empty span: encoding is carried by the wide payload's presence, and
// the distinction is immaterial for empty input, which every construction
// path routes to the empty singleton.
func Wide(u []uint16) Span { return Span{wide: u} }

// IsNarrow reports the span's encoding. The empty span counts as narrow.
func (s Span) IsNarrow() bool { return s.wide == nil }

// Len returns the number of code units.
func (s Span) Len() int {
	if s.wide != nil {
		return len(s.wide)
	}
	return len(s.narrow)
}

// At returns the code unit at index i, widened to its numeric value.
func (s Span) At(i int) uint16 {
	if s.wide != nil {
		return s.wide[i]
	}
	return uint16(s.narrow[i])
}

// Bytes returns the narrow payload, or nil for wide spans.
func (s Span) Bytes() []byte { return s.narrow }

// Units returns the wide payload, or nil for narrow spans.
func (s Span) Units() []uint16 { return s.wide }

// Slice returns the sub-span [start, start+length). Bounds are the caller's
// responsibility, as with the slicing operations built on top of it.
func (s Span) Slice(start, length int) Span {
	if s.wide != nil {
		return Span{wide: s.wide[start : start+length]}
	}
	return Span{narrow: s.narrow[start : start+length]}
}

// GoString decodes the span into a native Go string, for diagnostics and for
// handing text back out of the engine.
func (s Span) GoString() string {
	if s.wide != nil {
		return string(utf16.Decode(s.wide))
	}
	// Narrow units are 0–255 and decode as the first 256 code points.
	runes := make([]rune, len(s.narrow))
	for i, b := range s.narrow {
		runes[i] = rune(b)
	}
	return string(runes)
}

// isAllASCII reports whether every unit fits the 7-bit range, i.e. the span
// can be demoted to narrow storage without loss.
func isAllASCII(units []uint16) bool {
	for _, u := range units {
		if u >= 0x80 {
			return false
		}
	}
	return true
}
