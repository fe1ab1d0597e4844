package strprim

// View is a zero-copy, read-only window onto a flat string's code units.
// It does not own the data and does not keep the source string alive; the
// engine's handle mechanism is responsible for that while a view is in use.
type View struct {
	s Span
}

// CreateStringView returns a view over s's payload. If the broader engine
// grows non-contiguous concatenation trees, this is where they get flattened
// first; every variant in this subsystem is already contiguous.
func (rt *Runtime) CreateStringView(s String) View {
	ensureFlat(s)
	return View{s: s.span()}
}

func ensureFlat(String) {}

// Len returns the number of code units.
func (v View) Len() int { return v.s.Len() }

// IsNarrow reports the underlying encoding.
func (v View) IsNarrow() bool { return v.s.IsNarrow() }

// At returns the code unit at index i, widened to its numeric value, without
// branching on encoding at the call site.
func (v View) At(i int) uint16 { return v.s.At(i) }

// Span returns the underlying borrowed span.
func (v View) Span() Span { return v.s }

// GoString decodes the viewed text, for diagnostics.
func (v View) GoString() string { return v.s.GoString() }
