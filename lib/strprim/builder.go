package strprim

// Builder accumulates code units into a single pre-sized inline string,
// eliminating per-fragment allocations in concatenation and slicing. It is
// write-once: the destination is allocated up front, appends fill it in
// order, and Finish hands the string out. The in-progress buffer is not
// reachable by anything else, so builder writes need no synchronization.
//
// Appending wide content into a narrow-declared builder is a contract
// violation: the encoding-selection rules always declare a wide builder when
// any input is wide.
type Builder struct {
	dest String
	// Exactly one of these aliases dest's payload.
	narrow []byte
	wide   []uint16
	pos    int
}

// NewBuilder allocates a builder whose destination holds length code units
// of the given encoding. Lengths past the representable maximum fail with a
// range error; allocation failures propagate the heap's error unchanged.
func (rt *Runtime) NewBuilder(length int, narrow bool) (*Builder, error) {
	dest, err := rt.allocFlat(length, narrow, false)
	if err != nil {
		return nil, err
	}
	b := &Builder{dest: dest}
	switch d := dest.(type) {
	case *flatNarrow:
		b.narrow = d.data
	case *flatWide:
		b.wide = d.data
	}
	return b, nil
}

// AppendNarrow writes a narrow span at the next unwritten offset, widening
// into a wide destination as needed.
func (b *Builder) AppendNarrow(src []byte) {
	if b.narrow != nil {
		b.pos += copy(b.narrow[b.pos:], src)
		return
	}
	for _, c := range src {
		b.wide[b.pos] = uint16(c)
		b.pos++
	}
}

// AppendWide writes a wide span at the next unwritten offset.
func (b *Builder) AppendWide(src []uint16) {
	if b.wide == nil {
		panic("strprim: wide append into a narrow builder")
	}
	b.pos += copy(b.wide[b.pos:], src)
}

// AppendSpan dispatches on the span's encoding.
func (b *Builder) AppendSpan(src Span) {
	if src.IsNarrow() {
		b.AppendNarrow(src.narrow)
		return
	}
	b.AppendWide(src.wide)
}

// AppendString appends a whole string value.
func (b *Builder) AppendString(s String) {
	b.AppendSpan(s.span())
}

// Finish returns the built string. No appends are permitted afterwards.
func (b *Builder) Finish() String {
	return b.dest
}
