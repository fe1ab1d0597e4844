package strprim

// Concat returns the concatenation of x and y. An empty operand returns the
// other operand itself — the same instance, not a copy. Otherwise the result
// is a single fresh inline string; the subsystem never builds lazy
// concatenation nodes.
func (rt *Runtime) Concat(x, y String) (String, error) {
	if x.Length() == 0 {
		return y, nil
	}
	if y.Length() == 0 {
		return x, nil
	}

	total, err := addLengths(x.Length(), y.Length())
	if err != nil {
		return nil, err
	}

	// The result is narrow only when both inputs are.
	b, err := rt.NewBuilder(total, x.IsNarrow() && y.IsNarrow())
	if err != nil {
		return nil, err
	}
	b.AppendString(x)
	b.AppendString(y)
	return b.Finish(), nil
}

// Slice returns a fresh copy of src's window [start, start+length), in the
// source's encoding. Bounds are the caller's responsibility. The copy is
// deliberate: sharing the parent's storage would require pinning it against
// a moving collector or adding an indirection layer.
func (rt *Runtime) Slice(src String, start, length int) (String, error) {
	// Zero-length strings are always the singleton, never a fresh instance.
	if length == 0 {
		return rt.empty, nil
	}
	b, err := rt.NewBuilder(length, src.IsNarrow())
	if err != nil {
		return nil, err
	}
	b.AppendSpan(src.span().Slice(start, length))
	return b.Finish(), nil
}
