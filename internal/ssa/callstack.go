package ssa

// SourceLocation is a single frame of diagnostic context: the file/function
// an instruction or terminator was lowered from. The real location type
// (spans, file ids) belongs to the front-end; this layer only needs to
// carry it opaquely through map_values-style renames and clone it on
// terminator construction.
type SourceLocation struct {
	File string
	Line uint32
}

// CallStack is an ordered sequence of source locations used for
// diagnostics, attached to every terminator (spec §3).
type CallStack []SourceLocation

// Clone returns an independent copy, mirroring the original's
// call_stack.clone() at each terminator constructor/rename site.
func (c CallStack) Clone() CallStack {
	out := make(CallStack, len(c))
	copy(out, c)
	return out
}
