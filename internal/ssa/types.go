package ssa

import "fmt"

// Type is the SSA-level type of a value. It is a closed set: numeric
// (parameterized by bit width and signedness), array, slice, reference, and
// function. Every new case here forces a matching case everywhere a Type is
// switched on — result-type rules, the printer, and the builder.
type Type interface {
	String() string
	// Equal reports structural type equality, used by simplification when
	// comparing operand and target types.
	Equal(Type) bool
}

// NumericKind distinguishes the three numeric families the IR supports.
type NumericKind uint8

const (
	NumericUnsignedInt NumericKind = iota
	NumericSignedInt
	NumericField
)

// NumericType is a numeric SSA type: an unsigned/signed integer of a given
// bit width, or a field element (bit size is the field's native width).
type NumericType struct {
	Kind    NumericKind
	BitSize uint32
}

func (n *NumericType) bitSize() uint32 { return n.BitSize }

// BitSizeOf returns the type's bit width.
func (n *NumericType) BitSizeOf() uint32 { return n.BitSize }

// IsUnsigned reports whether this numeric type is an unsigned integer.
// Field elements are not considered unsigned: Not-folding and similar rules
// must never treat a field constant like an unsigned integer (§4.4 Not).
func (n *NumericType) IsUnsigned() bool { return n.Kind == NumericUnsignedInt }

func (n *NumericType) String() string {
	switch n.Kind {
	case NumericUnsignedInt:
		return fmt.Sprintf("u%d", n.BitSize)
	case NumericSignedInt:
		return fmt.Sprintf("i%d", n.BitSize)
	default:
		return "Field"
	}
}

func (n *NumericType) Equal(other Type) bool {
	o, ok := other.(*NumericType)
	return ok && o.Kind == n.Kind && o.BitSize == n.BitSize
}

// Convenience constructors, mirroring the small set of numeric types the
// instruction layer manufactures directly (booleans and the native field).
func Unsigned(bitSize uint32) *NumericType { return &NumericType{Kind: NumericUnsignedInt, BitSize: bitSize} }
func Signed(bitSize uint32) *NumericType   { return &NumericType{Kind: NumericSignedInt, BitSize: bitSize} }
func Field() *NumericType                  { return &NumericType{Kind: NumericField, BitSize: FieldBitSize} }
func Bool() *NumericType                   { return &NumericType{Kind: NumericUnsignedInt, BitSize: 1} }

// FieldBitSize is the nominal bit width reported for the native field
// element type. It is informational only (the field's real modulus lives in
// package dfg); the instruction layer never needs more than "this is the
// field type, not a fixed-width integer".
const FieldBitSize = 254

// ArrayType is a fixed-length homogeneous array type.
type ArrayType struct {
	Element Type
	Length  uint32
}

func (a *ArrayType) String() string { return fmt.Sprintf("[%s; %d]", a.Element, a.Length) }
func (a *ArrayType) Equal(other Type) bool {
	o, ok := other.(*ArrayType)
	return ok && o.Length == a.Length && o.Element.Equal(a.Element)
}

// SliceType is a variable-length homogeneous sequence type.
type SliceType struct {
	Element Type
}

func (s *SliceType) String() string { return fmt.Sprintf("[%s]", s.Element) }
func (s *SliceType) Equal(other Type) bool {
	o, ok := other.(*SliceType)
	return ok && o.Element.Equal(s.Element)
}

// ReferenceType is the type of an Allocate result: a mutable memory cell
// holding a value of the given pointee type.
type ReferenceType struct {
	Pointee Type
}

func (r *ReferenceType) String() string { return fmt.Sprintf("&mut %s", r.Pointee) }
func (r *ReferenceType) Equal(other Type) bool {
	o, ok := other.(*ReferenceType)
	return ok && o.Pointee.Equal(r.Pointee)
}

// FunctionType is the type of a function/intrinsic/foreign-function value
// used as the callee operand of a Call instruction.
type FunctionType struct {
	Params  []Type
	Results []Type
}

func (f *FunctionType) String() string { return "function" }
func (f *FunctionType) Equal(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok || len(o.Params) != len(f.Params) || len(o.Results) != len(f.Results) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	for i := range f.Results {
		if !f.Results[i].Equal(o.Results[i]) {
			return false
		}
	}
	return true
}
