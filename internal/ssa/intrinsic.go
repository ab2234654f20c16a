package ssa

import "circuitir/internal/ssa/blackbox"

// Intrinsic is a built-in operation the IR recognizes by name rather than by
// user/foreign function reference. It is a closed enumeration: a new
// intrinsic requires updating Display, Lookup, and HasSideEffects together.
type Intrinsic struct {
	kind     intrinsicKind
	endian   Endian     // only meaningful for ToBits/ToRadix
	blackBox blackbox.Func // only meaningful for kind == kBlackBox
}

type intrinsicKind uint8

const (
	ArrayLen intrinsicKind = iota
	ArrayAsStrUnchecked
	AsSlice
	AssertConstant
	StaticAssert
	SlicePushBack
	SlicePushFront
	SlicePopBack
	SlicePopFront
	SliceInsert
	SliceRemove
	ApplyRangeConstraint
	StrAsBytes
	ToBits
	ToRadix
	kBlackBox
	FromField
	AsField
	AsWitness
	IsUnconstrained
	DerivePedersenGenerators
	FieldLessThan
)

func simple(k intrinsicKind) Intrinsic { return Intrinsic{kind: k} }

// Named constructors for the intrinsics the builder and tests construct
// directly. ToBits/ToRadix are parameterized by Endian; BlackBox wraps the
// black-box catalog.
var (
	IntrinsicArrayLen                = simple(ArrayLen)
	IntrinsicArrayAsStrUnchecked     = simple(ArrayAsStrUnchecked)
	IntrinsicAsSlice                 = simple(AsSlice)
	IntrinsicAssertConstant          = simple(AssertConstant)
	IntrinsicStaticAssert            = simple(StaticAssert)
	IntrinsicSlicePushBack           = simple(SlicePushBack)
	IntrinsicSlicePushFront          = simple(SlicePushFront)
	IntrinsicSlicePopBack            = simple(SlicePopBack)
	IntrinsicSlicePopFront           = simple(SlicePopFront)
	IntrinsicSliceInsert             = simple(SliceInsert)
	IntrinsicSliceRemove             = simple(SliceRemove)
	IntrinsicApplyRangeConstraint    = simple(ApplyRangeConstraint)
	IntrinsicStrAsBytes              = simple(StrAsBytes)
	IntrinsicFromField               = simple(FromField)
	IntrinsicAsField                 = simple(AsField)
	IntrinsicAsWitness               = simple(AsWitness)
	IntrinsicIsUnconstrained         = simple(IsUnconstrained)
	IntrinsicDerivePedersenGenerators = simple(DerivePedersenGenerators)
	IntrinsicFieldLessThan           = simple(FieldLessThan)
)

// IntrinsicToBits builds the bit-decomposition intrinsic for the given
// endianness.
func IntrinsicToBits(e Endian) Intrinsic { return Intrinsic{kind: ToBits, endian: e} }

// IntrinsicToRadix builds the radix-decomposition intrinsic for the given
// endianness.
func IntrinsicToRadix(e Endian) Intrinsic { return Intrinsic{kind: ToRadix, endian: e} }

// IntrinsicBlackBox wraps a black-box function as an intrinsic.
func IntrinsicBlackBox(f blackbox.Func) Intrinsic { return Intrinsic{kind: kBlackBox, blackBox: f} }

// BlackBox returns the wrapped black-box function and whether this
// intrinsic is in fact a BlackBox wrapper.
func (i Intrinsic) BlackBox() (blackbox.Func, bool) {
	return i.blackBox, i.kind == kBlackBox
}

// String renders the intrinsic's canonical display name, the same string
// Lookup accepts (spec §8 property 4: every intrinsic round-trips through
// its display name).
func (i Intrinsic) String() string {
	switch i.kind {
	case ArrayLen:
		return "array_len"
	case ArrayAsStrUnchecked:
		return "array_as_str_unchecked"
	case AsSlice:
		return "as_slice"
	case AssertConstant:
		return "assert_constant"
	case StaticAssert:
		return "static_assert"
	case SlicePushBack:
		return "slice_push_back"
	case SlicePushFront:
		return "slice_push_front"
	case SlicePopBack:
		return "slice_pop_back"
	case SlicePopFront:
		return "slice_pop_front"
	case SliceInsert:
		return "slice_insert"
	case SliceRemove:
		return "slice_remove"
	case StrAsBytes:
		return "str_as_bytes"
	case ApplyRangeConstraint:
		return "apply_range_constraint"
	case ToBits:
		if i.endian == Big {
			return "to_be_bits"
		}
		return "to_le_bits"
	case ToRadix:
		if i.endian == Big {
			return "to_be_radix"
		}
		return "to_le_radix"
	case kBlackBox:
		return i.blackBox.String()
	case FromField:
		return "from_field"
	case AsField:
		return "as_field"
	case AsWitness:
		return "as_witness"
	case IsUnconstrained:
		return "is_unconstrained"
	case DerivePedersenGenerators:
		return "derive_pedersen_generators"
	case FieldLessThan:
		return "field_less_than"
	default:
		return "unknown_intrinsic"
	}
}

// LookupIntrinsic resolves an intrinsic by its display name, delegating to
// the black-box catalog on a miss.
func LookupIntrinsic(name string) (Intrinsic, bool) {
	switch name {
	case "array_len":
		return IntrinsicArrayLen, true
	case "array_as_str_unchecked":
		return IntrinsicArrayAsStrUnchecked, true
	case "as_slice":
		return IntrinsicAsSlice, true
	case "assert_constant":
		return IntrinsicAssertConstant, true
	case "static_assert":
		return IntrinsicStaticAssert, true
	case "slice_push_back":
		return IntrinsicSlicePushBack, true
	case "slice_push_front":
		return IntrinsicSlicePushFront, true
	case "slice_pop_back":
		return IntrinsicSlicePopBack, true
	case "slice_pop_front":
		return IntrinsicSlicePopFront, true
	case "slice_insert":
		return IntrinsicSliceInsert, true
	case "slice_remove":
		return IntrinsicSliceRemove, true
	case "str_as_bytes":
		return IntrinsicStrAsBytes, true
	case "apply_range_constraint":
		return IntrinsicApplyRangeConstraint, true
	case "to_le_bits":
		return IntrinsicToBits(Little), true
	case "to_be_bits":
		return IntrinsicToBits(Big), true
	case "to_le_radix":
		return IntrinsicToRadix(Little), true
	case "to_be_radix":
		return IntrinsicToRadix(Big), true
	case "from_field":
		return IntrinsicFromField, true
	case "as_field":
		return IntrinsicAsField, true
	case "as_witness":
		return IntrinsicAsWitness, true
	case "is_unconstrained":
		return IntrinsicIsUnconstrained, true
	case "derive_pedersen_generators":
		return IntrinsicDerivePedersenGenerators, true
	case "field_less_than":
		return IntrinsicFieldLessThan, true
	default:
		if f, ok := blackbox.Lookup(name); ok {
			return IntrinsicBlackBox(f), true
		}
		return Intrinsic{}, false
	}
}

// HasSideEffects reports whether this intrinsic may fail, constrain the
// witness, or depend on global context — the exact set enumerated in spec
// §4.1.
func (i Intrinsic) HasSideEffects() bool {
	switch i.kind {
	case AssertConstant, StaticAssert, ApplyRangeConstraint, AsWitness, ToBits, ToRadix,
		SlicePopBack, SlicePopFront, SliceRemove:
		return true
	case kBlackBox:
		return i.blackBox.HasSideEffects()
	default:
		return false
	}
}

// Equal reports structural equality, which is what CSE/deduplication use to
// compare two Call instructions' callees.
func (i Intrinsic) Equal(other Intrinsic) bool {
	return i.kind == other.kind && i.endian == other.endian && i.blackBox == other.blackBox
}
