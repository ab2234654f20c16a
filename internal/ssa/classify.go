package ssa

import "math/big"

// ClassifyDFG is the slice of DataFlowGraph the classification predicates
// need: resolving a callee value to know whether it is an intrinsic,
// foreign function, or user function, plus the numeric-constant and
// safe-index queries used to decide predicate/dedup eligibility.
type ClassifyDFG interface {
	CalleeKind(ValueId) CalleeKind
	GetNumericConstant(ValueId) (*big.Int, bool)
	IsSafeIndex(index, array ValueId) bool
}

// CalleeKind tells the classification predicates what kind of value a
// Call's Func operand resolves to.
type CalleeKind int

const (
	CalleeUnknown CalleeKind = iota
	CalleeIntrinsic
	CalleeIntrinsicBlackBoxMultiScalarMul
	CalleeIntrinsicBlackBoxEmbeddedCurveAdd
	CalleeUserFunction
	CalleeForeignFunction
)

// CalleeIntrinsicDFG, when the callee is an intrinsic, additionally exposes
// the Intrinsic value itself so has_side_effects can be consulted directly
// rather than re-deriving it from CalleeKind.
type CalleeIntrinsicDFG interface {
	ClassifyDFG
	CalleeIntrinsic(ValueId) (Intrinsic, bool)
}

// CanBeDeduplicated reports whether two syntactically equal instructions
// whose operands resolve to equal values may be collapsed into one (spec
// §4.2). When deduplicateWithPredicate is true, the caller is asserting
// that it is deduplicating the instruction together with its enclosing
// EnableSideEffectsIf predicate, which makes it safe to collapse
// predicate-sensitive instructions too.
func CanBeDeduplicated(instr Instruction, dfg CalleeIntrinsicDFG, deduplicateWithPredicate bool) bool {
	switch i := instr.(type) {
	case *EnableSideEffectsIf, *Allocate, *Load, *Store, *IncrementRc, *DecrementRc:
		return false
	case *Call:
		intrinsic, ok := dfg.CalleeIntrinsic(i.Func)
		return ok && !intrinsic.HasSideEffects()
	case *Constrain, *RangeCheck:
		return deduplicateWithPredicate
	case *MakeArray:
		return true
	case *Binary, *Cast, *Not, *Truncate, *IfElse, *ArrayGet, *ArraySet:
		return deduplicateWithPredicate || !RequiresAcirGenPredicate(instr, dfg)
	default:
		return false
	}
}

// CanEliminateIfUnused reports whether instr may be dropped when its result
// has no users (spec §4.2).
func CanEliminateIfUnused(instr Instruction, dfg CalleeIntrinsicDFG) bool {
	switch i := instr.(type) {
	case *Binary:
		if i.Op == Div || i.Op == Mod {
			constant, ok := dfg.GetNumericConstant(i.RHS)
			return ok && constant.Sign() != 0
		}
		return true
	case *Cast, *Not, *Truncate, *Allocate, *Load, *ArrayGet, *IfElse, *ArraySet, *MakeArray:
		return true
	case *Constrain, *Store, *EnableSideEffectsIf, *IncrementRc, *DecrementRc, *RangeCheck:
		return false
	case *Call:
		switch dfg.CalleeKind(i.Func) {
		case CalleeIntrinsicBlackBoxMultiScalarMul, CalleeIntrinsicBlackBoxEmbeddedCurveAdd:
			// Explicitly whitelisted: these elliptic operations are
			// removable even though they may fail on invalid inputs.
			return true
		case CalleeIntrinsic:
			intrinsic, ok := dfg.CalleeIntrinsic(i.Func)
			return ok && !intrinsic.HasSideEffects()
		default:
			// User functions and foreign functions are assumed to carry a
			// side effect: foreign functions can pass information to the
			// external world during execution, and user functions cannot
			// be inspected deeply enough here to prove otherwise.
			return false
		}
	default:
		return false
	}
}

// RequiresAcirGenPredicate reports whether the back-end must gate instr by
// the current EnableSideEffectsIf condition when lowering to the circuit
// (spec §4.2).
func RequiresAcirGenPredicate(instr Instruction, dfg ClassifyDFG) bool {
	switch i := instr.(type) {
	case *Binary:
		return i.Op == Div || i.Op == Mod
	case *ArrayGet:
		return !dfg.IsSafeIndex(i.Index, i.Array)
	case *EnableSideEffectsIf, *ArraySet:
		return true
	case *Call:
		switch dfg.CalleeKind(i.Func) {
		case CalleeUserFunction:
			return true
		case CalleeIntrinsic:
			if withIntrinsic, ok := dfg.(CalleeIntrinsicDFG); ok {
				intrinsic, ok := withIntrinsic.CalleeIntrinsic(i.Func)
				return ok && (intrinsic.kind == SliceInsert || intrinsic.kind == SliceRemove)
			}
			return false
		default:
			return false
		}
	default:
		return false
	}
}
