package ssa

import "math/big"

// SimplifyResult is the outcome of trying to simplify a single instruction.
type SimplifyResult interface{ isSimplifyResult() }

type simplifiedToValue struct{ Value ValueId }
type simplifiedToMultiple struct{ Values []ValueId }
type simplifiedToInstruction struct{ Instr Instruction }
type simplifiedToInstructions struct{ Instrs []Instruction }
type simplifyRemove struct{}
type simplifyNone struct{}

func (simplifiedToValue) isSimplifyResult()        {}
func (simplifiedToMultiple) isSimplifyResult()      {}
func (simplifiedToInstruction) isSimplifyResult()   {}
func (simplifiedToInstructions) isSimplifyResult()  {}
func (simplifyRemove) isSimplifyResult()            {}
func (simplifyNone) isSimplifyResult()              {}

// SimplifiedToValue replaces the instruction's result with the given value.
func SimplifiedToValue(v ValueId) SimplifyResult { return simplifiedToValue{v} }

// SimplifiedToValues replaces the instruction's results with the given
// values (used when the instruction produces a tuple of results).
func SimplifiedToValues(vs []ValueId) SimplifyResult { return simplifiedToMultiple{vs} }

// SimplifiedToInstruction replaces the instruction with a simpler but
// equivalent one.
func SimplifiedToInstruction(i Instruction) SimplifyResult { return simplifiedToInstruction{i} }

// SimplifiedToInstructions replaces the instruction with a set of simpler
// but equivalent instructions (used only for Constrain).
func SimplifiedToInstructions(is []Instruction) SimplifyResult {
	return simplifiedToInstructions{is}
}

// Remove signals that the instruction is unnecessary and should be dropped.
func Remove() SimplifyResult { return simplifyRemove{} }

// SimplifyNone signals the instruction could not be simplified. This is a
// normal outcome, not an error (spec §7).
func SimplifyNone() SimplifyResult { return simplifyNone{} }

// Instructions extracts the replacement instruction list from a result, if
// any (mirrors SimplifyResult::instructions in the original).
func Instructions(r SimplifyResult) ([]Instruction, bool) {
	switch v := r.(type) {
	case simplifiedToInstruction:
		return []Instruction{v.Instr}, true
	case simplifiedToInstructions:
		return v.Instrs, true
	default:
		return nil, false
	}
}

// Values extracts the replacement value list from a result, if any.
func Values(r SimplifyResult) ([]ValueId, bool) {
	switch v := r.(type) {
	case simplifiedToValue:
		return []ValueId{v.Value}, true
	case simplifiedToMultiple:
		return v.Values, true
	default:
		return nil, false
	}
}

// IsRemove reports whether r is the Remove() outcome.
func IsRemove(r SimplifyResult) bool {
	_, ok := r.(simplifyRemove)
	return ok
}

// IsNone reports whether r is the SimplifyNone() outcome.
func IsNone(r SimplifyResult) bool {
	_, ok := r.(simplifyNone)
	return ok
}

// Block is the minimal view of a basic block that simplification needs: its
// trailing instruction, for coalescing adjacent EnableSideEffectsIf
// installs.
type Block interface {
	// LastInstruction returns the current last instruction in the block
	// being inserted into, if any.
	LastInstruction() (Instruction, bool)
	// ReplaceLastInstruction overwrites the trailing instruction in place.
	// Used only by the EnableSideEffectsIf coalescing rule.
	ReplaceLastInstruction(Instruction)
}

// DFG is the full surface of the host data-flow graph the simplification
// engine depends on (spec §6). It composes the narrower per-rule
// collaborator interfaces so each rule only documents what it actually
// reads.
type DFG interface {
	BinaryConstantDFG
	CastDFG
	ConstrainDFG
	GetNumericConstant(ValueId) (*big.Int, bool)
	GetValueMaxNumBits(ValueId) uint32
	IsSafeIndex(index, array ValueId) bool
	IsConstant(ValueId) bool
	TypeOfValue(ValueId) Type
	InsertInstructionAndResults(instr Instruction, block BasicBlockId, ctrlTypevars []Type, callStack CallStack) (first ValueId, rest []ValueId)
	MergeNumericValues(block BasicBlockId, thenCond, elseCond, thenValue, elseValue ValueId) ValueId
	// DefiningInstruction returns the instruction that produced v, if v is
	// an instruction result (as opposed to a constant or block parameter).
	DefiningInstruction(ValueId) (Instruction, bool)
}

// Simplify attempts to locally rewrite instr. block is the block instr will
// be (or already is) inserted into; ctrlTypevars and callStack are only
// consulted by instructions that need them when inserting replacement
// instructions (Call, ArraySet's MakeArray replacement).
func Simplify(instr Instruction, dfg DFG, block BasicBlockId, blk Block, ctrlTypevars []Type, callStack CallStack) SimplifyResult {
	switch i := instr.(type) {
	case *Binary:
		return simplifyBinary(i, dfg)
	case *Cast:
		return simplifyCast(i, dfg)
	case *Not:
		return simplifyNot(i, dfg)
	case *Constrain:
		constraints := decomposeConstrain(i.LHS, i.RHS, i.Msg, dfg)
		if len(constraints) == 0 {
			return Remove()
		}
		return SimplifiedToInstructions(constraints)
	case *ArrayGet:
		if index, ok := dfg.GetNumericConstant(dfg.Resolve(i.Index)); ok {
			return tryOptimizeArrayGetFromPreviousSet(dfg, i.Array, index)
		}
		return SimplifyNone()
	case *ArraySet:
		if elements, typ, ok := dfg.GetArrayConstant(i.Array); ok {
			if index, ok := dfg.GetNumericConstant(i.Index); ok && index.IsUint64() {
				idx := int(index.Uint64())
				if idx < len(elements) {
					updated := make([]ValueId, len(elements))
					copy(updated, elements)
					updated[idx] = i.Value
					newArray := &MakeArray{Elements: updated, Typ: typ}
					first, _ := dfg.InsertInstructionAndResults(newArray, block, nil, callStack)
					return SimplifiedToValue(first)
				}
			}
		}
		return tryOptimizeArraySetFromPreviousGet(dfg, i.Array, i.Index, i.Value)
	case *Truncate:
		return simplifyTruncate(i, dfg)
	case *Call:
		return simplifyCall(i, dfg, block, ctrlTypevars, callStack)
	case *EnableSideEffectsIf:
		if last, ok := blk.LastInstruction(); ok {
			if _, isEnable := last.(*EnableSideEffectsIf); isEnable {
				blk.ReplaceLastInstruction(&EnableSideEffectsIf{Condition: i.Condition})
				return Remove()
			}
		}
		return SimplifyNone()
	case *Allocate, *Load, *Store, *IncrementRc, *DecrementRc, *MakeArray:
		return SimplifyNone()
	case *RangeCheck:
		if dfg.GetValueMaxNumBits(i.Value) < i.MaxBitSize {
			return Remove()
		}
		return SimplifyNone()
	case *IfElse:
		return simplifyIfElse(i, dfg, block)
	default:
		return SimplifyNone()
	}
}

func simplifyNot(n *Not, dfg DFG) SimplifyResult {
	resolved := dfg.Resolve(n.Value)

	if constant, ok := dfg.GetNumericConstantWithType(resolved); ok && constant.Type.IsUnsigned() {
		// Only fold ! on unsigned integer constants. Field elements have no
		// well-defined complement (there is no fixed bit width to flip),
		// and signed integers would need sign-aware masking this layer
		// does not perform, so both are left unfolded.
		mod := new(big.Int).Lsh(big.NewInt(1), uint(constant.Type.BitSize))
		complement := new(big.Int).Sub(mod, big.NewInt(1))
		complement.Xor(complement, constant.Value)
		complement.Mod(complement, mod)
		return SimplifiedToValue(dfg.MakeConstant(complement, constant.Type))
	}

	if inner, ok := definingInstruction(dfg, resolved); ok {
		if innerNot, ok := inner.(*Not); ok {
			return SimplifiedToValue(innerNot.Value)
		}
	}

	return SimplifyNone()
}

func simplifyTruncate(t *Truncate, dfg DFG) SimplifyResult {
	if t.BitSize == t.MaxBitSize {
		return SimplifiedToValue(t.Value)
	}

	if constant, ok := dfg.GetNumericConstantWithType(t.Value); ok {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(t.BitSize))
		truncated := new(big.Int).Mod(constant.Value, mod)
		return SimplifiedToValue(dfg.MakeConstant(truncated, constant.Type))
	}

	inner, ok := definingInstruction(dfg, dfg.Resolve(t.Value))
	if !ok {
		return SimplifyNone()
	}

	switch src := inner.(type) {
	case *Truncate:
		if src.BitSize <= t.BitSize && src.BitSize <= t.MaxBitSize {
			return SimplifiedToValue(t.Value)
		}
		return SimplifyNone()
	case *Binary:
		if src.Op != Div || !dfg.IsConstant(src.RHS) {
			return SimplifyNone()
		}
		numeratorType, ok := dfg.TypeOfValue(src.LHS).(*NumericType)
		if !ok {
			return SimplifyNone()
		}
		divisor, ok := dfg.GetNumericConstant(src.RHS)
		if !ok {
			return SimplifyNone()
		}
		maxNumeratorBits := numeratorType.BitSize
		divisorBits := uint32(divisor.BitLen())
		if divisorBits > maxNumeratorBits {
			return SimplifyNone()
		}
		maxQuotientBits := maxNumeratorBits - divisorBits
		if maxQuotientBits < t.BitSize {
			return SimplifiedToValue(t.Value)
		}
		return SimplifyNone()
	default:
		return SimplifyNone()
	}
}

func simplifyIfElse(i *IfElse, dfg DFG, block BasicBlockId) SimplifyResult {
	typ := dfg.TypeOfValue(i.ThenValue)

	if constant, ok := dfg.GetNumericConstant(i.ThenCond); ok {
		switch {
		case constant.Cmp(big.NewInt(1)) == 0:
			return SimplifiedToValue(i.ThenValue)
		case constant.Sign() == 0:
			return SimplifiedToValue(i.ElseValue)
		}
	}

	thenValue := dfg.Resolve(i.ThenValue)
	elseValue := dfg.Resolve(i.ElseValue)
	if thenValue == elseValue {
		return SimplifiedToValue(thenValue)
	}

	if _, numeric := typ.(*NumericType); numeric {
		merged := dfg.MergeNumericValues(block, i.ThenCond, i.ElseCond, thenValue, elseValue)
		return SimplifiedToValue(merged)
	}

	return SimplifyNone()
}

// definingInstruction is a small helper shared by Not/Truncate: resolve a
// value and, if it is the result of an instruction, return that
// instruction.
func definingInstruction(dfg DFG, v ValueId) (Instruction, bool) {
	return dfg.DefiningInstruction(v)
}

// simplifyCall is the "call-simplifier" collaborator, keyed on callee kind.
// Constant-folding individual intrinsics (e.g. array_len of a known array)
// is outside this layer's specified scope (spec §4.4 says "not specified
// here"); this hook exists so a host can attach such folding without
// changing Simplify's dispatch.
func simplifyCall(c *Call, dfg DFG, block BasicBlockId, ctrlTypevars []Type, callStack CallStack) SimplifyResult {
	return SimplifyNone()
}
