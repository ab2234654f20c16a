package ssa

import "math/big"

// maxArrayChainIterations bounds both array-chain walkers below. This is a
// performance heuristic (spec §9 "Walker bounds"), not a correctness
// requirement: raising or lowering it only changes how far back these
// peepholes see, never their soundness. It must never be removed, or a
// pathological chain of array-sets would make simplification quadratic.
const maxArrayChainIterations = 5

// tryOptimizeArrayGetFromPreviousSet walks backward through a chain of
// ArraySet instructions defining array, looking for the one that wrote
// targetIndex (spec §4.5 "Get-after-set").
//
// A set at exactly targetIndex stops the walk without folding: that set may
// have been disabled by a prior EnableSideEffectsIf while the get is
// enabled, so substituting its value would be unsound. A set at any other
// constant index cannot have touched targetIndex, so the walk skips past it
// to the array it was built from. Reaching the origin MakeArray without
// meeting a set at targetIndex folds to that literal's element.
func tryOptimizeArrayGetFromPreviousSet(dfg DFG, array ValueId, targetIndex *big.Int) SimplifyResult {
	var elements []ValueId
	haveElements := false

	for n := 0; n < maxArrayChainIterations; n++ {
		instr, ok := dfg.DefiningInstruction(array)
		if !ok {
			return SimplifyNone()
		}

		switch set := instr.(type) {
		case *ArraySet:
			index, ok := dfg.GetNumericConstant(set.Index)
			if !ok {
				return SimplifyNone()
			}
			if index.Cmp(targetIndex) == 0 {
				return SimplifyNone() // same-index set may be disabled by a prior EnableSideEffectsIf
			}
			array = set.Array // recur
		case *MakeArray:
			elements = set.Elements
			haveElements = true
		default:
			return SimplifyNone()
		}

		if haveElements {
			break
		}
	}

	if haveElements && targetIndex.IsUint64() {
		idx := int(targetIndex.Uint64())
		if idx < len(elements) {
			return SimplifiedToValue(elements[idx])
		}
	}
	return SimplifyNone()
}

// tryOptimizeArraySetFromPreviousGet implements spec §4.5 "Set-after-get":
// if an ArraySet's value came from an ArrayGet at the same index, the set
// is either a no-op write-back (simplify to the array being written) or,
// after walking back through an interleaved chain of other ArraySets,
// provably redundant (simplify to the original array id).
func tryOptimizeArraySetFromPreviousGet(dfg DFG, array, targetIndex, targetValue ValueId) SimplifyResult {
	defInstr, ok := dfg.DefiningInstruction(targetValue)
	if !ok {
		return SimplifyNone()
	}
	get, ok := defInstr.(*ArrayGet)
	if !ok {
		return SimplifyNone()
	}

	var arrayFromGet ValueId
	switch {
	case get.Array == array && get.Index == targetIndex:
		return SimplifiedToValue(array)
	case get.Index == targetIndex:
		arrayFromGet = get.Array
	default:
		return SimplifyNone()
	}

	constIndex, ok := dfg.GetNumericConstant(targetIndex)
	if !ok {
		return SimplifyNone()
	}

	originalArrayId := array
	current := array
	for n := 0; n < maxArrayChainIterations; n++ {
		instr, ok := dfg.DefiningInstruction(current)
		if !ok {
			return SimplifyNone()
		}
		set, ok := instr.(*ArraySet)
		if !ok {
			return SimplifyNone()
		}

		index, ok := dfg.GetNumericConstant(set.Index)
		if !ok {
			return SimplifyNone()
		}
		if index.Cmp(constIndex) == 0 {
			return SimplifyNone()
		}
		if set.Array == arrayFromGet {
			return SimplifiedToValue(originalArrayId)
		}
		current = set.Array // recur
	}

	return SimplifyNone()
}
