package ssa

// ConstrainDFG is the slice of DataFlowGraph that constraint decomposition
// needs: alias resolution and reading array constants (to decompose a
// structural-equality constraint between two composite values element by
// element).
type ConstrainDFG interface {
	Resolve(ValueId) ValueId
	GetArrayConstant(ValueId) ([]ValueId, Type, bool)
}

// decomposeConstrain is the "constraint-decomposition helper for structural
// equality" collaborator named in spec §1/§6. Given two composite
// (array/slice) constants of matching length, it decomposes a single
// equality constraint into one constraint per element, which lets later
// passes fold/eliminate the per-element constraints independently. It
// always returns at least one constraint unless lhs and rhs are already
// the same resolved value (in which case the constraint is trivially true
// and the empty list signals removal).
func decomposeConstrain(lhs, rhs ValueId, msg ConstrainError, dfg ConstrainDFG) []Instruction {
	lhs = dfg.Resolve(lhs)
	rhs = dfg.Resolve(rhs)

	if lhs == rhs {
		return nil
	}

	lElems, lTyp, lOk := dfg.GetArrayConstant(lhs)
	rElems, _, rOk := dfg.GetArrayConstant(rhs)
	if lOk && rOk && len(lElems) == len(rElems) && len(lElems) > 0 {
		_ = lTyp
		constraints := make([]Instruction, len(lElems))
		for i := range lElems {
			constraints[i] = &Constrain{LHS: lElems[i], RHS: rElems[i]}
		}
		return constraints
	}

	return []Instruction{&Constrain{LHS: lhs, RHS: rhs, Msg: msg}}
}
