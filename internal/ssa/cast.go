package ssa

import "math/big"

// CastDFG is the slice of DataFlowGraph that cast simplification needs.
type CastDFG interface {
	Resolve(ValueId) ValueId
	GetNumericConstantWithType(ValueId) (NumericConstant, bool)
	MakeConstant(*big.Int, Type) ValueId
	TypeOfValue(ValueId) Type
}

// simplifyCast implements the "cast-simplifier" collaborator: fold a cast of
// a known constant, and eliminate a cast that is a no-op because the source
// is already of the target numeric type.
func simplifyCast(c *Cast, dfg CastDFG) SimplifyResult {
	value := dfg.Resolve(c.Value)

	targetNumeric, targetIsNumeric := c.Type.(*NumericType)
	if !targetIsNumeric {
		return SimplifyNone()
	}

	if constant, ok := dfg.GetNumericConstantWithType(value); ok {
		folded := reduceToType(constant.Value, targetNumeric)
		return SimplifiedToValue(dfg.MakeConstant(folded, c.Type))
	}

	if srcType, ok := dfg.TypeOfValue(value).(*NumericType); ok && srcType.Equal(targetNumeric) {
		// idempotent-cast elimination: casting to the type a value already
		// has is a no-op.
		return SimplifiedToValue(value)
	}

	return SimplifyNone()
}
