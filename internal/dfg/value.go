// Package dfg provides a concrete data-flow graph, value table, basic-block
// container, field-arithmetic primitive, and value-merger: the host
// collaborators that internal/ssa treats as external (accessed only through
// the narrow interfaces it declares). None of this package is part of the
// instruction layer itself; it exists so that layer has something real to
// run against.
package dfg

import (
	"math/big"

	"circuitir/internal/ssa"
)

// ValueKind tags the closed set of ways a Value can be defined.
type ValueKind int

const (
	// KindConstant is a numeric literal with a known type.
	KindConstant ValueKind = iota
	// KindArrayConstant is a literal array/slice of element values.
	KindArrayConstant
	// KindInstructionResult is produced by an instruction in some block.
	KindInstructionResult
	// KindParam is a block parameter (function argument or loop-carried
	// value).
	KindParam
	// KindFunction names a user-defined function.
	KindFunction
	// KindIntrinsic names one of the built-in intrinsics.
	KindIntrinsic
	// KindForeignFunction names an externally linked function.
	KindForeignFunction
)

// Value is the concrete payload behind an ssa.ValueId once resolved through
// a DataFlowGraph.
type Value struct {
	Kind ValueKind
	Typ  ssa.Type

	// KindConstant
	Constant *big.Int

	// KindArrayConstant
	Elements []ssa.ValueId

	// KindInstructionResult
	Instruction      ssa.Instruction
	InstructionIndex  int // which result of Instruction this is (0 for single-result ops)
	Block             ssa.BasicBlockId

	// KindParam
	ParamBlock ssa.BasicBlockId
	ParamIndex int

	// KindFunction / KindForeignFunction
	FuncName string

	// KindIntrinsic
	Intrinsic ssa.Intrinsic
}
