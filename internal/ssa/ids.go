// Package ssa implements the instruction layer of the SSA intermediate
// representation used by the circuit compiler: the instruction and
// terminator algebra, the classification predicates, and the peephole
// simplification engine. It never owns value or block identity; those
// belong to the host data-flow graph (see package dfg).
package ssa

import "fmt"

// ValueId is an opaque handle into the host DataFlowGraph identifying an SSA
// value. The instruction layer never inspects its representation; it only
// copies, compares, and substitutes it.
type ValueId int

// Invalid is returned by lookups that found nothing; it is never a value
// produced by a DataFlowGraph.
const Invalid ValueId = -1

func (v ValueId) String() string { return fmt.Sprintf("v%d", int(v)) }

// IsValid reports whether v was ever assigned by a DataFlowGraph.
func (v ValueId) IsValid() bool { return v != Invalid }

// InstructionId identifies an instruction slot within a block. Per spec
// invariant 1, it is not a unique identity: two structurally identical
// instructions inserted into different blocks may share an InstructionId
// while producing distinct result values. Equality/hashing of Instruction
// values is purely structural over operands and operator data, never over
// this id.
type InstructionId int

func (i InstructionId) String() string { return fmt.Sprintf("i%d", int(i)) }

// BasicBlockId identifies a block within a function body.
type BasicBlockId int

func (b BasicBlockId) String() string { return fmt.Sprintf("b%d", int(b)) }
