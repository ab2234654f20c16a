package dfg

import "circuitir/internal/ssa"

// BasicBlock is an ordered sequence of instructions closed by a terminator,
// mirroring the teacher's own BasicBlock container but carrying ssa.Instruction
// values instead of the teacher's EVM-flavored instruction set.
type BasicBlock struct {
	Params       []ssa.ValueId
	Instructions []ssa.Instruction
	Terminator   ssa.TerminatorInstruction
}

// LastInstruction implements ssa.Block: it is consulted by Simplify's
// EnableSideEffectsIf coalescing rule.
func (b *BasicBlock) LastInstruction() (ssa.Instruction, bool) {
	if len(b.Instructions) == 0 {
		return nil, false
	}
	return b.Instructions[len(b.Instructions)-1], true
}

// ReplaceLastInstruction implements ssa.Block.
func (b *BasicBlock) ReplaceLastInstruction(instr ssa.Instruction) {
	if len(b.Instructions) == 0 {
		b.Instructions = append(b.Instructions, instr)
		return
	}
	b.Instructions[len(b.Instructions)-1] = instr
}

// Push appends instr to the end of the block, unconditionally.
func (b *BasicBlock) Push(instr ssa.Instruction) {
	b.Instructions = append(b.Instructions, instr)
}
