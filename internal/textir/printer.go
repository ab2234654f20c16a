package textir

import (
	"fmt"
	"strings"

	"circuitir/internal/dfg"
	"circuitir/internal/ssa"
)

// Print renders a Built function back into the textir surface syntax,
// mirroring the teacher's indent/StringWithIndent pretty-printer style but
// driven off value ids rather than retained AST text — this is the path the
// CLI uses to show the lowered function (Simplify's results are not applied
// to it).
func Print(built *Built) string {
	var b strings.Builder
	for _, id := range built.Blocks {
		block := built.Graph.Block(id)
		printBlock(&b, id, block)
	}
	return b.String()
}

func printBlock(b *strings.Builder, id ssa.BasicBlockId, block *dfg.BasicBlock) {
	fmt.Fprintf(b, "block b%d(", int(id))
	for i, p := range block.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "v%d", int(p))
	}
	b.WriteString("):\n")
	for _, instr := range block.Instructions {
		b.WriteString("    " + instructionString(instr) + "\n")
	}
	if block.Terminator != nil {
		b.WriteString("    " + terminatorString(block.Terminator) + "\n")
	}
}

func instructionString(instr ssa.Instruction) string {
	switch i := instr.(type) {
	case *ssa.Binary:
		return fmt.Sprintf("%s v%d, v%d", i.Op, int(i.LHS), int(i.RHS))
	case *ssa.Not:
		return fmt.Sprintf("not v%d", int(i.Value))
	case *ssa.Cast:
		return fmt.Sprintf("cast v%d to %s", int(i.Value), i.Type)
	case *ssa.Truncate:
		return fmt.Sprintf("truncate v%d to %d bits max_bit_size %d", int(i.Value), i.BitSize, i.MaxBitSize)
	case *ssa.Constrain:
		return fmt.Sprintf("constrain v%d, v%d", int(i.LHS), int(i.RHS))
	case *ssa.RangeCheck:
		return fmt.Sprintf("range_check v%d, %d bits", int(i.Value), i.MaxBitSize)
	case *ssa.ArrayGet:
		return fmt.Sprintf("array_get v%d[v%d]", int(i.Array), int(i.Index))
	case *ssa.ArraySet:
		return fmt.Sprintf("array_set v%d[v%d] = v%d", int(i.Array), int(i.Index), int(i.Value))
	case *ssa.MakeArray:
		elems := make([]string, len(i.Elements))
		for j, e := range i.Elements {
			elems[j] = fmt.Sprintf("v%d", int(e))
		}
		return fmt.Sprintf("make_array [%s]: %s", strings.Join(elems, ", "), i.Typ)
	case *ssa.EnableSideEffectsIf:
		return fmt.Sprintf("enable_side_effects_if v%d", int(i.Condition))
	case *ssa.Call:
		args := make([]string, len(i.Args))
		for j, a := range i.Args {
			args[j] = fmt.Sprintf("v%d", int(a))
		}
		return fmt.Sprintf("call v%d(%s)", int(i.Func), strings.Join(args, ", "))
	case *ssa.Allocate:
		return "allocate"
	case *ssa.Load:
		return fmt.Sprintf("load v%d", int(i.Address))
	case *ssa.Store:
		return fmt.Sprintf("store v%d, v%d", int(i.Address), int(i.Value))
	case *ssa.IncrementRc:
		return fmt.Sprintf("increment_rc v%d", int(i.Value))
	case *ssa.DecrementRc:
		return fmt.Sprintf("decrement_rc v%d", int(i.Value))
	case *ssa.IfElse:
		return fmt.Sprintf("if_else v%d ? v%d : v%d", int(i.ThenCond), int(i.ThenValue), int(i.ElseValue))
	default:
		return fmt.Sprintf("<unknown instruction %T>", instr)
	}
}

func terminatorString(t ssa.TerminatorInstruction) string {
	switch term := t.(type) {
	case *ssa.JmpIf:
		return fmt.Sprintf("jmpif v%d then b%d else b%d", int(term.Condition), int(term.ThenBlock), int(term.ElseBlock))
	case *ssa.Jmp:
		args := make([]string, len(term.Args))
		for i, a := range term.Args {
			args[i] = fmt.Sprintf("v%d", int(a))
		}
		return fmt.Sprintf("jmp b%d(%s)", int(term.Dest), strings.Join(args, ", "))
	case *ssa.Return:
		values := make([]string, len(term.Values))
		for i, v := range term.Values {
			values[i] = fmt.Sprintf("v%d", int(v))
		}
		return fmt.Sprintf("return %s", strings.Join(values, ", "))
	default:
		return fmt.Sprintf("<unknown terminator %T>", t)
	}
}
