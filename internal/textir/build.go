package textir

import (
	"fmt"
	"math/big"
	"strings"

	"circuitir/internal/dfg"
	"circuitir/internal/ssa"
)

// Built is the lowered form of a Program: a graph plus the ordered block
// ids making up the function, in source order (first is the entry block).
// Positions maps each instruction's position within its block's
// instruction list back to the source line it was parsed from, so a
// diagnostic keyed by (block, instruction index) can be rendered with a
// real file:line instead of none at all.
type Built struct {
	Graph     *dfg.DataFlowGraph
	Blocks    []ssa.BasicBlockId
	Positions map[InstrKey]SourcePosition
}

// InstrKey locates one instruction by the block it lives in and its index
// within that block's instruction list.
type InstrKey struct {
	Block ssa.BasicBlockId
	Index int
}

// SourcePosition is the textir-level location of the statement that
// produced a given instruction.
type SourcePosition struct {
	File string
	Line uint32
}

// builder tracks the symbol table (name -> ValueId) while lowering.
type builder struct {
	graph     *dfg.DataFlowGraph
	values    map[string]ssa.ValueId
	blocks    map[string]ssa.BasicBlockId
	order     []ssa.BasicBlockId
	positions map[InstrKey]SourcePosition
	filename  string
}

// Build lowers a parsed Program into instructions and terminators against a
// fresh DataFlowGraph, with an empty filename in the recorded positions
// (suitable for tests and one-off lowering). Use BuildFile when a
// diagnostic consumer, such as internal/lsp, needs source positions.
func Build(prog *Program) (*Built, error) {
	return BuildFile(prog, "")
}

// BuildFile lowers prog the same way Build does, recording in
// Built.Positions, for every inserted instruction, filename and the source
// line its statement was parsed from. Instructions are inserted with no
// CallStack.
func BuildFile(prog *Program, filename string) (*Built, error) {
	b := &builder{
		graph:     dfg.New(),
		values:    make(map[string]ssa.ValueId),
		blocks:    make(map[string]ssa.BasicBlockId),
		positions: make(map[InstrKey]SourcePosition),
		filename:  filename,
	}

	for i, blk := range prog.Function.Blocks {
		id := ssa.BasicBlockId(i)
		b.blocks[blk.Label] = id
		b.order = append(b.order, id)
	}

	for i, blk := range prog.Function.Blocks {
		if err := b.buildBlock(ssa.BasicBlockId(i), blk); err != nil {
			return nil, fmt.Errorf("textir: block %q: %w", blk.Label, err)
		}
	}

	return &Built{Graph: b.graph, Blocks: b.order, Positions: b.positions}, nil
}

func (b *builder) buildBlock(id ssa.BasicBlockId, blk *Block) error {
	for _, p := range blk.Params {
		typ, err := typeOf(p.Type)
		if err != nil {
			return err
		}
		b.values[p.Name] = b.graph.AddParam(id, typ)
	}

	for _, stmt := range blk.Statements {
		if err := b.buildStatement(id, stmt); err != nil {
			return err
		}
	}

	term, err := b.buildTerminator(blk.Terminator)
	if err != nil {
		return err
	}
	b.graph.Block(id).Terminator = term
	return nil
}

func (b *builder) lookup(name string) (ssa.ValueId, error) {
	v, ok := b.values[name]
	if !ok {
		return ssa.Invalid, fmt.Errorf("undefined value %q", name)
	}
	return v, nil
}

func (b *builder) buildStatement(block ssa.BasicBlockId, stmt *Statement) error {
	instr, err := b.buildInstruction(stmt.Instr)
	if err != nil {
		return err
	}
	first, _ := b.graph.InsertInstructionAndResults(instr, block, nil, nil)
	index := len(b.graph.Block(block).Instructions) - 1
	b.positions[InstrKey{Block: block, Index: index}] = SourcePosition{File: b.filename, Line: uint32(stmt.Pos.Line)}
	if stmt.Result != "" {
		b.values[stmt.Result] = first
	}
	return nil
}

func (b *builder) buildInstruction(a *InstructionAst) (ssa.Instruction, error) {
	switch {
	case a.Binary != nil:
		lhs, err := b.lookup(a.Binary.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := b.lookup(a.Binary.RHS)
		if err != nil {
			return nil, err
		}
		op, err := binaryOpOf(a.Binary.Op)
		if err != nil {
			return nil, err
		}
		return ssa.NewBinary(op, lhs, rhs), nil

	case a.Not != nil:
		v, err := b.lookup(a.Not.Value)
		if err != nil {
			return nil, err
		}
		return &ssa.Not{Value: v}, nil

	case a.Cast != nil:
		v, err := b.lookup(a.Cast.Value)
		if err != nil {
			return nil, err
		}
		typ, err := typeOf(a.Cast.Type)
		if err != nil {
			return nil, err
		}
		return &ssa.Cast{Value: v, Type: typ}, nil

	case a.Truncate != nil:
		v, err := b.lookup(a.Truncate.Value)
		if err != nil {
			return nil, err
		}
		bitSize, err := parseUint32(a.Truncate.BitSize)
		if err != nil {
			return nil, err
		}
		maxBitSize, err := parseUint32(a.Truncate.MaxBitSize)
		if err != nil {
			return nil, err
		}
		return &ssa.Truncate{Value: v, BitSize: bitSize, MaxBitSize: maxBitSize}, nil

	case a.Constrain != nil:
		lhs, err := b.lookup(a.Constrain.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := b.lookup(a.Constrain.RHS)
		if err != nil {
			return nil, err
		}
		return &ssa.Constrain{LHS: lhs, RHS: rhs}, nil

	case a.RangeCheck != nil:
		v, err := b.lookup(a.RangeCheck.Value)
		if err != nil {
			return nil, err
		}
		maxBits, err := parseUint32(a.RangeCheck.MaxBits)
		if err != nil {
			return nil, err
		}
		return &ssa.RangeCheck{Value: v, MaxBitSize: maxBits}, nil

	case a.ArrayGet != nil:
		arr, err := b.lookup(a.ArrayGet.Array)
		if err != nil {
			return nil, err
		}
		idx, err := b.lookup(a.ArrayGet.Index)
		if err != nil {
			return nil, err
		}
		return &ssa.ArrayGet{Array: arr, Index: idx}, nil

	case a.ArraySet != nil:
		arr, err := b.lookup(a.ArraySet.Array)
		if err != nil {
			return nil, err
		}
		idx, err := b.lookup(a.ArraySet.Index)
		if err != nil {
			return nil, err
		}
		val, err := b.lookup(a.ArraySet.Value)
		if err != nil {
			return nil, err
		}
		return &ssa.ArraySet{Array: arr, Index: idx, Value: val}, nil

	case a.MakeArray != nil:
		elems := make([]ssa.ValueId, len(a.MakeArray.Elements))
		for i, name := range a.MakeArray.Elements {
			v, err := b.lookup(name)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		typ, err := typeOf(a.MakeArray.Type)
		if err != nil {
			return nil, err
		}
		return &ssa.MakeArray{Elements: elems, Typ: typ}, nil

	case a.EnableSideFx != nil:
		cond, err := b.lookup(a.EnableSideFx.Condition)
		if err != nil {
			return nil, err
		}
		return &ssa.EnableSideEffectsIf{Condition: cond}, nil

	case a.Call != nil:
		callee, err := b.lookup(a.Call.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]ssa.ValueId, len(a.Call.Args))
		for i, name := range a.Call.Args {
			v, err := b.lookup(name)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return &ssa.Call{Func: callee, Args: args}, nil

	default:
		return nil, fmt.Errorf("empty instruction")
	}
}

func (b *builder) buildTerminator(t *TerminatorAst) (ssa.TerminatorInstruction, error) {
	switch {
	case t.JmpIf != nil:
		cond, err := b.lookup(t.JmpIf.Condition)
		if err != nil {
			return nil, err
		}
		thenID, ok := b.blocks[t.JmpIf.Then]
		if !ok {
			return nil, fmt.Errorf("undefined block %q", t.JmpIf.Then)
		}
		elseID, ok := b.blocks[t.JmpIf.Else]
		if !ok {
			return nil, fmt.Errorf("undefined block %q", t.JmpIf.Else)
		}
		return &ssa.JmpIf{Condition: cond, ThenBlock: thenID, ElseBlock: elseID}, nil

	case t.Jmp != nil:
		dest, ok := b.blocks[t.Jmp.Dest]
		if !ok {
			return nil, fmt.Errorf("undefined block %q", t.Jmp.Dest)
		}
		args := make([]ssa.ValueId, len(t.Jmp.Args))
		for i, name := range t.Jmp.Args {
			v, err := b.lookup(name)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return &ssa.Jmp{Dest: dest, Args: args}, nil

	case t.Return != nil:
		values := make([]ssa.ValueId, len(t.Return.Values))
		for i, name := range t.Return.Values {
			v, err := b.lookup(name)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return &ssa.Return{Values: values}, nil

	default:
		return nil, fmt.Errorf("empty terminator")
	}
}

func typeOf(t *Type) (ssa.Type, error) {
	if t.Array != nil {
		elem, err := typeOf(t.Array.Element)
		if err != nil {
			return nil, err
		}
		length, err := parseUint32(t.Array.Length)
		if err != nil {
			return nil, err
		}
		return &ssa.ArrayType{Element: elem, Length: length}, nil
	}

	switch {
	case t.Name == "field":
		return ssa.Field(), nil
	case t.Name == "bool":
		return ssa.Bool(), nil
	case strings.HasPrefix(t.Name, "u"):
		bits, err := parseUint32(t.Name[1:])
		if err != nil {
			return nil, fmt.Errorf("bad unsigned type %q: %w", t.Name, err)
		}
		return ssa.Unsigned(bits), nil
	case strings.HasPrefix(t.Name, "i"):
		bits, err := parseUint32(t.Name[1:])
		if err != nil {
			return nil, fmt.Errorf("bad signed type %q: %w", t.Name, err)
		}
		return ssa.Signed(bits), nil
	default:
		return nil, fmt.Errorf("unknown type %q", t.Name)
	}
}

func binaryOpOf(name string) (ssa.BinaryOp, error) {
	switch name {
	case "add":
		return ssa.Add, nil
	case "sub":
		return ssa.Sub, nil
	case "mul":
		return ssa.Mul, nil
	case "div":
		return ssa.Div, nil
	case "mod":
		return ssa.Mod, nil
	case "eq":
		return ssa.Eq, nil
	case "lt":
		return ssa.Lt, nil
	case "and":
		return ssa.And, nil
	case "or":
		return ssa.Or, nil
	case "xor":
		return ssa.Xor, nil
	case "shl":
		return ssa.Shl, nil
	case "shr":
		return ssa.Shr, nil
	default:
		return 0, fmt.Errorf("unknown binary op %q", name)
	}
}

func parseUint32(s string) (uint32, error) {
	base := 10
	if strings.HasPrefix(s, "0x") {
		base = 16
		s = s[2:]
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		return 0, fmt.Errorf("bad integer literal %q", s)
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("integer literal %q out of range", s)
	}
	v := n.Uint64()
	if v > uint64(^uint32(0)) {
		return 0, fmt.Errorf("integer literal %q overflows uint32", s)
	}
	return uint32(v), nil
}
