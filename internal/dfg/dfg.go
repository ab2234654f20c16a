package dfg

import (
	"math/big"

	"circuitir/internal/ssa"
	"circuitir/internal/ssa/blackbox"
)

// constantKey identifies an interned numeric constant by its reduced value
// and type, so equal constants always resolve to the same ValueId.
type constantKey struct {
	text string
	typ  string
}

// DataFlowGraph is the concrete value table + instruction inserter that
// satisfies every interface internal/ssa declares for its simplification
// and classification entry points. It is deliberately minimal: enough to
// drive Simplify/CanBeDeduplicated/CanEliminateIfUnused/RequiresAcirGenPredicate
// against real data, not a full SSA construction pipeline (that belongs to
// a front end, out of scope here).
type DataFlowGraph struct {
	values  []Value
	aliases map[ssa.ValueId]ssa.ValueId
	consts  map[constantKey]ssa.ValueId
	blocks  map[ssa.BasicBlockId]*BasicBlock
}

// New returns an empty graph.
func New() *DataFlowGraph {
	return &DataFlowGraph{
		aliases: make(map[ssa.ValueId]ssa.ValueId),
		consts:  make(map[constantKey]ssa.ValueId),
		blocks:  make(map[ssa.BasicBlockId]*BasicBlock),
	}
}

func (g *DataFlowGraph) push(v Value) ssa.ValueId {
	id := ssa.ValueId(len(g.values))
	g.values = append(g.values, v)
	return id
}

func (g *DataFlowGraph) value(id ssa.ValueId) (*Value, bool) {
	if id < 0 || int(id) >= len(g.values) {
		return nil, false
	}
	return &g.values[id], true
}

// Block returns the basic block registered under id, creating an empty one
// first if none exists yet.
func (g *DataFlowGraph) Block(id ssa.BasicBlockId) *BasicBlock {
	b, ok := g.blocks[id]
	if !ok {
		b = &BasicBlock{}
		g.blocks[id] = b
	}
	return b
}

// AddParam introduces a block parameter value (e.g. a function argument).
func (g *DataFlowGraph) AddParam(block ssa.BasicBlockId, typ ssa.Type) ssa.ValueId {
	index := len(g.Block(block).Params)
	id := g.push(Value{Kind: KindParam, Typ: typ, ParamBlock: block, ParamIndex: index})
	g.Block(block).Params = append(g.Block(block).Params, id)
	return id
}

// SetAlias records that from now resolves to to (used for CSE/dedup); both
// ids must already exist.
func (g *DataFlowGraph) SetAlias(from, to ssa.ValueId) {
	g.aliases[from] = to
}

// Resolve follows the alias chain to the representative id (spec §6
// "resolve aliases").
func (g *DataFlowGraph) Resolve(v ssa.ValueId) ssa.ValueId {
	seen := make(map[ssa.ValueId]bool)
	for {
		if seen[v] {
			return v
		}
		seen[v] = true
		next, ok := g.aliases[v]
		if !ok {
			return v
		}
		v = next
	}
}

func constantKeyOf(value *big.Int, typ ssa.Type) constantKey {
	return constantKey{text: value.Text(16), typ: typ.String()}
}

// MakeConstant interns a numeric constant of the given type, returning the
// same ValueId for equal (value, type) pairs.
func (g *DataFlowGraph) MakeConstant(value *big.Int, typ ssa.Type) ssa.ValueId {
	reduced := new(big.Int).Set(value)
	if numeric, ok := typ.(*ssa.NumericType); ok {
		switch numeric.Kind {
		case ssa.NumericField:
			reduced = ReduceField(value)
		case ssa.NumericUnsignedInt:
			reduced = ReduceUnsigned(value, numeric.BitSize)
		}
	}
	key := constantKeyOf(reduced, typ)
	if id, ok := g.consts[key]; ok {
		return id
	}
	id := g.push(Value{Kind: KindConstant, Typ: typ, Constant: reduced})
	g.consts[key] = id
	return id
}

// MakeArrayConstant interns an array/slice literal value.
func (g *DataFlowGraph) MakeArrayConstant(elements []ssa.ValueId, typ ssa.Type) ssa.ValueId {
	return g.push(Value{Kind: KindArrayConstant, Typ: typ, Elements: elements})
}

// MakeFunction registers a user function value.
func (g *DataFlowGraph) MakeFunction(name string, typ ssa.Type) ssa.ValueId {
	return g.push(Value{Kind: KindFunction, Typ: typ, FuncName: name})
}

// MakeForeignFunction registers a foreign (externally linked) function
// value.
func (g *DataFlowGraph) MakeForeignFunction(name string, typ ssa.Type) ssa.ValueId {
	return g.push(Value{Kind: KindForeignFunction, Typ: typ, FuncName: name})
}

// MakeIntrinsic registers a value referring to a built-in intrinsic.
func (g *DataFlowGraph) MakeIntrinsic(i ssa.Intrinsic) ssa.ValueId {
	return g.push(Value{Kind: KindIntrinsic, Intrinsic: i})
}

// GetNumericConstant implements ssa.DFG/ssa.ClassifyDFG: it resolves v and,
// if it names a numeric constant, returns its value.
func (g *DataFlowGraph) GetNumericConstant(v ssa.ValueId) (*big.Int, bool) {
	c, ok := g.GetNumericConstantWithType(v)
	if !ok {
		return nil, false
	}
	return c.Value, true
}

// GetNumericConstantWithType implements ssa.BinaryConstantDFG/ssa.CastDFG.
func (g *DataFlowGraph) GetNumericConstantWithType(v ssa.ValueId) (ssa.NumericConstant, bool) {
	val, ok := g.value(g.Resolve(v))
	if !ok || val.Kind != KindConstant {
		return ssa.NumericConstant{}, false
	}
	numeric, ok := val.Typ.(*ssa.NumericType)
	if !ok {
		return ssa.NumericConstant{}, false
	}
	return ssa.NumericConstant{Value: val.Constant, Type: numeric}, true
}

// GetArrayConstant implements ssa.ConstrainDFG/ssa.DFG.
func (g *DataFlowGraph) GetArrayConstant(v ssa.ValueId) ([]ssa.ValueId, ssa.Type, bool) {
	val, ok := g.value(g.Resolve(v))
	if !ok || val.Kind != KindArrayConstant {
		return nil, nil, false
	}
	return val.Elements, val.Typ, true
}

// IsConstant implements ssa.DFG.
func (g *DataFlowGraph) IsConstant(v ssa.ValueId) bool {
	val, ok := g.value(g.Resolve(v))
	return ok && (val.Kind == KindConstant || val.Kind == KindArrayConstant)
}

// TypeOfValue implements ssa.DFG/ssa.CastDFG.
func (g *DataFlowGraph) TypeOfValue(v ssa.ValueId) ssa.Type {
	val, ok := g.value(g.Resolve(v))
	if !ok {
		return nil
	}
	return val.Typ
}

// GetValueMaxNumBits implements ssa.DFG: for a numeric constant, the exact
// bit length of its value; for a typed non-constant, the type's declared
// bit width, which is a safe (if coarse) upper bound.
func (g *DataFlowGraph) GetValueMaxNumBits(v ssa.ValueId) uint32 {
	if constant, ok := g.GetNumericConstantWithType(v); ok {
		return uint32(constant.Value.BitLen())
	}
	if numeric, ok := g.TypeOfValue(v).(*ssa.NumericType); ok {
		return numeric.BitSize
	}
	return 0
}

// IsSafeIndex implements ssa.DFG/ssa.ClassifyDFG: index is safe exactly when
// it is a known constant strictly less than array's statically known
// length.
func (g *DataFlowGraph) IsSafeIndex(index, array ssa.ValueId) bool {
	idx, ok := g.GetNumericConstant(index)
	if !ok || idx.Sign() < 0 {
		return false
	}
	arrType, ok := g.TypeOfValue(array).(*ssa.ArrayType)
	if !ok {
		return false
	}
	return idx.IsUint64() && idx.Uint64() < uint64(arrType.Length)
}

// DefiningInstruction implements ssa.DFG: resolves v and, if it is an
// instruction result, returns the instruction that produced it.
func (g *DataFlowGraph) DefiningInstruction(v ssa.ValueId) (ssa.Instruction, bool) {
	val, ok := g.value(g.Resolve(v))
	if !ok || val.Kind != KindInstructionResult {
		return nil, false
	}
	return val.Instruction, true
}

// InsertInstructionAndResults implements ssa.DFG: appends instr to block and
// allocates fresh ValueIds for each of its results, per instr's
// ResultType().
func (g *DataFlowGraph) InsertInstructionAndResults(instr ssa.Instruction, block ssa.BasicBlockId, ctrlTypevars []ssa.Type, callStack ssa.CallStack) (ssa.ValueId, []ssa.ValueId) {
	g.Block(block).Push(instr)

	resultCount := resultCountOf(instr, ctrlTypevars)
	results := make([]ssa.ValueId, resultCount)
	for i := 0; i < resultCount; i++ {
		typ := ssa.ResolveResultType(instr, g.TypeOfValue, ctrlTypevars, i)
		results[i] = g.push(Value{
			Kind:             KindInstructionResult,
			Typ:              typ,
			Instruction:      instr,
			InstructionIndex: i,
			Block:            block,
		})
	}
	if resultCount == 0 {
		return ssa.Invalid, nil
	}
	return results[0], results[1:]
}

// resultCountOf returns how many result values instr produces. Most
// variants produce exactly one (or zero, for pure side-effecting ops). A
// Call produces one result per entry of ctrlTypevars when any are given
// (a multi-return callee), and one result otherwise.
func resultCountOf(instr ssa.Instruction, ctrlTypevars []ssa.Type) int {
	switch instr.(type) {
	case *ssa.Store, *ssa.Constrain, *ssa.RangeCheck, *ssa.EnableSideEffectsIf,
		*ssa.IncrementRc, *ssa.DecrementRc:
		return 0
	case *ssa.Call:
		if len(ctrlTypevars) > 0 {
			return len(ctrlTypevars)
		}
		return 1
	default:
		return 1
	}
}

// MergeNumericValues implements ssa.DFG; see merge.go for the mux
// construction.
func (g *DataFlowGraph) MergeNumericValues(block ssa.BasicBlockId, thenCond, elseCond, thenValue, elseValue ssa.ValueId) ssa.ValueId {
	return mergeNumericValues(g, block, thenCond, elseCond, thenValue, elseValue)
}

// CalleeKind implements ssa.ClassifyDFG.
func (g *DataFlowGraph) CalleeKind(callee ssa.ValueId) ssa.CalleeKind {
	val, ok := g.value(g.Resolve(callee))
	if !ok {
		return ssa.CalleeUnknown
	}
	switch val.Kind {
	case KindFunction:
		return ssa.CalleeUserFunction
	case KindForeignFunction:
		return ssa.CalleeForeignFunction
	case KindIntrinsic:
		if bb, ok := val.Intrinsic.BlackBox(); ok {
			switch bb {
			case blackbox.MultiScalarMul:
				return ssa.CalleeIntrinsicBlackBoxMultiScalarMul
			case blackbox.EmbeddedCurveAdd:
				return ssa.CalleeIntrinsicBlackBoxEmbeddedCurveAdd
			}
		}
		return ssa.CalleeIntrinsic
	default:
		return ssa.CalleeUnknown
	}
}

// CalleeIntrinsic implements ssa.CalleeIntrinsicDFG.
func (g *DataFlowGraph) CalleeIntrinsic(callee ssa.ValueId) (ssa.Intrinsic, bool) {
	val, ok := g.value(g.Resolve(callee))
	if !ok || val.Kind != KindIntrinsic {
		return ssa.Intrinsic{}, false
	}
	return val.Intrinsic, true
}
