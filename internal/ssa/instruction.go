package ssa

// Instruction is the tagged variant of every non-terminating SSA operation a
// basic block can hold. It is a closed sum: every case below must be
// handled exhaustively by ResultType, ForEachValue, MapValues, the
// classification predicates, and Simplify. A missed case in any of those is
// a correctness bug (spec §4.3).
type Instruction interface {
	// ResultType reports how to compute this instruction's result type.
	ResultType() InstructionResultType
	// ForEachValue visits every operand ValueId, in the stable order given
	// in spec §3, including payload values inside a Dynamic ConstrainError.
	ForEachValue(f func(ValueId))
	// MapValues returns a fresh instruction with every operand replaced by
	// its image under f. Non-value fields are copied unchanged.
	MapValues(f func(ValueId) ValueId) Instruction
}

// RequiresCtrlTypevars reports whether inserting this instruction into a
// DataFlowGraph requires the caller to specify control type variables
// (true iff its result type is Unknown).
func RequiresCtrlTypevars(i Instruction) bool {
	_, unknown := i.ResultType().(resultUnknown)
	return unknown
}

// InstructionResultType is the result of Instruction.ResultType: one of
// Operand(v), Known(t), Unknown, or None.
type InstructionResultType interface{ isInstructionResultType() }

type resultOperand struct{ Value ValueId }
type resultKnown struct{ Type Type }
type resultUnknown struct{}
type resultNone struct{}

func (resultOperand) isInstructionResultType() {}
func (resultKnown) isInstructionResultType()   {}
func (resultUnknown) isInstructionResultType() {}
func (resultNone) isInstructionResultType()    {}

// ResultTypeOperand constructs the "matches this operand's type" result.
func ResultTypeOperand(v ValueId) InstructionResultType { return resultOperand{v} }

// ResultTypeKnown constructs the "statically known" result.
func ResultTypeKnown(t Type) InstructionResultType { return resultKnown{t} }

// ResultTypeUnknown is the result for calls and loads: the type is separate
// from the operand types and must be supplied at insertion time.
func ResultTypeUnknown() InstructionResultType { return resultUnknown{} }

// ResultTypeNone is the result for instructions with no result value.
func ResultTypeNone() InstructionResultType { return resultNone{} }

// ResolveResultType computes the concrete type of instr's resultIndex'th
// result: Known(t) yields t directly, Operand(v) yields typeOf(v), and
// Unknown yields ctrlTypevars[resultIndex] (the caller-supplied control
// type variable matching that result), or nil if none was supplied. A host
// graph calls this once per allocated result when inserting instr, since
// ResultType() alone only says *how* to find the type, not the type itself.
func ResolveResultType(instr Instruction, typeOf func(ValueId) Type, ctrlTypevars []Type, resultIndex int) Type {
	switch rt := instr.ResultType().(type) {
	case resultKnown:
		return rt.Type
	case resultOperand:
		return typeOf(rt.Value)
	case resultUnknown:
		if resultIndex >= 0 && resultIndex < len(ctrlTypevars) {
			return ctrlTypevars[resultIndex]
		}
		return nil
	default:
		return nil
	}
}

// --- Binary -----------------------------------------------------------

// Binary is the Binary(op, lhs, rhs) instruction: +, -, *, /, %, comparisons
// and bitwise/logical operators (see BinaryOp).
type Binary struct {
	Op  BinaryOp
	LHS ValueId
	RHS ValueId
}

func (b *Binary) ResultType() InstructionResultType {
	if b.Op.IsComparison() {
		return ResultTypeKnown(Bool())
	}
	return ResultTypeOperand(b.LHS)
}

func (b *Binary) ForEachValue(f func(ValueId)) { f(b.LHS); f(b.RHS) }

func (b *Binary) MapValues(f func(ValueId) ValueId) Instruction {
	return &Binary{Op: b.Op, LHS: f(b.LHS), RHS: f(b.RHS)}
}

// NewBinary is Instruction::binary's Go equivalent: a convenience
// constructor for a Binary instruction.
func NewBinary(op BinaryOp, lhs, rhs ValueId) Instruction {
	return &Binary{Op: op, LHS: lhs, RHS: rhs}
}

// --- Cast ---------------------------------------------------------------

// Cast converts value into type Type.
type Cast struct {
	Value ValueId
	Type  Type
}

func (c *Cast) ResultType() InstructionResultType { return ResultTypeKnown(c.Type) }
func (c *Cast) ForEachValue(f func(ValueId))      { f(c.Value) }
func (c *Cast) MapValues(f func(ValueId) ValueId) Instruction {
	return &Cast{Value: f(c.Value), Type: c.Type}
}

// --- Not ------------------------------------------------------------------

// Not computes a bitwise complement of value.
type Not struct {
	Value ValueId
}

func (n *Not) ResultType() InstructionResultType { return ResultTypeOperand(n.Value) }
func (n *Not) ForEachValue(f func(ValueId))      { f(n.Value) }
func (n *Not) MapValues(f func(ValueId) ValueId) Instruction {
	return &Not{Value: f(n.Value)}
}

// --- Truncate ---------------------------------------------------------

// Truncate truncates Value to BitSize, where MaxBitSize is the maximum
// number of bits Value is known to need before truncation.
type Truncate struct {
	Value      ValueId
	BitSize    uint32
	MaxBitSize uint32
}

func (t *Truncate) ResultType() InstructionResultType { return ResultTypeOperand(t.Value) }
func (t *Truncate) ForEachValue(f func(ValueId))      { f(t.Value) }
func (t *Truncate) MapValues(f func(ValueId) ValueId) Instruction {
	return &Truncate{Value: f(t.Value), BitSize: t.BitSize, MaxBitSize: t.MaxBitSize}
}

// --- Constrain ----------------------------------------------------------

// Constrain asserts LHS == RHS, optionally attaching an error payload used
// only if the constraint fails.
type Constrain struct {
	LHS ValueId
	RHS ValueId
	Msg ConstrainError // may be nil
}

func (c *Constrain) ResultType() InstructionResultType { return ResultTypeNone() }

func (c *Constrain) ForEachValue(f func(ValueId)) {
	f(c.LHS)
	f(c.RHS)
	if dyn, ok := c.Msg.(DynamicError); ok {
		for _, v := range dyn.PayloadValues {
			f(v)
		}
	}
}

func (c *Constrain) MapValues(f func(ValueId) ValueId) Instruction {
	// lhs/rhs must be mapped before the payload values, matching the
	// original's evaluation order note (operand order is observable when f
	// has side effects, e.g. the rename pass's fresh-id allocator).
	lhs := f(c.LHS)
	rhs := f(c.RHS)
	msg := c.Msg
	if dyn, ok := c.Msg.(DynamicError); ok {
		payload := make([]ValueId, len(dyn.PayloadValues))
		for i, v := range dyn.PayloadValues {
			payload[i] = f(v)
		}
		msg = DynamicError{Selector: dyn.Selector, IsString: dyn.IsString, PayloadValues: payload}
	}
	return &Constrain{LHS: lhs, RHS: rhs, Msg: msg}
}

// --- RangeCheck ---------------------------------------------------------

// RangeCheck asserts Value fits in MaxBitSize bits.
type RangeCheck struct {
	Value      ValueId
	MaxBitSize uint32
	Msg        *string // assertion message, metadata only
}

func (r *RangeCheck) ResultType() InstructionResultType { return ResultTypeNone() }
func (r *RangeCheck) ForEachValue(f func(ValueId))      { f(r.Value) }
func (r *RangeCheck) MapValues(f func(ValueId) ValueId) Instruction {
	return &RangeCheck{Value: f(r.Value), MaxBitSize: r.MaxBitSize, Msg: r.Msg}
}

// --- Call -----------------------------------------------------------------

// Call invokes Func (a function, intrinsic, or foreign-function value) with
// Args. Its result type is Unknown: the caller must supply control
// typevars at insertion time.
type Call struct {
	Func ValueId
	Args []ValueId
}

func (c *Call) ResultType() InstructionResultType { return ResultTypeUnknown() }

func (c *Call) ForEachValue(f func(ValueId)) {
	f(c.Func)
	for _, a := range c.Args {
		f(a)
	}
}

func (c *Call) MapValues(f func(ValueId) ValueId) Instruction {
	args := make([]ValueId, len(c.Args))
	for i, a := range c.Args {
		args[i] = f(a)
	}
	return &Call{Func: f(c.Func), Args: args}
}

// --- Allocate ---------------------------------------------------------

// Allocate allocates a region of memory; the type of the element is
// determined by whoever loads it.
type Allocate struct{}

func (a *Allocate) ResultType() InstructionResultType         { return ResultTypeUnknown() }
func (a *Allocate) ForEachValue(f func(ValueId))              {}
func (a *Allocate) MapValues(f func(ValueId) ValueId) Instruction {
	return &Allocate{}
}

// --- Load / Store -------------------------------------------------------

// Load reads a value from memory.
type Load struct {
	Address ValueId
}

func (l *Load) ResultType() InstructionResultType { return ResultTypeUnknown() }
func (l *Load) ForEachValue(f func(ValueId))      { f(l.Address) }
func (l *Load) MapValues(f func(ValueId) ValueId) Instruction {
	return &Load{Address: f(l.Address)}
}

// Store writes Value to Address.
type Store struct {
	Address ValueId
	Value   ValueId
}

func (s *Store) ResultType() InstructionResultType { return ResultTypeNone() }
func (s *Store) ForEachValue(f func(ValueId))      { f(s.Address); f(s.Value) }
func (s *Store) MapValues(f func(ValueId) ValueId) Instruction {
	return &Store{Address: f(s.Address), Value: f(s.Value)}
}

// --- EnableSideEffectsIf -----------------------------------------------

// EnableSideEffectsIf installs a predicate gating whether subsequent
// instructions in the block are allowed to have side effects, until the
// next EnableSideEffectsIf. Per spec invariant 4, it only exists after CFG
// flattening.
type EnableSideEffectsIf struct {
	Condition ValueId
}

func (e *EnableSideEffectsIf) ResultType() InstructionResultType { return ResultTypeNone() }
func (e *EnableSideEffectsIf) ForEachValue(f func(ValueId))      { f(e.Condition) }
func (e *EnableSideEffectsIf) MapValues(f func(ValueId) ValueId) Instruction {
	return &EnableSideEffectsIf{Condition: f(e.Condition)}
}

// --- ArrayGet / ArraySet ------------------------------------------------

// ArrayGet retrieves the element at Index from Array.
type ArrayGet struct {
	Array ValueId
	Index ValueId
}

func (a *ArrayGet) ResultType() InstructionResultType { return ResultTypeUnknown() }
func (a *ArrayGet) ForEachValue(f func(ValueId))      { f(a.Array); f(a.Index) }
func (a *ArrayGet) MapValues(f func(ValueId) ValueId) Instruction {
	return &ArrayGet{Array: f(a.Array), Index: f(a.Index)}
}

// ArraySet creates a new array identical to Array except that Index now
// holds Value. Mutable is only set by an optimizer that proved in-place
// mutation is safe (spec invariant 6); it defaults to false.
type ArraySet struct {
	Array   ValueId
	Index   ValueId
	Value   ValueId
	Mutable bool
}

func (a *ArraySet) ResultType() InstructionResultType { return ResultTypeOperand(a.Array) }
func (a *ArraySet) ForEachValue(f func(ValueId))      { f(a.Array); f(a.Index); f(a.Value) }
func (a *ArraySet) MapValues(f func(ValueId) ValueId) Instruction {
	return &ArraySet{Array: f(a.Array), Index: f(a.Index), Value: f(a.Value), Mutable: a.Mutable}
}

// --- IncrementRc / DecrementRc -------------------------------------------

// IncrementRc increments the reference count of Value. It is only live
// under unconstrained execution; inert under ACIR lowering (spec
// invariant 5).
type IncrementRc struct {
	Value ValueId
}

func (i *IncrementRc) ResultType() InstructionResultType { return ResultTypeNone() }
func (i *IncrementRc) ForEachValue(f func(ValueId))      { f(i.Value) }
func (i *IncrementRc) MapValues(f func(ValueId) ValueId) Instruction {
	return &IncrementRc{Value: f(i.Value)}
}

// DecrementRc decrements the reference count of Value.
type DecrementRc struct {
	Value ValueId
}

func (d *DecrementRc) ResultType() InstructionResultType { return ResultTypeNone() }
func (d *DecrementRc) ForEachValue(f func(ValueId))      { f(d.Value) }
func (d *DecrementRc) MapValues(f func(ValueId) ValueId) Instruction {
	return &DecrementRc{Value: f(d.Value)}
}

// --- IfElse ---------------------------------------------------------------

// IfElse merges two values from opposite branches of a conditional into
// one, given the (ThenCond, ElseCond) pair saved during CFG flattening.
type IfElse struct {
	ThenCond  ValueId
	ThenValue ValueId
	ElseCond  ValueId
	ElseValue ValueId
}

func (i *IfElse) ResultType() InstructionResultType { return ResultTypeOperand(i.ThenValue) }

func (i *IfElse) ForEachValue(f func(ValueId)) {
	f(i.ThenCond)
	f(i.ThenValue)
	f(i.ElseCond)
	f(i.ElseValue)
}

func (i *IfElse) MapValues(f func(ValueId) ValueId) Instruction {
	return &IfElse{
		ThenCond:  f(i.ThenCond),
		ThenValue: f(i.ThenValue),
		ElseCond:  f(i.ElseCond),
		ElseValue: f(i.ElseValue),
	}
}

// --- MakeArray --------------------------------------------------------

// MakeArray builds a new array or slice value from an ordered sequence of
// element values. len(Elements) must match the count implied by Typ (spec
// invariant 7); this is the caller's responsibility and is not checked here.
type MakeArray struct {
	Elements []ValueId
	Typ      Type
}

func (m *MakeArray) ResultType() InstructionResultType { return ResultTypeKnown(m.Typ) }

func (m *MakeArray) ForEachValue(f func(ValueId)) {
	for _, e := range m.Elements {
		f(e)
	}
}

func (m *MakeArray) MapValues(f func(ValueId) ValueId) Instruction {
	elements := make([]ValueId, len(m.Elements))
	for i, e := range m.Elements {
		elements[i] = f(e)
	}
	return &MakeArray{Elements: elements, Typ: m.Typ}
}
