package ssa

// TerminatorInstruction is the closed set of three operations that can end
// a basic block: JmpIf, Jmp, and Return. Exactly one Return is expected per
// finished function; early returns are modeled as a jump to a unique exit
// block (spec §4.6).
type TerminatorInstruction interface {
	// ForEachValue visits every ValueId operand.
	ForEachValue(f func(ValueId))
	// MapValues returns a fresh terminator with every ValueId operand
	// replaced by its image under f.
	MapValues(f func(ValueId) ValueId) TerminatorInstruction
	// MutateValues rewrites every ValueId operand in place.
	MutateValues(f func(ValueId) ValueId)
	// MutateBlocks rewrites every destination BasicBlockId in place.
	MutateBlocks(f func(BasicBlockId) BasicBlockId)
	// CallStack returns the attached source-location stack.
	CallStack() CallStack
}

// JmpIf jumps to Then if Condition is true, else to Else.
type JmpIf struct {
	Condition ValueId
	ThenBlock BasicBlockId
	ElseBlock BasicBlockId
	Stack     CallStack
}

func (j *JmpIf) ForEachValue(f func(ValueId)) { f(j.Condition) }

func (j *JmpIf) MapValues(f func(ValueId) ValueId) TerminatorInstruction {
	return &JmpIf{Condition: f(j.Condition), ThenBlock: j.ThenBlock, ElseBlock: j.ElseBlock, Stack: j.Stack.Clone()}
}

func (j *JmpIf) MutateValues(f func(ValueId) ValueId) { j.Condition = f(j.Condition) }

func (j *JmpIf) MutateBlocks(f func(BasicBlockId) BasicBlockId) {
	j.ThenBlock = f(j.ThenBlock)
	j.ElseBlock = f(j.ElseBlock)
}

func (j *JmpIf) CallStack() CallStack { return j.Stack }

// Jmp unconditionally jumps to Dest, passing Args as the destination
// block's parameters.
type Jmp struct {
	Dest  BasicBlockId
	Args  []ValueId
	Stack CallStack
}

func (j *Jmp) ForEachValue(f func(ValueId)) {
	for _, a := range j.Args {
		f(a)
	}
}

func (j *Jmp) MapValues(f func(ValueId) ValueId) TerminatorInstruction {
	args := make([]ValueId, len(j.Args))
	for i, a := range j.Args {
		args[i] = f(a)
	}
	return &Jmp{Dest: j.Dest, Args: args, Stack: j.Stack.Clone()}
}

func (j *Jmp) MutateValues(f func(ValueId) ValueId) {
	for i, a := range j.Args {
		j.Args[i] = f(a)
	}
}

func (j *Jmp) MutateBlocks(f func(BasicBlockId) BasicBlockId) { j.Dest = f(j.Dest) }

func (j *Jmp) CallStack() CallStack { return j.Stack }

// Return exits the current function with Values. It has no block
// destinations.
type Return struct {
	Values []ValueId
	Stack  CallStack
}

func (r *Return) ForEachValue(f func(ValueId)) {
	for _, v := range r.Values {
		f(v)
	}
}

func (r *Return) MapValues(f func(ValueId) ValueId) TerminatorInstruction {
	values := make([]ValueId, len(r.Values))
	for i, v := range r.Values {
		values[i] = f(v)
	}
	return &Return{Values: values, Stack: r.Stack.Clone()}
}

func (r *Return) MutateValues(f func(ValueId) ValueId) {
	for i, v := range r.Values {
		r.Values[i] = f(v)
	}
}

func (r *Return) MutateBlocks(f func(BasicBlockId) BasicBlockId) {}

func (r *Return) CallStack() CallStack { return r.Stack }
