package ssa_test

import (
	"testing"

	"circuitir/internal/ssa"
)

// TestForEachValueMatchesMapValues covers universal property 2: the
// multiset for_each_value visits equals the multiset map_values
// substitutes, for every variant.
func TestForEachValueMatchesMapValues(t *testing.T) {
	for _, instr := range sampleInstructions() {
		var visited []ssa.ValueId
		instr.ForEachValue(func(v ssa.ValueId) { visited = append(visited, v) })

		var substituted []ssa.ValueId
		mapped := instr.MapValues(func(v ssa.ValueId) ssa.ValueId {
			substituted = append(substituted, v)
			return v
		})
		if mapped == nil {
			t.Fatalf("%#v: MapValues returned nil", instr)
		}
		if !sameMultiset(visited, substituted) {
			t.Errorf("%#v: for_each_value visited %v, map_values substituted %v", instr, visited, substituted)
		}
	}
}

// TestRenameRoundTrip covers universal property 1: map_values(map_values(i,
// f), f^-1) == i, for an injective renaming.
func TestRenameRoundTrip(t *testing.T) {
	offset := ssa.ValueId(1000)
	forward := func(v ssa.ValueId) ssa.ValueId { return v + offset }
	backward := func(v ssa.ValueId) ssa.ValueId { return v - offset }

	for _, instr := range sampleInstructions() {
		renamed := instr.MapValues(forward)
		restored := renamed.MapValues(backward)
		if !instructionsEqual(instr, restored) {
			t.Errorf("rename round-trip failed for %#v: got %#v", instr, restored)
		}
	}
}

func sampleInstructions() []ssa.Instruction {
	v0, v1, v2 := ssa.ValueId(0), ssa.ValueId(1), ssa.ValueId(2)
	u32 := ssa.Unsigned(32)
	return []ssa.Instruction{
		&ssa.Binary{Op: ssa.Add, LHS: v0, RHS: v1},
		&ssa.Cast{Value: v0, Type: u32},
		&ssa.Not{Value: v0},
		&ssa.Truncate{Value: v0, BitSize: 8, MaxBitSize: 32},
		&ssa.Constrain{LHS: v0, RHS: v1, Msg: ssa.DynamicError{PayloadValues: []ssa.ValueId{v2}}},
		&ssa.RangeCheck{Value: v0, MaxBitSize: 8},
		&ssa.Call{Func: v0, Args: []ssa.ValueId{v1, v2}},
		&ssa.Allocate{},
		&ssa.Load{Address: v0},
		&ssa.Store{Address: v0, Value: v1},
		&ssa.EnableSideEffectsIf{Condition: v0},
		&ssa.ArrayGet{Array: v0, Index: v1},
		&ssa.ArraySet{Array: v0, Index: v1, Value: v2},
		&ssa.IncrementRc{Value: v0},
		&ssa.DecrementRc{Value: v0},
		&ssa.IfElse{ThenCond: v0, ThenValue: v1, ElseCond: v0, ElseValue: v2},
		&ssa.MakeArray{Elements: []ssa.ValueId{v0, v1, v2}, Typ: &ssa.ArrayType{Element: u32, Length: 3}},
	}
}

func sameMultiset(a, b []ssa.ValueId) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[ssa.ValueId]int)
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}

func instructionsEqual(a, b ssa.Instruction) bool {
	var av, bv []ssa.ValueId
	a.ForEachValue(func(v ssa.ValueId) { av = append(av, v) })
	b.ForEachValue(func(v ssa.ValueId) { bv = append(bv, v) })
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}
