package ssa

import "math/big"

// BinaryOp is the operator of a Binary instruction.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Lt
	And
	Or
	Xor
	Shl
	Shr
)

// IsComparison reports whether op always yields a boolean result,
// regardless of its operands' type (spec §3 Binary result-type rule).
func (op BinaryOp) IsComparison() bool {
	return op == Eq || op == Lt
}

func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case Eq:
		return "eq"
	case Lt:
		return "lt"
	case And:
		return "and"
	case Or:
		return "or"
	case Xor:
		return "xor"
	case Shl:
		return "shl"
	case Shr:
		return "shr"
	default:
		return "unknown_op"
	}
}

// NumericConstant is the minimal view the folding rules below need of a
// resolved operand: its value and numeric type. Package dfg supplies this
// via DataFlowGraph.GetNumericConstantWithType.
type NumericConstant struct {
	Value *big.Int
	Type  *NumericType
}

// BinaryConstantDFG is the slice of DataFlowGraph that binary constant
// folding needs: resolving aliases and reading numeric constants.
type BinaryConstantDFG interface {
	Resolve(ValueId) ValueId
	GetNumericConstantWithType(ValueId) (NumericConstant, bool)
	MakeConstant(*big.Int, Type) ValueId
}

// simplifyBinary implements the "binary-simplifier" collaborator spec §4.4
// leaves unspecified beyond "constant folding, identity/absorbing elements
// per op". It folds when both operands are constants of the same type, and
// otherwise applies the identities that hold regardless of the other
// operand's value.
func simplifyBinary(b *Binary, dfg BinaryConstantDFG) SimplifyResult {
	lhs := dfg.Resolve(b.LHS)
	rhs := dfg.Resolve(b.RHS)

	lc, lok := dfg.GetNumericConstantWithType(lhs)
	rc, rok := dfg.GetNumericConstantWithType(rhs)

	if lok && rok && lc.Type.Equal(rc.Type) {
		if folded, ok := foldConstantBinary(b.Op, lc.Value, rc.Value, lc.Type); ok {
			var resultType Type = lc.Type
			if b.Op.IsComparison() {
				resultType = Bool()
			}
			return SimplifiedToValue(dfg.MakeConstant(folded, resultType))
		}
	}

	if rok && isIdentityRHS(b.Op, rc.Value) {
		return SimplifiedToValue(lhs)
	}
	if lok && isIdentityLHS(b.Op, lc.Value) {
		return SimplifiedToValue(rhs)
	}
	if rok && isAbsorbingRHS(b.Op, rc.Value) {
		return SimplifiedToValue(dfg.MakeConstant(big.NewInt(0), rc.Type))
	}

	return SimplifyNone()
}

func foldConstantBinary(op BinaryOp, l, r *big.Int, typ *NumericType) (*big.Int, bool) {
	result := new(big.Int)
	switch op {
	case Add:
		result.Add(l, r)
	case Sub:
		result.Sub(l, r)
	case Mul:
		result.Mul(l, r)
	case Div:
		if r.Sign() == 0 {
			return nil, false
		}
		result.Quo(l, r)
	case Mod:
		if r.Sign() == 0 {
			return nil, false
		}
		result.Rem(l, r)
	case And:
		result.And(l, r)
	case Or:
		result.Or(l, r)
	case Xor:
		result.Xor(l, r)
	case Shl:
		result.Lsh(l, uint(r.Uint64()))
	case Shr:
		result.Rsh(l, uint(r.Uint64()))
	case Eq:
		if l.Cmp(r) == 0 {
			result.SetInt64(1)
		}
	case Lt:
		if l.Cmp(r) < 0 {
			result.SetInt64(1)
		}
	default:
		return nil, false
	}
	return reduceToType(result, typ), true
}

// reduceToType reduces a folded result into the representable range of typ,
// modulo 2^bit_size for unsigned/field types. Field elements use their full
// nominal width as a stand-in modulus here; package dfg's concrete field
// type performs true modular reduction against the real field modulus.
func reduceToType(v *big.Int, typ *NumericType) *big.Int {
	if typ.Kind == NumericSignedInt {
		return v
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(typ.BitSize))
	out := new(big.Int).Mod(v, mod)
	if out.Sign() < 0 {
		out.Add(out, mod)
	}
	return out
}

// isIdentityRHS reports whether rhs is an identity element on the right
// (x op rhs == x): x+0, x-0, x*1, x/1, x&1...(all-ones, not modeled here),
// x|0, x^0, x<<0, x>>0.
func isIdentityRHS(op BinaryOp, rhs *big.Int) bool {
	switch op {
	case Add, Sub, Or, Xor, Shl, Shr:
		return rhs.Sign() == 0
	case Mul, Div:
		return rhs.Cmp(big.NewInt(1)) == 0
	default:
		return false
	}
}

// isIdentityLHS reports whether lhs is an identity element on the left
// (lhs op x == x): 0+x, 1*x, 0|x, 0^x.
func isIdentityLHS(op BinaryOp, lhs *big.Int) bool {
	switch op {
	case Add, Or, Xor:
		return lhs.Sign() == 0
	case Mul:
		return lhs.Cmp(big.NewInt(1)) == 0
	default:
		return false
	}
}

// isAbsorbingRHS reports whether rhs makes the whole expression fold to
// zero regardless of lhs: x*0, x&0.
func isAbsorbingRHS(op BinaryOp, rhs *big.Int) bool {
	switch op {
	case Mul, And:
		return rhs.Sign() == 0
	default:
		return false
	}
}
