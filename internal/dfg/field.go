package dfg

import "math/big"

// fieldModulus is the BN254 scalar field modulus, the prime used throughout
// the Noir/ACIR toolchain this instruction layer was distilled from. It is
// the concrete modulus behind the ssa.Field() numeric type.
var fieldModulus = mustParseModulus("21888242871839275222246405745257275088548364400416034343698204186575808495617")

func mustParseModulus(s string) *big.Int {
	m, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("dfg: invalid field modulus literal")
	}
	return m
}

// FieldModulus returns the prime field modulus used for reducing field
// element constants.
func FieldModulus() *big.Int {
	return new(big.Int).Set(fieldModulus)
}

// ReduceField reduces v into the canonical representative of the field
// (0 <= result < modulus), the behavior required of "the field-element
// arithmetic primitive" collaborator.
func ReduceField(v *big.Int) *big.Int {
	r := new(big.Int).Mod(v, fieldModulus)
	if r.Sign() < 0 {
		r.Add(r, fieldModulus)
	}
	return r
}

// ReduceUnsigned reduces v into [0, 2^bitSize) by two's-complement-free
// unsigned wraparound, the behavior needed for unsigned int/bool constant
// folding.
func ReduceUnsigned(v *big.Int, bitSize uint32) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bitSize))
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	return r
}
