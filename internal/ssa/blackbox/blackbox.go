// Package blackbox enumerates the cryptographic primitives a proving
// back-end is expected to supply a constraint system for. The instruction
// layer treats this catalog as an external collaborator (spec §1): it only
// needs to look functions up by name and ask whether a given one has side
// effects.
package blackbox

// Func is a black-box function recognized by the circuit back-end.
type Func uint8

const (
	AES128Encrypt Func = iota
	SHA256Compression
	Keccakf1600
	EcdsaSecp256k1
	EcdsaSecp256r1
	SchnorrVerify
	PedersenCommitment
	PedersenHash
	MultiScalarMul
	EmbeddedCurveAdd
	RecursiveAggregation
	Poseidon2Permutation
	BigIntAdd
	BigIntSub
	BigIntMul
	BigIntDiv
	BigIntFromLeBytes
	BigIntToLeBytes
	Blake2s
	Blake3
)

var names = map[Func]string{
	AES128Encrypt:            "aes128_encrypt",
	SHA256Compression:        "sha256_compression",
	Keccakf1600:              "keccakf1600",
	EcdsaSecp256k1:           "ecdsa_secp256k1",
	EcdsaSecp256r1:           "ecdsa_secp256r1",
	SchnorrVerify:            "schnorr_verify",
	PedersenCommitment:       "pedersen_commitment",
	PedersenHash:             "pedersen_hash",
	MultiScalarMul:           "multi_scalar_mul",
	EmbeddedCurveAdd:         "embedded_curve_add",
	RecursiveAggregation:     "recursive_aggregation",
	Poseidon2Permutation:     "poseidon2_permutation",
	BigIntAdd:                "bigint_add",
	BigIntSub:                "bigint_sub",
	BigIntMul:                "bigint_mul",
	BigIntDiv:                "bigint_div",
	BigIntFromLeBytes:        "bigint_from_le_bytes",
	BigIntToLeBytes:          "bigint_to_le_bytes",
	Blake2s:                  "blake2s",
	Blake3:                   "blake3",
}

func (f Func) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	return "unknown_black_box_func"
}

// Lookup resolves a black-box function by its display name.
func Lookup(name string) (Func, bool) {
	for f, n := range names {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// HasSideEffects reports whether calling f may fail, constrain the witness,
// or otherwise depend on global context in a way that forbids dropping it
// when unused. Only the three aggregation/curve operations named in spec
// §4.1 are side-effecting; every other black-box function is a pure
// mathematical computation over its inputs.
func (f Func) HasSideEffects() bool {
	switch f {
	case RecursiveAggregation, MultiScalarMul, EmbeddedCurveAdd:
		return true
	default:
		return false
	}
}
