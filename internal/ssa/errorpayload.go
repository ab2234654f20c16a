package ssa

import (
	"encoding/binary"
	"hash/fnv"
)

// ErrorSelector is the stable 64-bit content hash identifying a dynamic
// constraint-error payload type. Two equal ErrorTypes always produce the
// same selector (spec §8 property 5), and the digest must be bit-exact
// across runs — fnv.New64a is a pure function of its input bytes, so this
// holds for free as long as FrontendType.Fingerprint is itself stable.
type ErrorSelector uint64

// FrontendType is the minimal surface this layer needs from a front-end
// type when hashing a dynamic ErrorType: a stable structural fingerprint.
// The real front-end type system lives upstream of this layer; it is
// treated as an external collaborator here, same as the DFG.
type FrontendType interface {
	// Fingerprint returns bytes that are equal iff the two types are
	// structurally equal, suitable as hasher input.
	Fingerprint() []byte
}

// ErrorType is the compile-time description of an assertion-failure
// message: either a static string (never materialized as circuit data) or a
// dynamic payload typed by a front-end type.
type ErrorType interface {
	isErrorType()
	// Selector computes this error type's stable 64-bit selector.
	Selector() ErrorSelector
}

// StringErrorType is a compile-time-only error message.
type StringErrorType struct {
	Text string
}

func (StringErrorType) isErrorType() {}

func (s StringErrorType) Selector() ErrorSelector {
	h := fnv.New64a()
	h.Write([]byte{0}) // discriminant tag, so String("") and Dynamic(nil) never collide
	h.Write([]byte(s.Text))
	return ErrorSelector(h.Sum64())
}

// DynamicErrorType is an error whose payload is handled by the program as
// data at constraint-evaluation time.
type DynamicErrorType struct {
	Type FrontendType
}

func (DynamicErrorType) isErrorType() {}

func (d DynamicErrorType) Selector() ErrorSelector {
	h := fnv.New64a()
	h.Write([]byte{1})
	if d.Type != nil {
		h.Write(d.Type.Fingerprint())
	}
	return ErrorSelector(h.Sum64())
}

// ConstrainError is the payload attached to a Constrain or RangeCheck
// instruction. Per spec invariant 3, it is metadata, not an SSA operand —
// except that the values inside a Dynamic payload are real operands and
// must be visited/renamed alongside the constrained sides.
type ConstrainError interface {
	isConstrainError()
}

// StaticStringError is never materialized as circuit data; it exists only
// for compile-time diagnostics (e.g. a failed assert_constant).
type StaticStringError struct {
	Text string
}

func (StaticStringError) isConstrainError() {}

// DynamicError is handled by the generated circuit as data. IsString only
// affects how a back-end prints the payload; it carries no semantics here.
type DynamicError struct {
	Selector      ErrorSelector
	IsString      bool
	PayloadValues []ValueId
}

func (DynamicError) isConstrainError() {}

// selectorBytes turns a selector into a deterministic big-endian byte form,
// suitable for golden comparisons. No caller in the module uses it.
func selectorBytes(s ErrorSelector) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(s))
	return b
}
