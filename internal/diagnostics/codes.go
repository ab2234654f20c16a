package diagnostics

// Diagnostic codes emitted while classifying or simplifying instructions.
//
// Code ranges:
// D0001-D0099: instruction-well-formedness diagnostics
// D0100-D0199: simplification trace entries
const (
	// D0001: an operand referenced a ValueId the graph has never defined.
	CodeDanglingOperand = "D0001"

	// D0002: a Constrain's message payload referenced a value not visible
	// at the point of the constraint.
	CodeUnreachablePayload = "D0002"

	// D0100: an instruction was replaced by a single value.
	CodeSimplifiedToValue = "D0100"

	// D0101: an instruction was replaced by one or more instructions.
	CodeSimplifiedToInstructions = "D0101"

	// D0102: an instruction was removed as dead or trivial.
	CodeRemoved = "D0102"
)
