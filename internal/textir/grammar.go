package textir

import "github.com/alecthomas/participle/v2/lexer"

// Program is one function body, the unit textir files hold.
type Program struct {
	Function *Function `@@`
}

// Function is a name, typed parameters, an optional result type, and the
// blocks making up its body. The entry block is always the first one
// listed.
type Function struct {
	Name    string   `"fn" @Ident "("`
	Params  []*Param `( @@ ( "," @@ )* )? ")"`
	Result  *Type    `( "->" @@ )?`
	Blocks  []*Block `"{" @@+ "}"`
}

// Param is a name:type pair, used both for function parameters and block
// parameters.
type Param struct {
	Name string `@Ident ":"`
	Type *Type  `@@`
}

// Type is either a scalar name (u32, i64, field, bool, or a user-defined
// name) or an array.
type Type struct {
	Array *ArrayType `  @@`
	Name  string     `| @Ident`
}

// ArrayType is "[elementType; length]".
type ArrayType struct {
	Element *Type  `"[" @@`
	Length  string `";" @Integer "]"`
}

// Block is a label, its parameters, a straight-line instruction list, and
// the terminator that closes it.
type Block struct {
	Label      string         `"block" @Ident "("`
	Params     []*Param       `( @@ ( "," @@ )* )? ")" ":"`
	Statements []*Statement   `@@*`
	Terminator *TerminatorAst `@@`
}

// Statement is one instruction line, optionally binding a result name. Pos
// is captured automatically by participle and recorded in Built.Positions
// at insertion time, so a simplify diagnostic can point back at the line of
// text that produced it.
type Statement struct {
	Pos    lexer.Position
	Result string          `( @Ident "=" )?`
	Instr  *InstructionAst `@@`
}

// InstructionAst covers the subset of instruction.go's variants this
// surface syntax exposes. Every case here has a one-to-one lowering in
// build.go; variants not written here (IfElse, IncrementRc/DecrementRc,
// Load/Store/Allocate) are omitted only from the text format, not from the
// instruction layer itself, which implements all seventeen regardless of
// whether a line of text can express them.
type InstructionAst struct {
	Binary       *BinaryAst       `  @@`
	Not          *NotAst          `| @@`
	Cast         *CastAst         `| @@`
	Truncate     *TruncateAst     `| @@`
	Constrain    *ConstrainAst    `| @@`
	RangeCheck   *RangeCheckAst   `| @@`
	ArrayGet     *ArrayGetAst     `| @@`
	ArraySet     *ArraySetAst     `| @@`
	MakeArray    *MakeArrayAst    `| @@`
	EnableSideFx *EnableSideFxAst `| @@`
	Call         *CallAst         `| @@`
}

type BinaryAst struct {
	Op  string `@("add"|"sub"|"mul"|"div"|"mod"|"eq"|"lt"|"and"|"or"|"xor"|"shl"|"shr")`
	LHS string `@Ident ","`
	RHS string `@Ident`
}

type NotAst struct {
	Value string `"not" @Ident`
}

type CastAst struct {
	Value string `"cast" @Ident "to"`
	Type  *Type  `@@`
}

type TruncateAst struct {
	Value      string `"truncate" @Ident "to"`
	BitSize    string `@Integer "bits" "max_bit_size"`
	MaxBitSize string `@Integer`
}

type ConstrainAst struct {
	LHS string `"constrain" @Ident ","`
	RHS string `@Ident`
}

type RangeCheckAst struct {
	Value   string `"range_check" @Ident ","`
	MaxBits string `@Integer "bits"`
}

type ArrayGetAst struct {
	Array string `"array_get" @Ident "["`
	Index string `@Ident "]"`
}

type ArraySetAst struct {
	Array string `"array_set" @Ident "["`
	Index string `@Ident "]" "="`
	Value string `@Ident`
}

type MakeArrayAst struct {
	Elements []string `"make_array" "[" ( @Ident ( "," @Ident )* )? "]" ":"`
	Type     *Type     `@@`
}

type EnableSideFxAst struct {
	Condition string `"enable_side_effects_if" @Ident`
}

type CallAst struct {
	Callee string   `"call" @Ident "("`
	Args   []string `( @Ident ( "," @Ident )* )? ")"`
}

// TerminatorAst covers Jmp, JmpIf and Return.
type TerminatorAst struct {
	JmpIf  *JmpIfAst  `  @@`
	Jmp    *JmpAst    `| @@`
	Return *ReturnAst `| @@`
}

type JmpIfAst struct {
	Condition string `"jmpif" @Ident`
	Then      string `"then" @Ident`
	Else      string `"else" @Ident`
}

type JmpAst struct {
	Dest string   `"jmp" @Ident "("`
	Args []string `( @Ident ( "," @Ident )* )? ")"`
}

type ReturnAst struct {
	Values []string `"return" ( @Ident ( "," @Ident )* )?`
}
