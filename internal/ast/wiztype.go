package ast

import "wiz/token"

// Type is a WizType: numeric, pointer, array or function type.
type Type interface {
	Node
	isType()
}

func (*NumericType) isType() {}
func (*PointerType) isType() {}
func (*ArrayType) isType()   {}
func (*FuncType) isType()    {}

// NumericKind is the width/signedness tag of a numeric type.
type NumericKind string

const (
	Bool NumericKind = "bool"
	I8   NumericKind = "i8"
	I16  NumericKind = "i16"
	I24  NumericKind = "i24"
	I32  NumericKind = "i32"
	I64  NumericKind = "i64"
	U8   NumericKind = "u8"
	U16  NumericKind = "u16"
	U24  NumericKind = "u24"
	U32  NumericKind = "u32"
	U64  NumericKind = "u64"
)

var numericKinds = map[token.Type]NumericKind{
	token.BOOL: Bool,
	token.I8:   I8,
	token.I16:  I16,
	token.I24:  I24,
	token.I32:  I32,
	token.I64:  I64,
	token.U8:   U8,
	token.U16:  U16,
	token.U24:  U24,
	token.U32:  U32,
	token.U64:  U64,
}

// NumericKindOf maps a type-width keyword to its kind.
func NumericKindOf(t token.Type) (NumericKind, bool) {
	k, ok := numericKinds[t]
	return k, ok
}

// Bits is the storage width; bool occupies one bit.
func (k NumericKind) Bits() int {
	switch k {
	case Bool:
		return 1
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I24, U24:
		return 24
	case I32, U32:
		return 32
	case I64, U64:
		return 64
	}
	return 0
}

func (k NumericKind) Signed() bool {
	return len(k) > 0 && k[0] == 'i'
}

type NumericType struct {
	Pos  Position
	Kind NumericKind
}

type PointerType struct {
	Pos  Position
	Elem Type
}

type ArrayType struct {
	Pos  Position
	Elem Type
	Size Expr // nil when unspecified
}

// FuncArg is a typed argument; Storage names an optional region.
type FuncArg struct {
	Name    string
	Type    Type
	Storage string
}

type FuncReturn struct {
	Type    Type
	Storage string
}

type FuncType struct {
	Pos     Position
	Args    []FuncArg
	Returns *FuncReturn
}
