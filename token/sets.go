package token

// Category sets consumed by the parser's precedence levels.
var (
	TypeTokens = []Type{BOOL, U8, U16, U24, U32, U64, I8, I16, I24, I32, I64}

	AssignmentTokens = []Type{
		ASSIGN,
		OR_ASSIGN,
		EXP_ASSIGN,
		AND_ASSIGN,
		DIV_ASSIGN,
		MUL_ASSIGN,
		PLUS_ASSIGN,
		LROT_ASSIGN,
		RROT_ASSIGN,
		MINUS_ASSIGN,
		ALSHIFT_ASSIGN,
		ARSHIFT_ASSIGN,
		LLSHIFT_ASSIGN,
		LRSHIFT_ASSIGN,
		LROT_CARRY_ASSIGN,
		RROT_CARRY_ASSIGN,
	}

	EqualityTokens = []Type{EQUAL_EQUAL, NOT_EQUAL}

	ComparisonTokens = []Type{GREATER, GREATER_EQUAL, LESS, LESS_EQUAL}

	// TermTokens covers additive arithmetic and the bitwise operators.
	TermTokens = []Type{PLUS, MINUS, AND, OR, EXP, BIT_INDEX}

	// FactorTokens covers multiplicative arithmetic and every shift/rotate.
	FactorTokens = []Type{
		MUL, DIV,
		ALSHIFT, ARSHIFT, LLSHIFT, LRSHIFT,
		RROT, RROT_CARRY, LROT, LROT_CARRY,
	}

	UnaryPrefixTokens = []Type{
		MINUS, PLUS, NOT, BITWISE_NEGATE, AND, MUL,
		INCREMENT, DECREMENT, BANK_OF, HIGH_OF, LOW_OF,
	}

	UnaryPostfixTokens = []Type{INCREMENT, DECREMENT}

	DeclarationTokens = []Type{VAR, CONST, WRITEONLY}

	BankKindTokens = []Type{CONSTDATA, VARDATA}
)

// In reports whether t is a member of set.
func In(t Type, set []Type) bool {
	for _, s := range set {
		if s == t {
			return true
		}
	}
	return false
}
