package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Expressions
	ARRAY_EXPR
	ASSIGN_EXPR
	BINARY_EXPR
	BOOL_EXPR
	CALL_EXPR
	COERCION_EXPR
	EMBED_EXPR
	GROUP_EXPR
	NAME_EXPR
	NUMBER_EXPR
	POSTFIX_EXPR
	UNARY_EXPR

	// Types
	NUMERIC_TYPE
	POINTER_TYPE
	ARRAY_TYPE
	FUNC_TYPE

	// Statements
	BANK_STMT
	DECL_STMT
	DO_STMT
	EXPR_STMT
	FOR_STMT
	FUNC_STMT
	GOTO_STMT
	IF_STMT
	IMPORT_STMT
	IN_STMT
	LABEL_STMT
	LET_STMT
	NAMESPACE_STMT
	WHILE_STMT
)

var nodeTypeNames = [...]string{
	ILLEGAL:        "ILLEGAL",
	ARRAY_EXPR:     "ARRAY_EXPR",
	ASSIGN_EXPR:    "ASSIGN_EXPR",
	BINARY_EXPR:    "BINARY_EXPR",
	BOOL_EXPR:      "BOOL_EXPR",
	CALL_EXPR:      "CALL_EXPR",
	COERCION_EXPR:  "COERCION_EXPR",
	EMBED_EXPR:     "EMBED_EXPR",
	GROUP_EXPR:     "GROUP_EXPR",
	NAME_EXPR:      "NAME_EXPR",
	NUMBER_EXPR:    "NUMBER_EXPR",
	POSTFIX_EXPR:   "POSTFIX_EXPR",
	UNARY_EXPR:     "UNARY_EXPR",
	NUMERIC_TYPE:   "NUMERIC_TYPE",
	POINTER_TYPE:   "POINTER_TYPE",
	ARRAY_TYPE:     "ARRAY_TYPE",
	FUNC_TYPE:      "FUNC_TYPE",
	BANK_STMT:      "BANK_STMT",
	DECL_STMT:      "DECL_STMT",
	DO_STMT:        "DO_STMT",
	EXPR_STMT:      "EXPR_STMT",
	FOR_STMT:       "FOR_STMT",
	FUNC_STMT:      "FUNC_STMT",
	GOTO_STMT:      "GOTO_STMT",
	IF_STMT:        "IF_STMT",
	IMPORT_STMT:    "IMPORT_STMT",
	IN_STMT:        "IN_STMT",
	LABEL_STMT:     "LABEL_STMT",
	LET_STMT:       "LET_STMT",
	NAMESPACE_STMT: "NAMESPACE_STMT",
	WHILE_STMT:     "WHILE_STMT",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "NodeType(?)"
	}
	return nodeTypeNames[t]
}
