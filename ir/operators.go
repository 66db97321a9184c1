package ir

import "fmt"

// BinaryOperator enumerates every BinaryOp token (§3.1).
type BinaryOperator int

const (
	OpAnd BinaryOperator = iota
	OpOr
	OpEqual
	OpUnequal
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpIn
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpContains
	OpStartsWith
	OpEndsWith
	OpLike
	OpAppend
	OpPrepend
)

var binaryOperatorNames = map[BinaryOperator]string{
	OpAnd: "AND", OpOr: "OR", OpEqual: "EQUAL", OpUnequal: "UNEQUAL",
	OpLessThan: "LESS_THAN", OpLessThanOrEqual: "LESS_THAN_OR_EQUAL",
	OpGreaterThan: "GREATER_THAN", OpGreaterThanOrEqual: "GREATER_THAN_OR_EQUAL",
	OpIn: "IN", OpAdd: "ADD", OpSubtract: "SUBTRACT", OpMultiply: "MULTIPLY",
	OpDivide: "DIVIDE", OpModulo: "MODULO", OpContains: "CONTAINS",
	OpStartsWith: "STARTS_WITH", OpEndsWith: "ENDS_WITH", OpLike: "LIKE",
	OpAppend: "APPEND", OpPrepend: "PREPEND",
}

func (op BinaryOperator) String() string {
	if s, ok := binaryOperatorNames[op]; ok {
		return s
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// Valid reports whether op is one of the operators §3.1 enumerates.
func (op BinaryOperator) Valid() bool {
	_, ok := binaryOperatorNames[op]
	return ok
}

// UnaryOperator enumerates NOT and JSON_STRINGIFY.
type UnaryOperator int

const (
	OpNot UnaryOperator = iota
	OpJSONStringify
)

var unaryOperatorNames = map[UnaryOperator]string{
	OpNot: "NOT", OpJSONStringify: "JSON_STRINGIFY",
}

func (op UnaryOperator) String() string {
	if s, ok := unaryOperatorNames[op]; ok {
		return s
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

func (op UnaryOperator) Valid() bool {
	_, ok := unaryOperatorNames[op]
	return ok
}

// LanguageOperator enumerates the full-text search predicates that carry an
// optional analyzer language.
type LanguageOperator int

const (
	OpQuickSearchStartsWith LanguageOperator = iota
	OpQuickSearchContainsAnyWord
	OpQuickSearchContainsPrefix
	OpQuickSearchContainsPhrase
)

var languageOperatorNames = map[LanguageOperator]string{
	OpQuickSearchStartsWith:     "QUICKSEARCH_STARTS_WITH",
	OpQuickSearchContainsAnyWord: "QUICKSEARCH_CONTAINS_ANY_WORD",
	OpQuickSearchContainsPrefix: "QUICKSEARCH_CONTAINS_PREFIX",
	OpQuickSearchContainsPhrase: "QUICKSEARCH_CONTAINS_PHRASE",
}

func (op LanguageOperator) String() string {
	if s, ok := languageOperatorNames[op]; ok {
		return s
	}
	return fmt.Sprintf("LanguageOperator(%d)", int(op))
}

func (op LanguageOperator) Valid() bool {
	_, ok := languageOperatorNames[op]
	return ok
}

type BinaryOp struct {
	Op  BinaryOperator
	LHS Node
	RHS Node
}

func (*BinaryOp) isNode() {}

func NewBinaryOp(op BinaryOperator, lhs, rhs Node) (*BinaryOp, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("ir: unknown binary operator %d", int(op))
	}
	if lhs == nil || rhs == nil {
		return nil, fmt.Errorf("ir: BinaryOp %s requires both operands", op)
	}
	return &BinaryOp{Op: op, LHS: lhs, RHS: rhs}, nil
}

type UnaryOp struct {
	Op    UnaryOperator
	Value Node
}

func (*UnaryOp) isNode() {}

func NewUnaryOp(op UnaryOperator, value Node) (*UnaryOp, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("ir: unknown unary operator %d", int(op))
	}
	if value == nil {
		return nil, fmt.Errorf("ir: UnaryOp %s requires an operand", op)
	}
	return &UnaryOp{Op: op, Value: value}, nil
}

type Conditional struct {
	Cond Node
	Then Node
	Else Node
}

func (*Conditional) isNode() {}

func NewConditional(cond, then, els Node) (*Conditional, error) {
	if cond == nil || then == nil || els == nil {
		return nil, fmt.Errorf("ir: Conditional requires cond, then and else nodes")
	}
	return &Conditional{Cond: cond, Then: then, Else: els}, nil
}

type TypeCheck struct {
	Value     Node
	BasicType BasicType
}

func (*TypeCheck) isNode() {}

func NewTypeCheck(value Node, basicType BasicType) (*TypeCheck, error) {
	if value == nil {
		return nil, fmt.Errorf("ir: TypeCheck requires a value node")
	}
	return &TypeCheck{Value: value, BasicType: basicType}, nil
}

// OperatorWithLanguage is a language-aware search predicate; Language is
// the ISO tag to analyze with ("" selects the identity analyzer, valid only
// for QUICKSEARCH_STARTS_WITH per §4.D).
type OperatorWithLanguage struct {
	Op       LanguageOperator
	LHS      Node
	RHS      Node
	Language string
}

func (*OperatorWithLanguage) isNode() {}

func NewOperatorWithLanguage(op LanguageOperator, lhs, rhs Node, language string) (*OperatorWithLanguage, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("ir: unknown language operator %d", int(op))
	}
	if lhs == nil || rhs == nil {
		return nil, fmt.Errorf("ir: OperatorWithLanguage %s requires both operands", op)
	}
	return &OperatorWithLanguage{Op: op, LHS: lhs, RHS: rhs, Language: language}, nil
}
