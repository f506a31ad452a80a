package ast

type NodeType string

const (
	NodeProgram         NodeType = "Program"
	NodeBody            NodeType = "Body"
	NodeDeclaration     NodeType = "Declaration"
	NodeAssignment      NodeType = "Assignment"
	NodeIf              NodeType = "If"
	NodeFor             NodeType = "For"
	NodeWhile           NodeType = "While"
	NodePrint           NodeType = "Print"
	NodeReturn          NodeType = "Return"
	NodeBreak           NodeType = "Break"
	NodeContinue        NodeType = "Continue"
	NodeExpression      NodeType = "Expression"
	NodeUnary           NodeType = "Unary"
	NodePrimary         NodeType = "Primary"
	NodeTail            NodeType = "Tail"
	NodeIntegerLiteral  NodeType = "IntegerLiteral"
	NodeRealLiteral     NodeType = "RealLiteral"
	NodeBooleanLiteral  NodeType = "BooleanLiteral"
	NodeStringLiteral   NodeType = "StringLiteral"
	NodeEmptyLiteral    NodeType = "EmptyLiteral"
	NodeArrayLiteral    NodeType = "ArrayLiteral"
	NodeTupleLiteral    NodeType = "TupleLiteral"
	NodeTupleElement    NodeType = "TupleElement"
	NodeFunctionLiteral NodeType = "FunctionLiteral"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	Location Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n *nodeImpl) NodeType() NodeType { return n.Type }
func (n *nodeImpl) Span() Span         { return n.Location }
func (n *nodeImpl) setSpan(span Span)  { n.Location = span }
func (*nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Node
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Program and bodies

type Program struct {
	nodeImpl

	Body *Body `json:"body"`
}

func NewProgram(body *Body) *Program {
	if body == nil {
		body = NewBody(nil)
	}
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Body is an ordered statement list. It is also a statement in its own right
// when the optimizer inlines a taken branch, so the branch keeps its scope.
type Body struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBody(statements []Statement) *Body {
	return &Body{nodeImpl: newNodeImpl(NodeBody), Statements: statements}
}

// Statements

type Declaration struct {
	nodeImpl
	statementMarker

	Name        string      `json:"name"`
	Initializer *Expression `json:"initializer,omitempty"`
}

func NewDeclaration(name string, initializer *Expression) *Declaration {
	return &Declaration{nodeImpl: newNodeImpl(NodeDeclaration), Name: name, Initializer: initializer}
}

type AssignmentOperator string

const (
	AssignNone     AssignmentOperator = ""
	AssignSet      AssignmentOperator = ":="
	AssignAdd      AssignmentOperator = "+="
	AssignSubtract AssignmentOperator = "-="
)

// Assignment with AssignNone and no value is a bare primary statement,
// typically a call evaluated for its side effects.
type Assignment struct {
	nodeImpl
	statementMarker

	Target   *Primary           `json:"target"`
	Operator AssignmentOperator `json:"operator,omitempty"`
	Value    *Expression        `json:"value,omitempty"`
}

func NewAssignment(target *Primary, operator AssignmentOperator, value *Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Target: target, Operator: operator, Value: value}
}

type If struct {
	nodeImpl
	statementMarker

	Condition *Expression `json:"condition"`
	Then      *Body       `json:"then"`
	Else      *Body       `json:"else,omitempty"`
}

func NewIf(condition *Expression, then *Body, elseBody *Body) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: condition, Then: then, Else: elseBody}
}

type For struct {
	nodeImpl
	statementMarker

	Variable string      `json:"variable"`
	Low      *Expression `json:"low"`
	High     *Expression `json:"high"`
	Body     *Body       `json:"body"`
}

func NewFor(variable string, low, high *Expression, body *Body) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Variable: variable, Low: low, High: high, Body: body}
}

type While struct {
	nodeImpl
	statementMarker

	Condition *Expression `json:"condition"`
	Body      *Body       `json:"body"`
}

func NewWhile(condition *Expression, body *Body) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: condition, Body: body}
}

type Print struct {
	nodeImpl
	statementMarker

	Arguments []*Expression `json:"arguments"`
}

func NewPrint(arguments []*Expression) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Arguments: arguments}
}

type Return struct {
	nodeImpl
	statementMarker

	Value *Expression `json:"value,omitempty"`
}

func NewReturn(value *Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Value: value}
}

type Break struct {
	nodeImpl
	statementMarker
}

func NewBreak() *Break {
	return &Break{nodeImpl: newNodeImpl(NodeBreak)}
}

type Continue struct {
	nodeImpl
	statementMarker
}

func NewContinue() *Continue {
	return &Continue{nodeImpl: newNodeImpl(NodeContinue)}
}

// Expressions

type BinaryOperator string

const (
	OpMultiply     BinaryOperator = "*"
	OpDivide       BinaryOperator = "/"
	OpAdd          BinaryOperator = "+"
	OpSubtract     BinaryOperator = "-"
	OpLess         BinaryOperator = "<"
	OpLessEqual    BinaryOperator = "<="
	OpGreater      BinaryOperator = ">"
	OpGreaterEqual BinaryOperator = ">="
	OpEqual        BinaryOperator = "="
	OpNotEqual     BinaryOperator = "/="
	OpAnd          BinaryOperator = "and"
	OpOr           BinaryOperator = "or"
	OpXor          BinaryOperator = "xor"
)

// Expression is a flat operand/operator sequence; len(Operators) is always
// len(Operands)-1. Precedence is resolved at evaluation time.
type Expression struct {
	nodeImpl

	Operands  []*Unary         `json:"operands"`
	Operators []BinaryOperator `json:"operators,omitempty"`
}

func NewExpression(operands []*Unary, operators []BinaryOperator) *Expression {
	return &Expression{nodeImpl: newNodeImpl(NodeExpression), Operands: operands, Operators: operators}
}

type UnaryOperator string

const (
	UnaryNone  UnaryOperator = ""
	UnaryPlus  UnaryOperator = "+"
	UnaryMinus UnaryOperator = "-"
	UnaryNot   UnaryOperator = "not"
)

type TypeIndicator string

const (
	TypeInt    TypeIndicator = "int"
	TypeReal   TypeIndicator = "real"
	TypeBool   TypeIndicator = "bool"
	TypeString TypeIndicator = "string"
	TypeEmpty  TypeIndicator = "empty"
	TypeArray  TypeIndicator = "[]"
	TypeTuple  TypeIndicator = "{}"
	TypeFunc   TypeIndicator = "func"
)

// Unary applies an optional prefix operator to a primary. When TypeTest is
// set the primary is type-tested first and the operator applies to the
// resulting boolean.
type Unary struct {
	nodeImpl

	Operator UnaryOperator `json:"operator,omitempty"`
	Primary  *Primary      `json:"primary"`
	TypeTest TypeIndicator `json:"typeTest,omitempty"`
}

func NewUnary(operator UnaryOperator, primary *Primary, typeTest TypeIndicator) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Primary: primary, TypeTest: typeTest}
}

type PrimaryKind string

const (
	PrimaryReadInt       PrimaryKind = "readInt"
	PrimaryReadReal      PrimaryKind = "readReal"
	PrimaryReadString    PrimaryKind = "readString"
	PrimaryVariable      PrimaryKind = "variable"
	PrimaryLiteral       PrimaryKind = "literal"
	PrimaryParenthesized PrimaryKind = "parenthesized"
)

type Primary struct {
	nodeImpl

	Kind    PrimaryKind `json:"kind"`
	Name    string      `json:"name,omitempty"`
	Tails   []*Tail     `json:"tails,omitempty"`
	Literal Literal     `json:"literal,omitempty"`
	Inner   *Expression `json:"inner,omitempty"`
}

func NewVariablePrimary(name string, tails []*Tail) *Primary {
	return &Primary{nodeImpl: newNodeImpl(NodePrimary), Kind: PrimaryVariable, Name: name, Tails: tails}
}

func NewLiteralPrimary(literal Literal) *Primary {
	return &Primary{nodeImpl: newNodeImpl(NodePrimary), Kind: PrimaryLiteral, Literal: literal}
}

func NewParenthesizedPrimary(inner *Expression) *Primary {
	return &Primary{nodeImpl: newNodeImpl(NodePrimary), Kind: PrimaryParenthesized, Inner: inner}
}

func NewReadPrimary(kind PrimaryKind) *Primary {
	return &Primary{nodeImpl: newNodeImpl(NodePrimary), Kind: kind}
}

type TailKind string

const (
	TailTupleIndex TailKind = "tupleIndex"
	TailTupleName  TailKind = "tupleName"
	TailSubscript  TailKind = "subscript"
	TailCall       TailKind = "call"
)

type Tail struct {
	nodeImpl

	Kind      TailKind      `json:"kind"`
	Index     int64         `json:"index,omitempty"`
	Name      string        `json:"name,omitempty"`
	Subscript *Expression   `json:"subscript,omitempty"`
	Arguments []*Expression `json:"arguments,omitempty"`
}

func NewTupleIndexTail(index int64) *Tail {
	return &Tail{nodeImpl: newNodeImpl(NodeTail), Kind: TailTupleIndex, Index: index}
}

func NewTupleNameTail(name string) *Tail {
	return &Tail{nodeImpl: newNodeImpl(NodeTail), Kind: TailTupleName, Name: name}
}

func NewSubscriptTail(subscript *Expression) *Tail {
	return &Tail{nodeImpl: newNodeImpl(NodeTail), Kind: TailSubscript, Subscript: subscript}
}

func NewCallTail(arguments []*Expression) *Tail {
	return &Tail{nodeImpl: newNodeImpl(NodeTail), Kind: TailCall, Arguments: arguments}
}

// Literals

type IntegerLiteral struct {
	nodeImpl
	literalMarker

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type RealLiteral struct {
	nodeImpl
	literalMarker

	Value float64 `json:"value"`
}

func NewRealLiteral(value float64) *RealLiteral {
	return &RealLiteral{nodeImpl: newNodeImpl(NodeRealLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// StringLiteral keeps escape sequences verbatim; they are expanded on output.
type StringLiteral struct {
	nodeImpl
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type EmptyLiteral struct {
	nodeImpl
	literalMarker
}

func NewEmptyLiteral() *EmptyLiteral {
	return &EmptyLiteral{nodeImpl: newNodeImpl(NodeEmptyLiteral)}
}

type ArrayLiteral struct {
	nodeImpl
	literalMarker

	Elements []*Expression `json:"elements"`
}

func NewArrayLiteral(elements []*Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

type TupleElement struct {
	nodeImpl

	Name  string      `json:"name,omitempty"`
	Value *Expression `json:"value"`
}

func NewTupleElement(name string, value *Expression) *TupleElement {
	return &TupleElement{nodeImpl: newNodeImpl(NodeTupleElement), Name: name, Value: value}
}

type TupleLiteral struct {
	nodeImpl
	literalMarker

	Elements []*TupleElement `json:"elements"`
}

func NewTupleLiteral(elements []*TupleElement) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTupleLiteral), Elements: elements}
}

// FunctionLiteral has either a statement Body or an expression body
// (`func (x) => x + 1`), never both.
type FunctionLiteral struct {
	nodeImpl
	literalMarker

	Params   []string    `json:"params"`
	Body     *Body       `json:"body,omitempty"`
	ExprBody *Expression `json:"exprBody,omitempty"`
}

func NewFunctionLiteral(params []string, body *Body, exprBody *Expression) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Params: params, Body: body, ExprBody: exprBody}
}

// IsLambda reports whether the function body is a single expression.
func (f *FunctionLiteral) IsLambda() bool {
	return f.Body == nil && f.ExprBody != nil
}
