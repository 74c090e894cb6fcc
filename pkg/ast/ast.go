package ast

type NodeType string

const (
	NodeValue         NodeType = "Value"
	NodeVariable      NodeType = "Variable"
	NodeArrayIndex    NodeType = "ArrayIndex"
	NodeFunctionCall  NodeType = "FunctionCall"
	NodeNegative      NodeType = "Negative"
	NodeOperate       NodeType = "Operate"
	NodeNot           NodeType = "Not"
	NodeDeclare       NodeType = "Declare"
	NodeDeclareArray  NodeType = "DeclareArray"
	NodeAssign        NodeType = "Assign"
	NodeAssignIndex   NodeType = "AssignIndex"
	NodeOutput        NodeType = "Output"
	NodeInput         NodeType = "Input"
	NodeIf            NodeType = "If"
	NodeProcedureCall NodeType = "ProcedureCall"
	NodeReturn        NodeType = "Return"
	NodeFor           NodeType = "For"
	NodeWhile         NodeType = "While"
	NodeRepeat        NodeType = "Repeat"
)

type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type  NodeType `yaml:"type"`
	Range Span     `yaml:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n *nodeImpl) NodeType() NodeType { return n.Type }
func (n *nodeImpl) Span() Span         { return n.Range }
func (n *nodeImpl) setSpan(span Span)  { n.Range = span }
func (*nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type Statement interface {
	Node
	statementNode()
}

// Expressions

type Value struct {
	nodeImpl `yaml:",inline"`

	Literal Literal `yaml:"literal"`
}

func NewValue(lit Literal) *Value {
	return &Value{nodeImpl: newNodeImpl(NodeValue), Literal: lit}
}

type Variable struct {
	nodeImpl `yaml:",inline"`

	Name string `yaml:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

type ArrayIndex struct {
	nodeImpl `yaml:",inline"`

	Name  string     `yaml:"name"`
	Index Expression `yaml:"index"`
}

func NewArrayIndex(name string, index Expression) *ArrayIndex {
	return &ArrayIndex{nodeImpl: newNodeImpl(NodeArrayIndex), Name: name, Index: index}
}

// FunctionCall covers both user identifiers and built-in names.
type FunctionCall struct {
	nodeImpl `yaml:",inline"`

	Name      string       `yaml:"name"`
	Arguments []Expression `yaml:"arguments"`
}

func NewFunctionCall(name string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Arguments: args}
}

type Negative struct {
	nodeImpl `yaml:",inline"`

	Operand Expression `yaml:"operand"`
}

func NewNegative(operand Expression) *Negative {
	return &Negative{nodeImpl: newNodeImpl(NodeNegative), Operand: operand}
}

type Operate struct {
	nodeImpl `yaml:",inline"`

	Operator Op         `yaml:"operator"`
	Left     Expression `yaml:"left"`
	Right    Expression `yaml:"right"`
}

func NewOperate(op Op, left, right Expression) *Operate {
	return &Operate{nodeImpl: newNodeImpl(NodeOperate), Operator: op, Left: left, Right: right}
}

type Not struct {
	nodeImpl `yaml:",inline"`

	Operand Expression `yaml:"operand"`
}

func NewNot(operand Expression) *Not {
	return &Not{nodeImpl: newNodeImpl(NodeNot), Operand: operand}
}

func (*Value) expressionNode()        {}
func (*Variable) expressionNode()     {}
func (*ArrayIndex) expressionNode()   {}
func (*FunctionCall) expressionNode() {}
func (*Negative) expressionNode()     {}
func (*Operate) expressionNode()      {}
func (*Not) expressionNode()          {}

// Statements

type Declare struct {
	nodeImpl `yaml:",inline"`

	Name     string      `yaml:"name"`
	DataType LiteralType `yaml:"dataType"`
}

func NewDeclare(name string, typ LiteralType) *Declare {
	return &Declare{nodeImpl: newNodeImpl(NodeDeclare), Name: name, DataType: typ}
}

type DeclareArray struct {
	nodeImpl `yaml:",inline"`

	Name        string      `yaml:"name"`
	ElementType LiteralType `yaml:"elementType"`
	Bounds      Bounds      `yaml:"bounds"`
}

func NewDeclareArray(name string, elem LiteralType, bounds Bounds) *DeclareArray {
	return &DeclareArray{nodeImpl: newNodeImpl(NodeDeclareArray), Name: name, ElementType: elem, Bounds: bounds}
}

type Assign struct {
	nodeImpl `yaml:",inline"`

	Name  string     `yaml:"name"`
	Value Expression `yaml:"value"`
}

func NewAssign(name string, value Expression) *Assign {
	return &Assign{nodeImpl: newNodeImpl(NodeAssign), Name: name, Value: value}
}

type AssignIndex struct {
	nodeImpl `yaml:",inline"`

	Name  string     `yaml:"name"`
	Index Expression `yaml:"index"`
	Value Expression `yaml:"value"`
}

func NewAssignIndex(name string, index, value Expression) *AssignIndex {
	return &AssignIndex{nodeImpl: newNodeImpl(NodeAssignIndex), Name: name, Index: index, Value: value}
}

type Output struct {
	nodeImpl `yaml:",inline"`

	Values []Expression `yaml:"values"`
}

func NewOutput(values []Expression) *Output {
	return &Output{nodeImpl: newNodeImpl(NodeOutput), Values: values}
}

type Input struct {
	nodeImpl `yaml:",inline"`

	Name string `yaml:"name"`
}

func NewInput(name string) *Input {
	return &Input{nodeImpl: newNodeImpl(NodeInput), Name: name}
}

type If struct {
	nodeImpl `yaml:",inline"`

	Condition Expression  `yaml:"condition"`
	Then      []Statement `yaml:"then"`
	Else      []Statement `yaml:"else,omitempty"`
}

func NewIf(cond Expression, then, otherwise []Statement) *If {
	return &If{nodeImpl: newNodeImpl(NodeIf), Condition: cond, Then: then, Else: otherwise}
}

type ProcedureCall struct {
	nodeImpl `yaml:",inline"`

	Name      string       `yaml:"name"`
	Arguments []Expression `yaml:"arguments"`
}

func NewProcedureCall(name string, args []Expression) *ProcedureCall {
	return &ProcedureCall{nodeImpl: newNodeImpl(NodeProcedureCall), Name: name, Arguments: args}
}

type Return struct {
	nodeImpl `yaml:",inline"`

	Argument Expression `yaml:"argument,omitempty"`
}

func NewReturn(argument Expression) *Return {
	return &Return{nodeImpl: newNodeImpl(NodeReturn), Argument: argument}
}

type For struct {
	nodeImpl `yaml:",inline"`

	Name  string      `yaml:"name"`
	Start Expression  `yaml:"start"`
	End   Expression  `yaml:"end"`
	Body  []Statement `yaml:"body"`
}

func NewFor(name string, start, end Expression, body []Statement) *For {
	return &For{nodeImpl: newNodeImpl(NodeFor), Name: name, Start: start, End: end, Body: body}
}

type While struct {
	nodeImpl `yaml:",inline"`

	Condition Expression  `yaml:"condition"`
	Body      []Statement `yaml:"body"`
}

func NewWhile(cond Expression, body []Statement) *While {
	return &While{nodeImpl: newNodeImpl(NodeWhile), Condition: cond, Body: body}
}

type Repeat struct {
	nodeImpl `yaml:",inline"`

	Body  []Statement `yaml:"body"`
	Until Expression  `yaml:"until"`
}

func NewRepeat(body []Statement, until Expression) *Repeat {
	return &Repeat{nodeImpl: newNodeImpl(NodeRepeat), Body: body, Until: until}
}

func (*Declare) statementNode()       {}
func (*DeclareArray) statementNode()  {}
func (*Assign) statementNode()        {}
func (*AssignIndex) statementNode()   {}
func (*Output) statementNode()        {}
func (*Input) statementNode()         {}
func (*If) statementNode()            {}
func (*ProcedureCall) statementNode() {}
func (*Return) statementNode()        {}
func (*For) statementNode()           {}
func (*While) statementNode()         {}
func (*Repeat) statementNode()        {}
