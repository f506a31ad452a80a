package ast

import (
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
)

// Encode writes the program as indented JSON. Every node carries its "type"
// discriminator and span, so Decode can rebuild an identical tree.
func Encode(w io.Writer, program *Program) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(program)
}

// Decode reads a program previously written by Encode.
func Decode(r io.Reader) (*Program, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("ast: decode json: %w", err)
	}
	return decodeProgram(raw)
}

type decodeError struct {
	path    string
	message string
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("ast: %s: %s", e.path, e.message)
}

func decodeProgram(node map[string]any) (*Program, error) {
	if typ, _ := node["type"].(string); typ != string(NodeProgram) {
		return nil, &decodeError{path: "$", message: fmt.Sprintf("expected Program, got %q", typ)}
	}
	bodyRaw, ok := node["body"].(map[string]any)
	if !ok {
		return nil, &decodeError{path: "$.body", message: "missing body"}
	}
	body, err := decodeBody(bodyRaw, "$.body")
	if err != nil {
		return nil, err
	}
	program := NewProgram(body)
	program.Location = decodeSpan(node["span"])
	return program, nil
}

func decodeBody(node map[string]any, path string) (*Body, error) {
	if typ, _ := node["type"].(string); typ != string(NodeBody) {
		return nil, &decodeError{path: path, message: fmt.Sprintf("expected Body, got %q", typ)}
	}
	rawStatements, _ := node["statements"].([]any)
	statements := make([]Statement, 0, len(rawStatements))
	for idx, raw := range rawStatements {
		child, ok := raw.(map[string]any)
		if !ok {
			return nil, &decodeError{path: fmt.Sprintf("%s.statements[%d]", path, idx), message: fmt.Sprintf("invalid statement %T", raw)}
		}
		stmt, err := decodeStatement(child, fmt.Sprintf("%s.statements[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	body := NewBody(statements)
	body.Location = decodeSpan(node["span"])
	return body, nil
}

func decodeOptionalBody(raw any, path string) (*Body, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, nil
	}
	return decodeBody(node, path)
}

func decodeStatement(node map[string]any, path string) (Statement, error) {
	typ, _ := node["type"].(string)
	var stmt Statement
	switch NodeType(typ) {
	case NodeBody:
		return decodeBody(node, path)
	case NodeDeclaration:
		name, _ := node["name"].(string)
		init, err := decodeOptionalExpression(node["initializer"], path+".initializer")
		if err != nil {
			return nil, err
		}
		stmt = NewDeclaration(name, init)
	case NodeAssignment:
		targetRaw, ok := node["target"].(map[string]any)
		if !ok {
			return nil, &decodeError{path: path, message: "assignment missing target"}
		}
		target, err := decodePrimary(targetRaw, path+".target")
		if err != nil {
			return nil, err
		}
		op, _ := node["operator"].(string)
		value, err := decodeOptionalExpression(node["value"], path+".value")
		if err != nil {
			return nil, err
		}
		stmt = NewAssignment(target, AssignmentOperator(op), value)
	case NodeIf:
		cond, err := decodeRequiredExpression(node["condition"], path+".condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeOptionalBody(node["then"], path+".then")
		if err != nil {
			return nil, err
		}
		if then == nil {
			return nil, &decodeError{path: path, message: "if missing then body"}
		}
		elseBody, err := decodeOptionalBody(node["else"], path+".else")
		if err != nil {
			return nil, err
		}
		stmt = NewIf(cond, then, elseBody)
	case NodeFor:
		variable, _ := node["variable"].(string)
		low, err := decodeRequiredExpression(node["low"], path+".low")
		if err != nil {
			return nil, err
		}
		high, err := decodeRequiredExpression(node["high"], path+".high")
		if err != nil {
			return nil, err
		}
		body, err := decodeOptionalBody(node["body"], path+".body")
		if err != nil {
			return nil, err
		}
		if body == nil {
			return nil, &decodeError{path: path, message: "for missing body"}
		}
		stmt = NewFor(variable, low, high, body)
	case NodeWhile:
		cond, err := decodeRequiredExpression(node["condition"], path+".condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeOptionalBody(node["body"], path+".body")
		if err != nil {
			return nil, err
		}
		if body == nil {
			return nil, &decodeError{path: path, message: "while missing body"}
		}
		stmt = NewWhile(cond, body)
	case NodePrint:
		args, err := decodeExpressionList(node["arguments"], path+".arguments")
		if err != nil {
			return nil, err
		}
		stmt = NewPrint(args)
	case NodeReturn:
		value, err := decodeOptionalExpression(node["value"], path+".value")
		if err != nil {
			return nil, err
		}
		stmt = NewReturn(value)
	case NodeBreak:
		stmt = NewBreak()
	case NodeContinue:
		stmt = NewContinue()
	default:
		return nil, &decodeError{path: path, message: fmt.Sprintf("unsupported statement type %q", typ)}
	}
	SetSpan(stmt, decodeSpan(node["span"]))
	return stmt, nil
}

func decodeRequiredExpression(raw any, path string) (*Expression, error) {
	expr, err := decodeOptionalExpression(raw, path)
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, &decodeError{path: path, message: "missing expression"}
	}
	return expr, nil
}

func decodeOptionalExpression(raw any, path string) (*Expression, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, nil
	}
	if typ, _ := node["type"].(string); typ != string(NodeExpression) {
		return nil, &decodeError{path: path, message: fmt.Sprintf("expected Expression, got %q", typ)}
	}
	rawOperands, _ := node["operands"].([]any)
	operands := make([]*Unary, 0, len(rawOperands))
	for idx, rawOperand := range rawOperands {
		child, ok := rawOperand.(map[string]any)
		if !ok {
			return nil, &decodeError{path: fmt.Sprintf("%s.operands[%d]", path, idx), message: "invalid operand"}
		}
		unary, err := decodeUnary(child, fmt.Sprintf("%s.operands[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		operands = append(operands, unary)
	}
	rawOperators, _ := node["operators"].([]any)
	operators := make([]BinaryOperator, 0, len(rawOperators))
	for _, rawOp := range rawOperators {
		op, _ := rawOp.(string)
		operators = append(operators, BinaryOperator(op))
	}
	if len(operands) == 0 || len(operators) != len(operands)-1 {
		return nil, &decodeError{path: path, message: fmt.Sprintf("malformed expression: %d operands, %d operators", len(operands), len(operators))}
	}
	if len(operators) == 0 {
		operators = nil
	}
	expr := NewExpression(operands, operators)
	expr.Location = decodeSpan(node["span"])
	return expr, nil
}

func decodeExpressionList(raw any, path string) ([]*Expression, error) {
	items, _ := raw.([]any)
	out := make([]*Expression, 0, len(items))
	for idx, item := range items {
		expr, err := decodeRequiredExpression(item, fmt.Sprintf("%s[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeUnary(node map[string]any, path string) (*Unary, error) {
	primaryRaw, ok := node["primary"].(map[string]any)
	if !ok {
		return nil, &decodeError{path: path, message: "unary missing primary"}
	}
	primary, err := decodePrimary(primaryRaw, path+".primary")
	if err != nil {
		return nil, err
	}
	op, _ := node["operator"].(string)
	typeTest, _ := node["typeTest"].(string)
	unary := NewUnary(UnaryOperator(op), primary, TypeIndicator(typeTest))
	unary.Location = decodeSpan(node["span"])
	return unary, nil
}

func decodePrimary(node map[string]any, path string) (*Primary, error) {
	kind, _ := node["kind"].(string)
	var primary *Primary
	switch PrimaryKind(kind) {
	case PrimaryReadInt, PrimaryReadReal, PrimaryReadString:
		primary = NewReadPrimary(PrimaryKind(kind))
	case PrimaryVariable:
		name, _ := node["name"].(string)
		rawTails, _ := node["tails"].([]any)
		tails := make([]*Tail, 0, len(rawTails))
		for idx, rawTail := range rawTails {
			child, ok := rawTail.(map[string]any)
			if !ok {
				return nil, &decodeError{path: fmt.Sprintf("%s.tails[%d]", path, idx), message: "invalid tail"}
			}
			tail, err := decodeTail(child, fmt.Sprintf("%s.tails[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			tails = append(tails, tail)
		}
		if len(tails) == 0 {
			tails = nil
		}
		primary = NewVariablePrimary(name, tails)
	case PrimaryLiteral:
		litRaw, ok := node["literal"].(map[string]any)
		if !ok {
			return nil, &decodeError{path: path, message: "literal primary missing literal"}
		}
		lit, err := decodeLiteral(litRaw, path+".literal")
		if err != nil {
			return nil, err
		}
		primary = NewLiteralPrimary(lit)
	case PrimaryParenthesized:
		inner, err := decodeRequiredExpression(node["inner"], path+".inner")
		if err != nil {
			return nil, err
		}
		primary = NewParenthesizedPrimary(inner)
	default:
		return nil, &decodeError{path: path, message: fmt.Sprintf("unsupported primary kind %q", kind)}
	}
	primary.Location = decodeSpan(node["span"])
	return primary, nil
}

func decodeTail(node map[string]any, path string) (*Tail, error) {
	kind, _ := node["kind"].(string)
	var tail *Tail
	switch TailKind(kind) {
	case TailTupleIndex:
		idx, err := decodeInt(node["index"])
		if err != nil {
			return nil, &decodeError{path: path, message: err.Error()}
		}
		tail = NewTupleIndexTail(idx)
	case TailTupleName:
		name, _ := node["name"].(string)
		tail = NewTupleNameTail(name)
	case TailSubscript:
		sub, err := decodeRequiredExpression(node["subscript"], path+".subscript")
		if err != nil {
			return nil, err
		}
		tail = NewSubscriptTail(sub)
	case TailCall:
		args, err := decodeExpressionList(node["arguments"], path+".arguments")
		if err != nil {
			return nil, err
		}
		tail = NewCallTail(args)
	default:
		return nil, &decodeError{path: path, message: fmt.Sprintf("unsupported tail kind %q", kind)}
	}
	tail.Location = decodeSpan(node["span"])
	return tail, nil
}

func decodeLiteral(node map[string]any, path string) (Literal, error) {
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeIntegerLiteral, NodeRealLiteral, NodeBooleanLiteral, NodeStringLiteral:
		if node["value"] == nil {
			return nil, &decodeError{path: path + ".value", message: fmt.Sprintf("%s requires a value", typ)}
		}
	}
	var lit Literal
	switch NodeType(typ) {
	case NodeIntegerLiteral:
		val, err := decodeInt(node["value"])
		if err != nil {
			return nil, &decodeError{path: path, message: err.Error()}
		}
		lit = NewIntegerLiteral(val)
	case NodeRealLiteral:
		val, err := decodeFloat(node["value"])
		if err != nil {
			return nil, &decodeError{path: path, message: err.Error()}
		}
		lit = NewRealLiteral(val)
	case NodeBooleanLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, &decodeError{path: path + ".value", message: fmt.Sprintf("expected boolean, got %T", node["value"])}
		}
		lit = NewBooleanLiteral(val)
	case NodeStringLiteral:
		val, ok := node["value"].(string)
		if !ok {
			return nil, &decodeError{path: path + ".value", message: fmt.Sprintf("expected string, got %T", node["value"])}
		}
		lit = NewStringLiteral(val)
	case NodeEmptyLiteral:
		lit = NewEmptyLiteral()
	case NodeArrayLiteral:
		elements, err := decodeExpressionList(node["elements"], path+".elements")
		if err != nil {
			return nil, err
		}
		lit = NewArrayLiteral(elements)
	case NodeTupleLiteral:
		rawElements, _ := node["elements"].([]any)
		elements := make([]*TupleElement, 0, len(rawElements))
		for idx, raw := range rawElements {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, &decodeError{path: fmt.Sprintf("%s.elements[%d]", path, idx), message: "invalid tuple element"}
			}
			name, _ := child["name"].(string)
			value, err := decodeRequiredExpression(child["value"], fmt.Sprintf("%s.elements[%d].value", path, idx))
			if err != nil {
				return nil, err
			}
			element := NewTupleElement(name, value)
			element.Location = decodeSpan(child["span"])
			elements = append(elements, element)
		}
		lit = NewTupleLiteral(elements)
	case NodeFunctionLiteral:
		rawParams, _ := node["params"].([]any)
		params := make([]string, 0, len(rawParams))
		for _, raw := range rawParams {
			name, _ := raw.(string)
			params = append(params, name)
		}
		body, err := decodeOptionalBody(node["body"], path+".body")
		if err != nil {
			return nil, err
		}
		exprBody, err := decodeOptionalExpression(node["exprBody"], path+".exprBody")
		if err != nil {
			return nil, err
		}
		if (body == nil) == (exprBody == nil) {
			return nil, &decodeError{path: path, message: "function literal needs exactly one of body or exprBody"}
		}
		lit = NewFunctionLiteral(params, body, exprBody)
	default:
		return nil, &decodeError{path: path, message: fmt.Sprintf("unsupported literal type %q", typ)}
	}
	SetSpan(lit, decodeSpan(node["span"]))
	return lit, nil
}

func decodeSpan(raw any) Span {
	node, ok := raw.(map[string]any)
	if !ok {
		return Span{}
	}
	return Span{Start: decodePosition(node["start"]), End: decodePosition(node["end"])}
}

func decodePosition(raw any) Position {
	node, ok := raw.(map[string]any)
	if !ok {
		return Position{}
	}
	line, _ := decodeInt(node["line"])
	col, _ := decodeInt(node["column"])
	return Position{Line: int(line), Column: int(col)}
}

func decodeInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		return strconv.ParseInt(v.String(), 10, 64)
	case float64:
		return int64(v), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}

func decodeFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case json.Number:
		return strconv.ParseFloat(v.String(), 64)
	case float64:
		return v, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", raw)
	}
}
