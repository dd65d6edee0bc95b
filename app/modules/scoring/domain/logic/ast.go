// Package logic parses and evaluates the JSON expression language used by
// declarative rule options. Expressions come in as strings (legacy data uses
// single quotes), are parsed once into a typed tree, and evaluated against a
// caller-supplied environment that supplies the domain operators.
package logic

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Node is one node of a parsed expression tree. A node is an operator
// application (Op set, Args evaluated as its arguments), an array (IsArray),
// or a scalar literal (Lit).
type Node struct {
	Op      string
	Args    []*Node
	IsArray bool
	Lit     any
}

// Literal reports whether the node is a scalar literal.
func (n *Node) Literal() bool {
	return n.Op == "" && !n.IsArray
}

// StringLit returns the node's literal string value, "" and false when the
// node is not a string literal.
func (n *Node) StringLit() (string, bool) {
	if !n.Literal() {
		return "", false
	}
	s, ok := n.Lit.(string)
	return s, ok
}

// Parse parses an expression string. Both single- and double-quoted JSON are
// accepted; single quotes are normalized before decoding.
func Parse(expression string) (*Node, error) {
	jsonStr := strings.ReplaceAll(expression, "'", `"`)
	var raw any
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("logic: parse %q: %w", expression, err)
	}
	return build(raw)
}

func build(v any) (*Node, error) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) != 1 {
			return nil, fmt.Errorf("logic: operator object must have exactly one key, got %d", len(t))
		}
		for op, argv := range t {
			n := &Node{Op: op}
			if list, ok := argv.([]any); ok {
				for _, a := range list {
					arg, err := build(a)
					if err != nil {
						return nil, err
					}
					n.Args = append(n.Args, arg)
				}
			} else {
				arg, err := build(argv)
				if err != nil {
					return nil, err
				}
				n.Args = append(n.Args, arg)
			}
			return n, nil
		}
		return nil, nil
	case []any:
		n := &Node{IsArray: true}
		for _, a := range t {
			el, err := build(a)
			if err != nil {
				return nil, err
			}
			n.Args = append(n.Args, el)
		}
		return n, nil
	default:
		return &Node{Lit: v}, nil
	}
}

var compileCache sync.Map // string -> *Node

// Compile parses an expression with a process-wide cache keyed by the raw
// string. Parsed trees are immutable, so sharing is safe.
func Compile(expression string) (*Node, error) {
	if cached, ok := compileCache.Load(expression); ok {
		return cached.(*Node), nil
	}
	n, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	compileCache.Store(expression, n)
	return n, nil
}

// Operators returns every operator name referenced anywhere in the tree, in
// first-encounter order, deduplicated.
func Operators(n *Node) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(*Node)
	walk = func(node *Node) {
		if node == nil {
			return
		}
		if node.Op != "" && !seen[node.Op] {
			seen[node.Op] = true
			out = append(out, node.Op)
		}
		for _, a := range node.Args {
			walk(a)
		}
	}
	walk(n)
	return out
}

// References reports whether the tree applies the given operator with the
// given string literal among its arguments. Used for cascade dependency
// detection on availability expressions, replacing substring heuristics.
func References(n *Node, op, literal string) bool {
	if n == nil {
		return false
	}
	if n.Op == op {
		for _, a := range n.Args {
			if s, ok := a.StringLit(); ok && s == literal {
				return true
			}
		}
	}
	for _, a := range n.Args {
		if References(a, op, literal) {
			return true
		}
	}
	return false
}
