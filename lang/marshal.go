package lang

import (
	"github.com/ardnew/marmoset/ast"
)

// ToNative converts a syntax tree to plain maps, slices and scalars
// suitable for JSON or YAML encoding.
//
// Blocks become lists of statements. Literals become native values.
// Every other node becomes a map with one key naming the node kind.
func ToNative(node ast.Node) any {
	switch n := node.(type) {
	case *ast.BlockStatement:
		return nativeList(n.Statements)

	case *ast.LetStatement:
		return map[string]any{"let": n.Name.Name, "value": ToNative(n.Value)}

	case *ast.ReturnStatement:
		return map[string]any{"return": ToNative(n.Value)}

	case *ast.ExpressionStatement:
		return ToNative(n.Expression)

	case *ast.Identifier:
		return map[string]any{"ident": n.Name}

	case *ast.IntegerLiteral:
		return n.Value

	case *ast.StringLiteral:
		return n.Value

	case *ast.BooleanLiteral:
		return n.Value

	case *ast.PrefixExpression:
		return map[string]any{
			"prefix": n.Operator.String(),
			"right":  ToNative(n.Right),
		}

	case *ast.InfixExpression:
		return map[string]any{
			"infix": n.Operator.String(),
			"left":  ToNative(n.Left),
			"right": ToNative(n.Right),
		}

	case *ast.IfExpression:
		m := map[string]any{
			"if":   ToNative(n.Condition),
			"then": ToNative(n.Consequence),
		}

		if n.Alternative != nil {
			m["else"] = ToNative(n.Alternative)
		}

		return m

	case *ast.FunctionLiteral:
		return map[string]any{
			"fn":   n.ParameterNames(),
			"body": ToNative(n.Body),
		}

	case *ast.CallExpression:
		return map[string]any{
			"call": ToNative(n.Function),
			"args": nativeList(n.Arguments),
		}

	case *ast.ArrayLiteral:
		return map[string]any{"array": nativeList(n.Elements)}

	case *ast.HashLiteral:
		pairs := make([]any, len(n.Pairs))
		for i, p := range n.Pairs {
			pairs[i] = map[string]any{
				"key":   ToNative(p.Key),
				"value": ToNative(p.Value),
			}
		}

		return map[string]any{"hash": pairs}

	case *ast.IndexExpression:
		return map[string]any{
			"index": ToNative(n.Index),
			"left":  ToNative(n.Left),
		}

	default:
		return nil
	}
}

func nativeList[T ast.Node](nodes []T) []any {
	list := make([]any, len(nodes))
	for i, n := range nodes {
		list[i] = ToNative(n)
	}

	return list
}
