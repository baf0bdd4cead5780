package eval

import (
	"github.com/ardnew/marmoset/object"
	"github.com/ardnew/marmoset/token"
)

func prefixOperator(op token.Kind, right object.Object) (object.Object, error) {
	switch op {
	case token.Bang:
		return object.Bool(!object.IsTruthy(right)), nil

	case token.Minus:
		// Negating anything but an integer yields null rather than an error.
		if i, ok := right.(*object.Integer); ok {
			return &object.Integer{Value: -i.Value}, nil
		}

		return object.Nil, nil

	default:
		e := newError(InvalidPrefix, "%s is an invalid prefix", op)
		e.Operands = []object.Object{right}

		return nil, e
	}
}

func infixOperator(op token.Kind, l, r object.Object) (object.Object, error) {
	switch op {
	case token.Plus, token.Minus, token.Asterisk, token.Slash:
		return arithmetic(op, l, r)

	case token.Equal, token.NotEqual:
		eq, ok := equal(l, r)
		if !ok {
			return nil, invalidOperator(l, op, r)
		}

		return object.Bool(eq == (op == token.Equal)), nil

	case token.LessThan, token.LessEqual, token.GreaterThan, token.GreaterEqual:
		return compare(op, l, r)

	default:
		return nil, invalidOperator(l, op, r)
	}
}

// arithmetic applies + - * / to two integers, or + to two strings.
// Integer overflow wraps.
func arithmetic(op token.Kind, l, r object.Object) (object.Object, error) {
	li, lok := l.(*object.Integer)
	ri, rok := r.(*object.Integer)

	switch {
	case lok && rok:
		var v int64

		switch op {
		case token.Plus:
			v = li.Value + ri.Value
		case token.Minus:
			v = li.Value - ri.Value
		case token.Asterisk:
			v = li.Value * ri.Value
		case token.Slash:
			if ri.Value == 0 {
				return nil, invalidOperator(l, op, r)
			}

			v = li.Value / ri.Value
		}

		return &object.Integer{Value: v}, nil

	case lok:
		return nil, typeMismatch(l, r)
	}

	if op == token.Plus {
		ls, lok := l.(*object.String)
		rs, rok := r.(*object.String)

		if lok && rok {
			return &object.String{Value: ls.Value + rs.Value}, nil
		}
	}

	return nil, invalidOperator(l, op, r)
}

// equal compares two values of the same comparable variant. ok is false
// when the variants differ or are not comparable.
func equal(l, r object.Object) (eq, ok bool) {
	switch l := l.(type) {
	case *object.Null:
		_, ok = r.(*object.Null)

		return ok, ok

	case *object.Boolean:
		if r, ok := r.(*object.Boolean); ok {
			return l.Value == r.Value, true
		}

	case *object.Integer:
		if r, ok := r.(*object.Integer); ok {
			return l.Value == r.Value, true
		}

	case *object.String:
		if r, ok := r.(*object.String); ok {
			return l.Value == r.Value, true
		}
	}

	return false, false
}

func compare(op token.Kind, l, r object.Object) (object.Object, error) {
	li, lok := l.(*object.Integer)
	ri, rok := r.(*object.Integer)

	if !lok || !rok {
		return nil, invalidOperator(l, op, r)
	}

	switch op {
	case token.LessThan:
		return object.Bool(li.Value < ri.Value), nil
	case token.LessEqual:
		return object.Bool(li.Value <= ri.Value), nil
	case token.GreaterThan:
		return object.Bool(li.Value > ri.Value), nil
	default:
		return object.Bool(li.Value >= ri.Value), nil
	}
}

func indexOperator(left, index object.Object) (object.Object, error) {
	switch left := left.(type) {
	case *object.Array:
		i, ok := index.(*object.Integer)
		if !ok {
			return nil, invalidObjectType(object.IntegerType, index)
		}

		if i.Value < 0 || i.Value >= int64(len(left.Elements)) {
			return nil, outOfBounds(i.Value, len(left.Elements))
		}

		return left.Elements[i.Value], nil

	case *object.Hash:
		k, ok := object.KeyOf(index)
		if !ok {
			return nil, invalidHashKey(index)
		}

		if v, ok := left.Lookup(k); ok {
			return v, nil
		}

		// A missing key yields null rather than an error.
		return object.Nil, nil

	default:
		return nil, indexNotSupported(left)
	}
}
