package eval

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/require"
)

// arith builds a random integer expression from + - *, parentheses and unary
// minus. Leaves are small enough that no intermediate result overflows.
func arith(r *rand.Rand, depth int) string {
	if depth == 0 || r.IntN(4) == 0 {
		return strconv.Itoa(r.IntN(10))
	}

	switch r.IntN(6) {
	case 0:
		return "(" + arith(r, depth-1) + ")"

	case 1:
		return "-(" + arith(r, depth-1) + ")"

	default:
		op := [...]string{" + ", " - ", " * "}[r.IntN(3)]

		return arith(r, depth-1) + op + arith(r, depth-1)
	}
}

func TestArithmeticMatchesExpr(t *testing.T) {
	r := rand.New(rand.NewPCG(0x6d61726d, 0x6f736574))

	for range 500 {
		src := arith(r, 4)

		t.Run(src, func(t *testing.T) {
			program, err := expr.Compile(src)
			require.NoError(t, err)

			want, err := expr.Run(program, nil)
			require.NoError(t, err)

			wantInt, ok := want.(int)
			require.True(t, ok, "oracle returned %T", want)

			integer(t, int64(wantInt), mustRun(t, src))
		})
	}
}
