package round

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/xtding233/cogtrain-backend/internal/game"
)

// maxDecoyAttempts caps the search for distinct decoy targets.
const maxDecoyAttempts = 64

// Operation is one arithmetic option, e.g. "7 × 3".
type Operation struct {
	A  int
	B  int
	Op game.Operator
}

func (o Operation) Result() int {
	switch o.Op {
	case game.OpDifference:
		return o.A - o.B
	case game.OpProduct:
		return o.A * o.B
	default:
		return o.A + o.B
	}
}

func (o Operation) String() string {
	sym := "+"
	switch o.Op {
	case game.OpDifference:
		sym = "-"
	case game.OpProduct:
		sym = "×"
	}
	return fmt.Sprintf("%d %s %d", o.A, sym, o.B)
}

// ParseOperation reads "a op b" where op is one of + - × * x.
func ParseOperation(s string) (Operation, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Operation{}, fmt.Errorf("malformed operation %q", s)
	}
	a, err := strconv.Atoi(fields[0])
	if err != nil {
		return Operation{}, fmt.Errorf("malformed operand %q: %w", fields[0], err)
	}
	b, err := strconv.Atoi(fields[2])
	if err != nil {
		return Operation{}, fmt.Errorf("malformed operand %q: %w", fields[2], err)
	}
	var op game.Operator
	switch fields[1] {
	case "+":
		op = game.OpSum
	case "-":
		op = game.OpDifference
	case "×", "*", "x":
		op = game.OpProduct
	default:
		return Operation{}, fmt.Errorf("unknown operator %q", fields[1])
	}
	return Operation{A: a, B: b, Op: op}, nil
}

// Evaluate parses and computes an option string.
func Evaluate(s string) (int, error) {
	o, err := ParseOperation(s)
	if err != nil {
		return 0, err
	}
	return o.Result(), nil
}

// Compose builds an operation of tier p whose result is target.
// Products with no valid factorization fall back to a sum.
func Compose(p game.ArithmeticTier, target int, rng RandomSource) Operation {
	switch p.Op {
	case game.OpDifference:
		hi := min(target+p.Span, p.Cap)
		a := Range(rng, target+1, hi)
		return Operation{A: a, B: a - target, Op: game.OpDifference}
	case game.OpProduct:
		ds := divisors(target, p)
		if len(ds) > 0 {
			d := ds[rng.IntN(len(ds))]
			return Operation{A: target / d, B: d, Op: game.OpProduct}
		}
	}
	a := Range(rng, 1, target)
	return Operation{A: a, B: target - a, Op: game.OpSum}
}

// divisors lists d in [FactorMin, FactorMax] dividing target with a
// cofactor in [CofactorMin, CofactorMax].
func divisors(target int, p game.ArithmeticTier) []int {
	var ds []int
	for d := p.FactorMin; d <= p.FactorMax && d > 0; d++ {
		if target%d != 0 {
			continue
		}
		if c := target / d; c >= p.CofactorMin && c <= p.CofactorMax {
			ds = append(ds, d)
		}
	}
	return ds
}

// ArithmeticGenerator asks for one of several operations that equals a target.
type ArithmeticGenerator struct {
	cfg game.ArithmeticConfig
	rng RandomSource
}

func NewArithmetic(cfg game.ArithmeticConfig, rng RandomSource) *ArithmeticGenerator {
	return &ArithmeticGenerator{cfg: cfg, rng: rng}
}

func (g *ArithmeticGenerator) Reset() {}

func (g *ArithmeticGenerator) Next(tier int) (*Round, error) {
	p := g.cfg.TierParams(tier)
	target := Range(g.rng, p.Min, p.Max)

	n := max(g.cfg.Options, 1)
	targets := []int{target}
	for attempts := 0; len(targets) < n; attempts++ {
		if attempts >= maxDecoyAttempts {
			return nil, fmt.Errorf("%w: tier %d range [%d,%d)", ErrDecoysExhausted, p.Tier, p.Min, p.Max)
		}
		if d := Range(g.rng, p.Min, p.Max); !lo.Contains(targets, d) {
			targets = append(targets, d)
		}
	}

	ops := lo.Map(targets, func(t int, _ int) Operation {
		return Compose(p, t, g.rng)
	})
	Shuffle(g.rng, ops)

	return &Round{
		Game:    game.Arithmetic,
		Tier:    tier,
		Target:  target,
		Options: lo.Map(ops, func(o Operation, _ int) string { return o.String() }),
		Answer:  lo.IndexOf(lo.Map(ops, func(o Operation, _ int) int { return o.Result() }), target),
	}, nil
}
