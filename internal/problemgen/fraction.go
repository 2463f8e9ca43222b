package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathdrill/internal/randsrc"
)

// Fraction is a possibly mixed number Whole + Numerator/Denominator.
// A canonical Fraction has 0 <= Numerator < Denominator and is produced
// only by Simplify.
type Fraction struct {
	Whole       int
	Numerator   int
	Denominator int
}

// Improper returns the fraction as a single numerator over the denominator.
func (f Fraction) Improper() (int, int) {
	return f.Whole*f.Denominator + f.Numerator, f.Denominator
}

// Value returns the decimal value. A zero denominator yields the whole part.
func (f Fraction) Value() float64 {
	if f.Denominator == 0 {
		return float64(f.Whole)
	}
	n, d := f.Improper()
	return float64(n) / float64(d)
}

// IsZero reports whether the fraction has no value.
func (f Fraction) IsZero() bool {
	return f.Whole == 0 && f.Numerator == 0
}

// String renders "3/4", "2 1/3", "5" or "0".
func (f Fraction) String() string {
	switch {
	case f.Denominator == 0 || f.Numerator == 0:
		return strconv.Itoa(f.Whole)
	case f.Whole == 0:
		return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
	default:
		return fmt.Sprintf("%d %d/%d", f.Whole, f.Numerator, f.Denominator)
	}
}

// Simplify reduces n/d by their greatest common divisor and extracts the
// whole part. A non-positive denominator or negative numerator yields the
// zero Fraction.
func Simplify(n, d int) Fraction {
	if d <= 0 || n < 0 {
		return Fraction{Denominator: 1}
	}
	g := gcd(n, d)
	n /= g
	d /= g
	return Fraction{
		Whole:       n / d,
		Numerator:   n % d,
		Denominator: d,
	}
}

// Solve applies op to the two fractions and returns the simplified result.
// Division by a zero-valued fraction and negative differences yield the
// zero Fraction.
func Solve(left, right Fraction, op Operator) Fraction {
	n1, d1 := left.Improper()
	n2, d2 := right.Improper()
	if d1 <= 0 || d2 <= 0 {
		return Fraction{Denominator: 1}
	}

	var n, d int
	switch op {
	case OpAdd:
		n, d = n1*d2+n2*d1, d1*d2
	case OpSubtract:
		n, d = n1*d2-n2*d1, d1*d2
	case OpMultiply:
		n, d = n1*n2, d1*d2
	case OpDivide:
		if n2 == 0 {
			return Fraction{Denominator: 1}
		}
		n, d = n1*d2, d1*n2
	default:
		n, d = n1, d1
	}
	return Simplify(n, d)
}

// Tier is a fraction generation policy.
type Tier int

const (
	TierSameDenominator    Tier = 1
	TierRelatedDenominator Tier = 2
	TierMixedNumbers       Tier = 3
	TierMultiplicative     Tier = 4
	TierSimplify           Tier = 5
)

// AllTiers returns the tiers in ascending difficulty.
func AllTiers() []Tier {
	return []Tier{TierSameDenominator, TierRelatedDenominator, TierMixedNumbers, TierMultiplicative, TierSimplify}
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierSameDenominator:
		return "Same denominator"
	case TierRelatedDenominator:
		return "Related denominators"
	case TierMixedNumbers:
		return "Mixed numbers"
	case TierMultiplicative:
		return "Multiply & divide"
	case TierSimplify:
		return "Simplify"
	default:
		return fmt.Sprintf("Tier %d", int(t))
	}
}

// Valid reports whether t is one of the five tiers.
func (t Tier) Valid() bool {
	return t >= TierSameDenominator && t <= TierSimplify
}

// FractionGenerator produces fraction pairs per difficulty tier.
type FractionGenerator struct {
	src randsrc.Source
}

// NewFractionGenerator creates a FractionGenerator drawing from src.
func NewFractionGenerator(src randsrc.Source) *FractionGenerator {
	return &FractionGenerator{src: src}
}

// GeneratePair returns a pair for tier. Out-of-range tiers fall back to
// TierSameDenominator.
func (g *FractionGenerator) GeneratePair(tier Tier) FractionPayload {
	if !tier.Valid() {
		tier = TierSameDenominator
	}

	var p FractionPayload
	switch tier {
	case TierSameDenominator:
		d := randsrc.Between(g.src, 2, 12)
		p = FractionPayload{
			Left:     g.proper(d),
			Right:    g.proper(d),
			Operator: g.additive(),
		}
	case TierRelatedDenominator:
		base := randsrc.Between(g.src, 2, 6)
		multiple := base * randsrc.Between(g.src, 2, 3)
		left, right := g.proper(base), g.proper(multiple)
		if randsrc.Chance(g.src, 0.5) {
			left, right = right, left
		}
		p = FractionPayload{Left: left, Right: right, Operator: g.additive()}
	case TierMixedNumbers:
		d := randsrc.Between(g.src, 2, 8)
		left, right := g.proper(d), g.proper(d)
		left.Whole = randsrc.Between(g.src, 1, 5)
		right.Whole = randsrc.Between(g.src, 1, 5)
		p = FractionPayload{Left: left, Right: right, Operator: g.additive()}
	case TierMultiplicative:
		op := OpMultiply
		if randsrc.Chance(g.src, 0.5) {
			op = OpDivide
		}
		p = FractionPayload{
			Left:     g.proper(randsrc.Between(g.src, 2, 10)),
			Right:    g.proper(randsrc.Between(g.src, 2, 10)),
			Operator: op,
		}
	case TierSimplify:
		p = FractionPayload{Left: g.messy(), Operator: OpNone}
	}
	p.Tier = tier

	if p.Operator == OpSubtract && p.Right.Value() > p.Left.Value() {
		p.Left, p.Right = p.Right, p.Left
	}
	return p
}

// proper returns n/d with 1 <= n < d.
func (g *FractionGenerator) proper(d int) Fraction {
	return Fraction{Numerator: randsrc.Between(g.src, 1, d-1), Denominator: d}
}

func (g *FractionGenerator) additive() Operator {
	if randsrc.Chance(g.src, 0.5) {
		return OpSubtract
	}
	return OpAdd
}

// maxCoprimeAttempts bounds the search for a reduced numerator.
const maxCoprimeAttempts = 10

// messy builds an improper, unreduced fraction by scaling a reduced pair.
func (g *FractionGenerator) messy() Fraction {
	d := randsrc.Between(g.src, 2, 9)
	n := d + 1
	for i := 0; i < maxCoprimeAttempts; i++ {
		c := randsrc.Between(g.src, d+1, 3*d)
		if gcd(c, d) == 1 {
			n = c
			break
		}
	}
	factor := randsrc.Between(g.src, 2, 6)
	return Fraction{Numerator: n * factor, Denominator: d * factor}
}

// FractionProblem wraps a payload into a Problem.
func FractionProblem(p FractionPayload) Problem {
	result := p.Result()
	display := fmt.Sprintf("%s %s %s = ?", p.Left, p.Operator, p.Right)
	if p.SimplifyOnly() {
		display = fmt.Sprintf("Simplify %s", p.Left)
	}
	return Problem{
		ID:         "frac:" + p.Key(),
		Topic:      TopicFraction,
		Display:    display,
		Answer:     result.Value(),
		AnswerText: result.String(),
		Payload:    p,
	}
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative; gcd(0, 0) is 1.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
