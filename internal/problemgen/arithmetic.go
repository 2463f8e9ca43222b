package problemgen

import (
	"fmt"
	"math"
	"strconv"

	"github.com/abhisek/mathdrill/internal/randsrc"
)

const (
	// smallAddRange is the largest range that uses the centred addition rule.
	smallAddRange = 20

	// timesTableRange is the largest range that draws factors from the
	// times-table window.
	timesTableRange = 100

	timesTableMin = 2
	timesTableMax = 10

	// attemptsPerProblem bounds rejection sampling: a batch of count
	// problems gets at most count*attemptsPerProblem draws.
	attemptsPerProblem = 10
)

// ArithmeticGenerator produces integer problems within a numeric range.
type ArithmeticGenerator struct {
	src randsrc.Source
}

// NewArithmeticGenerator creates an ArithmeticGenerator drawing from src.
func NewArithmeticGenerator(src randsrc.Source) *ArithmeticGenerator {
	return &ArithmeticGenerator{src: src}
}

// Generate returns up to count unique problems for op within rng.
// OpMixed picks an operator per draw. Fewer than count problems are
// returned when the constraint space is too small; callers needing an
// exact count must check the length.
func (g *ArithmeticGenerator) Generate(count int, op Operator, rng int) []ArithmeticPayload {
	if count <= 0 {
		return nil
	}

	seen := newKeySet()
	out := make([]ArithmeticPayload, 0, count)
	for attempt := 0; attempt < count*attemptsPerProblem && len(out) < count; attempt++ {
		drawOp := op
		if drawOp == OpMixed {
			drawOp = randsrc.Pick(g.src, BasicOperators())
		}
		p, ok := g.candidate(drawOp, rng)
		if !ok || !seen.add(p.Key()) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// candidate draws one operand pair, reporting false when the draw
// violates the range constraint or the range admits no problem at all.
func (g *ArithmeticGenerator) candidate(op Operator, rng int) (ArithmeticPayload, bool) {
	switch op {
	case OpAdd:
		return g.addition(rng)
	case OpSubtract:
		return g.subtraction(rng)
	case OpMultiply:
		return g.multiplication(rng)
	case OpDivide:
		return g.division(rng)
	}
	return ArithmeticPayload{}, false
}

func (g *ArithmeticGenerator) addition(rng int) (ArithmeticPayload, bool) {
	if rng < 2 {
		return ArithmeticPayload{}, false
	}
	var a int
	if rng <= smallAddRange {
		// Centred rule: for even ranges lo == hi, so the first operand is fixed.
		lo := rng / 2
		a = randsrc.Between(g.src, lo, rng-lo)
	} else {
		a = randsrc.Between(g.src, 1, rng-1)
	}
	b := randsrc.Between(g.src, 1, rng-a)
	return ArithmeticPayload{Operand1: a, Operand2: b, Operator: OpAdd}, true
}

func (g *ArithmeticGenerator) subtraction(rng int) (ArithmeticPayload, bool) {
	if rng < 1 {
		return ArithmeticPayload{}, false
	}
	a := randsrc.Between(g.src, 1, rng)
	b := randsrc.Between(g.src, 0, a)
	return ArithmeticPayload{Operand1: a, Operand2: b, Operator: OpSubtract}, true
}

func (g *ArithmeticGenerator) multiplication(rng int) (ArithmeticPayload, bool) {
	a, b, ok := g.factors(rng)
	if !ok {
		return ArithmeticPayload{}, false
	}
	if randsrc.Chance(g.src, 0.5) {
		a, b = b, a
	}
	return ArithmeticPayload{Operand1: a, Operand2: b, Operator: OpMultiply}, true
}

func (g *ArithmeticGenerator) division(rng int) (ArithmeticPayload, bool) {
	divisor, quotient, ok := g.factors(rng)
	if !ok {
		return ArithmeticPayload{}, false
	}
	return ArithmeticPayload{Operand1: quotient * divisor, Operand2: divisor, Operator: OpDivide}, true
}

// factors draws two factors whose product stays within rng. Small ranges
// draw both inside the times-table window, the second bounded by rng/a so
// no draw is rejected; larger ranges anchor one factor near the square
// root of rng so the product scales with the range.
func (g *ArithmeticGenerator) factors(rng int) (int, int, bool) {
	if rng < timesTableMin*timesTableMin {
		return 0, 0, false
	}
	if rng <= timesTableRange {
		a := randsrc.Between(g.src, timesTableMin, min(timesTableMax, rng/timesTableMin))
		b := randsrc.Between(g.src, timesTableMin, min(timesTableMax, rng/a))
		return a, b, true
	}
	root := int(math.Sqrt(float64(rng)))
	a := randsrc.Between(g.src, max(timesTableMin, root/2), root)
	b := randsrc.Between(g.src, timesTableMin, rng/a)
	return a, b, true
}

// ArithmeticProblem wraps a payload into a Problem.
func ArithmeticProblem(p ArithmeticPayload) Problem {
	answer := p.Answer()
	return Problem{
		ID:         "arith:" + p.Key(),
		Topic:      TopicArithmetic,
		Display:    fmt.Sprintf("%d %s %d = ?", p.Operand1, p.Operator, p.Operand2),
		Answer:     float64(answer),
		AnswerText: strconv.Itoa(answer),
		Payload:    p,
	}
}
