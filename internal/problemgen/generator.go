package problemgen

import (
	"strconv"

	"github.com/abhisek/mathdrill/internal/randsrc"
)

// WordSource produces narrative problems. The returned answer is derived
// from the same numerals injected into the payload text.
type WordSource interface {
	NextWordProblem(grade int, op Operator) (WordPayload, float64)
}

// Generator builds single Problems for any topic from one random source.
type Generator struct {
	arith   *ArithmeticGenerator
	frac    *FractionGenerator
	percent *PercentGenerator
	words   WordSource
}

// New creates a Generator. words may be nil, in which case word problems
// cannot be generated.
func New(src randsrc.Source, words WordSource) *Generator {
	return &Generator{
		arith:   NewArithmeticGenerator(src),
		frac:    NewFractionGenerator(src),
		percent: NewPercentGenerator(src),
		words:   words,
	}
}

// Arithmetic exposes the batch arithmetic generator.
func (g *Generator) Arithmetic() *ArithmeticGenerator {
	return g.arith
}

// Generate returns one problem for topic, or false when the constraints
// admit no problem (e.g. a range too small for the operator).
func (g *Generator) Generate(topic Topic, req Request) (*Problem, bool) {
	req = req.WithDefaults()

	switch topic {
	case TopicArithmetic:
		batch := g.arith.Generate(1, req.Operator, req.Range)
		if len(batch) == 0 {
			return nil, false
		}
		p := ArithmeticProblem(batch[0])
		return &p, true

	case TopicFraction:
		p := FractionProblem(g.frac.GeneratePair(req.Tier))
		return &p, true

	case TopicPercent:
		p := PercentProblem(g.percent.Generate())
		return &p, true

	case TopicWord:
		if g.words == nil {
			return nil, false
		}
		payload, answer := g.words.NextWordProblem(req.Grade, req.Operator)
		p := WordProblem(payload, answer)
		return &p, true
	}
	return nil, false
}

// WordProblem wraps a narrative payload into a Problem.
func WordProblem(p WordPayload, answer float64) Problem {
	return Problem{
		ID:         "word:" + p.Key(),
		Topic:      TopicWord,
		Display:    p.Text,
		Answer:     answer,
		AnswerText: strconv.FormatFloat(answer, 'f', -1, 64),
		Payload:    p,
	}
}
