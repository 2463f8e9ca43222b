package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathdrill/internal/randsrc"
)

// nicePercents are the percentages favoured by the generator.
var nicePercents = []int{10, 20, 25, 50, 75}

const (
	// nicePercentBias is the share of draws taken from nicePercents.
	nicePercentBias = 0.6

	maxPercentTotal = 200
)

// PercentGenerator produces percent-of-total problems.
type PercentGenerator struct {
	src randsrc.Source
}

// NewPercentGenerator creates a PercentGenerator drawing from src.
func NewPercentGenerator(src randsrc.Source) *PercentGenerator {
	return &PercentGenerator{src: src}
}

// Generate returns one percent/total pair.
func (g *PercentGenerator) Generate() PercentPayload {
	var percent int
	if randsrc.Chance(g.src, nicePercentBias) {
		percent = randsrc.Pick(g.src, nicePercents)
	} else {
		percent = randsrc.Between(g.src, 1, 9) * 10
	}
	total := randsrc.Between(g.src, 1, maxPercentTotal/10) * 10
	return PercentPayload{Percent: percent, Total: total}
}

// PercentOf returns percent% of total. The product is formed before
// dividing so whole and half results are exact.
func PercentOf(percent, total int) float64 {
	return float64(percent*total) / 100
}

// PercentProblem wraps a payload into a Problem. The answer is computed
// here once and carried on the Problem.
func PercentProblem(p PercentPayload) Problem {
	answer := PercentOf(p.Percent, p.Total)
	return Problem{
		ID:         "pct:" + p.Key(),
		Topic:      TopicPercent,
		Display:    fmt.Sprintf("What is %d%% of %d?", p.Percent, p.Total),
		Answer:     answer,
		AnswerText: strconv.FormatFloat(answer, 'f', -1, 64),
		Payload:    p,
	}
}
