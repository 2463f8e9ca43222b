package problemgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTopic is returned when a topic name cannot be parsed.
var ErrUnknownTopic = errors.New("unknown topic")

// ErrUnknownOperator is returned when an operator symbol cannot be parsed.
var ErrUnknownOperator = errors.New("unknown operator")

// Topic selects which generator produces a problem.
type Topic string

const (
	TopicArithmetic Topic = "arithmetic"
	TopicFraction   Topic = "fraction"
	TopicPercent    Topic = "percent"
	TopicWord       Topic = "word"
)

// AllTopics returns all topics in menu order.
func AllTopics() []Topic {
	return []Topic{TopicArithmetic, TopicFraction, TopicPercent, TopicWord}
}

// DisplayName returns a human-readable label for the topic.
func (t Topic) DisplayName() string {
	switch t {
	case TopicArithmetic:
		return "Arithmetic"
	case TopicFraction:
		return "Fractions"
	case TopicPercent:
		return "Percentages"
	case TopicWord:
		return "Word Problems"
	default:
		return string(t)
	}
}

// ParseTopic converts a name such as "fractions" or "word" into a Topic.
func ParseTopic(s string) (Topic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arithmetic", "math":
		return TopicArithmetic, nil
	case "fraction", "fractions":
		return TopicFraction, nil
	case "percent", "percentage", "percentages":
		return TopicPercent, nil
	case "word", "words", "word-problems":
		return TopicWord, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTopic, s)
}

// Operator is one of the four arithmetic operations.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"

	// OpMixed asks a generator to choose an operator per problem.
	OpMixed Operator = "mixed"

	// OpNone marks a fraction payload with no second operand (simplify-only).
	OpNone Operator = ""
)

// BasicOperators returns the four concrete operators.
func BasicOperators() []Operator {
	return []Operator{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// ParseOperator accepts the display symbols plus ASCII and word aliases.
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add", "plus", "addition":
		return OpAdd, nil
	case "-", "sub", "subtract", "minus", "subtraction":
		return OpSubtract, nil
	case "×", "*", "x", "mul", "multiply", "times", "multiplication":
		return OpMultiply, nil
	case "÷", "/", "div", "divide", "division":
		return OpDivide, nil
	case "", "mixed", "any":
		return OpMixed, nil
	}
	return OpNone, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// Problem is a generated practice problem. Payload is exactly one of
// ArithmeticPayload, FractionPayload, PercentPayload or WordPayload,
// matching Topic.
type Problem struct {
	// ID is the canonical key of the problem, used for deduplication.
	ID string

	Topic Topic

	// Display is the prompt shown to the learner, e.g. "7 + 5 = ?".
	Display string

	// Answer is the correct numeric value, computed once at generation.
	Answer float64

	// AnswerText renders Answer for feedback, e.g. "12", "1 1/2", "7.5".
	AnswerText string

	Payload Payload
}

// Payload is the topic-specific structured content of a Problem.
type Payload interface {
	payloadTopic() Topic
}

// ArithmeticPayload holds an integer problem.
type ArithmeticPayload struct {
	Operand1 int
	Operand2 int
	Operator Operator
}

func (ArithmeticPayload) payloadTopic() Topic { return TopicArithmetic }

// Key returns the canonical (operand1, operator, operand2) key.
func (p ArithmeticPayload) Key() string {
	return fmt.Sprintf("%d%s%d", p.Operand1, p.Operator, p.Operand2)
}

// Answer applies the operator to the operands. Division by zero yields 0.
func (p ArithmeticPayload) Answer() int {
	switch p.Operator {
	case OpAdd:
		return p.Operand1 + p.Operand2
	case OpSubtract:
		return p.Operand1 - p.Operand2
	case OpMultiply:
		return p.Operand1 * p.Operand2
	case OpDivide:
		if p.Operand2 == 0 {
			return 0
		}
		return p.Operand1 / p.Operand2
	}
	return 0
}

// FractionPayload holds a fraction pair. Right is the zero Fraction and
// Operator is OpNone for simplify-only problems.
type FractionPayload struct {
	Left     Fraction
	Right    Fraction
	Operator Operator
	Tier     Tier
}

func (FractionPayload) payloadTopic() Topic { return TopicFraction }

// SimplifyOnly reports whether the payload has no second operand.
func (p FractionPayload) SimplifyOnly() bool {
	return p.Operator == OpNone
}

// Key returns the canonical key for the pair.
func (p FractionPayload) Key() string {
	if p.SimplifyOnly() {
		return fmt.Sprintf("t%d:%s", p.Tier, p.Left)
	}
	return fmt.Sprintf("t%d:%s%s%s", p.Tier, p.Left, p.Operator, p.Right)
}

// Result returns the canonical result of the payload.
func (p FractionPayload) Result() Fraction {
	if p.SimplifyOnly() {
		n, d := p.Left.Improper()
		return Simplify(n, d)
	}
	return Solve(p.Left, p.Right, p.Operator)
}

// PercentPayload holds a percent-of-total problem.
type PercentPayload struct {
	Percent int
	Total   int
}

func (PercentPayload) payloadTopic() Topic { return TopicPercent }

// Key returns the canonical key.
func (p PercentPayload) Key() string {
	return fmt.Sprintf("%d%%of%d", p.Percent, p.Total)
}

// WordPayload holds a narrative problem and the numerals injected into it.
type WordPayload struct {
	TemplateID string
	Text       string
	Operator   Operator
	Operand1   int
	Operand2   int
}

func (WordPayload) payloadTopic() Topic { return TopicWord }

// Key returns the canonical (template, operand1, operand2) key.
func (p WordPayload) Key() string {
	return fmt.Sprintf("%s:%d,%d", p.TemplateID, p.Operand1, p.Operand2)
}
