package problemgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Epsilon is the absolute tolerance used when comparing answers. It
// absorbs floating-point noise from fraction-to-decimal conversion.
const Epsilon = 0.01

// floatSlack lets a delta written as exactly 0.01 in decimal pass even
// when its binary representation lands just above Epsilon.
const floatSlack = 1e-9

// ErrInvalidAnswer is returned when learner input cannot be parsed.
var ErrInvalidAnswer = errors.New("invalid answer")

// WithinTolerance reports whether got is within Epsilon of want, inclusive.
func WithinTolerance(want, got float64) bool {
	return math.Abs(want-got) <= Epsilon+floatSlack
}

// CheckAnswer compares a numeric answer against the problem's answer.
// A nil problem is never correct.
func CheckAnswer(value float64, p *Problem) bool {
	if p == nil {
		return false
	}
	return WithinTolerance(p.Answer, value)
}

// ParseAnswer converts learner input into a number.
//
// Accepted forms:
// - integers: "42", "-3", "007"
// - decimals: "3.5", ".75"
// - fractions: "3/4", "6/8"
// - mixed numbers: "1 1/2"
// - percentages: "25%" (read as 25)
func ParseAnswer(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAnswer)
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	if !strings.Contains(s, "/") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, input)
		}
		return f, nil
	}

	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(strings.ReplaceAll(s, " /", "/"), "/ ", "/")

	whole := 0
	fracPart := s
	if fields := strings.Fields(s); len(fields) == 2 {
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, fmt.Errorf("%w: invalid whole part in %q", ErrInvalidAnswer, input)
		}
		whole = w
		fracPart = fields[1]
	} else if len(fields) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, input)
	}

	num, den, err := parseFraction(fracPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}
	if den == 0 {
		return 0, fmt.Errorf("%w: zero denominator", ErrInvalidAnswer)
	}

	value := float64(num) / float64(den)
	if whole < 0 {
		return float64(whole) - value, nil
	}
	return float64(whole) + value, nil
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int, int, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}
