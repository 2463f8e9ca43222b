package problemgen

import (
	"errors"
	"testing"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"42", 42},
		{" 42 ", 42},
		{"007", 7},
		{"-3", -3},
		{"3.5", 3.5},
		{".75", 0.75},
		{"3/4", 0.75},
		{"6/8", 0.75},
		{" 3 / 4 ", 0.75},
		{"1 1/2", 1.5},
		{"2  1/4", 2.25},
		{"25%", 25},
		{"7/2", 3.5},
	}
	for _, tc := range tests {
		got, err := ParseAnswer(tc.input)
		if err != nil {
			t.Errorf("ParseAnswer(%q) error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAnswer(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseAnswer_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "1/0", "1/x", "1 2 3/4", "NaN", "x 1/2"} {
		_, err := ParseAnswer(input)
		if err == nil {
			t.Errorf("ParseAnswer(%q) = nil error, want error", input)
			continue
		}
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Errorf("ParseAnswer(%q) error = %v, want ErrInvalidAnswer", input, err)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		want, got float64
		ok        bool
	}{
		{2, 2, true},
		{2, 2.01, true},
		{2, 1.99, true},
		{0.5, 0.51, true},
		{2, 2.02, false},
		{2, 1.98, false},
		{0.3333333, 0.33, true},
		{0.6666667, 0.67, true},
		{0.6666667, 0.65, false},
	}
	for _, tt := range tests {
		if got := WithinTolerance(tt.want, tt.got); got != tt.ok {
			t.Errorf("WithinTolerance(%v, %v) = %v, want %v", tt.want, tt.got, got, tt.ok)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	p := ArithmeticProblem(ArithmeticPayload{Operand1: 56, Operand2: 8, Operator: OpDivide})
	if !CheckAnswer(7, &p) {
		t.Error("CheckAnswer(7) = false, want true")
	}
	if CheckAnswer(8, &p) {
		t.Error("CheckAnswer(8) = true, want false")
	}
	if CheckAnswer(0, nil) {
		t.Error("CheckAnswer on nil problem = true, want false")
	}
}
