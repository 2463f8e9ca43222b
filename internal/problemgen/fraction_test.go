package problemgen

import (
	"testing"

	"github.com/abhisek/mathdrill/internal/randsrc"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		n, d int
		want Fraction
	}{
		{6, 8, Fraction{0, 3, 4}},
		{12, 8, Fraction{1, 1, 2}},
		{10, 5, Fraction{2, 0, 1}},
		{0, 7, Fraction{0, 0, 1}},
		{7, 7, Fraction{1, 0, 1}},
		{5, 3, Fraction{1, 2, 3}},
		{1, 0, Fraction{0, 0, 1}},
		{-3, 4, Fraction{0, 0, 1}},
	}
	for _, tt := range tests {
		got := Simplify(tt.n, tt.d)
		if got != tt.want {
			t.Errorf("Simplify(%d, %d) = %+v, want %+v", tt.n, tt.d, got, tt.want)
		}
	}
}

func TestSimplify_RoundTrip(t *testing.T) {
	for d := 1; d <= 40; d++ {
		for n := 0; n <= 120; n++ {
			f := Simplify(n, d)
			if f.Numerator < 0 || f.Numerator >= f.Denominator {
				t.Fatalf("Simplify(%d, %d) = %+v: numerator not in [0, denominator)", n, d, f)
			}
			g := gcd(n, d)
			if f.Whole*f.Denominator+f.Numerator != n/g || f.Denominator != d/g {
				t.Fatalf("Simplify(%d, %d) = %+v does not reconstruct %d/%d", n, d, f, n/g, d/g)
			}
			// Idempotent.
			in, id := f.Improper()
			if again := Simplify(in, id); again != f {
				t.Fatalf("Simplify not idempotent for %d/%d: %+v then %+v", n, d, f, again)
			}
		}
	}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		left, right Fraction
		op          Operator
		want        string
	}{
		{Fraction{0, 1, 4}, Fraction{0, 2, 4}, OpAdd, "3/4"},
		{Fraction{0, 1, 2}, Fraction{0, 1, 3}, OpAdd, "5/6"},
		{Fraction{0, 3, 4}, Fraction{0, 1, 4}, OpSubtract, "1/2"},
		{Fraction{0, 2, 3}, Fraction{0, 3, 4}, OpMultiply, "1/2"},
		{Fraction{0, 1, 2}, Fraction{0, 1, 4}, OpDivide, "2"},
		{Fraction{1, 1, 2}, Fraction{2, 1, 3}, OpAdd, "3 5/6"},
		{Fraction{3, 1, 4}, Fraction{1, 3, 4}, OpSubtract, "1 1/2"},
		{Fraction{0, 3, 5}, Fraction{0, 3, 5}, OpSubtract, "0"},
		{Fraction{0, 1, 2}, Fraction{0, 0, 3}, OpDivide, "0"},
		{Fraction{0, 1, 4}, Fraction{0, 3, 4}, OpSubtract, "0"},
	}
	for _, tt := range tests {
		got := Solve(tt.left, tt.right, tt.op)
		if got.String() != tt.want {
			t.Errorf("Solve(%s %s %s) = %s, want %s", tt.left, tt.op, tt.right, got, tt.want)
		}
	}
}

func TestFraction_String(t *testing.T) {
	tests := []struct {
		f    Fraction
		want string
	}{
		{Fraction{0, 3, 4}, "3/4"},
		{Fraction{2, 1, 3}, "2 1/3"},
		{Fraction{5, 0, 1}, "5"},
		{Fraction{}, "0"},
		{Fraction{0, 12, 8}, "12/8"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String(%+v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestFraction_ValueZeroDenominator(t *testing.T) {
	if got := (Fraction{Whole: 3, Numerator: 1}).Value(); got != 3 {
		t.Errorf("Value() = %v, want 3", got)
	}
}

func TestGeneratePair_Tiers(t *testing.T) {
	for _, seed := range testSeeds {
		g := NewFractionGenerator(randsrc.New(seed))
		for i := 0; i < 50; i++ {
			for _, tier := range AllTiers() {
				p := g.GeneratePair(tier)
				if p.Tier != tier {
					t.Fatalf("Tier = %d, want %d", p.Tier, tier)
				}
				checkTier(t, p)
				if p.Operator == OpSubtract && p.Right.Value() > p.Left.Value() {
					t.Errorf("tier %d: %s - %s is negative", tier, p.Left, p.Right)
				}
			}
		}
	}
}

func checkTier(t *testing.T, p FractionPayload) {
	t.Helper()
	additive := p.Operator == OpAdd || p.Operator == OpSubtract

	switch p.Tier {
	case TierSameDenominator:
		if !additive {
			t.Errorf("tier 1 operator %q, want + or -", p.Operator)
		}
		if p.Left.Denominator != p.Right.Denominator {
			t.Errorf("tier 1: denominators differ: %s, %s", p.Left, p.Right)
		}
		checkProper(t, p.Left)
		checkProper(t, p.Right)
	case TierRelatedDenominator:
		if !additive {
			t.Errorf("tier 2 operator %q, want + or -", p.Operator)
		}
		a, b := p.Left.Denominator, p.Right.Denominator
		if a == b || (a%b != 0 && b%a != 0) {
			t.Errorf("tier 2: denominators %d and %d are not related multiples", a, b)
		}
	case TierMixedNumbers:
		if !additive {
			t.Errorf("tier 3 operator %q, want + or -", p.Operator)
		}
		if p.Left.Whole == 0 || p.Right.Whole == 0 {
			t.Errorf("tier 3: expected mixed numbers, got %s and %s", p.Left, p.Right)
		}
		if p.Left.Denominator != p.Right.Denominator {
			t.Errorf("tier 3: denominators differ: %s, %s", p.Left, p.Right)
		}
	case TierMultiplicative:
		if p.Operator != OpMultiply && p.Operator != OpDivide {
			t.Errorf("tier 4 operator %q, want × or ÷", p.Operator)
		}
		checkProper(t, p.Left)
		checkProper(t, p.Right)
	case TierSimplify:
		if !p.SimplifyOnly() {
			t.Errorf("tier 5 operator %q, want none", p.Operator)
		}
		if !p.Right.IsZero() {
			t.Errorf("tier 5: unexpected right operand %s", p.Right)
		}
		if p.Left.Numerator <= p.Left.Denominator {
			t.Errorf("tier 5: %s is not improper", p.Left)
		}
		if gcd(p.Left.Numerator, p.Left.Denominator) < 2 {
			t.Errorf("tier 5: %s is already reduced", p.Left)
		}
	}
}

func checkProper(t *testing.T, f Fraction) {
	t.Helper()
	if f.Whole != 0 || f.Numerator < 1 || f.Numerator >= f.Denominator {
		t.Errorf("%s is not a proper fraction", f)
	}
}

func TestGeneratePair_InvalidTierFallsBack(t *testing.T) {
	g := NewFractionGenerator(randsrc.New(1))
	if p := g.GeneratePair(Tier(9)); p.Tier != TierSameDenominator {
		t.Errorf("Tier = %d, want %d", p.Tier, TierSameDenominator)
	}
}

func TestFractionProblem(t *testing.T) {
	p := FractionProblem(FractionPayload{
		Left:     Fraction{0, 1, 4},
		Right:    Fraction{0, 2, 4},
		Operator: OpAdd,
		Tier:     TierSameDenominator,
	})
	if p.Display != "1/4 + 2/4 = ?" {
		t.Errorf("Display = %q", p.Display)
	}
	if p.Answer != 0.75 {
		t.Errorf("Answer = %v, want 0.75", p.Answer)
	}
	if p.AnswerText != "3/4" {
		t.Errorf("AnswerText = %q, want 3/4", p.AnswerText)
	}

	s := FractionProblem(FractionPayload{
		Left:     Fraction{0, 12, 8},
		Operator: OpNone,
		Tier:     TierSimplify,
	})
	if s.Display != "Simplify 12/8" {
		t.Errorf("Display = %q", s.Display)
	}
	if s.AnswerText != "1 1/2" {
		t.Errorf("AnswerText = %q, want 1 1/2", s.AnswerText)
	}
	if s.Answer != 1.5 {
		t.Errorf("Answer = %v, want 1.5", s.Answer)
	}
}
