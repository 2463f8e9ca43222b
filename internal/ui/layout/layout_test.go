package layout

import (
	"strings"
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{60, "1:00"},
		{125, "2:05"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.secs); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestRenderHeader_Status(t *testing.T) {
	left := 42
	h := RenderHeader("Quiz", &Status{Score: 130, Streak: 4, TimeLeft: &left}, 100)
	for _, want := range []string{"Math Drill", "Quiz", "Score 130", "Streak 4", "0:42"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	plain := RenderHeader("Home", nil, 100)
	if strings.Contains(plain, "Score") {
		t.Error("header without status should not show a score")
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || IsTooSmall(MinWidth, MinHeight) {
		t.Error("IsTooSmall boundary wrong")
	}
}
