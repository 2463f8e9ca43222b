package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/randsrc"
)

// fixedSource serves a fixed cycle of arithmetic problems.
type fixedSource struct {
	problems []problemgen.Problem
	next     int
	calls    int
	gotReq   problemgen.Request
	// failEvery makes every n-th call fail when set.
	failEvery int
}

func (f *fixedSource) Generate(topic problemgen.Topic, req problemgen.Request) (*problemgen.Problem, bool) {
	f.calls++
	f.gotReq = req
	if len(f.problems) == 0 {
		return nil, false
	}
	if f.failEvery > 0 && f.calls%f.failEvery == 0 {
		return nil, false
	}
	p := f.problems[f.next%len(f.problems)]
	f.next++
	return &p, true
}

func additions(n int) []problemgen.Problem {
	out := make([]problemgen.Problem, n)
	for i := range out {
		out[i] = problemgen.ArithmeticProblem(problemgen.ArithmeticPayload{
			Operand1: i + 1, Operand2: 1, Operator: problemgen.OpAdd,
		})
	}
	return out
}

func newTestEngine(src ProblemSource) *Engine {
	e := NewEngine(src)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return e
}

func answerCorrectly(t *testing.T, e *Engine) Result {
	t.Helper()
	p := e.Current()
	if p == nil {
		t.Fatal("no current problem")
	}
	res := e.CheckAnswer(p.Answer)
	e.NextProblem(problemgen.Request{})
	return res
}

func TestStartGame_Practice(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(5)})
	if e.Phase() != PhaseIdle {
		t.Fatalf("Phase = %v, want idle", e.Phase())
	}

	if err := e.StartGame(Options{Topic: problemgen.TopicArithmetic}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	s := e.Snapshot()
	if s.Mode != ModePractice {
		t.Errorf("Mode = %q, want practice", s.Mode)
	}
	if s.TimeRemaining != nil {
		t.Errorf("TimeRemaining = %d, want nil in practice", *s.TimeRemaining)
	}
	if !s.Active || e.Phase() != PhaseActive {
		t.Error("expected active session")
	}
	if s.CurrentProblem == nil {
		t.Fatal("expected a current problem")
	}
	if s.ID == "" {
		t.Error("expected a session ID")
	}
}

func TestStartGame_QuizDefaults(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(5)})
	if err := e.StartGame(Options{Mode: ModeQuiz, Topic: problemgen.TopicArithmetic}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	s := e.Snapshot()
	if s.TimeRemaining == nil || *s.TimeRemaining != DefaultQuizSeconds {
		t.Errorf("TimeRemaining = %v, want %d", s.TimeRemaining, DefaultQuizSeconds)
	}
	if s.QuizDuration != DefaultQuizSeconds {
		t.Errorf("QuizDuration = %d, want %d", s.QuizDuration, DefaultQuizSeconds)
	}
}

func TestStartGame_UnknownTopic(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(1)})
	err := e.StartGame(Options{Topic: "geometry"})
	if !errors.Is(err, problemgen.ErrUnknownTopic) {
		t.Errorf("err = %v, want ErrUnknownTopic", err)
	}
	if e.Phase() != PhaseIdle {
		t.Errorf("Phase = %v, want idle", e.Phase())
	}
}

func TestStartGame_NoProblem(t *testing.T) {
	e := newTestEngine(&fixedSource{})
	err := e.StartGame(Options{Topic: problemgen.TopicArithmetic})
	if !errors.Is(err, ErrNoProblem) {
		t.Fatalf("err = %v, want ErrNoProblem", err)
	}

	res := e.CheckAnswer(3)
	if res.Correct {
		t.Error("CheckAnswer without a problem should be incorrect")
	}
	if s := e.Snapshot(); s.WrongCount != 0 || len(s.History) != 0 {
		t.Errorf("no-op check changed state: wrong=%d history=%d", s.WrongCount, len(s.History))
	}
}

func TestStartGame_DiscardsPreviousSession(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(10)})
	_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})
	answerCorrectly(t, e)
	answerCorrectly(t, e)
	firstID := e.Snapshot().ID

	_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})
	s := e.Snapshot()
	if s.ID == firstID {
		t.Error("expected a new session ID")
	}
	if s.Score != 0 || s.Streak != 0 || len(s.History) != 0 {
		t.Errorf("new session not reset: score=%d streak=%d history=%d", s.Score, s.Streak, len(s.History))
	}
}

func TestCheckAnswer_StreakScoring(t *testing.T) {
	for k := 1; k <= 12; k++ {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			e := newTestEngine(&fixedSource{problems: additions(20)})
			_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})
			for i := 0; i < k; i++ {
				answerCorrectly(t, e)
			}
			want := 10*k + k*(k-1)/2
			if got := e.Snapshot().Score; got != want {
				t.Errorf("score after %d correct = %d, want %d", k, got, want)
			}
		})
	}
}

func TestCheckAnswer_WrongResetsStreak(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(10)})
	_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})
	answerCorrectly(t, e)
	answerCorrectly(t, e)
	answerCorrectly(t, e)

	p := e.Current()
	res := e.CheckAnswer(p.Answer + 1)
	if res.Correct {
		t.Fatal("expected incorrect")
	}
	if res.AnswerText != p.AnswerText {
		t.Errorf("AnswerText = %q, want %q", res.AnswerText, p.AnswerText)
	}

	s := e.Snapshot()
	if s.Streak != 0 {
		t.Errorf("Streak = %d, want 0", s.Streak)
	}
	if s.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", s.BestStreak)
	}
	if s.CorrectCount != 3 || s.WrongCount != 1 {
		t.Errorf("counts = %d/%d, want 3/1", s.CorrectCount, s.WrongCount)
	}
	if len(s.History) != 4 || s.History[3].Correct {
		t.Errorf("history = %+v, want 4 entries ending in a miss", s.History)
	}
	if s.Score != 10+11+12 {
		t.Errorf("Score = %d, want 33", s.Score)
	}
}

func TestCheckAnswer_AnswerOnlyOnce(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(3)})
	_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})
	p := e.Current()

	first := e.CheckAnswer(p.Answer)
	second := e.CheckAnswer(p.Answer)
	if !first.Correct || second.Correct {
		t.Errorf("results = %v, %v; want true, false", first.Correct, second.Correct)
	}
	if got := e.Snapshot().CorrectCount; got != 1 {
		t.Errorf("CorrectCount = %d, want 1", got)
	}
}

func TestCheckAnswer_Milestone(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(20)})
	_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})
	for i := 1; i <= 10; i++ {
		res := answerCorrectly(t, e)
		want := 0
		if i == 5 || i == 10 {
			want = i
		}
		if res.Milestone != want {
			t.Errorf("answer %d: Milestone = %d, want %d", i, res.Milestone, want)
		}
	}
}

func TestCheckAnswer_Tolerance(t *testing.T) {
	third := problemgen.FractionProblem(problemgen.FractionPayload{
		Left:     problemgen.Fraction{Numerator: 1, Denominator: 3},
		Right:    problemgen.Fraction{Numerator: 0, Denominator: 3},
		Operator: problemgen.OpAdd,
		Tier:     problemgen.TierSameDenominator,
	})
	e := newTestEngine(&fixedSource{problems: []problemgen.Problem{third}})
	_ = e.StartGame(Options{Topic: problemgen.TopicFraction})

	if res := e.CheckAnswer(0.33); !res.Correct {
		t.Errorf("0.33 for 1/3 should be accepted, answer %v", res.Answer)
	}
}

func TestNextProblem_Dedup(t *testing.T) {
	src := &fixedSource{problems: additions(3)}
	e := newTestEngine(src)
	_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})

	seen := map[string]bool{e.Current().ID: true}
	for i := 0; i < 2; i++ {
		if !e.NextProblem(problemgen.Request{}) {
			t.Fatal("NextProblem failed")
		}
		id := e.Current().ID
		if seen[id] {
			t.Errorf("repeat problem %s while unseen ones remain", id)
		}
		seen[id] = true
	}

	// The pool is exhausted; a repeat is accepted after bounded retries.
	src.calls = 0
	if !e.NextProblem(problemgen.Request{}) {
		t.Fatal("NextProblem failed after exhausting the pool")
	}
	if src.calls != maxDedupAttempts {
		t.Errorf("generator calls = %d, want %d", src.calls, maxDedupAttempts)
	}
}

func TestNextProblem_SurvivesFailedDraws(t *testing.T) {
	// Every other draw fails, so each problem needs a retry.
	src := &fixedSource{problems: additions(50), failEvery: 2}
	e := newTestEngine(src)
	if err := e.StartGame(Options{Topic: problemgen.TopicArithmetic}); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	for i := 0; i < 30; i++ {
		if !e.NextProblem(problemgen.Request{}) {
			t.Fatalf("NextProblem %d failed", i)
		}
		if e.Current() == nil {
			t.Fatalf("NextProblem %d left no current problem", i)
		}
	}
	if e.Phase() != PhaseActive {
		t.Errorf("Phase = %v, want active", e.Phase())
	}
}

func TestNextProblem_FailsOnlyWhenEveryDrawFails(t *testing.T) {
	src := &fixedSource{problems: additions(5), failEvery: 1}
	e := newTestEngine(src)
	if err := e.StartGame(Options{Topic: problemgen.TopicArithmetic}); !errors.Is(err, ErrNoProblem) {
		t.Fatalf("err = %v, want ErrNoProblem", err)
	}
	if src.calls != maxDedupAttempts {
		t.Errorf("generator calls = %d, want %d", src.calls, maxDedupAttempts)
	}
}

func TestNextProblem_SmallRangeTimesTables(t *testing.T) {
	for _, op := range []problemgen.Operator{problemgen.OpMultiply, problemgen.OpDivide} {
		for _, rng := range []int{4, 10, 20} {
			for seed := uint64(1); seed <= 50; seed++ {
				e := newTestEngine(problemgen.New(randsrc.New(seed), nil))
				err := e.StartGame(Options{
					Topic:   problemgen.TopicArithmetic,
					Request: problemgen.Request{Operator: op, Range: rng},
				})
				if err != nil {
					t.Fatalf("op %s range %d seed %d: StartGame: %v", op, rng, seed, err)
				}
				for i := 0; i < 20; i++ {
					if !e.NextProblem(problemgen.Request{}) {
						t.Fatalf("op %s range %d seed %d: NextProblem %d failed", op, rng, seed, i)
					}
				}
			}
		}
	}
}

func TestNextProblem_HintsPersist(t *testing.T) {
	src := &fixedSource{problems: additions(5)}
	e := newTestEngine(src)
	_ = e.StartGame(Options{
		Topic:   problemgen.TopicArithmetic,
		Request: problemgen.Request{Operator: problemgen.OpAdd, Range: 50},
	})

	e.NextProblem(problemgen.Request{Range: 100})
	if src.gotReq.Range != 100 || src.gotReq.Operator != problemgen.OpAdd {
		t.Errorf("request = %+v, want range 100 with +", src.gotReq)
	}
	e.NextProblem(problemgen.Request{})
	if src.gotReq.Range != 100 {
		t.Errorf("Range = %d, want hint to persist", src.gotReq.Range)
	}
	if e.Snapshot().Score != 0 {
		t.Error("NextProblem must not touch the score")
	}
}

func TestTick_Monotonic(t *testing.T) {
	const duration = 7
	for d := 0; d <= duration+3; d++ {
		t.Run(fmt.Sprintf("ticks=%d", d), func(t *testing.T) {
			e := newTestEngine(&fixedSource{problems: additions(2)})
			_ = e.StartGame(Options{Mode: ModeQuiz, Topic: problemgen.TopicArithmetic, QuizSeconds: duration})

			for i := 1; i <= d; i++ {
				active := e.Tick()
				if want := i < duration; active != want {
					t.Fatalf("tick %d: active = %v, want %v", i, active, want)
				}
			}

			s := e.Snapshot()
			want := max(0, duration-d)
			if *s.TimeRemaining != want {
				t.Errorf("TimeRemaining = %d, want %d", *s.TimeRemaining, want)
			}
			if s.Active != (want > 0) {
				t.Errorf("Active = %v with %d seconds left", s.Active, want)
			}
		})
	}
}

func TestTick_PracticeIgnored(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(2)})
	_ = e.StartGame(Options{Topic: problemgen.TopicArithmetic})
	for i := 0; i < 100; i++ {
		if !e.Tick() {
			t.Fatal("practice session ended on tick")
		}
	}
	if e.Snapshot().TimeRemaining != nil {
		t.Error("practice session gained a timer")
	}
}

func TestAddTimeBonus(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(2)})
	_ = e.StartGame(Options{Mode: ModeQuiz, Topic: problemgen.TopicFraction, QuizSeconds: 10})

	e.Tick()
	e.AddTimeBonus(BonusFor(problemgen.TopicFraction))
	e.AddTimeBonus(-4)
	if got := *e.Snapshot().TimeRemaining; got != 14 {
		t.Errorf("TimeRemaining = %d, want 14", got)
	}

	e.EndGame()
	e.AddTimeBonus(30)
	if got := *e.Snapshot().TimeRemaining; got != 14 {
		t.Errorf("bonus after end changed timer to %d", got)
	}

	p := newTestEngine(&fixedSource{problems: additions(2)})
	_ = p.StartGame(Options{Topic: problemgen.TopicArithmetic})
	p.AddTimeBonus(5)
	if p.Snapshot().TimeRemaining != nil {
		t.Error("practice session gained a timer from a bonus")
	}
}

func TestBonusFor(t *testing.T) {
	if BonusFor(problemgen.TopicFraction) <= BonusFor(problemgen.TopicArithmetic) {
		t.Error("fraction bonus should exceed arithmetic bonus")
	}
	if BonusFor("unknown") != 0 {
		t.Error("unknown topic should earn no bonus")
	}
}

func TestQuizProblemCap(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(10)})
	_ = e.StartGame(Options{Mode: ModeQuiz, Topic: problemgen.TopicArithmetic, QuizProblems: 3})

	answerCorrectly(t, e)
	answerCorrectly(t, e)
	p := e.Current()
	res := e.CheckAnswer(p.Answer + 5)
	if !res.Ended {
		t.Error("third answer should end the quiz")
	}
	if e.Phase() != PhaseTerminal {
		t.Errorf("Phase = %v, want terminal", e.Phase())
	}
	if e.NextProblem(problemgen.Request{}) {
		t.Error("NextProblem should fail after the quiz ends")
	}
}

func TestEndGame_Idempotent(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(3)})
	e.EndGame() // idle: no-op
	if e.Phase() != PhaseIdle {
		t.Fatalf("Phase = %v, want idle", e.Phase())
	}

	_ = e.StartGame(Options{Mode: ModeQuiz, Topic: problemgen.TopicArithmetic, QuizSeconds: 30})
	e.EndGame()
	first := e.Snapshot()
	e.EndGame()
	second := e.Snapshot()

	if first.Active || second.Active {
		t.Error("expected inactive after EndGame")
	}
	if !first.EndedAt.Equal(second.EndedAt) {
		t.Errorf("EndedAt moved from %v to %v", first.EndedAt, second.EndedAt)
	}
	if e.Tick() {
		t.Error("Tick after EndGame reported active")
	}
	if *second.TimeRemaining != 30 {
		t.Errorf("TimeRemaining = %d, want 30", *second.TimeRemaining)
	}
}

func TestSnapshot_IsCopy(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(5)})
	if e.Snapshot() != nil {
		t.Fatal("Snapshot before StartGame should be nil")
	}
	_ = e.StartGame(Options{Mode: ModeQuiz, Topic: problemgen.TopicArithmetic, QuizSeconds: 20})
	answerCorrectly(t, e)

	snap := e.Snapshot()
	*snap.TimeRemaining = 999
	snap.History[0].Correct = false
	snap.CurrentProblem.Answer = -1

	s := e.Snapshot()
	if *s.TimeRemaining != 20 {
		t.Errorf("TimeRemaining leaked: %d", *s.TimeRemaining)
	}
	if !s.History[0].Correct {
		t.Error("History leaked")
	}
	if s.CurrentProblem.Answer == -1 {
		t.Error("CurrentProblem leaked")
	}
}

func TestDivisionScenario(t *testing.T) {
	gen := problemgen.New(randsrc.New(2024), nil)

	batch := gen.Arithmetic().Generate(5, problemgen.OpDivide, 100)
	if len(batch) != 5 {
		t.Fatalf("got %d problems, want 5", len(batch))
	}
	for _, p := range batch {
		q := p.Operand1 / p.Operand2
		if p.Operand2 < 2 || p.Operand2 > 10 || q < 2 || q > 10 || q*p.Operand2 != p.Operand1 {
			t.Errorf("%d ÷ %d outside the times-table window", p.Operand1, p.Operand2)
		}
	}

	e := newTestEngine(gen)
	err := e.StartGame(Options{
		Topic:   problemgen.TopicArithmetic,
		Request: problemgen.Request{Operator: problemgen.OpDivide, Range: 100},
	})
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	payload := e.Current().Payload.(problemgen.ArithmeticPayload)
	quotient := payload.Operand1 / payload.Operand2
	if res := e.CheckAnswer(float64(quotient)); !res.Correct {
		t.Errorf("exact quotient %d rejected for %s", quotient, res.AnswerText)
	}
	if e.Snapshot().Streak != 1 {
		t.Errorf("Streak = %d, want 1", e.Snapshot().Streak)
	}

	e.NextProblem(problemgen.Request{})
	payload = e.Current().Payload.(problemgen.ArithmeticPayload)
	quotient = payload.Operand1 / payload.Operand2
	if res := e.CheckAnswer(float64(quotient + 1)); res.Correct {
		t.Errorf("quotient+1 accepted for %d ÷ %d", payload.Operand1, payload.Operand2)
	}
	if e.Snapshot().Streak != 0 {
		t.Errorf("Streak = %d, want 0 after a miss", e.Snapshot().Streak)
	}
}

func TestBuildSummary(t *testing.T) {
	e := newTestEngine(&fixedSource{problems: additions(10)})
	_ = e.StartGame(Options{Mode: ModeQuiz, Topic: problemgen.TopicArithmetic, QuizSeconds: 60})
	answerCorrectly(t, e)
	answerCorrectly(t, e)
	missed := e.Current()
	e.CheckAnswer(-1)
	e.NextProblem(problemgen.Request{})
	answerCorrectly(t, e)
	e.EndGame()

	sum := BuildSummary(e.Snapshot())
	if sum.Answered != 4 || sum.CorrectCount != 3 || sum.WrongCount != 1 {
		t.Errorf("counts = %d answered, %d/%d", sum.Answered, sum.CorrectCount, sum.WrongCount)
	}
	if sum.Accuracy != 0.75 {
		t.Errorf("Accuracy = %v, want 0.75", sum.Accuracy)
	}
	if sum.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", sum.BestStreak)
	}
	if sum.Score != 10+11+10 {
		t.Errorf("Score = %d, want 31", sum.Score)
	}
	if len(sum.Missed) != 1 || sum.Missed[0].Problem.ID != missed.ID {
		t.Errorf("Missed = %+v, want %s", sum.Missed, missed.ID)
	}
	if sum.Duration <= 0 {
		t.Errorf("Duration = %v, want positive", sum.Duration)
	}
	if sum.Mode != ModeQuiz || sum.Topic != problemgen.TopicArithmetic {
		t.Errorf("summary = %s/%s", sum.Topic, sum.Mode)
	}
}

func TestParseMode(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Mode
		err  bool
	}{
		{"practice", ModePractice, false},
		{" Quiz ", ModeQuiz, false},
		{"timed", "", true},
	} {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}
