package wordproblem

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/randsrc"
)

// WordProblem is a rendered story with the numerals injected into it.
type WordProblem struct {
	TemplateID string
	Text       string
	Operator   problemgen.Operator
	Operand1   int
	Operand2   int
	Answer     int
	Actor      Actor
	Friend     Actor
	Item       Item
}

// Payload converts the rendered story into a problem payload.
func (w WordProblem) Payload() problemgen.WordPayload {
	return problemgen.WordPayload{
		TemplateID: w.TemplateID,
		Text:       w.Text,
		Operator:   w.Operator,
		Operand1:   w.Operand1,
		Operand2:   w.Operand2,
	}
}

// Engine picks templates and fills them in.
type Engine struct {
	catalog *Catalog
	src     randsrc.Source
	title   cases.Caser
}

// NewEngine creates an Engine over catalog. A nil catalog uses the
// embedded default.
func NewEngine(catalog *Catalog, src randsrc.Source) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{
		catalog: catalog,
		src:     src,
		title:   cases.Title(language.English, cases.NoLower),
	}
}

// Generate renders one story for grade and operator. OpMixed allows any
// operator. When nothing matches, grade-1 templates are used instead.
func (e *Engine) Generate(grade int, op problemgen.Operator) WordProblem {
	t := randsrc.Pick(e.src, e.candidates(grade, op))

	// Slots resolve in a fixed order so a seed always yields the same story.
	actor := randsrc.Pick(e.src, e.catalog.Actors)
	friend := e.pickFriend(actor)
	item := randsrc.Pick(e.src, e.catalog.Items)
	a, b := e.numerals(t)

	answer := problemgen.ArithmeticPayload{Operand1: a, Operand2: b, Operator: t.Operator}.Answer()

	return WordProblem{
		TemplateID: t.ID,
		Text:       e.render(t, actor, friend, item, a, b),
		Operator:   t.Operator,
		Operand1:   a,
		Operand2:   b,
		Answer:     answer,
		Actor:      actor,
		Friend:     friend,
		Item:       item,
	}
}

// NextWordProblem implements problemgen.WordSource.
func (e *Engine) NextWordProblem(grade int, op problemgen.Operator) (problemgen.WordPayload, float64) {
	w := e.Generate(grade, op)
	return w.Payload(), float64(w.Answer)
}

func (e *Engine) candidates(grade int, op problemgen.Operator) []*Template {
	matches := func(t *Template) bool {
		return op == problemgen.OpMixed || op == problemgen.OpNone || t.Operator == op
	}

	var eligible, gradeOne, gradeOneOp []*Template
	for i := range e.catalog.Templates {
		t := &e.catalog.Templates[i]
		if t.MinGrade <= grade && matches(t) {
			eligible = append(eligible, t)
		}
		if t.MinGrade <= 1 {
			gradeOne = append(gradeOne, t)
			if matches(t) {
				gradeOneOp = append(gradeOneOp, t)
			}
		}
	}

	switch {
	case len(eligible) > 0:
		return eligible
	case len(gradeOneOp) > 0:
		return gradeOneOp
	case len(gradeOne) > 0:
		return gradeOne
	}
	// A catalog with no grade-1 templates still yields something.
	all := make([]*Template, len(e.catalog.Templates))
	for i := range e.catalog.Templates {
		all[i] = &e.catalog.Templates[i]
	}
	return all
}

// numerals draws operands within the template bounds. Subtraction never
// goes negative and division is always exact.
func (e *Engine) numerals(t *Template) (int, int) {
	switch t.Operator {
	case problemgen.OpSubtract:
		a := randsrc.Between(e.src, t.Min, t.Max)
		b := randsrc.Between(e.src, t.Min, a)
		return a, b
	case problemgen.OpDivide:
		divisor := randsrc.Between(e.src, max(2, t.Min), max(2, t.Max))
		quotient := randsrc.Between(e.src, t.Min, t.Max)
		return divisor * quotient, divisor
	default:
		return randsrc.Between(e.src, t.Min, t.Max), randsrc.Between(e.src, t.Min, t.Max)
	}
}

func (e *Engine) pickFriend(actor Actor) Actor {
	others := make([]Actor, 0, len(e.catalog.Actors))
	for _, a := range e.catalog.Actors {
		if a.Name != actor.Name {
			others = append(others, a)
		}
	}
	if len(others) == 0 {
		return actor
	}
	return randsrc.Pick(e.src, others)
}

func (e *Engine) render(t *Template, actor, friend Actor, item Item, a, b int) string {
	forms := e.catalog.Agreement.For(actor.Gender)
	values := map[string]string{
		"name":    actor.Name,
		"friend":  friend.Name,
		"he":      forms.He,
		"He":      e.title.String(forms.He),
		"him":     forms.Him,
		"his":     forms.His,
		"His":     e.title.String(forms.His),
		"himself": forms.Himself,
		"verb":    t.VerbForms[actor.Gender],
		"a":       strconv.Itoa(a),
		"b":       strconv.Itoa(b),
		"a_items": item.Count(a),
		"b_items": item.Count(b),
		"item":    item.Singular,
		"items":   item.Plural,
	}

	text := placeholderRe.ReplaceAllStringFunc(t.Text, func(m string) string {
		key := strings.Trim(m, "{}")
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
	return text
}
