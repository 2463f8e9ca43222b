package wordproblem

import "fmt"

// Gender is the grammatical gender of an actor or item. It selects the
// pronoun and verb forms rendered into a template.
type Gender int

const (
	Masculine Gender = iota
	Feminine
)

// AllGenders returns both genders in catalog order.
func AllGenders() []Gender {
	return []Gender{Masculine, Feminine}
}

func (g Gender) String() string {
	switch g {
	case Masculine:
		return "masculine"
	case Feminine:
		return "feminine"
	default:
		return fmt.Sprintf("Gender(%d)", int(g))
	}
}

// ParseGender converts a catalog gender name into a Gender.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "masculine":
		return Masculine, nil
	case "feminine":
		return Feminine, nil
	}
	return 0, fmt.Errorf("unknown gender %q", s)
}

func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gender) UnmarshalText(b []byte) error {
	parsed, err := ParseGender(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Forms holds the gender-dependent words an actor placeholder can render to.
type Forms struct {
	He      string `json:"he"`
	Him     string `json:"him"`
	His     string `json:"his"`
	Himself string `json:"himself"`
}

// Agreement maps each gender to its pronoun forms.
type Agreement map[Gender]Forms

// For returns the forms for g.
func (a Agreement) For(g Gender) Forms {
	return a[g]
}

// VerbForms holds a template's verb phrase for each gender.
type VerbForms map[Gender]string

