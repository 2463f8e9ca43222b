// Package wordproblem renders narrative arithmetic problems from a catalog
// of templates, actors, and counted items, with pronoun and verb agreement
// resolved from each actor's grammatical gender.
package wordproblem

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

//go:embed catalog.json
var catalogJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

const catalogSchemaURL = "schema://wordproblem/catalog.json"

// Actor is a named person in a story.
type Actor struct {
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// Item is a countable noun with its singular and plural forms.
type Item struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
	// Gender is reserved for catalogs in languages where articles or
	// adjectives agree with the noun. English rendering ignores it.
	Gender Gender `json:"gender"`
}

// Count renders n followed by the correctly inflected noun.
func (it Item) Count(n int) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", it.Singular)
	}
	return fmt.Sprintf("%d %s", n, it.Plural)
}

// Template is one story shape with placeholders for names, numerals,
// items, and agreement forms.
type Template struct {
	ID       string              `json:"id"`
	Text     string              `json:"text"`
	Operator problemgen.Operator `json:"operator"`
	// Min and Max bound the numerals drawn for this template.
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	MinGrade  int       `json:"minGrade"`
	VerbForms VerbForms `json:"verbForms"`
}

// Catalog is the validated set of story material.
type Catalog struct {
	Agreement Agreement  `json:"agreement"`
	Actors    []Actor    `json:"actors"`
	Items     []Item     `json:"items"`
	Templates []Template `json:"templates"`

	byID map[string]*Template
}

// Template returns the template with the given ID.
func (c *Catalog) Template(id string) (*Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_]+)\}`)

var knownPlaceholders = map[string]bool{
	"name": true, "friend": true,
	"he": true, "He": true, "him": true, "his": true, "His": true, "himself": true,
	"verb": true,
	"a": true, "b": true, "a_items": true, "b_items": true,
	"item": true, "items": true,
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(catalogSchemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(catalogSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// LoadCatalog parses and validates a catalog document.
func LoadCatalog(data []byte) (*Catalog, error) {
	schema, err := catalogSchema()
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

// index builds the ID lookup and checks what the schema cannot express.
func (c *Catalog) index() error {
	c.byID = make(map[string]*Template, len(c.Templates))
	for i := range c.Templates {
		t := &c.Templates[i]
		if _, dup := c.byID[t.ID]; dup {
			return fmt.Errorf("duplicate template id %q", t.ID)
		}
		if t.Min > t.Max {
			return fmt.Errorf("template %q: min %d exceeds max %d", t.ID, t.Min, t.Max)
		}
		for _, m := range placeholderRe.FindAllStringSubmatch(t.Text, -1) {
			if !knownPlaceholders[m[1]] {
				return fmt.Errorf("template %q: unknown placeholder {%s}", t.ID, m[1])
			}
		}
		c.byID[t.ID] = t
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// document is invalid.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := LoadCatalog(catalogJSON)
		if err != nil {
			panic(fmt.Sprintf("wordproblem: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}
