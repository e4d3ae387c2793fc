package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Keyword is one weighted scoring term for the heuristic grader.
type Keyword struct {
	Term   string `yaml:"term" json:"term"`
	Weight int    `yaml:"weight" json:"weight"`
}

// Scenario is one compliance-training moment. Keywords are the heuristic
// scoring table and are never serialized toward the client.
type Scenario struct {
	ID       string    `yaml:"id" json:"id"`
	Label    string    `yaml:"label" json:"label"`
	Prompt   string    `yaml:"prompt" json:"prompt"`
	Keywords []Keyword `yaml:"keywords" json:"-"`
}

// Catalog is the immutable set of scenarios, loaded once at startup.
type Catalog struct {
	byID  map[string]Scenario
	order []string
}

// New builds a catalog from a scenario list, preserving order.
func New(scenarios []Scenario) *Catalog {
	c := &Catalog{byID: make(map[string]Scenario, len(scenarios))}
	for _, s := range scenarios {
		if _, ok := c.byID[s.ID]; ok {
			continue
		}
		c.byID[s.ID] = s
		c.order = append(c.order, s.ID)
	}
	return c
}

// Load reads the catalog from path, or from the embedded default when
// path is empty.
func Load(path string) (*Catalog, error) {
	raw := defaultCatalogYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scenario catalog: %w", err)
		}
		raw = b
	}
	var doc struct {
		Scenarios []Scenario `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse scenario catalog: %w", err)
	}
	if len(doc.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario catalog is empty")
	}
	for _, s := range doc.Scenarios {
		if s.ID == "" || s.Prompt == "" {
			return nil, fmt.Errorf("scenario %q missing id or prompt", s.ID)
		}
	}
	return New(doc.Scenarios), nil
}

// Get returns the scenario for id, if present.
func (c *Catalog) Get(id string) (Scenario, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// List returns scenarios in catalog order with the scoring keywords
// stripped, suitable for showing to trainees.
func (c *Catalog) List() []Scenario {
	out := make([]Scenario, 0, len(c.order))
	for _, id := range c.order {
		s := c.byID[id]
		s.Keywords = nil
		out = append(out, s)
	}
	return out
}
