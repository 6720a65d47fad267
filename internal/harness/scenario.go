package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/headinthebox/async-await/internal/sexp"
)

// Scenario is one conformance case for the canonicalizer.
type Scenario struct {
	// Name keys the scenario; output scenarios compare against
	// testdata/golden/{name}.golden.
	Name string `yaml:"name"`

	// Description says what the scenario demonstrates.
	Description string `yaml:"description"`

	// Source is the source unit fed to the pipeline.
	Source string `yaml:"source"`

	// Width bounds flat S-expression lines. Zero means sexp.DefaultWidth.
	Width int `yaml:"width,omitempty"`

	// DesugarTry runs the try/catch/finally rewrite before
	// canonicalization.
	DesugarTry bool `yaml:"desugar_try,omitempty"`

	// WantError makes this a rejection scenario: the run must fail with a
	// diagnostic containing this substring, and no golden file is read.
	WantError string `yaml:"want_error,omitempty"`
}

// LoadScenario reads one scenario YAML file. Unknown fields are rejected so
// a misspelled key fails loudly instead of silently defaulting.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// validateScenario enforces the required fields and fills in the width
// default.
func validateScenario(s *Scenario) error {
	switch {
	case s.Name == "":
		return fmt.Errorf("scenario name is required")
	case s.Description == "":
		return fmt.Errorf("scenario description is required")
	case s.Source == "":
		return fmt.Errorf("scenario source is required")
	case s.Width < 0:
		return fmt.Errorf("scenario width must not be negative, got %d", s.Width)
	}

	if s.Width == 0 {
		s.Width = sexp.DefaultWidth
	}
	return nil
}
