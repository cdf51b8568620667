package doublestate

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlTable struct {
	States []yamlState `yaml:"states"`
}

type yamlState struct {
	Name      StateID   `yaml:"name"`
	Default   bool      `yaml:"default"`
	Linear    StateID   `yaml:"linear"`
	Arbitrary []StateID `yaml:"arbitrary"`
}

// ParseYAML reads a table declaration. Each entry names a state and its
// annotations: an optional "linear" successor, an optional "arbitrary"
// successor list and an optional "default" flag. A state with arbitrary
// successors is arbitrary (its linear successor, if any, becomes its linear
// edge), a state with only a linear successor is linear, anything else is
// terminal.
func ParseYAML(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlTable
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse declarations: empty document")
		}
		return nil, fmt.Errorf("parse declarations: %w", err)
	}

	d := NewDefinition()
	for i, s := range doc.States {
		if s.Name == "" {
			return nil, fmt.Errorf("parse declarations: state %d has no name", i)
		}
		d.Declare(s.declaration())
	}
	return d, nil
}

func (s yamlState) declaration() Declaration {
	decl := Declaration{
		State:   s.Name,
		Default: s.Default,
	}
	switch {
	case len(s.Arbitrary) > 0:
		decl.Kind = KindArbitrary
		decl.Successors = append([]StateID(nil), s.Arbitrary...)
		if s.Linear != "" {
			WithLinearEdge(s.Linear)(&decl)
		}
	case s.Linear != "":
		decl.Kind = KindLinear
		decl.Successors = []StateID{s.Linear}
		decl.LinearEdge = s.Linear
	default:
		decl.Kind = KindTerminal
	}
	return decl
}
