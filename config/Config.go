// Package config loads training configurations from YAML files and
// overlays them with GRIDLEARN_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gridlearn/gridlearn/agent"
	"github.com/gridlearn/gridlearn/experiment"
	"gonum.org/v1/gonum/spatial/r1"
	"gopkg.in/yaml.v3"
)

// Interval is the YAML form of a closed bound on a numeric field
type Interval struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// file is the layout of a configuration file. Every experiment.Config
// field sits at the top level next to an optional bounds section.
type file struct {
	experiment.Config `yaml:",inline"`
	Bounds            map[experiment.Field]Interval `yaml:"bounds"`
}

// Load reads the configuration file at path, see Parse
func Load(path string) (experiment.Config, experiment.Bounds, error) {
	f, err := os.Open(path)
	if err != nil {
		return experiment.Config{}, nil, fmt.Errorf("load: %w: %v",
			experiment.ErrConfiguration, err)
	}
	defer f.Close()

	c, b, err := Parse(f)
	if err != nil {
		return experiment.Config{}, nil, fmt.Errorf("load %v: %w", path, err)
	}
	return c, b, nil
}

// Parse decodes a YAML configuration. Fields missing from the document
// keep the values of experiment.DefaultConfig for the configured
// algorithm, which is Q-Learning when none is given. Unknown fields are
// errors. The returned configuration is not validated.
func Parse(r io.Reader) (experiment.Config, experiment.Bounds, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return experiment.Config{}, nil, fmt.Errorf("parse: %w", err)
	}

	// The algorithm selects the defaults the rest of the document
	// overrides
	var head struct {
		Algorithm agent.Type `yaml:"algorithm"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return experiment.Config{}, nil, decodeError(err)
	}
	if head.Algorithm == "" {
		head.Algorithm = agent.QLearning
	}

	doc := file{Config: experiment.DefaultConfig(head.Algorithm)}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return experiment.Config{}, nil, decodeError(err)
	}

	var bounds experiment.Bounds
	if len(doc.Bounds) > 0 {
		bounds = make(experiment.Bounds, len(doc.Bounds))
		for field, i := range doc.Bounds {
			if i.Min > i.Max {
				return experiment.Config{}, nil, fmt.Errorf("parse: %w: "+
					"empty bound on %v: [%v, %v]", experiment.ErrConfiguration,
					field, i.Min, i.Max)
			}
			bounds[field] = r1.Interval{Min: i.Min, Max: i.Max}
		}
	}
	return doc.Config, bounds, nil
}

func decodeError(err error) error {
	return fmt.Errorf("parse: %w: %v", experiment.ErrConfiguration, err)
}
