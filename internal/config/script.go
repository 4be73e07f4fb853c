package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a recorded input sequence for a headless run.
type Script struct {
	Name   string        `yaml:"name"`
	Debug  bool          `yaml:"debug"`
	Actors []ActorScript `yaml:"actors"`
}

// ActorScript is the input timeline of one actor. Segments play back to back.
type ActorScript struct {
	Actor    int       `yaml:"actor"` // index into ArenaConfig.Actors
	Segments []Segment `yaml:"segments"`
}

// Segment holds the same input for a number of ticks.
type Segment struct {
	Ticks int       `yaml:"ticks"`
	Move  []float64 `yaml:"move"` // [x, y]; keyboard actors use the sign of each axis
	Aim   []float64 `yaml:"aim"`  // world point; omitted means no pointer
	Look  []float64 `yaml:"look"` // controller look axis; omitted means no look input
	Fire  bool      `yaml:"fire"`
}

// Ticks returns the length of the longest actor timeline.
func (s Script) Ticks() int {
	longest := 0
	for _, a := range s.Actors {
		n := 0
		for _, seg := range a.Segments {
			n += seg.Ticks
		}
		longest = max(longest, n)
	}
	return longest
}

// At returns the segment active for the actor timeline at tick.
// It reports false once the timeline has ended.
func (a ActorScript) At(tick int) (Segment, bool) {
	for _, seg := range a.Segments {
		if tick < seg.Ticks {
			return seg, true
		}
		tick -= seg.Ticks
	}
	return Segment{}, false
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse script: %w", err)
	}
	for _, a := range s.Actors {
		for i, seg := range a.Segments {
			if seg.Ticks < 0 {
				return s, fmt.Errorf("script: actor %d segment %d: negative ticks", a.Actor, i)
			}
			for _, v := range [][]float64{seg.Move, seg.Aim, seg.Look} {
				if len(v) != 0 && len(v) != 2 {
					return s, fmt.Errorf("script: actor %d segment %d: vectors must be [x, y]", a.Actor, i)
				}
			}
		}
	}
	return s, nil
}

// LoadScript loads a script from path. An empty path returns the embedded demo.
func LoadScript(path string) (Script, error) {
	if path == "" {
		return ParseScript(defaultScriptYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
