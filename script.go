package reed

import (
	"encoding/json"
	"fmt"
)

// strokeStep is a single action in a stroke script.
type strokeStep struct {
	Action   string   `json:"action"` // "down", "move", or "up"
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	T        float64  `json:"t"` // milliseconds
	Pressure *float64 `json:"pressure,omitempty"`
}

// strokeScriptFile is the top-level JSON structure for a stroke script.
type strokeScriptFile struct {
	Steps []strokeStep `json:"steps"`
}

// StrokeScript is a recorded, timestamped pointer sequence that can be
// replayed through a Pipeline deterministically. Scripts are JSON:
//
//	{"steps": [
//	  {"action": "down", "x": 10, "y": 10, "t": 0},
//	  {"action": "move", "x": 20, "y": 12, "t": 16, "pressure": 0.6},
//	  {"action": "up",   "x": 20, "y": 12, "t": 32}
//	]}
//
// Replay makes filter tuning reproducible: the same script through the same
// pipeline configuration always yields the same geometry, which is how
// regression fixtures for stabilization settings are kept.
type StrokeScript struct {
	steps []strokeStep
}

// LoadStrokeScript parses a JSON stroke script.
func LoadStrokeScript(jsonData []byte) (*StrokeScript, error) {
	var file strokeScriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse stroke script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse stroke script: no steps")
	}
	for i, step := range file.Steps {
		switch step.Action {
		case "down", "move", "up":
		default:
			return nil, fmt.Errorf("parse stroke script: step %d has unknown action %q", i, step.Action)
		}
	}
	return &StrokeScript{steps: file.Steps}, nil
}

// Len returns the number of steps in the script.
func (s *StrokeScript) Len() int {
	return len(s.steps)
}

// Points returns the script's down and move steps as pointer samples,
// ignoring stroke boundaries. Useful for feeding filters directly.
func (s *StrokeScript) Points() []PointerPoint {
	out := make([]PointerPoint, 0, len(s.steps))
	for _, step := range s.steps {
		if step.Action == "up" {
			continue
		}
		out = append(out, step.point())
	}
	return out
}

// point converts a step to a pointer sample.
func (st strokeStep) point() PointerPoint {
	p := PointerPoint{X: st.X, Y: st.Y, Timestamp: st.T}
	if st.Pressure != nil {
		p.Pressure = *st.Pressure
		p.HasPressure = true
	}
	return p
}

// Run replays the script through the pipeline and returns one finished
// stroke per down..up span, in order. A "down" resets the pipeline and
// starts a stroke; "move" feeds a sample; "up" finishes the stroke. A
// trailing stroke without an "up" is finished at the end of the script.
// Strokes whose every sample was rejected are omitted.
func (s *StrokeScript) Run(p *Pipeline) [][]Point {
	var strokes [][]Point
	inStroke := false

	finish := func() {
		stroke := p.Finish()
		if len(stroke) > 0 {
			strokes = append(strokes, stroke)
		}
		inStroke = false
	}

	for _, step := range s.steps {
		switch step.Action {
		case "down":
			if inStroke {
				finish()
			}
			p.Reset()
			p.Process(step.point())
			inStroke = true
		case "move":
			p.Process(step.point())
			inStroke = true
		case "up":
			if inStroke {
				finish()
			}
		}
	}
	if inStroke {
		finish()
	}
	return strokes
}
