package starfield

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a request script.
type scriptStep struct {
	Action string `json:"action"`
	Star   int    `json:"star,omitempty"`
	Seed   int32  `json:"seed,omitempty"`
	Ticks  int    `json:"ticks,omitempty"`
}

// script is the top-level JSON structure for a request script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences regeneration requests across ticks for demos and
// automated runs. Requests go through the field's Dispatcher, the same path
// HTTP requests take. Attach to a Field via SetScript.
//
//	{"steps": [
//	  {"action": "regenerate", "star": 1, "seed": 42},
//	  {"action": "wait", "ticks": 900},
//	  {"action": "regenerate", "star": 0, "seed": 7}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON request script and returns a ScriptRunner ready
// to be attached to a Field via SetScript.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "regenerate", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Consecutive regenerate steps run in
// the same tick; a wait step consumes its tick count.
func (r *ScriptRunner) step(f *Field) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.done = r.waitCount == 0 && r.cursor >= len(r.steps)
		return
	}

	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++

		if st.Action == "wait" {
			if st.Ticks > 0 {
				r.waitCount = st.Ticks - 1 // this tick counts as one
			}
			break
		}
		if err := f.Dispatcher().Submit(st.Star, st.Seed); err != nil {
			Logger().Warn("script step rejected", "step", r.cursor-1, "error", err)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
