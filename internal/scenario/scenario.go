// scenario.go — Scenario: a named, replayable chain of actions with
// parameters, dependencies and metadata.
package scenario

import "time"

// ParameterType is the declared type of a scenario parameter.
type ParameterType string

const (
	ParamString ParameterType = "string"
	ParamNumber ParameterType = "number"
	ParamBool   ParameterType = "bool"
	ParamSecret ParameterType = "secret"
)

// Parameter declares one substitutable value referenced from action payloads
// via a {{name}} placeholder.
type Parameter struct {
	Name         string        `json:"name"`
	Type         ParameterType `json:"type"`
	Required     bool          `json:"required"`
	DefaultValue string        `json:"default_value,omitempty"`
	Description  string        `json:"description,omitempty"`
}

// Output declares one named value an extract action produces, made
// available to dependent scenarios as {{scenarioName.outputName}}.
type Output struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Metadata is descriptive, non-functional information about a scenario.
type Metadata struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	StartURL    string    `json:"start_url,omitempty"`
	Author      string    `json:"author,omitempty"`
}

// Scenario is a named, replayable chain of actions.
type Scenario struct {
	Name         string           `json:"name"`
	Version      int              `json:"version"`
	Actions      []Action         `json:"actions"`
	Parameters   []Parameter      `json:"parameters,omitempty"`
	Outputs      []Output         `json:"outputs,omitempty"`
	Dependencies []DependencyEdge `json:"dependencies,omitempty"`
	Metadata     Metadata         `json:"metadata"`
}

// Parameter looks up a declared parameter by name.
func (s *Scenario) Parameter(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Clone returns a deep copy of the scenario, used before parameter
// substitution and before optimiser passes so the caller's copy is
// never mutated in place.
func (s Scenario) Clone() Scenario {
	out := s
	if s.Actions != nil {
		out.Actions = make([]Action, len(s.Actions))
		for i, a := range s.Actions {
			out.Actions[i] = a.Clone()
		}
	}
	if s.Parameters != nil {
		out.Parameters = append([]Parameter(nil), s.Parameters...)
	}
	if s.Outputs != nil {
		out.Outputs = append([]Output(nil), s.Outputs...)
	}
	if s.Dependencies != nil {
		out.Dependencies = append([]DependencyEdge(nil), s.Dependencies...)
	}
	if s.Metadata.Tags != nil {
		out.Metadata.Tags = append([]string(nil), s.Metadata.Tags...)
	}
	return out
}
