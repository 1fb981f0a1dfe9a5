// Package workflow holds the ticket state machine as static configuration.
// States and their transitions come from workflow.yaml so the whole graph is
// inspectable and testable independently of the web layer.
package workflow

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed workflow.yaml
var defaultConfig []byte

type Transition struct {
	Name   string `yaml:"name"`
	Verb   string `yaml:"verb"`
	Target int    `yaml:"target"`
}

type State struct {
	Code        int          `yaml:"code"`
	Name        string       `yaml:"name"`
	Active      bool         `yaml:"active"`
	Transitions []Transition `yaml:"transitions"`
}

type Table struct {
	initial int
	states  map[int]State
}

type rawTable struct {
	Initial int     `yaml:"initial"`
	States  []State `yaml:"states"`
}

// Load parses and validates a workflow table. Every transition must target a
// defined state, carry a verb, and be unique by name within its state.
func Load(data []byte) (*Table, error) {
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	states := make(map[int]State, len(raw.States))
	for _, s := range raw.States {
		if _, dup := states[s.Code]; dup {
			return nil, fmt.Errorf("workflow: duplicate state code %d", s.Code)
		}
		states[s.Code] = s
	}

	if _, ok := states[raw.Initial]; !ok {
		return nil, fmt.Errorf("workflow: initial state %d is not defined", raw.Initial)
	}

	for _, s := range states {
		seen := make(map[string]bool, len(s.Transitions))
		for _, tr := range s.Transitions {
			if tr.Name == "" || tr.Verb == "" {
				return nil, fmt.Errorf("workflow: state %d has a transition without name or verb", s.Code)
			}
			if seen[tr.Name] {
				return nil, fmt.Errorf("workflow: state %d defines transition %q twice", s.Code, tr.Name)
			}
			seen[tr.Name] = true
			if _, ok := states[tr.Target]; !ok {
				return nil, fmt.Errorf("workflow: state %d transition %q targets undefined state %d", s.Code, tr.Name, tr.Target)
			}
		}
	}

	return &Table{initial: raw.Initial, states: states}, nil
}

func MustLoad(data []byte) *Table {
	t, err := Load(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Default is the workflow shipped with the application.
var Default = MustLoad(defaultConfig)

func (t *Table) Initial() int {
	return t.initial
}

func (t *Table) StateName(code int) string {
	return t.states[code].Name
}

func (t *Table) IsDefined(code int) bool {
	_, ok := t.states[code]
	return ok
}

// ActiveStates returns the state codes shown in active listings.
func (t *Table) ActiveStates() []int {
	var codes []int
	for code, s := range t.states {
		if s.Active {
			codes = append(codes, code)
		}
	}
	return codes
}

// Verbs returns the transitions valid from the given state as a map of
// transition name to human-readable verb. Unknown states yield an empty map.
func (t *Table) Verbs(code int) map[string]string {
	verbs := make(map[string]string)
	for _, tr := range t.states[code].Transitions {
		verbs[tr.Name] = tr.Verb
	}
	return verbs
}

// Apply resolves a transition by name from the given state. It reports
// whether the transition is valid; the state machine itself never mutates
// anything.
func (t *Table) Apply(code int, name string) (target int, verb string, ok bool) {
	for _, tr := range t.states[code].Transitions {
		if tr.Name == name {
			return tr.Target, tr.Verb, true
		}
	}
	return code, "", false
}
