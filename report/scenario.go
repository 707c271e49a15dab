package report

import (
	"strings"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/intake"
)

// Scenario selects which pages a report contains.
type Scenario string

const (
	ScenarioAdult  Scenario = "adult"
	ScenarioChild  Scenario = "child"
	ScenarioCouple Scenario = "couple"
)

// Scenarios lists every known scenario.
var Scenarios = []Scenario{ScenarioAdult, ScenarioChild, ScenarioCouple}

// ParseScenario validates a scenario name (case-insensitive).
func ParseScenario(s string) (Scenario, error) {
	sc := Scenario(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Scenarios {
		if sc == known {
			return sc, nil
		}
	}
	return "", errors.WithHint(
		errors.NewInvalidArgumentError("unknown scenario %q", s),
		"use one of: adult, child, couple",
	)
}

// Clients is the number of clients the scenario takes.
func (s Scenario) Clients() int {
	if s == ScenarioCouple {
		return 2
	}
	return 1
}

// AgeClass is the age every client of the scenario must satisfy.
func (s Scenario) AgeClass() intake.AgeClass {
	switch s {
	case ScenarioAdult, ScenarioCouple:
		return intake.Adult
	case ScenarioChild:
		return intake.Child
	}
	return intake.AnyAge
}

// Pointers are the triangle pages built for each client.
func (s Scenario) Pointers() []arcane.Pointer {
	if s == ScenarioChild {
		return arcane.ChildPointers
	}
	return arcane.Pointers
}

// Request is one report to build.
type Request struct {
	Scenario Scenario        `json:"scenario" yaml:"scenario"`
	Clients  []arcane.Client `json:"clients" yaml:"clients"`
}

// Validate checks the client count against the scenario.
func (r Request) Validate() error {
	if _, err := ParseScenario(string(r.Scenario)); err != nil {
		return err
	}
	if len(r.Clients) != r.Scenario.Clients() {
		return errors.NewInvalidArgumentError("scenario %s takes %d client(s), got %d",
			r.Scenario, r.Scenario.Clients(), len(r.Clients))
	}
	return nil
}
