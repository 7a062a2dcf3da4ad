// Package check validates normalized sensor readings against operator
// expectations and resolves the run's verdict and report.
package check

import (
	"fmt"

	"github.com/luki/sensorcheck/internal/sensor"
)

// Range is an inclusive [Min, Max] bound.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Valid reports whether Min ≤ Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("%g..%g", r.Min, r.Max)
}

// Expected holds the operator-declared expectations, fixed for the run.
type Expected struct {
	ExpectedSensors int // total temperature + humidity sensors, exact match
	TempRange       Range
	HumRange        Range
}

// Violation is one reading that failed its range check.
type Violation struct {
	Kind  sensor.Kind `json:"kind"`
	Label string      `json:"label"`
	Value float64     `json:"value"`
}

// Result is the outcome of one validation pass.
type Result struct {
	TotalFound int
	TempValues []float64 // reading emission order
	HumValues  []float64
	CountOK    bool
	Violations []Violation // all of them, in reading order
}

// Validate applies the count and range checks to a reading list. It is
// a pure function: no I/O, deterministic for identical inputs. Both
// checks are always computed, even when one already failed, and every
// violation is collected so the report can list all offending values.
func Validate(readings []sensor.Reading, expected Expected) Result {
	res := Result{
		TempValues: []float64{},
		HumValues:  []float64{},
		Violations: []Violation{},
	}

	for _, r := range readings {
		if !r.Qualifying() {
			// "other" readings are diagnostics only.
			continue
		}
		switch r.Kind {
		case sensor.KindTemperature:
			res.TempValues = append(res.TempValues, r.Value)
			if !expected.TempRange.Contains(r.Value) {
				res.Violations = append(res.Violations, Violation{Kind: r.Kind, Label: r.Key(), Value: r.Value})
			}
		case sensor.KindHumidity:
			res.HumValues = append(res.HumValues, r.Value)
			if !expected.HumRange.Contains(r.Value) {
				res.Violations = append(res.Violations, Violation{Kind: r.Kind, Label: r.Key(), Value: r.Value})
			}
		}
	}

	res.TotalFound = len(res.TempValues) + len(res.HumValues)
	res.CountOK = res.TotalFound == expected.ExpectedSensors
	return res
}
