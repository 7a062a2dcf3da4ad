// Package sensor parses the JSON emitted by lm-sensors (`sensors -j`)
// into normalized temperature and humidity readings. It only extracts
// structure; value validation lives elsewhere.
package sensor

// Kind classifies what a reading measures.
type Kind string

const (
	KindTemperature Kind = "temperature"
	KindHumidity    Kind = "humidity"
	KindOther       Kind = "other"
)

// Reading represents a single measurement from the sensors output.
type Reading struct {
	Chip  string  // e.g. "coretemp-isa-0000"
	Label string  // slash-joined path below the chip, e.g. "Core 0/temp2_input"
	Kind  Kind
	Value float64 // °C for temperature, % relative humidity for humidity
}

// Key returns an identifier for this reading within its document.
func (r Reading) Key() string {
	return r.Chip + "/" + r.Label
}

// Qualifying reports whether the reading counts toward the expected
// sensor total. Only temperature and humidity do; other readings are
// kept for diagnostics but never counted or range-checked.
func (r Reading) Qualifying() bool {
	return r.Kind == KindTemperature || r.Kind == KindHumidity
}
