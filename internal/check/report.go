package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/sensorcheck/internal/sensor"
)

// ── Verdict styles ───────────────────────────────────────────────────

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	styleCrit = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Reporter renders a validation result plus its resolved exit code.
// Text mode is the default; JSON mode emits one machine-readable record.
type Reporter struct {
	Out  io.Writer
	JSON bool
}

type jsonReport struct {
	SensorsFound int         `json:"sensors_found"`
	Expected     int         `json:"expected"`
	TempValues   []float64   `json:"temp_values"`
	HumValues    []float64   `json:"hum_values"`
	Violations   []Violation `json:"violations"`
	ExitCode     int         `json:"exit_code"`
}

// Report writes the run summary. The caller exits with code afterwards;
// writing the report is the run's only observable side effect besides
// the exit code itself.
func (rp Reporter) Report(res Result, expected Expected, code int) error {
	if rp.JSON {
		return json.NewEncoder(rp.Out).Encode(jsonReport{
			SensorsFound: res.TotalFound,
			Expected:     expected.ExpectedSensors,
			TempValues:   res.TempValues,
			HumValues:    res.HumValues,
			Violations:   res.Violations,
			ExitCode:     code,
		})
	}
	return rp.reportText(res, expected, code)
}

func (rp Reporter) reportText(res Result, expected Expected, code int) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Found %d temp sensors and %d humidity sensors (total %d)\n",
		len(res.TempValues), len(res.HumValues), res.TotalFound)
	fmt.Fprintf(&b, "Temperature values: %s\n", formatValues(res.TempValues))
	fmt.Fprintf(&b, "Humidity values:    %s\n", formatValues(res.HumValues))

	for _, v := range res.Violations {
		rng := expected.TempRange
		if v.Kind == sensor.KindHumidity {
			rng = expected.HumRange
		}
		fmt.Fprintf(&b, "- %s %s: %g out of %s\n", v.Kind, v.Label, v.Value, rng)
	}

	b.WriteString(verdictLine(res, expected, code))
	b.WriteByte('\n')

	_, err := io.WriteString(rp.Out, b.String())
	return err
}

func verdictLine(res Result, expected Expected, code int) string {
	switch code {
	case ExitMissingSensors:
		return styleWarn.Render(fmt.Sprintf("Missing sensors: expected %d, found %d, exiting %d",
			expected.ExpectedSensors, res.TotalFound, code))
	case ExitOutOfRange:
		return styleCrit.Render(fmt.Sprintf("Out-of-range values found, exiting %d", code))
	default:
		return styleOK.Render(fmt.Sprintf("All sensors within range, exiting %d", code))
	}
}

func formatValues(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
