package sensor

import (
	"errors"
	"testing"
)

const testSensorsJSON = `{
  "coretemp-isa-0000": {
    "Adapter": "ISA adapter",
    "Package id 0": {
      "temp1_input": 48000,
      "temp1_max": 101000,
      "temp1_crit": 115000
    },
    "Core 0": {
      "temp2_input": 46000,
      "temp2_max": 101000
    }
  },
  "sht31-i2c-1-44": {
    "Adapter": "i2c adapter",
    "humidity": {
      "humidity1_input": 45200
    },
    "temp": {
      "temp1_input": 24300
    }
  }
}`

func TestParse(t *testing.T) {
	readings, err := Parse(testSensorsJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var temps, hums, others []float64
	for _, r := range readings {
		switch r.Kind {
		case KindTemperature:
			temps = append(temps, r.Value)
		case KindHumidity:
			hums = append(hums, r.Value)
		case KindOther:
			others = append(others, r.Value)
		}
	}

	wantTemps := []float64{48.0, 46.0, 24.3}
	if len(temps) != len(wantTemps) {
		t.Fatalf("temps: got %v, want %v", temps, wantTemps)
	}
	for i := range wantTemps {
		if temps[i] != wantTemps[i] {
			t.Errorf("temps[%d]: got %v, want %v (emission order must hold)", i, temps[i], wantTemps[i])
		}
	}

	if len(hums) != 1 || hums[0] != 45.2 {
		t.Errorf("hums: got %v, want [45.2]", hums)
	}

	// temp1_max, temp1_crit, temp2_max are thresholds, kept as "other"
	if len(others) != 3 {
		t.Errorf("others: got %v, want 3 threshold values", others)
	}

	first := readings[0]
	if first.Chip != "coretemp-isa-0000" {
		t.Errorf("first chip: got %q", first.Chip)
	}
	if first.Label != "Package id 0/temp1_input" {
		t.Errorf("first label: got %q", first.Label)
	}
}

func TestParseEmulatorShape(t *testing.T) {
	// The emulator emits a flat chip → field document with no feature
	// level, followed by a newline.
	readings, err := Parse(`{"emulator": {"temp1_input": 24000, "humidity1_input": 50000}}` + "\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	if readings[0].Chip != "emulator" || readings[0].Label != "temp1_input" || readings[0].Value != 24.0 {
		t.Errorf("first reading: got %+v", readings[0])
	}
	if readings[1].Kind != KindHumidity || readings[1].Value != 50.0 {
		t.Errorf("second reading: got %+v", readings[1])
	}
}

func TestParseSkipsUnreadableFields(t *testing.T) {
	raw := `{
	  "chip1": {
	    "temp1_input": "not_a_number",
	    "temp2_input": null,
	    "humidity1_input": 50000
	  }
	}`
	readings, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d (%+v)", len(readings), readings)
	}
	if readings[0].Kind != KindHumidity || readings[0].Value != 50.0 {
		t.Errorf("reading: got %+v", readings[0])
	}
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"{invalid}",
		"[1, 2, 3]",
		"plain text, not JSON at all",
		`{"chip": {"temp1_input": 24000}`, // truncated
		`{"emulator": {"temp1_input": 24000}} ERROR: bus timeout`, // trailing junk
		`{"chip": {"temp1_input": 24000}}{"chip2": {}}`,           // second document
		"42",
	} {
		if _, err := Parse(raw); !errors.Is(err, ErrMalformedOutput) {
			t.Errorf("Parse(%q): got %v, want ErrMalformedOutput", raw, err)
		}
	}
}

func TestParseRounding(t *testing.T) {
	readings, err := Parse(`{"chip": {"temp1_input": 48425}}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if readings[0].Value != 48.4 {
		t.Errorf("got %v, want 48.4", readings[0].Value)
	}
}
