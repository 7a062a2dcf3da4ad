package sensor

import "testing"

func TestClassifyKey(t *testing.T) {
	tests := []struct {
		key  string
		want Kind
	}{
		{"temp1_input", KindTemperature},
		{"temp12_input", KindTemperature},
		{"humidity1_input", KindHumidity},
		{"fan1_input", KindOther},
		{"in0_input", KindOther},
		{"curr1_input", KindOther},
		{"temp1_max", KindOther},
		{"temp1_crit", KindOther},
		{"humidity1_max", KindOther},
		{"power1_average", KindOther},
	}
	for _, tt := range tests {
		got := ClassifyKey(tt.key)
		if got != tt.want {
			t.Errorf("ClassifyKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
