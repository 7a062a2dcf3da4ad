package sensor

import "strings"

// inputSuffix marks fields that carry an actual measurement. The other
// numeric fields on a feature (_max, _crit, _min, ...) are thresholds.
const inputSuffix = "_input"

// kindKeywordMap maps key-name keywords to reading kinds. First match wins.
var kindKeywordMap = []struct {
	keyword string
	kind    Kind
}{
	{"temp", KindTemperature},
	{"humidity", KindHumidity},
}

// ClassifyKey maps a leaf field key like "temp1_input" to a reading kind.
// Only *_input fields are measurements; any other field, and any input
// field without a recognized keyword (fans, voltages, currents),
// classifies as KindOther.
func ClassifyKey(key string) Kind {
	if !strings.HasSuffix(key, inputSuffix) {
		return KindOther
	}
	lower := strings.ToLower(key)
	for _, entry := range kindKeywordMap {
		if strings.Contains(lower, entry.keyword) {
			return entry.kind
		}
	}
	return KindOther
}
