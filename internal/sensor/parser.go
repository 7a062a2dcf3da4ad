package sensor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// ErrMalformedOutput reports that the sensors output could not be parsed
// as a JSON document at all. Missing or unreadable fields inside an
// otherwise valid document are tolerated and never raise this.
var ErrMalformedOutput = errors.New("malformed sensors output")

// Parse converts raw `sensors -j` output into readings, preserving the
// document's emission order. The document is a nested object hierarchy
// (chip → feature → field on real hosts, chip → field on the emulator);
// every numeric leaf becomes a Reading classified by ClassifyKey.
//
// Leaves that are null, strings, or otherwise non-numeric reflect
// sensor-read failures and are skipped silently so a flaky sensor never
// fails the whole check. Raw values arrive scaled by 1000 and are
// converted to human units rounded to one decimal.
func Parse(raw string) ([]Reading, error) {
	dec := json.NewDecoder(strings.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedOutput)
	}

	readings, err := walkObject(dec, nil, []Reading{})
	if err != nil {
		return nil, err
	}

	// A corrupted transcript can carry junk after the document; nothing
	// but whitespace may follow the root object.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after sensors document", ErrMalformedOutput)
	}
	return readings, nil
}

// walkObject consumes one object whose opening brace has already been
// read, descending into nested objects and collecting numeric leaves.
// path holds the keys from the document root down to this object.
func walkObject(dec *json.Decoder, path []string, out []Reading) ([]Reading, error) {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key is not a string", ErrMalformedOutput)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}

		switch v := valTok.(type) {
		case json.Delim:
			if v == '{' {
				nested := append(append([]string(nil), path...), key)
				out, err = walkObject(dec, nested, out)
				if err != nil {
					return nil, err
				}
			} else {
				// Arrays never carry readings in sensors output.
				if err := skipCompound(dec); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
				}
			}
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			out = append(out, makeReading(path, key, v))
		default:
			// null, string, bool: an unreadable field, not a reading.
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return out, nil
}

// skipCompound discards the remainder of an array or object whose
// opening delimiter has already been consumed.
func skipCompound(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

func makeReading(path []string, key string, raw float64) Reading {
	chip := key
	label := key
	if len(path) > 0 {
		chip = path[0]
		label = strings.Join(append(append([]string(nil), path[1:]...), key), "/")
	}
	return Reading{
		Chip:  chip,
		Label: label,
		Kind:  ClassifyKey(key),
		Value: scale(raw),
	}
}

// scale converts a raw lm-sensors value (milli-units) to human units
// rounded to one decimal, e.g. 48425 → 48.4.
func scale(raw float64) float64 {
	return math.Round(raw/1000*10) / 10
}
