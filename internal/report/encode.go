package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// cborEncMode uses Core Deterministic Encoding so identical records encode
// to identical bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode serializes rec in the given format
func Encode(rec Record, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("failed to encode yaml record: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml record: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json record: %w", err)
		}
		return append(data, '\n'), nil
	case FormatCBOR:
		data, err := cborEncMode.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to encode cbor record: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Decode parses a record previously written by Encode
func Decode(data []byte, format Format) (Record, error) {
	var rec Record
	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &rec)
	case FormatJSON:
		err = json.Unmarshal(data, &rec)
	case FormatCBOR:
		err = cbor.Unmarshal(data, &rec)
	default:
		return rec, fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return rec, fmt.Errorf("failed to decode %s record: %w", format, err)
	}
	return rec, nil
}
