package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"entregas/internal/deliveries"

	"github.com/rs/zerolog/log"
)

// DecodeBody classifies a response body and decodes it into raw records.
//
// Accepted shapes: a bare JSON array of objects, a JSON object with a "data"
// array, or CSV text with a header row. Any other JSON shape is a
// *DecodeError unless tolerant is set, in which case it degrades to an empty
// list with a warning (the legacy dashboard's behavior).
func DecodeBody(body []byte, tolerant bool) ([]deliveries.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []deliveries.RawRecord{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []any
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &DecodeError{Reason: "invalid JSON array", Err: err}
		}
		return recordsFromAny(items, tolerant)
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, &DecodeError{Reason: "invalid JSON object", Err: err}
		}
		items, ok := obj["data"].([]any)
		if !ok {
			if tolerant {
				log.Warn().Msg("Response is a JSON object without a 'data' array, treating as empty dataset")
				return []deliveries.RawRecord{}, nil
			}
			return nil, &DecodeError{Reason: "JSON object has no 'data' array"}
		}
		return recordsFromAny(items, tolerant)
	default:
		return decodeCSV(trimmed)
	}
}

func recordsFromAny(items []any, tolerant bool) ([]deliveries.RawRecord, error) {
	records := make([]deliveries.RawRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			if tolerant {
				log.Warn().Int("index", i).Msg("Skipping non-object array element")
				continue
			}
			return nil, &DecodeError{Reason: fmt.Sprintf("array element %d is not an object", i)}
		}
		records = append(records, deliveries.RawRecord(obj))
	}
	return records, nil
}

// decodeCSV parses CSV text into raw records keyed by the header row. All
// values stay strings; type coercion is the normalizer's job.
func decodeCSV(body []byte) ([]deliveries.RawRecord, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &DecodeError{Reason: "response is neither JSON nor CSV", Err: err}
	}
	if len(rows) == 0 {
		return []deliveries.RawRecord{}, nil
	}

	header := rows[0]
	records := make([]deliveries.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(deliveries.RawRecord, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
