// Package catalog implements the in-memory spare parts dataset: row
// normalization, the snapshot store with its serial index, the query engine,
// and the CSV ingestion pipeline that feeds them.
package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// serialCandidates is the ordered list of header names checked when resolving
// a record's serial number. The first non-empty match wins; if none match,
// the value of the first column in the row is used.
var serialCandidates = []string{"serial_number", "sn", "serial", "part_number", "partno"}

// Record is one normalized row of the source dataset. It is immutable once
// created: readers share Records across snapshots without copying.
type Record struct {
	// Fields holds every original column value, trimmed, keyed by the
	// trimmed header name.
	Fields map[string]string
	// Price is the parsed price column, nil when absent or unparseable.
	Price *float64
	// SearchName is the lowercased name column, "" when absent.
	SearchName string
	// Serial is the resolved serial number, "" when nothing usable exists.
	Serial string
}

// MarshalJSON emits the record flat: every original column plus the derived
// price, searchName and serial keys. Derived keys win over same-named
// columns, mirroring how the record is queried.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["price"] = r.Price
	out["searchName"] = r.SearchName
	out["serial"] = r.Serial
	return json.Marshal(out)
}

// Normalize converts one raw CSV row into a Record. headers and row are
// parallel slices; a row shorter than headers leaves the trailing columns
// absent. Normalize never fails: malformed values degrade to a nil Price or
// an empty Serial.
func Normalize(headers []string, row []string) Record {
	fields := make(map[string]string, len(headers))
	firstValue := ""
	for i, h := range headers {
		if i >= len(row) {
			break
		}
		v := strings.TrimSpace(row[i])
		fields[strings.TrimSpace(h)] = v
		if i == 0 {
			firstValue = v
		}
	}

	return Record{
		Fields:     fields,
		Price:      parsePrice(fields["price"]),
		SearchName: strings.ToLower(fields["name"]),
		Serial:     resolveSerial(fields, firstValue),
	}
}

// parsePrice extracts a number from a price cell that may carry currency
// symbols or thousands separators ("$1,299.50" -> 1299.5). Returns nil when
// nothing numeric remains or the result is not finite.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// resolveSerial walks the candidate headers in priority order, falling back
// to the first column's value.
func resolveSerial(fields map[string]string, firstValue string) string {
	for _, key := range serialCandidates {
		if v := fields[key]; v != "" {
			return v
		}
	}
	return firstValue
}
