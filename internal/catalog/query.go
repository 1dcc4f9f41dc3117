// Implements the filter -> sort -> paginate query pipeline over a snapshot.

package catalog

import (
	"slices"
	"strconv"
	"strings"
)

// DefaultPageSize is applied when a query does not carry a usable page size.
const DefaultPageSize = 30

// Filter holds the optional search criteria of a query. Provided criteria
// are intersected: a record must satisfy every one of them.
type Filter struct {
	// Name matches as a case-insensitive substring of the record's name.
	Name string
	// SN matches as a case-insensitive substring of the record's serial.
	SN string
	// Search matches as a case-insensitive substring of either the
	// record's serial or its name.
	Search string
}

// QueryOptions parameterizes one query: filter criteria, an optional sort
// key ("-" prefix for descending), and 1-based pagination.
type QueryOptions struct {
	Filter   Filter
	Sort     string
	Page     int
	PageSize int
}

// Result is one page of query results plus paging metadata.
type Result struct {
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
	Data       []Record `json:"data"`
}

// Query runs the filter -> sort -> paginate pipeline over the snapshot. It
// is pure computation: no I/O, no mutation of the snapshot.
//
// When only the SN criterion is given and it hits the serial index exactly
// (case-sensitive), the indexed records are returned without scanning the
// dataset. Note the deliberate asymmetry: this fast path is case-sensitive
// while the general SN filter below is a case-insensitive substring match.
func (s *Snapshot) Query(opts QueryOptions) Result {
	matched := s.filter(opts.Filter)
	if opts.Sort != "" {
		sortRecords(matched, opts.Sort)
	}
	return paginate(matched, opts.Page, opts.PageSize)
}

func (s *Snapshot) filter(f Filter) []Record {
	// Fast path: exact index hit, no other criteria.
	if f.SN != "" && f.Name == "" && f.Search == "" {
		if hits := s.bySerial[f.SN]; len(hits) > 0 {
			out := make([]Record, 0, len(hits))
			for _, i := range hits {
				out = append(out, s.records[i])
			}
			return out
		}
	}

	name := strings.ToLower(f.Name)
	sn := strings.ToLower(f.SN)
	search := strings.ToLower(f.Search)

	matched := []Record{}
	for _, r := range s.records {
		if name != "" && !strings.Contains(r.SearchName, name) {
			continue
		}
		if sn != "" && !strings.Contains(strings.ToLower(r.Serial), sn) {
			continue
		}
		if search != "" {
			serial := strings.ToLower(r.Serial)
			if !strings.Contains(serial, search) && !strings.Contains(r.SearchName, search) {
				continue
			}
		}
		matched = append(matched, r)
	}
	return matched
}

// sortRecords sorts in place by the given key, "-" prefix for descending.
// Logical keys map to record fields: price and sn/serial hit the derived
// fields, anything else reads the original column verbatim.
func sortRecords(records []Record, key string) {
	desc := false
	if after, ok := strings.CutPrefix(key, "-"); ok {
		desc = true
		key = after
	}
	slices.SortStableFunc(records, func(a, b Record) int {
		c := compareByKey(a, b, key)
		if desc {
			return -c
		}
		return c
	})
}

// compareByKey compares two records on one sort key: numerically when both
// sides carry numbers, otherwise as lowercased strings with missing values
// coerced to "".
func compareByKey(a, b Record, key string) int {
	av, aNum := sortValue(a, key)
	bv, bNum := sortValue(b, key)
	if aNum && bNum {
		switch {
		case av.(float64) < bv.(float64):
			return -1
		case av.(float64) > bv.(float64):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringValue(av), stringValue(bv))
}

// sortValue resolves the sort key against a record, reporting whether the
// value is numeric.
func sortValue(r Record, key string) (any, bool) {
	switch key {
	case "price":
		if r.Price == nil {
			return nil, false
		}
		return *r.Price, true
	case "name":
		return r.Fields["name"], false
	case "sn", "serial":
		return r.Serial, false
	default:
		return r.Fields[key], false
	}
}

// stringValue coerces a sort value to its lowercased string form; nil
// becomes "".
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return strings.ToLower(t)
	default:
		return ""
	}
}

// paginate clamps the requested page into the valid range and slices out
// one page. totalPages is never below 1, even for an empty result set.
func paginate(records []Record, page, pageSize int) Result {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	return Result{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Data:       records[start:end],
	}
}
