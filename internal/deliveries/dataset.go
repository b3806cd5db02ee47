package deliveries

import (
	"sort"
	"time"
)

// Dataset is the normalized in-memory table. Records keep API response order;
// Columns is the display column ordering (first-seen raw order, with the
// derived date/incidence columns guaranteed present).
//
// A Dataset is never mutated after Build: filters and aggregations return new
// structures sharing the underlying records.
type Dataset struct {
	Records []Record
	Columns []string
}

// Build normalizes a raw record sequence into a Dataset, preserving order.
// An empty input yields a well-formed empty Dataset carrying the full known
// column set.
func Build(raws []RawRecord, loc *time.Location) Dataset {
	if len(raws) == 0 {
		cols := make([]string, len(KnownColumns))
		copy(cols, KnownColumns)
		return Dataset{Records: []Record{}, Columns: cols}
	}

	ds := Dataset{Records: make([]Record, 0, len(raws))}

	seen := make(map[string]bool)
	for _, raw := range raws {
		ds.Records = append(ds.Records, Normalize(raw, loc))
		for _, col := range KnownColumns {
			if _, ok := raw[col]; ok && !seen[col] {
				seen[col] = true
				ds.Columns = append(ds.Columns, col)
			}
		}
		var extras []string
		for col := range raw {
			if !seen[col] && !isKnownColumn(col) {
				seen[col] = true
				extras = append(extras, col)
			}
		}
		// Map iteration order is random; sort so the column order is
		// deterministic for identical inputs.
		sort.Strings(extras)
		ds.Columns = append(ds.Columns, extras...)
	}

	// Derived columns always exist, even when absent from every raw record.
	for _, col := range []string{FieldStartDate, FieldDeliveryDate, FieldIncidence} {
		if !seen[col] {
			seen[col] = true
			ds.Columns = append(ds.Columns, col)
		}
	}

	return ds
}

func isKnownColumn(name string) bool {
	for _, col := range KnownColumns {
		if col == name {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (ds Dataset) Len() int {
	return len(ds.Records)
}

// subset returns a Dataset over recs sharing ds's column set.
func (ds Dataset) subset(recs []Record) Dataset {
	return Dataset{Records: recs, Columns: ds.Columns}
}
