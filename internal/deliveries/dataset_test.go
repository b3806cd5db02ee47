package deliveries

import (
	"reflect"
	"testing"
)

func TestBuildPreservesOrder(t *testing.T) {
	raws := []RawRecord{
		{"client": "a"},
		{"client": "b"},
		{"client": "c"},
	}
	ds := Build(raws, tzMty)

	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := ds.Records[i].Fields["client"]; got != want {
			t.Errorf("record %d client = %v, want %s", i, got, want)
		}
	}
}

func TestBuildEmptyInput(t *testing.T) {
	for _, raws := range [][]RawRecord{nil, {}} {
		ds := Build(raws, tzMty)
		if ds.Len() != 0 {
			t.Errorf("Len() = %d, want 0", ds.Len())
		}
		if !reflect.DeepEqual(ds.Columns, KnownColumns) {
			t.Errorf("Columns = %v, want full known set %v", ds.Columns, KnownColumns)
		}
	}
}

func TestBuildColumnOrder(t *testing.T) {
	raws := []RawRecord{
		{"carrier": "dhl", "zzz_custom": 1, "aaa_custom": 2},
		{"client": "x"},
	}
	ds := Build(raws, tzMty)

	want := []string{
		// Known fields of record 1 in canonical order, extras sorted.
		"carrier", "aaa_custom", "zzz_custom",
		// New known field from record 2.
		"client",
		// Derived columns are always appended when absent from the raws.
		"start_date", "delivery_date", "incidence",
	}
	if !reflect.DeepEqual(ds.Columns, want) {
		t.Errorf("Columns = %v, want %v", ds.Columns, want)
	}
}

func TestBuildMissingColumnsNeverError(t *testing.T) {
	// Records with disjoint field sets must coexist in one table.
	raws := []RawRecord{
		{"carrier": "dhl"},
		{"service_mode": "ground"},
		{},
	}
	ds := Build(raws, tzMty)
	if ds.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", ds.Len())
	}
	if ds.Records[2].LeadTimeHours != nil {
		t.Error("empty record should have nil lead time")
	}
}
