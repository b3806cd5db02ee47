package deliveries

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, tzMty)
}

func deliveredOn(dates ...string) Dataset {
	raws := make([]RawRecord, 0, len(dates))
	for _, d := range dates {
		if d == "" {
			raws = append(raws, RawRecord{"delivery_date": "garbage"})
			continue
		}
		// Noon UTC-6 expressed in UTC so the local day equals d.
		raws = append(raws, RawRecord{"delivery_date": d + "T18:00:00Z"})
	}
	return Build(raws, tzMty)
}

func TestFilterByDate(t *testing.T) {
	ds := deliveredOn("2024-06-10", "2024-06-09", "2024-06-10", "")

	got := FilterByDate(ds, day(2024, 6, 10))
	if got.Len() != 2 {
		t.Errorf("FilterByDate() matched %d records, want 2", got.Len())
	}

	if FilterByDate(ds, day(2030, 1, 1)).Len() != 0 {
		t.Error("FilterByDate() matched records for an absent date")
	}
}

func TestFilterByRangeBoundaries(t *testing.T) {
	// target 2024-06-10, window 3 => closed range [2024-06-08, 2024-06-10].
	ds := deliveredOn("2024-06-07", "2024-06-08", "2024-06-09", "2024-06-10", "2024-06-11", "")

	got := FilterByRange(ds, day(2024, 6, 10), 3)
	if got.Len() != 3 {
		t.Fatalf("FilterByRange() matched %d records, want 3", got.Len())
	}
	for _, rec := range got.Records {
		d := rec.DeliveryDate.Format("2006-01-02")
		if d == "2024-06-07" || d == "2024-06-11" {
			t.Errorf("record with delivery %s should be outside the range", d)
		}
	}
}

func TestFilterByRangeWindowOne(t *testing.T) {
	ds := deliveredOn("2024-06-09", "2024-06-10")

	for _, window := range []int{1, 0, -5} { // sub-1 windows behave as 1
		got := FilterByRange(ds, day(2024, 6, 10), window)
		if got.Len() != 1 {
			t.Errorf("window %d matched %d records, want 1", window, got.Len())
		}
	}
}

func TestFilterSkipsNullDeliveryDates(t *testing.T) {
	ds := deliveredOn("", "", "")
	if FilterByRange(ds, day(2024, 6, 10), 365).Len() != 0 {
		t.Error("records with unparseable delivery dates must never match a range")
	}
}
