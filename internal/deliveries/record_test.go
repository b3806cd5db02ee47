package deliveries

import (
	"encoding/json"
	"math"
	"testing"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want bool
	}{
		{"Nil", nil, false},
		{"NaNFloat", math.NaN(), false},
		{"NaNString", "NaN", false},
		{"Zero", 0, false},
		{"ZeroFloat", 0.0, false},
		{"ZeroString", "0", false},
		{"False", false, false},
		{"FalseString", "false", false},
		{"Empty", "", false},
		{"Garbage", "maybe", false},
		{"True", true, true},
		{"TrueString", "true", true},
		{"One", 1, true},
		{"NegativeFloat", -2.5, true},
		{"NumericString", "3", true},
		{"NumericFloatString", "0.5", true},
		{"JSONNumber", json.Number("7"), true},
		{"JSONNumberZero", json.Number("0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToBool(tt.raw); got != tt.want {
				t.Errorf("ToBool(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeLeadTime(t *testing.T) {
	rec := Normalize(RawRecord{
		"start_date":    "2024-06-08T12:00:00Z",
		"delivery_date": "2024-06-10T12:00:00Z",
	}, tzMty)

	if rec.LeadTimeHours == nil {
		t.Fatal("LeadTimeHours is nil for two valid instants")
	}
	if *rec.LeadTimeHours != 48.0 {
		t.Errorf("LeadTimeHours = %v, want 48", *rec.LeadTimeHours)
	}
}

func TestNormalizeNegativeLeadTimeKept(t *testing.T) {
	rec := Normalize(RawRecord{
		"start_date":    "2024-06-10T12:00:00Z",
		"delivery_date": "2024-06-09T12:00:00Z",
	}, tzMty)

	if rec.LeadTimeHours == nil || *rec.LeadTimeHours != -24.0 {
		t.Errorf("LeadTimeHours = %v, want -24 (data-quality signal, not an error)", rec.LeadTimeHours)
	}
}

func TestNormalizeMissingOrBadFields(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRecord
	}{
		{"EmptyRecord", RawRecord{}},
		{"BadStart", RawRecord{"start_date": "garbage", "delivery_date": "2024-06-10T12:00:00Z"}},
		{"MissingDelivery", RawRecord{"start_date": "2024-06-08T12:00:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(tt.raw, tzMty)
			if rec.LeadTimeHours != nil {
				t.Errorf("LeadTimeHours = %v, want nil", *rec.LeadTimeHours)
			}
			if rec.Incidence {
				t.Error("Incidence = true for a record without an incidence field")
			}
		})
	}
}

func TestCarrierKey(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawRecord
		hasCar  bool
		wantKey string
	}{
		{"Lower", RawRecord{"carrier": "fedex"}, true, "FEDEX"},
		{"Mixed", RawRecord{"carrier": "FedEx"}, true, "FEDEX"},
		{"Padded", RawRecord{"carrier": " dhl "}, true, "DHL"},
		{"Missing", RawRecord{}, false, "NAN"},
		{"NilValue", RawRecord{"carrier": nil}, false, "NAN"},
		{"Blank", RawRecord{"carrier": "  "}, false, "NAN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(tt.raw, tzMty)
			if got := rec.HasCarrier(); got != tt.hasCar {
				t.Errorf("HasCarrier() = %v, want %v", got, tt.hasCar)
			}
			if got := rec.CarrierKey(); got != tt.wantKey {
				t.Errorf("CarrierKey() = %q, want %q", got, tt.wantKey)
			}
		})
	}
}
