package deliveries

import (
	"fmt"
	"math"
	"sort"
)

// Summary holds the headline figures for one filtered subset.
// AvgLeadTimeHours is nil when no record in the subset has a computable lead
// time ("no data"); IncidenceRatePct is 0.0 for an empty subset by convention.
type Summary struct {
	Count            int      `json:"count"`
	AvgLeadTimeHours *float64 `json:"avg_lead_time_hours"`
	IncidenceCount   int      `json:"incidence_count"`
	IncidenceRatePct float64  `json:"incidence_rate_pct"`
}

// CarrierSummary is one per-carrier aggregate row. Numeric figures are
// rounded to two decimals for display.
type CarrierSummary struct {
	Carrier          string   `json:"carrier"`
	Count            int      `json:"count"`
	AvgLeadTimeHours *float64 `json:"avg_lead_time_hours"`
	AvgLeadTimeDays  *float64 `json:"avg_lead_time_days"`
	IncidenceCount   int      `json:"incidence_count"`
	IncidenceRatePct float64  `json:"incidence_rate_pct"`
}

// Summarize computes the headline figures for a subset. Records with a nil
// lead time are excluded from the average but still counted in Count.
func Summarize(ds Dataset) Summary {
	s := Summary{Count: len(ds.Records)}

	var hoursSum float64
	var hoursN int
	for _, rec := range ds.Records {
		if rec.LeadTimeHours != nil {
			hoursSum += *rec.LeadTimeHours
			hoursN++
		}
		if rec.Incidence {
			s.IncidenceCount++
		}
	}

	if hoursN > 0 {
		avg := hoursSum / float64(hoursN)
		s.AvgLeadTimeHours = &avg
	}
	if s.Count > 0 {
		s.IncidenceRatePct = 100 * float64(s.IncidenceCount) / float64(s.Count)
	}
	return s
}

// AggregateByCarrier groups a subset by upper-cased carrier and computes the
// summary figures per group. Rows without a carrier are excluded unless
// foldMissing is set, in which case they land in a literal "NAN" bucket like
// the legacy dashboard produced. Output is sorted by carrier key.
func AggregateByCarrier(ds Dataset, foldMissing bool) []CarrierSummary {
	groups := make(map[string][]Record)
	for _, rec := range ds.Records {
		if !rec.HasCarrier() && !foldMissing {
			continue
		}
		key := rec.CarrierKey()
		groups[key] = append(groups[key], rec)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]CarrierSummary, 0, len(keys))
	for _, key := range keys {
		sub := Summarize(ds.subset(groups[key]))
		row := CarrierSummary{
			Carrier:          key,
			Count:            sub.Count,
			IncidenceCount:   sub.IncidenceCount,
			IncidenceRatePct: Round2(sub.IncidenceRatePct),
		}
		if sub.AvgLeadTimeHours != nil {
			hours := Round2(*sub.AvgLeadTimeHours)
			days := Round2(*sub.AvgLeadTimeHours / 24.0)
			row.AvgLeadTimeHours = &hours
			row.AvgLeadTimeDays = &days
		}
		out = append(out, row)
	}
	return out
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NoData is the display sentinel for figures with no valid source values.
const NoData = "N/D"

// FormatLeadTime renders an average lead time as "H.HH h (~D.DD días)", or
// the no-data sentinel when hours is nil.
func FormatLeadTime(hours *float64) string {
	if hours == nil {
		return NoData
	}
	return fmt.Sprintf("%.2f h (~%.2f días)", *hours, *hours/24.0)
}

// FormatPercent renders an incidence rate as "P.PP%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}
