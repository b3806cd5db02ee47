package deliveries

import "time"

// FilterByDate returns the records whose local delivery day equals day.
// Records with an unknown delivery date never match.
func FilterByDate(ds Dataset, day time.Time) Dataset {
	var out []Record
	for _, rec := range ds.Records {
		if !rec.DeliveryDate.IsZero() && rec.DeliveryDate.Equal(day) {
			out = append(out, rec)
		}
	}
	return ds.subset(out)
}

// FilterByRange returns the records whose local delivery day falls in the
// closed range [day-(windowDays-1), day]. windowDays must be >= 1; that is a
// caller-enforced configuration constraint, values below 1 behave as 1.
func FilterByRange(ds Dataset, day time.Time, windowDays int) Dataset {
	if windowDays < 1 {
		windowDays = 1
	}
	from := day.AddDate(0, 0, -(windowDays - 1))

	var out []Record
	for _, rec := range ds.Records {
		if rec.DeliveryDate.IsZero() {
			continue
		}
		if rec.DeliveryDate.Before(from) || rec.DeliveryDate.After(day) {
			continue
		}
		out = append(out, rec)
	}
	return ds.subset(out)
}
