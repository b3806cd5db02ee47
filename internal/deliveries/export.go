package deliveries

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"time"
)

// exportDateLayout is the date format used in CSV output.
const exportDateLayout = "02/01/2006"

// ToCSV renders the dataset as UTF-8 CSV with a header row. Rows are sorted
// by local delivery date descending; rows without a delivery date come last,
// keeping their insertion order. The internal instant columns are not
// exported; dates render as DD/MM/YYYY and null dates as empty strings.
func ToCSV(ds Dataset) ([]byte, error) {
	recs := make([]Record, len(ds.Records))
	copy(recs, ds.Records)

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i].DeliveryDate, recs[j].DeliveryDate
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range recs {
		if err := w.Write(DisplayRow(rec, ds.Columns)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// DisplayRow renders a record's display cells in column order, using the
// same formatting as the CSV export.
func DisplayRow(rec Record, columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = exportCell(rec, col)
	}
	return row
}

// exportCell renders one cell, substituting the derived values for the date
// and incidence columns.
func exportCell(rec Record, col string) string {
	switch col {
	case FieldStartDate:
		return formatExportDate(rec.StartDate)
	case FieldDeliveryDate:
		return formatExportDate(rec.DeliveryDate)
	case FieldIncidence:
		if rec.Incidence {
			return "true"
		}
		return "false"
	default:
		return valueString(rec.Fields[col])
	}
}

func formatExportDate(day time.Time) string {
	if day.IsZero() {
		return ""
	}
	return day.Format(exportDateLayout)
}

// ExportFilename returns the suggested download name for an export produced
// at the given time, e.g. "dataset_entregas_2024-06-10.csv".
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("dataset_entregas_%s.csv", now.Format("2006-01-02"))
}
