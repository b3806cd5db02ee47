package deliveries

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Field names recognized by the upstream delivery API. None of them is
// guaranteed to be present on any given record.
const (
	FieldClient       = "client"
	FieldCarrier      = "carrier"
	FieldService      = "service"
	FieldDestState    = "dest_state"
	FieldStartDate    = "start_date"
	FieldDeliveryDate = "delivery_date"
	FieldIncidence    = "incidence"
	FieldExtendedZone = "extended_zone"
	FieldServiceMode  = "service_mode"
)

// KnownColumns is the canonical display ordering for the well-known fields.
var KnownColumns = []string{
	FieldClient,
	FieldCarrier,
	FieldService,
	FieldDestState,
	FieldStartDate,
	FieldDeliveryDate,
	FieldIncidence,
	FieldExtendedZone,
	FieldServiceMode,
}

// RawRecord is one record exactly as decoded from the API response, before
// any normalization. No schema is guaranteed.
type RawRecord map[string]any

// Record is a normalized delivery row. Raw fields are carried through in
// Fields; the derived values are typed. Zero time values mean "unknown".
type Record struct {
	Fields RawRecord

	Incidence bool

	// Full local instants, internal to lead-time arithmetic. Not exported
	// to CSV and not part of the display column set.
	StartLocal    time.Time
	DeliveryLocal time.Time

	// Local calendar days (midnight in the configured zone).
	StartDate    time.Time
	DeliveryDate time.Time

	// Signed; nil when either instant is unknown. Negative values are kept
	// as a data-quality signal.
	LeadTimeHours *float64
}

// Normalize converts one raw record into a Record. It is total: malformed
// timestamps become zero times, malformed incidence values become false.
func Normalize(raw RawRecord, loc *time.Location) Record {
	rec := Record{Fields: raw}

	rec.Incidence = ToBool(raw[FieldIncidence])

	rec.StartLocal, rec.StartDate = ToLocal(raw[FieldStartDate], loc)
	rec.DeliveryLocal, rec.DeliveryDate = ToLocal(raw[FieldDeliveryDate], loc)

	if !rec.StartLocal.IsZero() && !rec.DeliveryLocal.IsZero() {
		hours := rec.DeliveryLocal.Sub(rec.StartLocal).Hours()
		rec.LeadTimeHours = &hours
	}

	return rec
}

// ToBool coerces an arbitrary raw value into a boolean.
//
// The mapping is fixed: nil and NaN are false, booleans pass through, numeric
// values (including numeric strings) are true iff nonzero, and anything that
// cannot be coerced is false. Strings that strconv.ParseBool recognizes are
// honored so that an exported CSV re-ingests cleanly.
func ToBool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return !math.IsNaN(v) && v != 0
	case float32:
		return !math.IsNaN(float64(v)) && v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && !math.IsNaN(f) && f != 0
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return !math.IsNaN(f) && f != 0
		}
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
		return false
	default:
		return false
	}
}

// HasCarrier reports whether the record carries a usable carrier value.
func (r Record) HasCarrier() bool {
	v, ok := r.Fields[FieldCarrier]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// CarrierKey returns the case-normalized grouping key for the record's
// carrier. Records without a carrier get the literal "NAN" bucket, mirroring
// the string-cast behavior of the legacy dashboard.
func (r Record) CarrierKey() string {
	if !r.HasCarrier() {
		return "NAN"
	}
	return strings.ToUpper(strings.TrimSpace(valueString(r.Fields[FieldCarrier])))
}

// valueString renders a raw field value for display and CSV output.
func valueString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
