package engine

import (
	"fmt"
	"math/rand"
	"time"

	"entregas/internal/deliveries"
)

type GeneratorConfig struct {
	Count int
	Seed  int64
	Now   time.Time
}

var carriers = []string{"Fedex", "FEDEX", "Estafeta", "DHL", "Paquetexpress", "dhl"}

var services = []string{"standard", "express", "next_day"}

var states = []string{"NL", "CDMX", "JAL", "TAM", "COAH", "SLP"}

// Generate produces a deterministic raw delivery dataset for local runs.
// It deliberately mixes incidence encodings (bool, number, numeric string,
// nil) and leaves fields out of some records, matching the upstream API's
// loose schema.
func Generate(cfg GeneratorConfig) []deliveries.RawRecord {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now().UTC()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	records := make([]deliveries.RawRecord, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		// Deliveries land over the last 14 days, UTC timestamps.
		delivery := cfg.Now.Add(-time.Duration(rng.Intn(14*24)) * time.Hour)
		start := delivery.Add(-time.Duration(12+rng.Intn(96)) * time.Hour)

		rec := deliveries.RawRecord{
			"client":        fmt.Sprintf("client-%03d", rng.Intn(40)),
			"carrier":       carriers[rng.Intn(len(carriers))],
			"service":       services[rng.Intn(len(services))],
			"dest_state":    states[rng.Intn(len(states))],
			"start_date":    start.Format(time.RFC3339),
			"delivery_date": delivery.Format(time.RFC3339),
			"incidence":     sampleIncidence(rng),
			"extended_zone": rng.Intn(10) == 0,
			"service_mode":  "ground",
		}

		// Sparse rows: drop fields the way the real feed does.
		switch rng.Intn(12) {
		case 0:
			delete(rec, "carrier")
		case 1:
			delete(rec, "start_date")
		case 2:
			delete(rec, "delivery_date")
		case 3:
			rec["start_date"] = "not-a-date"
		}

		records = append(records, rec)
	}
	return records
}

func sampleIncidence(rng *rand.Rand) any {
	switch rng.Intn(6) {
	case 0:
		return true
	case 1:
		return 1
	case 2:
		return "1"
	case 3:
		return nil
	case 4:
		return "0"
	default:
		return 0
	}
}
