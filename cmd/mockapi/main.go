// Command mockapi serves a deterministic fake delivery API for local runs.
// It honors the api-key header and can answer in the three response shapes
// the real feed produces: a bare JSON array, a {"data": [...]} wrapper, or
// CSV text.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"entregas/cmd/mockapi/engine"
	"entregas/internal/deliveries"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	key := flag.String("key", "dev-key", "expected api-key header value")
	format := flag.String("format", "json", "response format: json, wrapped, csv")
	count := flag.Int("count", 200, "number of records to generate")
	seed := flag.Int64("seed", 42, "generator seed")
	flag.Parse()

	records := engine.Generate(engine.GeneratorConfig{
		Count: *count,
		Seed:  *seed,
		Now:   time.Now().UTC(),
	})

	http.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != *key {
			http.Error(w, `{"error":"invalid api-key"}`, http.StatusUnauthorized)
			return
		}
		switch *format {
		case "wrapped":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"data": records})
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			writeCSV(w, records)
		default:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(records)
		}
	})

	fmt.Printf("mockapi: serving %d records (%s) on %s\n", len(records), *format, *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "mockapi: %v\n", err)
		os.Exit(1)
	}
}

func writeCSV(w http.ResponseWriter, records []deliveries.RawRecord) {
	cw := csv.NewWriter(w)
	_ = cw.Write(deliveries.KnownColumns)
	for _, rec := range records {
		row := make([]string, len(deliveries.KnownColumns))
		for i, col := range deliveries.KnownColumns {
			if v, ok := rec[col]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		_ = cw.Write(row)
	}
	cw.Flush()
}
