package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"entregas/internal/deliveries"

	"github.com/spf13/cobra"
)

var (
	summaryDate   string
	summaryWindow int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Fetch the dataset and print the summaries for one delivery date",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPI(); err != nil {
			return err
		}
		if summaryWindow < 1 {
			return fmt.Errorf("--window must be >= 1")
		}

		day := deliveries.DayOf(time.Now().In(cfg.Location).AddDate(0, 0, -1), cfg.Location)
		if summaryDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", summaryDate, cfg.Location)
			if err != nil {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", summaryDate)
			}
			day = parsed
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout)
		defer cancel()

		raws, err := newClient().FetchRaw(ctx)
		if err != nil {
			return err
		}
		ds := deliveries.Build(raws, cfg.Location)

		printWindow(fmt.Sprintf("Resumen %s", day.Format("02/01/2006")),
			deliveries.FilterByDate(ds, day))
		printWindow(fmt.Sprintf("Resumen últimos %d días", summaryWindow),
			deliveries.FilterByRange(ds, day, summaryWindow))
		return nil
	},
}

func printWindow(title string, sub deliveries.Dataset) {
	s := deliveries.Summarize(sub)

	fmt.Printf("\n%s\n", title)
	fmt.Printf("  Cantidad entregada:          %d\n", s.Count)
	fmt.Printf("  Tiempo promedio de entrega:  %s\n", deliveries.FormatLeadTime(s.AvgLeadTimeHours))
	fmt.Printf("  Total de incidencias:        %d\n", s.IncidenceCount)
	fmt.Printf("  Porcentaje de incidencias:   %s\n", deliveries.FormatPercent(s.IncidenceRatePct))

	carriers := deliveries.AggregateByCarrier(sub, cfg.CarrierNaNBucket)
	if len(carriers) == 0 {
		fmt.Println("  (sin datos para agrupar por paquetería)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  PAQUETERÍA\tENTREGAS\tHORAS PROM.\tDÍAS PROM.\tINCIDENCIAS\t% INCIDENCIAS")
	for _, c := range carriers {
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\t%d\t%.2f\n",
			c.Carrier, c.Count, floatOrND(c.AvgLeadTimeHours), floatOrND(c.AvgLeadTimeDays),
			c.IncidenceCount, c.IncidenceRatePct)
	}
	w.Flush()
}

func floatOrND(v *float64) string {
	if v == nil {
		return deliveries.NoData
	}
	return fmt.Sprintf("%.2f", *v)
}

func init() {
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "delivery date to summarize (YYYY-MM-DD, default yesterday)")
	summaryCmd.Flags().IntVar(&summaryWindow, "window", 3, "lookback window in days, including the selected date")
	rootCmd.AddCommand(summaryCmd)
}
