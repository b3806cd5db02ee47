package commands

import (
	"context"
	"os"
	"time"

	"entregas/internal/deliveries"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Fetch the dataset and write the normalized CSV export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPI(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.FetchTimeout)
		defer cancel()

		raws, err := newClient().FetchRaw(ctx)
		if err != nil {
			return err
		}

		ds := deliveries.Build(raws, cfg.Location)
		data, err := deliveries.ToCSV(ds)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = deliveries.ExportFilename(time.Now().In(cfg.Location))
		}
		if out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
		log.Info().Str("file", out).Int("records", ds.Len()).Msg("CSV export written")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default dataset_entregas_<date>.csv, - for stdout)")
	rootCmd.AddCommand(exportCmd)
}
