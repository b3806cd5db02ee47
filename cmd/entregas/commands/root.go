package commands

import (
	"fmt"
	"strings"
	"time"

	"entregas/internal/api"
	"entregas/internal/config"
	"entregas/internal/logging"
	"entregas/internal/session"
	"entregas/internal/web"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose  bool
	openPage bool
	cfg      *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "entregas",
	Short: "Entregas serves a delivery-summary dashboard over a remote logistics dataset",
	Long: `A dashboard service that fetches a delivery dataset from a configured HTTP API,
normalizes it into the local timezone, and serves date-filtered summaries
(counts, lead times, incidence rates, per-carrier breakdowns) plus CSV export.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("timezone", cfg.TimezoneName).
			Msg("Entregas starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPI(); err != nil {
			return err
		}

		store := session.NewStore(newClient(), cfg.Location)
		server := web.NewServer(cfg, store)

		if openPage {
			go func() {
				time.Sleep(500 * time.Millisecond)
				addr := cfg.ListenAddr
				if strings.HasPrefix(addr, ":") {
					addr = "localhost" + addr
				}
				if err := browser.OpenURL(fmt.Sprintf("http://%s/", addr)); err != nil {
					log.Warn().Err(err).Msg("Failed to open browser")
				}
			}()
		}

		return server.Start()
	},
}

func newClient() *api.Client {
	return api.NewClient(api.Config{
		URL:           cfg.APIURL,
		Key:           cfg.APIKey,
		Timeout:       cfg.FetchTimeout,
		TolerantShape: cfg.TolerantShape,
	})
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&openPage, "open", false, "open the dashboard in the default browser")
}
