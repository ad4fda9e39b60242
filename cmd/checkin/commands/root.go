package commands

import (
	"context"
	"fmt"
	"os"

	"forum-checkin/internal/components/telemetry"
	"forum-checkin/internal/config"
	"forum-checkin/internal/site"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "checkin",
	Short: "checkin signs in to forums daily with stored cookies and reports the results.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Path to the json5 config file, it may be missing.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTelemetry() telemetry.API {
	return telemetry.NewSlogAPI(telemetry.NewTextLogger(os.Stderr, verbose))
}

func fatal(tel telemetry.API, message string, err error) {
	tel.ReportBroken("cli", message, err)
	os.Exit(1)
}

// resolveSites applies mirrors and the allow-list to the catalog and
// validates what is left.
func resolveSites(cfg config.Config, tel telemetry.API) ([]site.Config, error) {
	catalog := site.WithBaseURLs(site.Catalog(), cfg.Sites)
	enabled, unknown := site.Enabled(catalog, cfg.EnabledSites)
	for _, name := range unknown {
		tel.ReportWarning("cli.resolve-sites", "unknown site in allow-list", name)
	}
	if len(cfg.EnabledSites) == 0 {
		tel.ReportDebug(fmt.Sprintf("%s is not set, enabling every site", config.EnvEnabledSites))
	}

	for i := range enabled {
		if err := enabled[i].Validate(); err != nil {
			return nil, err
		}
	}
	return enabled, nil
}
