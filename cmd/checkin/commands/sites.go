package commands

import (
	"os"

	"forum-checkin/internal/config"
	"forum-checkin/internal/site"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sitesCmd)
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Prints the known sites and whether they are enabled.",
	Run: func(cmd *cobra.Command, args []string) {
		tel := newTelemetry()

		cfg, err := config.Load(configPath, nil)
		if err != nil {
			fatal(tel, "failed to read config", err)
		}
		enabled, err := resolveSites(cfg, tel)
		if err != nil {
			fatal(tel, "invalid site configuration", err)
		}
		isEnabled := map[string]bool{}
		for _, s := range enabled {
			isEnabled[s.Name] = true
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Site", "Family", "URL", "Cookies", "Enabled"})

		for _, s := range site.WithBaseURLs(site.Catalog(), cfg.Sites) {
			_, hasCookies := os.LookupEnv(s.CookieEnvVar)
			cookieCol := s.CookieEnvVar
			if !hasCookies {
				cookieCol += " (unset)"
			}
			t.AppendRow(table.Row{s.Name, s.Family, s.URL(), cookieCol, isEnabled[s.Name]})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
