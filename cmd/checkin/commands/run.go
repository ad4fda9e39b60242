package commands

import (
	"os"

	"forum-checkin/internal/components/telemetry"
	"forum-checkin/internal/config"
	"forum-checkin/internal/cookies"
	"forum-checkin/internal/notify"
	"forum-checkin/internal/runner"
	"forum-checkin/internal/sitehttp"

	"github.com/spf13/cobra"
)

var dryRun bool

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the notification instead of sending it.")
	rootCmd.AddCommand(runCmd)
}

func buildNotifier(cfg config.Config, tel telemetry.API) notify.Multi {
	notifiers := notify.Multi{notify.Writer{W: os.Stdout}}
	if dryRun {
		return notifiers
	}
	if cfg.Webhook.URL != "" {
		notifiers = append(notifiers, notify.NewWebhook(cfg.Webhook.URL, cfg.Webhook.Token, tel))
	}
	if cfg.Smtp.Enabled() {
		notifiers = append(notifiers, notify.NewEmail(cfg.Smtp))
	}
	if len(notifiers) == 1 {
		tel.ReportWarning("cli.run", "no notification channel configured, printing only")
	}
	return notifiers
}

var runCmd = &cobra.Command{
	Use:   "run [--config <path>] [--dry-run]",
	Short: "Checks in to every enabled site and sends one notification with the results.",
	Run: func(cmd *cobra.Command, args []string) {
		tel := newTelemetry()

		cfg, err := config.Load(configPath, nil)
		if err != nil {
			fatal(tel, "failed to read config", err)
		}
		sites, err := resolveSites(cfg, tel)
		if err != nil {
			fatal(tel, "invalid site configuration", err)
		}
		if len(sites) == 0 {
			tel.ReportBroken("cli.run", "no sites to check in to")
			return
		}

		var debugOutput runner.DebugOutput
		if cfg.DebugDir != "" {
			out, err := runner.NewFilesystemOutput(cfg.DebugDir, tel)
			if err != nil {
				tel.ReportWarning("cli.run", "debug output disabled", err)
			} else {
				debugOutput = out
			}
		}

		client := sitehttp.NewClient(sitehttp.Options{
			Timeout:          cfg.Timeout(),
			UserAgent:        cfg.UserAgent,
			CloudflareBypass: cfg.CloudflareBypass,
		}, tel)

		report := runner.New(runner.Options{
			Sites:       sites,
			Client:      client,
			Cookies:     cookies.NewStore(nil),
			DebugOutput: debugOutput,
		}, tel).Run(cmd.Context())

		sent, err := notify.Deliver(cmd.Context(), buildNotifier(cfg, tel), report)
		if err != nil {
			tel.ReportBroken("cli.run", err)
		}
		if !sent {
			tel.ReportInfo("nothing to notify")
		}
	},
}
