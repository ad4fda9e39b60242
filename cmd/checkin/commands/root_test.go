package commands

import (
	"testing"

	"forum-checkin/internal/components/telemetry"
	"forum-checkin/internal/config"

	"github.com/stretchr/testify/require"
)

func TestResolveSites(t *testing.T) {
	rec := &telemetry.Recorder{}
	sites, err := resolveSites(config.Config{
		Sites:        map[string]string{"HDPT": "https://hdpt.example"},
		EnabledSites: []string{"HDPT", "GONE"},
	}, rec)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	require.Equal(t, "https://hdpt.example/attendance.php", sites[0].URL())
	require.Len(t, rec.Find("warning", "cli.resolve-sites"), 1)

	sites, err = resolveSites(config.Config{}, rec)
	require.NoError(t, err)
	require.Len(t, sites, 4)
}

func TestResolveSitesRejectsBadMirror(t *testing.T) {
	_, err := resolveSites(config.Config{
		Sites: map[string]string{"HDPT": "hdpt.example"},
	}, &telemetry.Recorder{})
	require.Error(t, err)
}

func TestBuildNotifier(t *testing.T) {
	rec := &telemetry.Recorder{}
	require.Len(t, buildNotifier(config.Config{}, rec), 1)
	require.Len(t, rec.Find("warning", "cli.run"), 1)

	n := buildNotifier(config.Config{Webhook: config.WebhookConfig{URL: "https://push.example.com"}}, rec)
	require.Len(t, n, 2)
}
