package config

import (
	"errors"
	"os"
	"time"

	"forum-checkin/internal/cookies"
	"forum-checkin/internal/notify"
	"forum-checkin/internal/site"
	"forum-checkin/lib/configutil"
)

const (
	EnvEnabledSites = "ENABLED_SITES"
	EnvWebhookURL   = "CHECKIN_WEBHOOK_URL"
	EnvWebhookToken = "CHECKIN_WEBHOOK_TOKEN"
)

type WebhookConfig struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

type Config struct {
	TimeoutSeconds   int    `json:"timeout_seconds"`
	UserAgent        string `json:"user_agent"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	DebugDir         string `json:"debug_dir"`
	// site name -> base url, for sites that moved to a mirror
	Sites        map[string]string `json:"sites"`
	EnabledSites []string          `json:"enabled_sites"`

	Webhook WebhookConfig     `json:"webhook"`
	Smtp    notify.SmtpConfig `json:"smtp"`
}

// Timeout returns the per request timeout, 0 means the client default.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the config file at `path` (merged with its local override), a
// missing file yields the zero config. Environment variables take precedence
// over the file.
func Load(path string, lookup cookies.LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var cfg Config
	if path != "" {
		var err error
		cfg, err = configutil.ReadConfig[Config](path)
		if errors.Is(err, os.ErrNotExist) {
			cfg = Config{}
		} else if err != nil {
			return Config{}, err
		}
	}

	if raw, ok := lookup(EnvEnabledSites); ok && raw != "" {
		cfg.EnabledSites = site.ParseAllowList(raw)
	}
	if url, ok := lookup(EnvWebhookURL); ok && url != "" {
		cfg.Webhook.URL = url
	}
	if token, ok := lookup(EnvWebhookToken); ok && token != "" {
		cfg.Webhook.Token = token
	}
	return cfg, nil
}
