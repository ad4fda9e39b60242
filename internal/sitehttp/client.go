// Package sitehttp sends the check-in requests of a site, replaying the
// cookies captured from a logged in browser session.
package sitehttp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"forum-checkin/internal/components/telemetry"
	"forum-checkin/internal/cookies"
	"forum-checkin/internal/site"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch     = "client.fetch"
	report_client_handshake = "client.handshake"
)

var (
	// ErrHTTP is wrapped by transport failures and non-2xx responses.
	ErrHTTP = errors.New("http error")
	// ErrTokenExtraction means the intermediate page of a handshake had no
	// formhash.
	ErrTokenExtraction = errors.New("formhash not found")
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	signinComment = "没有开心，哪里来的幸福？要开心啦"
)

var formhashRegex = regexp.MustCompile(`name="formhash" value="(\w+)"`)

type Options struct {
	// defaults to DefaultTimeout
	Timeout time.Duration
	// defaults to DefaultUserAgent
	UserAgent        string
	CloudflareBypass bool
}

type Client struct {
	opts Options
	tel  telemetry.API
}

func NewClient(opts Options, tel telemetry.API) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		opts: opts,
		tel:  telemetry.NewScopedAPI("site_client", tel),
	}
}

// newHttp creates a resty client bound to a single site, it does not outlive
// the check-in of that site.
func (c *Client) newHttp(cfg site.Config) (*resty.Client, error) {
	baseUrl, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	if c.opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", c.opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	httpClient.SetTimeout(c.opts.Timeout)

	telemetry.InstrumentResty(httpClient, c.tel)

	return httpClient, nil
}

func checkStatus(res *resty.Response) error {
	if res.StatusCode() < 200 || res.StatusCode() >= 300 {
		return fmt.Errorf("%w: %s", ErrHTTP, res.Status())
	}
	return nil
}

// Checkin runs the request flow of the site's family and returns the body of
// the final response.
func (c *Client) Checkin(ctx context.Context, cfg site.Config, jar cookies.Jar) (string, error) {
	switch cfg.Family {
	case site.FamilyDcSignin:
		return c.Handshake(ctx, cfg, jar)
	default:
		return c.Fetch(ctx, cfg, jar)
	}
}

// Fetch sends a single GET to the check-in path.
func (c *Client) Fetch(ctx context.Context, cfg site.Config, jar cookies.Jar) (string, error) {
	fetchError := func(err error) error {
		return fmt.Errorf("%s: fetch: %w", cfg.Name, err)
	}

	httpClient, err := c.newHttp(cfg)
	if err != nil {
		return "", fetchError(err)
	}

	res, err := httpClient.R().
		SetContext(ctx).
		SetCookies(jar.Cookies()).
		Get(cfg.CheckinPath)
	if err != nil {
		return "", fetchError(fmt.Errorf("%w: %w", ErrHTTP, err))
	}
	if err := checkStatus(res); err != nil {
		c.tel.ReportBroken(report_client_fetch, err, cfg.Name)
		return "", fetchError(err)
	}
	return res.String(), nil
}

// Handshake posts to the sign endpoint once to obtain a formhash, then posts
// the sign-in form carrying it.
func (c *Client) Handshake(ctx context.Context, cfg site.Config, jar cookies.Jar) (string, error) {
	handshakeError := func(err error) error {
		return fmt.Errorf("%s: handshake: %w", cfg.Name, err)
	}

	httpClient, err := c.newHttp(cfg)
	if err != nil {
		return "", handshakeError(err)
	}

	res, err := httpClient.R().
		SetContext(ctx).
		SetCookies(jar.Cookies()).
		Post(cfg.CheckinPath)
	if err != nil {
		return "", handshakeError(fmt.Errorf("%w: %w", ErrHTTP, err))
	}
	if err := checkStatus(res); err != nil {
		c.tel.ReportBroken(report_client_handshake, fmt.Errorf("formhash page: %w", err), cfg.Name)
		return "", handshakeError(err)
	}

	formhash, err := ExtractFormhash(res.String())
	if err != nil {
		c.tel.ReportWarning(report_client_handshake, err, cfg.Name)
		return "", handshakeError(err)
	}
	c.tel.ReportDebug("got formhash", cfg.Name)

	res, err = httpClient.R().
		SetContext(ctx).
		SetCookies(jar.Cookies()).
		SetFormData(map[string]string{
			"formhash":   formhash,
			"signsubmit": "yes",
			"handlekey":  "signin",
			"emotid":     "4",
			"referer":    strings.TrimRight(cfg.BaseURL, "/") + "/plugin.php?id=dc_signin",
			"content":    signinComment,
		}).
		Post(cfg.CheckinPath)
	if err != nil {
		return "", handshakeError(fmt.Errorf("%w: %w", ErrHTTP, err))
	}
	if err := checkStatus(res); err != nil {
		c.tel.ReportBroken(report_client_handshake, fmt.Errorf("sign request: %w", err), cfg.Name)
		return "", handshakeError(err)
	}
	return res.String(), nil
}

// ExtractFormhash finds the hidden formhash input of a Discuz page.
func ExtractFormhash(body string) (string, error) {
	groups := formhashRegex.FindStringSubmatch(body)
	if len(groups) < 2 {
		return "", ErrTokenExtraction
	}
	return groups[1], nil
}
