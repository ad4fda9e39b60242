// Package runner checks in to every enabled site, one after another, and
// collects one outcome per site.
package runner

import (
	"context"
	"errors"
	"fmt"

	"forum-checkin/internal/components/telemetry"
	"forum-checkin/internal/cookies"
	"forum-checkin/internal/parser"
	"forum-checkin/internal/site"
	"forum-checkin/internal/sitehttp"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("forum-checkin/runner")

const (
	report_runner_site    = "runner.site"
	report_runner_success = "runner.success"
	report_runner_failure = "runner.failure"
)

// ErrPanic wraps a panic recovered while checking in to a site.
var ErrPanic = errors.New("panic during check-in")

// State is the progress of a single site's check-in.
type State int

const (
	StatePending State = iota
	StateCookiesResolved
	StateRequestSent
	StateParsed
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCookiesResolved:
		return "cookies_resolved"
	case StateRequestSent:
		return "request_sent"
	case StateParsed:
		return "parsed"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Success is a site that checked in, Fields follow the schema of Family.
type Success struct {
	Site   string
	Family site.Family
	Fields parser.Fields
}

// Failure is a site that did not check in, no partial fields are kept.
type Failure struct {
	Site string
}

// Report holds the outcomes of a run in catalog order.
type Report struct {
	Successes []Success
	Failures  []Failure
}

// Empty is true when no site was processed.
func (r Report) Empty() bool {
	return len(r.Successes) == 0 && len(r.Failures) == 0
}

// FailedSites returns the names of the failed sites.
func (r Report) FailedSites() []string {
	names := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		names[i] = f.Site
	}
	return names
}

// Checker sends the check-in request(s) of a site, *sitehttp.Client
// implements it.
type Checker interface {
	Checkin(ctx context.Context, cfg site.Config, jar cookies.Jar) (string, error)
}

// CookieResolver returns the cookie jar stored under an environment variable,
// cookies.Store implements it.
type CookieResolver interface {
	Resolve(envVar string) (cookies.Jar, error)
}

type Options struct {
	Sites   []site.Config
	Client  Checker
	Cookies CookieResolver
	// if set, pages that fail to parse are written here
	DebugOutput DebugOutput
}

type Runner struct {
	opts Options
	tel  telemetry.API
}

func New(opts Options, tel telemetry.API) *Runner {
	return &Runner{
		opts: opts,
		tel:  telemetry.NewScopedAPI("runner", tel),
	}
}

// Run checks in to every site in order. It never fails as a whole, every
// site ends up in exactly one of the report's sequences.
func (r *Runner) Run(ctx context.Context) Report {
	var report Report
	if len(r.opts.Sites) == 0 {
		r.tel.ReportBroken(report_runner_site, fmt.Errorf("%w: no sites enabled", cookies.ErrConfiguration))
		return report
	}

	seen := make(map[string]bool, len(r.opts.Sites))
	for _, cfg := range r.opts.Sites {
		if seen[cfg.Name] {
			r.tel.ReportWarning(report_runner_site, "site listed twice, skipping", cfg.Name)
			continue
		}
		seen[cfg.Name] = true

		fields, state, err := r.checkSite(ctx, cfg)
		if err != nil {
			r.reportFailure(cfg, state, err)
			report.Failures = append(report.Failures, Failure{Site: cfg.Name})
			continue
		}
		r.tel.ReportInfo("checked in", cfg.Name)
		report.Successes = append(report.Successes, Success{
			Site:   cfg.Name,
			Family: cfg.Family,
			Fields: fields,
		})
	}

	r.tel.ReportCount(report_runner_success, int64(len(report.Successes)))
	r.tel.ReportCount(report_runner_failure, int64(len(report.Failures)))
	return report
}

func (r *Runner) reportFailure(cfg site.Config, state State, err error) {
	// sites change their pages without notice, a mismatch is expected
	if errors.Is(err, parser.ErrParseMismatch) {
		r.tel.ReportWarning(report_runner_site, err, cfg.Name, state.String())
		return
	}
	r.tel.ReportBroken(report_runner_site, err, cfg.Name, state.String())
}

// checkSite walks a site through its states, the returned state is the last
// one reached before a failure.
func (r *Runner) checkSite(ctx context.Context, cfg site.Config) (fields parser.Fields, state State, err error) {
	ctx, span := tracer.Start(ctx, "checkSite")
	defer span.End()
	span.SetAttributes(
		attribute.String("site.name", cfg.Name),
		attribute.String("site.family", string(cfg.Family)),
	)

	state = StatePending
	defer func() {
		if p := recover(); p != nil {
			fields = nil
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, fmt.Sprintf("failed at %s", state))
		}
	}()

	jar, err := r.opts.Cookies.Resolve(cfg.CookieEnvVar)
	if err != nil {
		return nil, state, err
	}
	state = StateCookiesResolved

	body, err := r.opts.Client.Checkin(ctx, cfg, jar)
	if err != nil {
		return nil, state, err
	}
	state = StateRequestSent

	fields, ok := parser.ParseSite(body, cfg)
	if !ok {
		if hint := parser.Describe(body); hint != "" {
			r.tel.ReportDebug("page hint", cfg.Name, hint)
		}
		if r.opts.DebugOutput != nil {
			r.opts.DebugOutput.Write(fmt.Sprintf("%s_debug.html", cfg.Name), body)
		}
		return nil, state, fmt.Errorf("%s: %w", cfg.Name, parser.ErrParseMismatch)
	}
	state = StateParsed

	r.tel.ReportDebug("parsed", cfg.Name, state.String())
	return fields, StateSuccess, nil
}

var _ Checker = (*sitehttp.Client)(nil)
var _ CookieResolver = cookies.Store{}
