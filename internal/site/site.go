package site

import (
	"fmt"
	"regexp"
	"strings"
)

// Family groups sites that run the same forum software, they share a request
// flow and a result page layout.
type Family string

const (
	// FamilyAttendance is the NexusPHP attendance page, a single GET.
	FamilyAttendance Family = "attendance"
	// FamilyDcSignin is the Discuz dc_signin plugin, which needs a formhash
	// handshake before the sign-in POST.
	FamilyDcSignin Family = "dcsignin"
)

const (
	FieldTotalTimes     = "total_times"
	FieldContinuousDays = "continuous_days"
	FieldBonus          = "bonus"
	FieldMakeupCards    = "makeup_cards"
)

// Schema returns the ordered field names the capture groups of a family's
// pattern populate.
func (f Family) Schema() []string {
	switch f {
	case FamilyAttendance:
		return []string{FieldTotalTimes, FieldContinuousDays, FieldBonus, FieldMakeupCards}
	case FamilyDcSignin:
		return []string{FieldBonus}
	default:
		return nil
	}
}

const (
	AttendancePattern = `这是您的第 <b>(\d+)</b> 次签到，` +
		`已连续签到 <b>(\d+)</b> 天，` +
		`本次签到获得 <b>(\d+)</b> 个.*?。` +
		`你目前拥有补签卡 <b>(\d+)</b> 张`
	DcSigninPattern = `随机奖励T币(\d+)`
)

// Config describes one site in the catalog, it is never mutated after startup.
type Config struct {
	Name         string
	BaseURL      string
	CheckinPath  string
	CookieEnvVar string
	Family       Family
	Pattern      string

	compiled *regexp.Regexp
}

// URL is the check-in endpoint.
func (c Config) URL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.CheckinPath
}

// Regexp returns the compiled result pattern, Validate must have succeeded.
func (c Config) Regexp() *regexp.Regexp {
	if c.compiled == nil {
		return regexp.MustCompile(c.Pattern)
	}
	return c.compiled
}

// Validate compiles the pattern and checks that it has exactly one capture
// group per field in the family schema.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("site without a name")
	}
	schema := c.Family.Schema()
	if schema == nil {
		return fmt.Errorf("site %s: unknown family %q", c.Name, c.Family)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("site %s: base url %q is not http(s)", c.Name, c.BaseURL)
	}
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return fmt.Errorf("site %s: compile pattern: %w", c.Name, err)
	}
	if re.NumSubexp() != len(schema) {
		return fmt.Errorf(
			"site %s: pattern has %d capture groups, %s needs %d",
			c.Name, re.NumSubexp(), c.Family, len(schema),
		)
	}
	c.compiled = re
	return nil
}

func attendanceSite(name, baseURL string) Config {
	return Config{
		Name:         name,
		BaseURL:      baseURL,
		CheckinPath:  "/attendance.php",
		CookieEnvVar: name + "_COOKIES",
		Family:       FamilyAttendance,
		Pattern:      AttendancePattern,
	}
}

// Catalog returns every known site, the order here is the order sites are
// checked in and reported.
func Catalog() []Config {
	return []Config{
		attendanceSite("HDPT", "https://hdpt.xyz"),
		attendanceSite("PTLGS", "https://ptlgs.org"),
		attendanceSite("RAINGFH", "https://raingfh.top"),
		{
			Name:         "STEAMTOOLS",
			BaseURL:      "https://bbs.steamtools.net",
			CheckinPath:  "/plugin.php?id=dc_signin:sign",
			CookieEnvVar: "STEAMTOOLS_COOKIES",
			Family:       FamilyDcSignin,
			Pattern:      DcSigninPattern,
		},
	}
}

// ParseAllowList splits a comma separated list of site names.
func ParseAllowList(raw string) []string {
	var names []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Enabled filters the catalog by an allow-list while keeping catalog order.
// An empty allow-list enables every site. Names that are not in the catalog
// are returned as unknown.
func Enabled(catalog []Config, allow []string) (enabled []Config, unknown []string) {
	if len(allow) == 0 {
		return append([]Config(nil), catalog...), nil
	}

	allowed := make(map[string]bool, len(allow))
	for _, name := range allow {
		allowed[name] = true
	}
	known := make(map[string]bool, len(catalog))
	for _, c := range catalog {
		known[c.Name] = true
		if allowed[c.Name] {
			enabled = append(enabled, c)
		}
	}
	for _, name := range allow {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	return enabled, unknown
}

// WithBaseURLs returns a copy of the catalog with base urls replaced for the
// named sites, used to point a site at a mirror.
func WithBaseURLs(catalog []Config, overrides map[string]string) []Config {
	out := make([]Config, len(catalog))
	for i, c := range catalog {
		if u, ok := overrides[c.Name]; ok && u != "" {
			c.BaseURL = u
			c.compiled = nil
		}
		out[i] = c
	}
	return out
}
