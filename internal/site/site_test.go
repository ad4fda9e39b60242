package site

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func names(sites []Config) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.Name
	}
	return out
}

func TestCatalogValidates(t *testing.T) {
	catalog := Catalog()
	require.Equal(t, []string{"HDPT", "PTLGS", "RAINGFH", "STEAMTOOLS"}, names(catalog))

	for i := range catalog {
		require.NoError(t, catalog[i].Validate(), catalog[i].Name)
		require.Equal(t, len(catalog[i].Family.Schema()), catalog[i].Regexp().NumSubexp())
	}
	require.Equal(t, "https://hdpt.xyz/attendance.php", catalog[0].URL())
	require.Equal(t, "HDPT_COOKIES", catalog[0].CookieEnvVar)
	require.Equal(t, "https://bbs.steamtools.net/plugin.php?id=dc_signin:sign", catalog[3].URL())
}

func TestValidateRejectsSchemaMismatch(t *testing.T) {
	testCases := []Config{
		{Name: "A", BaseURL: "https://a", Family: FamilyAttendance, Pattern: `(\d+)`},
		{Name: "B", BaseURL: "https://b", Family: FamilyDcSignin, Pattern: `(`},
		{Name: "C", BaseURL: "https://c", Family: "phpwind", Pattern: `(\d+)`},
		{Name: "D", BaseURL: "ftp://d", Family: FamilyDcSignin, Pattern: `(\d+)`},
		{BaseURL: "https://e", Family: FamilyDcSignin, Pattern: `(\d+)`},
	}
	for _, c := range testCases {
		require.Error(t, c.Validate(), c.Name)
	}
}

func TestEnabled(t *testing.T) {
	catalog := Catalog()

	enabled, unknown := Enabled(catalog, nil)
	require.Equal(t, names(catalog), names(enabled))
	require.Empty(t, unknown)

	enabled, unknown = Enabled(catalog, ParseAllowList(" STEAMTOOLS, HDPT ,NOPE,"))
	require.Equal(t, []string{"HDPT", "STEAMTOOLS"}, names(enabled))
	require.Equal(t, []string{"NOPE"}, unknown)

	enabled, _ = Enabled(catalog, ParseAllowList("nope"))
	require.Empty(t, enabled)
}

func TestWithBaseURLs(t *testing.T) {
	catalog := Catalog()
	out := WithBaseURLs(catalog, map[string]string{"PTLGS": "https://mirror.ptlgs.org/"})

	require.Equal(t, "https://ptlgs.org", catalog[1].BaseURL)
	require.Equal(t, "https://mirror.ptlgs.org/attendance.php", out[1].URL())
	require.Equal(t, catalog[0].BaseURL, out[0].BaseURL)
}
