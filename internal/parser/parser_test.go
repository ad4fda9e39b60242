package parser

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"forum-checkin/internal/site"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const attendancePage = `<html><head><title>签到 - HDPT</title></head><body>
<table><tr><td class="text">
<p>签到成功，这是您的第 <b>%d</b> 次签到，已连续签到 <b>%d</b> 天，本次签到获得 <b>%d</b> 个魔力值。你目前拥有补签卡 <b>%d</b> 张</p>
</td></tr></table></body></html>`

func attendanceSite(t *testing.T) site.Config {
	cfg := site.Catalog()[0]
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestParseAttendanceRoundTrip(t *testing.T) {
	cfg := attendanceSite(t)

	testCases := [][4]int{
		{5, 3, 10, 2},
		{1, 1, 0, 0},
		{1024, 365, 99999, 12},
	}
	for _, values := range testCases {
		body := fmt.Sprintf(attendancePage, values[0], values[1], values[2], values[3])
		fields, ok := ParseSite(body, cfg)
		require.True(t, ok, values)

		expected := Fields{
			site.FieldTotalTimes:     fmt.Sprint(values[0]),
			site.FieldContinuousDays: fmt.Sprint(values[1]),
			site.FieldBonus:          fmt.Sprint(values[2]),
			site.FieldMakeupCards:    fmt.Sprint(values[3]),
		}
		if diff := cmp.Diff(expected, fields); diff != "" {
			t.Errorf("(-want +got)\n%s", diff)
		}
	}
}

func TestParseDcSignin(t *testing.T) {
	cfg := site.Catalog()[3]
	require.NoError(t, cfg.Validate())

	fields, ok := ParseSite(`<div id="messagetext"><p>签到成功，随机奖励T币42</p></div>`, cfg)
	require.True(t, ok)
	require.Equal(t, 42, fields.Int(site.FieldBonus))
}

func TestParseMismatch(t *testing.T) {
	cfg := attendanceSite(t)

	testCases := []string{
		"",
		"<html><body>今天已经签到过了</body></html>",
		// markers present but the numbers are gone
		"这是您的第 <b></b> 次签到，已连续签到 <b>3</b> 天，本次签到获得 <b>10</b> 个魔力值。你目前拥有补签卡 <b>2</b> 张",
	}
	for _, body := range testCases {
		fields, ok := ParseSite(body, cfg)
		require.False(t, ok)
		require.Nil(t, fields)
	}
}

func TestParseSchemaMismatch(t *testing.T) {
	_, ok := Parse("a1b2", regexp.MustCompile(`a(\d)b(\d)`), []string{"only"})
	require.False(t, ok)
}

func TestFieldsInt(t *testing.T) {
	fields := Fields{"bonus": "10", "bad": "ten"}
	require.Equal(t, 10, fields.Int("bonus"))
	require.Equal(t, 0, fields.Int("bad"))
	require.Equal(t, 0, fields.Int("missing"))
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "您今天已经签到过了", Describe(`<html><head><title>SteamTools</title></head>
		<body><div id="messagetext"><p>您今天已经签到过了</p></div></body></html>`))
	require.Equal(t, "签到 - HDPT", Describe(`<html><head><title>签到 - HDPT</title></head><body></body></html>`))
	require.Equal(t, "", Describe(""))

	long := Describe("<title>" + strings.Repeat("长", 200) + "</title>")
	require.Equal(t, maxHintLength+1, len([]rune(long)))
}
