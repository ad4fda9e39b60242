package notify

import (
	"fmt"
	"strings"

	"forum-checkin/internal/runner"
	"forum-checkin/internal/site"
)

// Title is the title of every check-in notification.
const Title = "签到结果"

func formatSuccess(s runner.Success) string {
	switch s.Family {
	case site.FamilyDcSignin:
		return fmt.Sprintf(
			"✅ %s 签到成功！\n🪙 T币: %s",
			s.Site,
			s.Fields[site.FieldBonus],
		)
	default:
		return fmt.Sprintf(
			"✅ %s 签到成功！\n🌟 积分: %s\n📅 连续签到: %s 天\n🎫 补签卡: %s 张",
			s.Site,
			s.Fields[site.FieldBonus],
			s.Fields[site.FieldContinuousDays],
			s.Fields[site.FieldMakeupCards],
		)
	}
}

// Format renders a report as one message, a block per successful site and a
// single line naming every failed site. An empty report renders as "".
func Format(report runner.Report) string {
	blocks := make([]string, 0, len(report.Successes)+1)
	for _, s := range report.Successes {
		blocks = append(blocks, formatSuccess(s))
	}
	if len(report.Failures) > 0 {
		blocks = append(blocks, fmt.Sprintf("❌ 签到失败站点: %s", strings.Join(report.FailedSites(), ", ")))
	}
	return strings.Join(blocks, "\n\n")
}
