package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>
		<div id="messagetext">
			<p>您今天已经签到过了
			或者签到时间还未开始</p>
			<script>var x = 1;</script>
		</div>
	</body></html>`))
	require.NoError(t, err)

	require.Equal(t, "您今天已经签到过了 或者签到时间还未开始", CleanText(doc.Find("#messagetext")))
	require.Equal(t, "", CleanText(doc.Find("#missing")))
}
