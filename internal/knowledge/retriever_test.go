package knowledge

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Content: sampleDoc,
		Chunks:  Split(sampleDoc),
		Meta:    ExtractMeta(sampleDoc),
	}
}

// 问题里带 menu 且文档有 Menu 段落时, 整段直出, 不走打分
func TestRetrieveLexicalHeadingShortcut(t *testing.T) {
	snap := sampleSnapshot()

	window := RetrieveLexical("do you have a menu?", snap, 3000, true)
	assert.Contains(t, window, "Latte 60")
	assert.Contains(t, window, "Americano 50")
	assert.Contains(t, window, "## Menu")

	// 泰文问法同样命中
	window = RetrieveLexical("ขอดูเมนูหน่อย", snap, 3000, true)
	assert.Contains(t, window, "Latte 60")
}

func TestRetrieveLexicalTokenOverlap(t *testing.T) {
	snap := sampleSnapshot()

	// "โทร"/"ติดต่อ" 都不在文档里, 但 Line 联系方式行应被命中
	window := RetrieveLexical("what is your line contact", snap, 3000, true)
	assert.Contains(t, window, "@bansuan")
}

func TestRetrieveLexicalNoMatch(t *testing.T) {
	snap := sampleSnapshot()

	window := RetrieveLexical("quantum chromodynamics lecture notes", snap, 3000, false)
	assert.Equal(t, "", window)
}

func TestRetrieveLexicalEmptySnapshot(t *testing.T) {
	assert.Equal(t, "", RetrieveLexical("menu", &Snapshot{}, 3000, true))
	assert.Equal(t, "", RetrieveLexical("menu", nil, 3000, true))
}

func TestScoreLines(t *testing.T) {
	content := "opening hours: 10:00-20:00\nwe sell coffee\nnothing relevant here at all"

	scored := ScoreLines("what are your opening hours", content, true)
	require.NotEmpty(t, scored)

	// 冒号加分 + 营业时间写法加分, 第一行必须排最前
	assert.Equal(t, 0, scored[0].Index)

	// 零分行被丢弃
	for _, sl := range scored {
		assert.Greater(t, sl.Score, 0.0)
		assert.NotContains(t, sl.Line, "nothing relevant")
	}
}

// 同分保持文档顺序 (稳定排序)
func TestScoreLinesStableOrder(t *testing.T) {
	content := "coffee one\ncoffee two\ncoffee three"
	scored := ScoreLines("coffee", content, false)
	require.Len(t, scored, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{scored[0].Index, scored[1].Index, scored[2].Index})
}

// 跨语言同义词: 泰文问价格能命中英文知识行
func TestScoreLinesSynonymFold(t *testing.T) {
	content := "price list below\nlatte and americano"
	scored := ScoreLines("ราคาเท่าไหร่", content, false)
	require.NotEmpty(t, scored)
	assert.Equal(t, 0, scored[0].Index)
}

func TestTruncate(t *testing.T) {
	// 在预算内原样返回
	assert.Equal(t, "short text", Truncate("short text", 100))

	// 超出预算时在词边界截断并附标记
	text := strings.Repeat("word ", 100)
	got := Truncate(text, 52)
	assert.True(t, strings.HasSuffix(got, TruncationMarker))

	body := strings.TrimSuffix(got, TruncationMarker)
	require.NotEmpty(t, body)
	// 截断点之前的最后一个词必须是完整的 "word"
	assert.True(t, strings.HasSuffix(body, "word"), "got %q", body)
}

// 截断绝不从词中间切开
func TestTruncateNeverSplitsWord(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta"
	for budget := 5; budget < len(text); budget++ {
		got := Truncate(text, budget)
		body := strings.TrimSuffix(got, TruncationMarker)
		if body == got {
			continue // 没截断
		}
		rest := strings.TrimPrefix(text, body)
		require.NotEmpty(t, rest)
		first := []rune(rest)[0]
		assert.True(t, unicode.IsSpace(first),
			"budget %d cut mid-word: %q", budget, body)
	}
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		query string
		want  Topic
	}{
		{"what's on the menu", TopicMenu},
		{"ขอดูเมนู", TopicMenu},
		{"เปิดกี่โมง", TopicHours},
		{"how much does a latte cost", TopicPrice},
		{"can I make a reservation", TopicBooking},
		{"where are you located", TopicAddress},
		{"您的菜单有什么", TopicMenu},
		{"tell me a joke", TopicNone},
		{"", TopicNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchTopic(tt.query), "query %q", tt.query)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Hello, World! 123")
	assert.Contains(t, tokens, "hello")
	assert.Contains(t, tokens, "world")
	assert.Contains(t, tokens, "123")

	// 同义词折叠: 泰文"เมนู"折成 menu
	tokens = Tokenize("ขอดูเมนูหน่อย")
	assert.Contains(t, tokens, "menu")
}
