package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# ร้านกาแฟบ้านสวน Cafe

Line: @bansuan
ที่อยู่: 123 ถนนสุขุมวิท

## Menu เมนู

- Latte 60 บาท
- Americano 50 บาท

## Hours เวลาเปิด

เปิด 10:00-20:00 ทุกวัน

## Promotion

ลด 10% วันจันทร์
`

func TestSplit(t *testing.T) {
	chunks := Split(sampleDoc)
	require.Len(t, chunks, 4)

	assert.Equal(t, "ร้านกาแฟบ้านสวน Cafe", chunks[0].Heading)
	assert.Equal(t, "Menu เมนู", chunks[1].Heading)
	assert.Equal(t, "Hours เวลาเปิด", chunks[2].Heading)
	assert.Equal(t, "Promotion", chunks[3].Heading)

	assert.Contains(t, chunks[1].Content, "Latte 60")
	assert.Contains(t, chunks[2].Content, "10:00-20:00")
}

// 每个分块最多只含一个标题行, 且分块顺序与文档一致
func TestSplitSingleHeadingPerChunk(t *testing.T) {
	chunks := Split(sampleDoc)

	for _, c := range chunks {
		headings := 0
		for _, line := range strings.Split(c.Content, "\n") {
			if IsHeading(line) {
				headings++
			}
		}
		assert.LessOrEqual(t, headings, 1, "chunk %q has %d headings", c.Heading, headings)
	}

	// 顺序校验: 每个分块的起始位置在文档中单调递增
	last := -1
	for _, c := range chunks {
		idx := strings.Index(sampleDoc, c.Content)
		require.GreaterOrEqual(t, idx, 0)
		assert.Greater(t, idx, last)
		last = idx
	}
}

// 切分是无损的: 拼回去能还原整个文档
func TestSplitLossless(t *testing.T) {
	joined := ""
	for i, c := range Split(sampleDoc) {
		if i > 0 {
			joined += "\n"
		}
		joined += c.Content
	}
	assert.Equal(t, strings.TrimSpace(sampleDoc), strings.TrimSpace(joined))
}

func TestSplitEdgeCases(t *testing.T) {
	assert.Nil(t, Split(""))
	assert.Nil(t, Split("   \n\n  "))

	// 没有任何标题的文档算一个分块
	chunks := Split("just some text\nwith two lines")
	require.Len(t, chunks, 1)
	assert.Equal(t, "", chunks[0].Heading)

	// 井号不在行首不算标题
	chunks = Split("text with # inline hash")
	require.Len(t, chunks, 1)

	// 1~6 个井号都是标题, 7 个不是
	chunks = Split("###### six\ncontent\n####### seven")
	require.Len(t, chunks, 1)
	assert.Equal(t, "six", chunks[0].Heading)
}
