package knowledge

import (
	"regexp"
	"strings"
)

// 标题行: 行首 1~6 个 #, 后面可以跟空格也可以直接跟文字
var headingPattern = regexp.MustCompile(`^#{1,6}( |$)`)

// Split 按 markdown 标题切分文档
// 每个分块从标题行开始, 一直到下一个标题行之前, 顺序与文档一致
// 纯空白片段会被丢弃, 除此之外拼接所有分块可以还原整个文档
func Split(content string) []Chunk {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	lines := strings.Split(content, "\n")

	var chunks []Chunk
	var current []string
	var heading string

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := strings.Join(current, "\n")
		if strings.TrimSpace(text) != "" {
			chunks = append(chunks, Chunk{
				Heading: heading,
				Content: text,
			})
		}
		current = nil
	}

	for _, line := range lines {
		if headingPattern.MatchString(line) {
			flush()
			heading = strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
		current = append(current, line)
	}
	flush()

	return chunks
}

// IsHeading 判断一行是否为标题行
func IsHeading(line string) bool {
	return headingPattern.MatchString(line)
}
