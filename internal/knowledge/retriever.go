package knowledge

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"cnb.cool/zhiqiangwang/pkg/logx"
)

const (
	// TruncationMarker 截断标记, 摘录被裁剪时追加在结尾
	TruncationMarker = " …"
	// windowSeparator 多个行窗口之间的分隔标记
	windowSeparator = "\n---\n"

	anchorLimit  = 3 // 取分数最高的前 3 个锚点行
	windowBefore = 5 // 锚点行向前扩 5 行
	windowAfter  = 6 // 锚点行向后扩 6 行

	boosterWeight = 2.0 // 领域关键词加权
	colonBonus    = 1.0 // 键值式冒号行更可能陈述事实
	hoursBonus    = 2.0 // 严格模式下命中营业时间写法再加分
)

// topicSectionKeywords 主题对应的标题关键词, 用于整段直出
var topicSectionKeywords = map[Topic][]string{
	TopicMenu:      {"menu", "เมนู", "メニュー", "菜单"},
	TopicPrice:     {"price", "menu", "ราคา", "เมนู"},
	TopicHours:     {"hours", "open", "เวลา", "เปิด", "営業"},
	TopicPromotion: {"promotion", "promo", "โปร", "优惠"},
	TopicBooking:   {"booking", "reserv", "จอง", "予約"},
	TopicAddress:   {"address", "location", "ที่อยู่", "地址"},
	TopicContact:   {"contact", "line", "ติดต่อ", "联系"},
}

// RetrieveLexical 词法/分段检索
// 命中主题且存在对应标题段落时整段直出, 保证菜单价格这类高价值问题
// 的答案不被切碎; 其余情况走行级 token 重合打分,
// 锚点行扩成 11 行窗口后拼接, 超出 maxChars 时在词边界截断
func RetrieveLexical(query string, snap *Snapshot, maxChars int, strict bool) string {
	if snap.Empty() {
		return ""
	}

	// 标题捷径: 主题命中 + 段落存在, 跳过打分
	if topic := MatchTopic(query); topic != TopicNone {
		if section := sectionForTopic(topic, snap); section != "" {
			logx.Debug("Heading shortcut hit: topic=%s", topic)
			return Truncate(section, maxChars)
		}
	}

	scored := ScoreLines(query, snap.Content, strict)
	if len(scored) == 0 {
		return ""
	}

	if len(scored) > anchorLimit {
		scored = scored[:anchorLimit]
	}

	lines := strings.Split(snap.Content, "\n")
	windows := make([]string, 0, len(scored))
	covered := make(map[int]bool)

	for _, sl := range scored {
		start := sl.Index - windowBefore
		if start < 0 {
			start = 0
		}
		end := sl.Index + windowAfter
		if end > len(lines)-1 {
			end = len(lines) - 1
		}
		if covered[sl.Index] {
			continue
		}
		for i := start; i <= end; i++ {
			covered[i] = true
		}
		windows = append(windows, strings.Join(lines[start:end+1], "\n"))
	}

	return Truncate(strings.Join(windows, windowSeparator), maxChars)
}

// ScoreLines 对文档逐行打分
// 分数 = 查询 token 在该行出现的个数 (领域词加权)
// + 冒号键值行加分 + 严格模式下营业时间行加分;
// 零分行丢弃, 结果按分数降序, 同分保持文档顺序
func ScoreLines(query, content string, strict bool) []ScoredLine {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	// 去重, 同一个 token 不重复计分
	seen := make(map[string]struct{}, len(queryTokens))
	uniq := queryTokens[:0]
	for _, t := range queryTokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}

	var scored []ScoredLine
	for i, line := range strings.Split(content, "\n") {
		lineTokens := tokenSet(strings.ToLower(line))
		if len(lineTokens) == 0 {
			continue
		}

		var score float64
		for _, t := range uniq {
			if _, ok := lineTokens[t]; !ok {
				continue
			}
			if _, boost := boosters[t]; boost {
				score += boosterWeight
			} else {
				score++
			}
		}
		if score == 0 {
			continue
		}

		if strings.ContainsAny(line, ":：") {
			score += colonBonus
		}
		if strict && hoursPattern.MatchString(line) {
			score += hoursBonus
		}

		scored = append(scored, ScoredLine{Index: i, Line: line, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// sectionForTopic 找主题对应的标题段落
func sectionForTopic(topic Topic, snap *Snapshot) string {
	keywords, ok := topicSectionKeywords[topic]
	if !ok {
		return ""
	}
	for _, chunk := range snap.Chunks {
		heading := strings.ToLower(chunk.Heading)
		if heading == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(heading, kw) {
				return chunk.Content
			}
		}
	}
	return ""
}

// Truncate 在词边界截断文本
// 超出预算时回退到最近的空白处再追加截断标记, 绝不从词中间切开
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	runes := []rune(text)
	cut := maxChars
	for cut > 0 && !unicode.IsSpace(runes[cut-1]) {
		cut--
	}
	if cut == 0 {
		// 整段没有空白 (如无分词语言), 只能按预算硬切
		cut = maxChars
	}

	return strings.TrimRight(string(runes[:cut]), " \t\n") + TruncationMarker
}
