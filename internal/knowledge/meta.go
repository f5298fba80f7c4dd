package knowledge

import (
	"regexp"
	"strings"
)

// 联系方式的常见写法: "Line: @shop" / "LINE ID: xxx" / "联系: xxx" / "contact: xxx"
var contactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)line\s*(?:id)?\s*[:：]\s*(@?\S+)`),
	regexp.MustCompile(`(?i)(?:contact|tel|phone|โทร|ติดต่อ|联系方式|联系)\s*[:：]\s*(\S+)`),
}

// ExtractMeta 从知识库内容中提取店铺信息
// 店名取第一个一级标题, 联系方式按模式匹配, 每次重载后重新计算
func ExtractMeta(content string) ShopMeta {
	var meta ShopMeta

	for _, line := range strings.Split(content, "\n") {
		if meta.Name == "" && strings.HasPrefix(line, "# ") {
			meta.Name = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
		if meta.Contact == "" {
			for _, p := range contactPatterns {
				if m := p.FindStringSubmatch(line); m != nil {
					meta.Contact = m[1]
					break
				}
			}
		}
		if meta.Name != "" && meta.Contact != "" {
			break
		}
	}

	return meta
}
