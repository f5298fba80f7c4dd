// Package guard 校验上游模型的回复。
// 严格模式要求模型只输出 {"answer": "..."} 或 {"no_answer": true} 的
// JSON 信封, 解析失败一律收敛为"没有答案", 绝不因此报错。
package guard

import (
	"encoding/json"
	"strings"
)

// Fallback 固定兜底话术, 信封解析失败或模型明确表示无答案时使用
const Fallback = "Sorry, I don't have that information right now."

// NoInformation 知识库没有任何匹配内容时的固定话术
// (这条回复不经过上游模型, 属于刻意的省钱兼防幻觉短路)
const NoInformation = "Sorry, I couldn't find any information about that."

// envelope 模型回复的信封结构
type envelope struct {
	Answer   *string `json:"answer"`
	NoAnswer bool    `json:"no_answer"`
}

// Extract 解析模型回复的 JSON 信封
// 返回答案文本和是否有答案; 解析失败、no_answer 为真、
// answer 缺失或为空白, 都视为没有答案
func Extract(raw string) (string, bool) {
	text := stripFences(strings.TrimSpace(raw))

	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return "", false
	}

	if env.NoAnswer || env.Answer == nil {
		return "", false
	}

	answer := strings.TrimSpace(*env.Answer)
	if answer == "" {
		return "", false
	}

	return answer, true
}

// stripFences 去掉模型习惯性包裹的 markdown 代码栅栏
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
