// Package prompt 组装发给上游模型的系统提示词。
// 严格模式与通用模式互斥: 命中知识库主题的问题只允许按摘录回答,
// 其余问题可以自由发挥但不得编造店铺事实。
package prompt

import (
	"fmt"
	"strings"

	"github.com/NathanontP/chatbot/internal/knowledge"
	"github.com/NathanontP/chatbot/internal/lang"
)

const (
	// StrictTemperature 严格模式固定温度 0, 输出确定性优先
	StrictTemperature float32 = 0
	// GeneralTemperature 通用模式允许发挥
	GeneralTemperature float32 = 0.7

	// userSampleLimit 嵌入提示词的用户消息样本长度上限
	userSampleLimit = 120
)

// Compose 组装系统提示词
// topic 非空走严格模式 (contextWindow 为检索摘录),
// 否则走通用模式 (contextWindow 为截断后的整份文档),
// 返回提示词和该模式对应的采样温度
func Compose(topic knowledge.Topic, meta knowledge.ShopMeta, contextWindow, query string, code lang.Code) (string, float32) {
	if topic != knowledge.TopicNone {
		return strictPrompt(meta, contextWindow, query, code), StrictTemperature
	}
	return generalPrompt(meta, contextWindow, query, code), GeneralTemperature
}

// strictPrompt 严格模式: 只按摘录回答, 答案走 JSON 信封
func strictPrompt(meta knowledge.ShopMeta, contextWindow, query string, code lang.Code) string {
	var b strings.Builder

	shop := meta.Name
	if shop == "" {
		shop = "the shop"
	}

	fmt.Fprintf(&b, "You are the assistant of %s. Answer ONLY from the context below. Never invent facts.\n\n", shop)
	fmt.Fprintf(&b, "Context:\n%s\n\n", contextWindow)
	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "- Answer in %s only. Do not mix languages.\n", code.Name())
	fmt.Fprintf(&b, "- Translate facts into %s but keep names, times and numbers exactly as written.\n", code.Name())
	fmt.Fprintf(&b, "- At most two sentences.\n")
	if meta.Contact != "" {
		fmt.Fprintf(&b, "- If the context does not contain the answer, politely suggest contacting the shop at %s.\n", meta.Contact)
	} else {
		fmt.Fprintf(&b, "- If the context does not contain the answer, politely say you do not have that information.\n")
	}
	fmt.Fprintf(&b, "- Reply with ONLY a JSON object, no other text: {\"answer\": \"...\"} when the context answers the question, or {\"no_answer\": true} when it does not.\n\n")
	fmt.Fprintf(&b, "The user wrote: %q — mirror this language in your answer.", sample(query))

	return b.String()
}

// generalPrompt 通用模式: 可以自由回答, 但店铺事实以文档为准
func generalPrompt(meta knowledge.ShopMeta, contextWindow, query string, code lang.Code) string {
	var b strings.Builder

	shop := meta.Name
	if shop == "" {
		shop = "the shop"
	}

	fmt.Fprintf(&b, "You are the friendly assistant of %s. You may answer general questions freely.\n\n", shop)
	if contextWindow != "" {
		fmt.Fprintf(&b, "Shop information for reference:\n%s\n\n", contextWindow)
	}
	fmt.Fprintf(&b, "Rules:\n")
	fmt.Fprintf(&b, "- Never invent shop-specific facts (hours, menu, prices) beyond the information above.\n")
	fmt.Fprintf(&b, "- Answer in %s only. Do not mix languages.\n\n", code.Name())
	fmt.Fprintf(&b, "The user wrote: %q — mirror this language in your answer.", sample(query))

	return b.String()
}

// sample 截取用户消息样本, 过长时按字符截断
func sample(query string) string {
	runes := []rune(query)
	if len(runes) <= userSampleLimit {
		return query
	}
	return string(runes[:userSampleLimit])
}
