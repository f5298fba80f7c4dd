package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NathanontP/chatbot/internal/knowledge"
	"github.com/NathanontP/chatbot/internal/lang"
)

var testMeta = knowledge.ShopMeta{
	Name:    "ร้านกาแฟบ้านสวน Cafe",
	Contact: "@bansuan",
}

func TestComposeStrict(t *testing.T) {
	prompt, temp := Compose(knowledge.TopicHours, testMeta, "## Hours\n10:00-20:00", "ร้านเปิดกี่โมง", lang.Thai)

	assert.Equal(t, StrictTemperature, temp)
	assert.Contains(t, prompt, "Answer ONLY from the context")
	assert.Contains(t, prompt, "10:00-20:00")
	assert.Contains(t, prompt, "Thai")
	assert.Contains(t, prompt, `{"answer": "..."}`)
	assert.Contains(t, prompt, `{"no_answer": true}`)
	assert.Contains(t, prompt, "@bansuan")
	assert.Contains(t, prompt, "ร้านเปิดกี่โมง")
}

func TestComposeGeneral(t *testing.T) {
	prompt, temp := Compose(knowledge.TopicNone, testMeta, "# Doc", "hello there", lang.English)

	assert.Equal(t, GeneralTemperature, temp)
	assert.Contains(t, prompt, "answer general questions freely")
	assert.Contains(t, prompt, "Never invent shop-specific facts")
	assert.Contains(t, prompt, "English")
	assert.NotContains(t, prompt, "no_answer")
}

// 无联系方式时退回通用的 "没有该信息" 指引
func TestComposeStrictWithoutContact(t *testing.T) {
	prompt, _ := Compose(knowledge.TopicMenu, knowledge.ShopMeta{Name: "Cafe"}, "## Menu", "menu?", lang.English)

	assert.Contains(t, prompt, "politely say you do not have that information")
	assert.NotContains(t, prompt, "contacting the shop at")
}

func TestComposeEmptyMetaName(t *testing.T) {
	prompt, _ := Compose(knowledge.TopicNone, knowledge.ShopMeta{}, "", "hi", lang.English)
	assert.Contains(t, prompt, "the shop")
	assert.NotContains(t, prompt, "Shop information for reference")
}

// 超长用户消息按字符截断后嵌入, 不截断多字节字符
func TestComposeSampleTruncation(t *testing.T) {
	long := strings.Repeat("ก", 500)
	prompt, _ := Compose(knowledge.TopicNone, testMeta, "", long, lang.Thai)

	assert.NotContains(t, prompt, long)
	assert.Contains(t, prompt, strings.Repeat("ก", userSampleLimit))
}
