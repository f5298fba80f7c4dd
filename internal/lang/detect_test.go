package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Code
	}{
		{"泰文", "สวัสดี ร้านเปิดกี่โมง", Thai},
		{"泰文单词", "สวัสดี", Thai},
		{"日文平假名", "こんにちは、営業時間は？", Japanese},
		{"日文片假名", "メニューはありますか", Japanese},
		{"中文", "你们几点开门", Chinese},
		{"韩文", "메뉴 있어요?", Korean},
		{"西班牙文问号", "¿A qué hora abren?", Spanish},
		{"西班牙文停用词", "hola, cuanto cuesta el cafe", Spanish},
		{"意大利文", "ciao, quanto costa", Italian},
		{"英文", "Hello there", English},
		{"空字符串", "", English},
		{"数字和符号", "10:00 - 20:00 ???", English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

// 假名必须先于汉字判定, 否则日文句子会被误判为中文
func TestDetectKanaBeforeHan(t *testing.T) {
	assert.Equal(t, Japanese, Detect("営業時間は何時ですか"))
	assert.Equal(t, Chinese, Detect("营业时间是几点"))
}

// 识别必须是全函数: 任何输入都有确定的返回值
func TestDetectDeterministic(t *testing.T) {
	inputs := []string{"", "สวัสดี", "hello", "1234", "!!!", "mixed สวัสดี hello"}
	for _, in := range inputs {
		first := Detect(in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Detect(in))
		}
	}
}
