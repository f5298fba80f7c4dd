package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuestion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Menu?", "menu?"},
		{"  menu ?  ", "menu ?"},
		{"What Time\tDo You OPEN", "what time do you open"},
		{"ร้านเปิดกี่โมง", "ร้านเปิดกี่โมง"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeQuestion(tt.in))
	}
}

// 归一化后等价的问题映射到同一个缓存键
func TestCacheKeyStable(t *testing.T) {
	assert.Equal(t, cacheKey("Menu today"), cacheKey("  menu   TODAY "))
	assert.NotEqual(t, cacheKey("menu"), cacheKey("hours"))
	assert.Contains(t, cacheKey("menu"), "reply:")
}
