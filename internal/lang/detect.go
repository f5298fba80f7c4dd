// Package lang 基于字符集与停用词的启发式语言识别。
// 判定顺序是刻意固定的: 日文假名必须先于 CJK 判定,
// 否则日文句子里的汉字会被误判为中文。
package lang

import (
	"strings"
	"unicode"
)

// Code 语言代码 (封闭枚举)
type Code string

const (
	Thai     Code = "th"
	Japanese Code = "ja"
	Chinese  Code = "zh"
	Korean   Code = "ko"
	Spanish  Code = "es"
	Italian  Code = "it"
	English  Code = "en"
)

// Name 语言的英文名称, 用于拼接提示词
func (c Code) Name() string {
	switch c {
	case Thai:
		return "Thai"
	case Japanese:
		return "Japanese"
	case Chinese:
		return "Chinese"
	case Korean:
		return "Korean"
	case Spanish:
		return "Spanish"
	case Italian:
		return "Italian"
	default:
		return "English"
	}
}

// 西语/意语的判定依赖特有变音符号和高频停用词
var (
	spanishMarks    = "¿¡ñÑ"
	spanishWords    = []string{"hola", "gracias", "por favor", "dónde", "cuánto", "qué", "usted", "tienda", "precio"}
	italianMarks    = "àèéìòù"
	italianWords    = []string{"ciao", "grazie", "prego", "quanto", "dove", "perché", "aperto", "prezzo", "negozio"}
	spanishOnlyOrth = []string{"ción", "¿", "¡"}
)

// Detect 识别文本语言, 永远返回一个语言代码, 识别不出时默认英文
func Detect(text string) Code {
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Thai, r):
			return Thai
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			return Japanese
		}
	}

	// 假名优先判定完之后再看汉字
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return Chinese
		}
		if unicode.Is(unicode.Hangul, r) {
			return Korean
		}
	}

	lower := strings.ToLower(text)

	if strings.ContainsAny(text, spanishMarks) || containsAnyWord(lower, spanishWords) || containsAny(lower, spanishOnlyOrth) {
		return Spanish
	}

	if containsAnyWord(lower, italianWords) || strings.ContainsAny(lower, italianMarks) {
		return Italian
	}

	return English
}

// containsAnyWord 判断文本是否包含任一完整单词
func containsAnyWord(lower string, words []string) bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	for _, w := range words {
		if strings.Contains(w, " ") {
			if strings.Contains(lower, w) {
				return true
			}
			continue
		}
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
