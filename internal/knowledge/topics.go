package knowledge

import (
	"regexp"
	"strings"
	"unicode"
)

// Topic 查询主题, 命中主题的问题走严格模式 (只按知识库回答)
type Topic string

const (
	TopicNone      Topic = ""
	TopicHours     Topic = "hours"
	TopicMenu      Topic = "menu"
	TopicPrice     Topic = "price"
	TopicPromotion Topic = "promotion"
	TopicBooking   Topic = "booking"
	TopicAddress   Topic = "address"
	TopicContact   Topic = "contact"
)

// topicKeywords 主题关键词, 包含各语言的常见问法
// 顺序即匹配优先级, 一个问题只归入第一个命中的主题
var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{TopicHours, []string{"hours", "open", "close", "เปิด", "ปิด", "กี่โมง", "เวลา", "営業", "何時", "营业", "몇시", "horario", "orario"}},
	{TopicMenu, []string{"menu", "เมนู", "メニュー", "菜单", "메뉴", "menú"}},
	{TopicPrice, []string{"price", "cost", "ราคา", "กี่บาท", "เท่าไหร่", "値段", "いくら", "价格", "多少钱", "가격", "precio", "prezzo"}},
	{TopicPromotion, []string{"promotion", "promo", "discount", "โปร", "โปรโมชั่น", "ส่วนลด", "割引", "优惠", "할인", "descuento", "sconto"}},
	{TopicBooking, []string{"booking", "reserve", "reservation", "จอง", "予約", "预订", "预约", "예약", "reserva", "prenotare", "prenotazione"}},
	{TopicAddress, []string{"address", "where", "location", "ที่อยู่", "อยู่ที่ไหน", "แผนที่", "場所", "住所", "地址", "주소", "어디", "dirección", "dónde", "indirizzo", "dove"}},
	{TopicContact, []string{"contact", "line", "tel", "phone", "ติดต่อ", "เบอร์", "โทร", "連絡", "電話", "联系", "电话", "연락", "contacto", "contatto"}},
}

// synonyms 跨语言同义词表, 把各语言的领域词折叠成统一 token
// 这样泰文问题也能命中英文写的知识库行
var synonyms = map[string]string{
	"เมนู": "menu", "メニュー": "menu", "菜单": "menu", "메뉴": "menu", "menú": "menu",
	"ราคา": "price", "値段": "price", "价格": "price", "가격": "price", "precio": "price", "prezzo": "price",
	"เปิด": "open", "営業": "open", "营业": "open", "horario": "open", "orario": "open",
	"ปิด": "close",
	"จอง": "booking", "予約": "booking", "预订": "booking", "예약": "booking", "reserva": "booking",
	"ที่อยู่": "address", "住所": "address", "地址": "address", "주소": "address",
	"ติดต่อ": "contact", "連絡": "contact", "联系": "contact",
	"โปรโมชั่น": "promotion", "割引": "promotion", "优惠": "promotion", "할인": "promotion",
	"กาแฟ": "coffee", "コーヒー": "coffee", "咖啡": "coffee", "커피": "coffee", "café": "coffee", "caffè": "coffee",
	"เบอร์": "phone", "電話": "phone", "电话": "phone",
}

// boosters 高价值领域词, 命中时加权
var boosters = map[string]struct{}{
	"hours": {}, "open": {}, "close": {},
	"menu": {}, "price": {}, "promotion": {},
	"booking": {}, "address": {}, "contact": {},
	"line": {}, "phone": {},
}

// hoursPattern 营业时间写法, 例如 "10:00-20:00" / "10.30 - 21.00"
var hoursPattern = regexp.MustCompile(`\d{1,2}[:.]\d{2}\s*[-–~]\s*\d{1,2}[:.]\d{2}`)

// MatchTopic 判断问题属于哪个主题, 未命中返回 TopicNone
func MatchTopic(query string) Topic {
	lower := strings.ToLower(query)
	tokens := tokenSet(lower)

	for _, tk := range topicKeywords {
		for _, kw := range tk.keywords {
			if _, ok := tokens[kw]; ok {
				return tk.topic
			}
			// 泰文/日文等不以空格分词, 退化为子串匹配
			if !isASCIIWord(kw) && strings.Contains(lower, kw) {
				return tk.topic
			}
		}
	}

	return TopicNone
}

// Tokenize 分词: 任何非字母非数字的连续字符都视为分隔符,
// 并折叠同义词表, 返回的 token 全部为小写
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, f)
		if canonical, ok := synonyms[f]; ok {
			tokens = append(tokens, canonical)
		}
	}

	// 不分空格的语言走子串折叠
	for foreign, canonical := range synonyms {
		if !isASCIIWord(foreign) && strings.Contains(lower, foreign) {
			tokens = append(tokens, canonical)
		}
	}

	return tokens
}

func tokenSet(lower string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(lower) {
		set[t] = struct{}{}
	}
	return set
}

func isASCIIWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
