package domain

// Language 站点支持的语言
type Language string

const (
	LanguageES Language = "es" // 西班牙语
	LanguageEN Language = "en" // 英语
)

// ParseLanguage 解析语言参数，非法值回退到默认语言
func ParseLanguage(s string) Language {
	if Language(s) == LanguageEN {
		return LanguageEN
	}
	return LanguageES
}

// Other 返回另一种语言
func (l Language) Other() Language {
	if l == LanguageEN {
		return LanguageES
	}
	return LanguageEN
}

// BilingualText 双语字段。Legacy 是历史遗留的未翻译字段，
// 只在两种翻译都为空时兜底使用。
type BilingualText struct {
	ES     string
	EN     string
	Legacy string
}

// Localize 按语言取值：优先目标语言，其次另一种语言，最后 Legacy。
// 所有渲染双语内容的地方（对外读接口、邮件渲染）都必须走这一个函数。
func (t BilingualText) Localize(lang Language) string {
	first, second := t.ES, t.EN
	if lang == LanguageEN {
		first, second = t.EN, t.ES
	}
	if first != "" {
		return first
	}
	if second != "" {
		return second
	}
	return t.Legacy
}

// IsZero 三个变体都为空
func (t BilingualText) IsZero() bool {
	return t.ES == "" && t.EN == "" && t.Legacy == ""
}
