package notification

import (
	"fmt"
	"html"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/service/provider/email"
)

// renderNewsletter 按订阅者语言渲染一封新文章通知。
// 所有双语字段都走 BilingualText.Localize 的三级回退，
// 订阅者偏好的语言没翻译时退到另一种语言，保证正文不会是空的。
func renderNewsletter(post domain.BlogPost, sub domain.Subscriber, baseURL string) email.Email {
	lang := sub.Language

	title := post.Title.Localize(lang)
	summary := post.Summary.Localize(lang)
	postURL := fmt.Sprintf("%s/blog/%s?lang=%s", baseURL, post.Slug, lang)
	unsubURL := fmt.Sprintf("%s/api/unsubscribe?token=%s", baseURL, sub.UnsubscribeToken)

	subject := fmt.Sprintf("%s: %s", localize(lang, "Nuevo artículo", "New post"), title)

	htmlBody := fmt.Sprintf(
		`<h1>%s</h1>
<p>%s</p>
<p><a href="%s">%s</a></p>
<hr>
<p style="font-size:12px;color:#888"><a href="%s">%s</a></p>`,
		html.EscapeString(title),
		html.EscapeString(summary),
		postURL,
		localize(lang, "Leer el artículo completo", "Read the full post"),
		unsubURL,
		localize(lang, "Cancelar suscripción", "Unsubscribe"),
	)

	textBody := fmt.Sprintf("%s\n\n%s\n\n%s: %s\n\n%s: %s\n",
		title,
		summary,
		localize(lang, "Leer el artículo completo", "Read the full post"),
		postURL,
		localize(lang, "Cancelar suscripción", "Unsubscribe"),
		unsubURL,
	)

	return email.Email{
		To:      sub.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}
}

func localize(lang domain.Language, es, en string) string {
	if lang == domain.LanguageEN {
		return en
	}
	return es
}
