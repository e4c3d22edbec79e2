package notification

import (
	"testing"

	"gitee.com/flycash/portfolio/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderNewsletter_Spanish(t *testing.T) {
	t.Parallel()
	post := domain.BlogPost{
		Slug:    "hola-mundo",
		Title:   domain.BilingualText{ES: "Hola mundo", EN: "Hello world"},
		Summary: domain.BilingualText{ES: "Primer artículo", EN: "First post"},
	}
	sub := domain.Subscriber{
		Email:            "ana@example.com",
		Language:         domain.LanguageES,
		UnsubscribeToken: "tok123",
	}

	msg := renderNewsletter(post, sub, "https://example.com")

	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "Nuevo artículo: Hola mundo", msg.Subject)
	assert.Contains(t, msg.HTML, "Hola mundo")
	assert.Contains(t, msg.HTML, "https://example.com/blog/hola-mundo?lang=es")
	assert.Contains(t, msg.HTML, "https://example.com/api/unsubscribe?token=tok123")
	assert.Contains(t, msg.Text, "Primer artículo")
}

func TestRenderNewsletter_English(t *testing.T) {
	t.Parallel()
	post := domain.BlogPost{
		Slug:    "hola-mundo",
		Title:   domain.BilingualText{ES: "Hola mundo", EN: "Hello world"},
		Summary: domain.BilingualText{ES: "Primer artículo", EN: "First post"},
	}
	sub := domain.Subscriber{
		Email:            "john@example.com",
		Language:         domain.LanguageEN,
		UnsubscribeToken: "tok456",
	}

	msg := renderNewsletter(post, sub, "https://example.com")

	assert.Equal(t, "New post: Hello world", msg.Subject)
	assert.Contains(t, msg.HTML, "Read the full post")
	assert.Contains(t, msg.HTML, "https://example.com/blog/hola-mundo?lang=en")
}

// 订阅者偏好的语言没翻译时退到另一种语言，正文不能是空的
func TestRenderNewsletter_FallbackToOtherLanguage(t *testing.T) {
	t.Parallel()
	post := domain.BlogPost{
		Slug:    "english-only",
		Title:   domain.BilingualText{EN: "English only"},
		Summary: domain.BilingualText{EN: "No translation yet"},
	}
	sub := domain.Subscriber{
		Email:    "ana@example.com",
		Language: domain.LanguageES,
	}

	msg := renderNewsletter(post, sub, "https://example.com")

	// 界面文案跟偏好语言走，标题退到英文
	assert.Equal(t, "Nuevo artículo: English only", msg.Subject)
	assert.Contains(t, msg.HTML, "No translation yet")
}

func TestRenderNewsletter_EscapesHTML(t *testing.T) {
	t.Parallel()
	post := domain.BlogPost{
		Slug:  "xss",
		Title: domain.BilingualText{ES: `<script>alert("x")</script>`},
	}
	sub := domain.Subscriber{Email: "a@b.com", Language: domain.LanguageES}

	msg := renderNewsletter(post, sub, "https://example.com")

	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
}
