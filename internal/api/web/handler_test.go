package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContentSvc 固定返回两个板块
type stubContentSvc struct{}

func (stubContentSvc) List(_ context.Context, lang domain.Language) ([]domain.SectionView, error) {
	sec := domain.Section{
		Category: "about",
		Title:    domain.BilingualText{ES: "Sobre mí", EN: "About me"},
	}
	return []domain.SectionView{sec.Localize(lang)}, nil
}

func (stubContentSvc) GetByCategory(_ context.Context, category string, lang domain.Language) (domain.SectionView, error) {
	if category != "about" {
		return domain.SectionView{}, errs.ErrSectionNotFound
	}
	sec := domain.Section{
		Category: "about",
		Title:    domain.BilingualText{ES: "Sobre mí", EN: "About me"},
	}
	return sec.Localize(lang), nil
}

func (stubContentSvc) Save(_ context.Context, sec domain.Section) (domain.Section, error) {
	return sec, nil
}

func (stubContentSvc) Delete(context.Context, string) error {
	return nil
}

// stubContactSvc 记录收到的留言，按开关拒绝
type stubContactSvc struct {
	deny     bool
	received []domain.ContactMessage
}

func (s *stubContactSvc) Submit(_ context.Context, msg domain.ContactMessage) (domain.RateLimitDecision, error) {
	if err := msg.Validate(); err != nil {
		return domain.RateLimitDecision{}, err
	}
	if s.deny {
		return domain.Deny("ip-hour", 30*time.Minute), nil
	}
	s.received = append(s.received, msg)
	return domain.Allow(), nil
}

type stubSubscriberSvc struct{}

func (stubSubscriberSvc) Subscribe(_ context.Context, emailAddr string, lang domain.Language) (domain.Subscriber, error) {
	return domain.Subscriber{ID: 1, Email: emailAddr, Language: lang}, nil
}

func (stubSubscriberSvc) Unsubscribe(_ context.Context, token string) error {
	if token == "known-token" {
		return nil
	}
	return errs.ErrTokenNotFound
}

type stubBlogSvc struct{}

func (stubBlogSvc) GetByID(_ context.Context, id int64) (domain.BlogPost, error) {
	return domain.BlogPost{ID: id}, nil
}

func (stubBlogSvc) ListPublished(context.Context) ([]domain.BlogPost, error) {
	return nil, nil
}

func (stubBlogSvc) Save(_ context.Context, post domain.BlogPost) (domain.BlogPost, error) {
	return post, nil
}

func (stubBlogSvc) Publish(_ context.Context, id int64) (int, error) {
	if id == 404 {
		return 0, errs.ErrPostNotFound
	}
	return 2, nil
}

func newTestServer(contactSvc *stubContactSvc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	hdl := NewHandler(stubContentSvc{}, contactSvc, stubSubscriberSvc{}, stubBlogSvc{})
	hdl.RegisterRoutes(server)
	return server
}

func doJSON(t *testing.T, server *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func TestListSections(t *testing.T) {
	t.Parallel()
	server := newTestServer(&stubContactSvc{})

	recorder := doJSON(t, server, http.MethodGet, "/api/sections?lang=en", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Sections []domain.SectionView `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "About me", resp.Sections[0].Title)
}

func TestGetSection(t *testing.T) {
	t.Parallel()
	server := newTestServer(&stubContactSvc{})

	recorder := doJSON(t, server, http.MethodGet, "/api/sections/about", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var view domain.SectionView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &view))
	// 没带 lang 参数默认西语
	assert.Equal(t, "Sobre mí", view.Title)

	recorder = doJSON(t, server, http.MethodGet, "/api/sections/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestSubmitContact(t *testing.T) {
	t.Parallel()
	contactSvc := &stubContactSvc{}
	server := newTestServer(contactSvc)

	recorder := doJSON(t, server, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Ana",
		"email":   "ana@example.com",
		"message": "Hola",
	}, map[string]string{"X-Forwarded-For": "9.9.9.9, 10.0.0.1"})
	require.Equal(t, http.StatusOK, recorder.Code)

	require.Len(t, contactSvc.received, 1)
	// 反向代理场景取 X-Forwarded-For 第一跳
	assert.Equal(t, "9.9.9.9", contactSvc.received[0].IP)
}

func TestSubmitContact_BadRequest(t *testing.T) {
	t.Parallel()
	server := newTestServer(&stubContactSvc{})

	recorder := doJSON(t, server, http.MethodPost, "/api/contact", map[string]string{
		"name": "Ana",
		// 缺 email 和 message
	}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, server, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Ana",
		"email":   "not-an-email",
		"message": "Hola",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSubmitContact_RateLimited(t *testing.T) {
	t.Parallel()
	server := newTestServer(&stubContactSvc{deny: true})

	recorder := doJSON(t, server, http.MethodPost, "/api/contact", map[string]string{
		"name":    "Ana",
		"email":   "ana@example.com",
		"message": "Hola",
	}, nil)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "1800", recorder.Header().Get("Retry-After"))

	var resp struct {
		Reason     string `json:"reason"`
		RetryAfter int64  `json:"retryAfter"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "ip-hour", resp.Reason)
	assert.Equal(t, int64(1800), resp.RetryAfter)
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	server := newTestServer(&stubContactSvc{})

	recorder := doJSON(t, server, http.MethodPost, "/api/subscribers", map[string]string{
		"email":    "ana@example.com",
		"language": "en",
	}, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, server, http.MethodPost, "/api/subscribers", map[string]string{
		"email": "not-an-email",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()
	server := newTestServer(&stubContactSvc{})

	recorder := doJSON(t, server, http.MethodGet, "/api/unsubscribe?token=known-token", nil, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, server, http.MethodGet, "/api/unsubscribe?token=unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, server, http.MethodGet, "/api/unsubscribe", nil, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPublishPost(t *testing.T) {
	t.Parallel()
	server := newTestServer(&stubContactSvc{})

	recorder := doJSON(t, server, http.MethodPost, "/api/posts/3/publish", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Sent int `json:"sent"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Sent)

	recorder = doJSON(t, server, http.MethodPost, "/api/posts/404/publish", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, server, http.MethodPost, "/api/posts/abc/publish", nil, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
