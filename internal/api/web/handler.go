package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gitee.com/flycash/portfolio/internal/domain"
	"gitee.com/flycash/portfolio/internal/errs"
	"gitee.com/flycash/portfolio/internal/service/blog"
	"gitee.com/flycash/portfolio/internal/service/contact"
	"gitee.com/flycash/portfolio/internal/service/content"
	"gitee.com/flycash/portfolio/internal/service/notification"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// Handler 对外 HTTP 接口
type Handler struct {
	contentSvc    content.Service
	contactSvc    contact.Service
	subscriberSvc notification.SubscriberService
	blogSvc       blog.Service
	logger        *elog.Component
}

// NewHandler 创建 HTTP 接口
func NewHandler(
	contentSvc content.Service,
	contactSvc contact.Service,
	subscriberSvc notification.SubscriberService,
	blogSvc blog.Service,
) *Handler {
	return &Handler{
		contentSvc:    contentSvc,
		contactSvc:    contactSvc,
		subscriberSvc: subscriberSvc,
		blogSvc:       blogSvc,
		logger:        elog.DefaultLogger,
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(server *gin.Engine) {
	api := server.Group("/api")
	api.GET("/sections", h.ListSections)
	api.GET("/sections/:category", h.GetSection)
	api.POST("/contact", h.SubmitContact)
	api.POST("/subscribers", h.Subscribe)
	api.GET("/unsubscribe", h.Unsubscribe)
	api.POST("/posts/:id/publish", h.PublishPost)
}

// ListSections 全部板块
func (h *Handler) ListSections(c *gin.Context) {
	lang := domain.ParseLanguage(c.Query("lang"))
	views, err := h.contentSvc.List(c.Request.Context(), lang)
	if err != nil {
		h.internalError(c, "查询板块列表失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": views})
}

// GetSection 单个板块
func (h *Handler) GetSection(c *gin.Context) {
	lang := domain.ParseLanguage(c.Query("lang"))
	view, err := h.contentSvc.GetByCategory(c.Request.Context(), c.Param("category"), lang)
	if err != nil {
		if errors.Is(err, errs.ErrSectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "section not found"})
			return
		}
		h.internalError(c, "查询板块失败", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ContactReq 联系表单请求体
type ContactReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact 提交留言。限流拒绝返回 429 和重试时间。
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}

	decision, err := h.contactSvc.Submit(c.Request.Context(), domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		IP:      clientIP(c),
	})
	if err != nil {
		if errors.Is(err, errs.ErrInvalidParameter) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
			return
		}
		h.internalError(c, "提交留言失败", err)
		return
	}

	if !decision.Allowed {
		retrySeconds := int64(decision.RetryAfter / time.Second)
		if retrySeconds > 0 {
			c.Header("Retry-After", strconv.FormatInt(retrySeconds, 10))
		}
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message":    "too many requests, try again later",
			"reason":     decision.Reason,
			"retryAfter": retrySeconds,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

// SubscribeReq 订阅请求体
type SubscribeReq struct {
	Email    string `json:"email" binding:"required,email"`
	Language string `json:"language"`
}

// Subscribe 订阅新闻邮件
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	_, err := h.subscriberSvc.Subscribe(c.Request.Context(), req.Email, domain.ParseLanguage(req.Language))
	if err != nil {
		if errors.Is(err, errs.ErrInvalidParameter) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
			return
		}
		h.internalError(c, "订阅失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed"})
}

// Unsubscribe 按令牌退订，重复退订幂等
func (h *Handler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	if err := h.subscriberSvc.Unsubscribe(c.Request.Context(), token); err != nil {
		if errors.Is(err, errs.ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "token not found"})
			return
		}
		h.internalError(c, "退订失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// PublishPost 发布文章并触发群发
func (h *Handler) PublishPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request"})
		return
	}
	sent, err := h.blogSvc.Publish(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
			return
		}
		// 订阅者列表加载失败属于硬依赖失败，按运维事件记录
		h.internalError(c, "群发失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, elog.FieldErr(err), elog.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
}
