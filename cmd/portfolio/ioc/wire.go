//go:build wireinject

package ioc

import (
	"gitee.com/flycash/portfolio/internal/api/web"
	"gitee.com/flycash/portfolio/internal/ioc"
	"gitee.com/flycash/portfolio/internal/repository"
	"gitee.com/flycash/portfolio/internal/repository/dao"
	blogsvc "gitee.com/flycash/portfolio/internal/service/blog"
	contactsvc "gitee.com/flycash/portfolio/internal/service/contact"
	contentsvc "gitee.com/flycash/portfolio/internal/service/content"
	notificationsvc "gitee.com/flycash/portfolio/internal/service/notification"
	"github.com/google/wire"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitDB,
		ioc.InitRedisClient,
		ioc.InitGoCache,
		ioc.InitKVStore,
		ioc.InitContentCache,
		ioc.InitLimiter,
		ioc.InitIDGenerator,
		ioc.InitMailClient,
		ioc.InitContactConfig,
		ioc.InitBaseURL,
	)
	contentSvcSet = wire.NewSet(
		contentsvc.NewService,
		repository.NewSectionRepository,
		dao.NewSectionDAO,
	)
	blogSvcSet = wire.NewSet(
		blogsvc.NewService,
		repository.NewBlogPostRepository,
		dao.NewBlogPostDAO,
		notificationsvc.NewDispatcher,
	)
	subscriberSvcSet = wire.NewSet(
		notificationsvc.NewSubscriberService,
		repository.NewSubscriberRepository,
		dao.NewSubscriberDAO,
	)
	contactSvcSet = wire.NewSet(
		contactsvc.NewService,
		repository.NewContactMessageRepository,
		dao.NewContactMessageDAO,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		BaseSet,

		// --- 服务构建 ---

		// 内容服务
		contentSvcSet,

		// 博客服务
		blogSvcSet,

		// 订阅者服务
		subscriberSvcSet,

		// 联系表单服务
		contactSvcSet,

		// HTTP 服务器
		web.NewHandler,
		ioc.InitWebServer,
		wire.Struct(new(ioc.App), "*"),
	)

	return new(ioc.App)
}
