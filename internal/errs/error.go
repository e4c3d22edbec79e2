package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter = errors.New("参数错误")

	ErrSectionNotFound      = errors.New("内容板块不存在")
	ErrPostNotFound         = errors.New("文章不存在")
	ErrPostAlreadyPublished = errors.New("文章已发布")

	ErrSubscriberNotFound  = errors.New("订阅者不存在")
	ErrSubscriberDuplicate = errors.New("订阅者邮箱冲突")
	ErrTokenNotFound       = errors.New("退订令牌不存在")

	ErrCreateContactFailed  = errors.New("保存留言失败")
	ErrContactDuplicate     = errors.New("留言ID冲突")
	ErrLoadSubscriberFailed = errors.New("加载订阅者列表失败")

	ErrCacheKeyNotFound = errors.New("缓存键不存在")
	ErrSendMailFailed   = errors.New("发送邮件失败")
)
