package ioc

import (
	"github.com/gin-gonic/gin"
)

// App 应用对外的入口集合
type App struct {
	WebServer *gin.Engine
}
