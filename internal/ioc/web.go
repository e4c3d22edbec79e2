package ioc

import (
	"gitee.com/flycash/portfolio/internal/api/web"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitWebServer(hdl *web.Handler) *gin.Engine {
	server := gin.Default()
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))
	hdl.RegisterRoutes(server)
	return server
}
