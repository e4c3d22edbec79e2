package web

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP 取请求来源 IP，作为限流身份。
// 站点跑在反向代理后面，取 X-Forwarded-For 的第一跳。
// 这里选择信任第一跳：伪造头最多让攻击者换着身份提交，
// 还有 email 维度和全局上限兜底；部署时要保证代理层会覆盖该头。
func clientIP(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}
