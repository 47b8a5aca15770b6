package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	v1 "github.com/zhangdayeb/go-redpacket/internal/apis/handler/web/v1"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core"
)

// NewRouter 注册 Web 路由
func NewRouter(redPacket *v1.RedPacket, wallet *v1.Wallet) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		core.Success(c, gin.H{"status": "ok"})
	})

	redPacket.RegisterRouter(router)
	wallet.RegisterRouter(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "请求地址不存在"})
	})

	return router
}
