package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core"
)

const (
	ctxUserId   = "user_id"
	ctxUserName = "user_name"
)

// Session 请求身份信息
type Session struct {
	UserId   int
	UserName string
}

// Identity 读取上游网关注入的身份头
//
// 鉴权本身由上游完成，这里只信任转发后的内部请求头
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, err := strconv.Atoi(c.GetHeader("X-User-Id"))
		if err != nil || userId <= 0 {
			core.Fail(c, 401, "缺少身份信息")
			c.Abort()
			return
		}

		c.Set(ctxUserId, userId)
		c.Set(ctxUserName, c.GetHeader("X-User-Name"))
		c.Next()
	}
}

// FromContext 提取当前请求的身份信息
func FromContext(c *gin.Context) (Session, bool) {
	userId, ok := c.Get(ctxUserId)
	if !ok {
		return Session{}, false
	}

	return Session{
		UserId:   userId.(int),
		UserName: c.GetString(ctxUserName),
	}, true
}
