package core

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zhangdayeb/go-redpacket/internal/entity"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core/errorx"
)

// Wrap 把业务处理函数适配为 gin.HandlerFunc
//
// 引擎只返回错误类别，文案在这里按类别统一映射
func Wrap(h func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h(c)
		if err == nil {
			return
		}

		if c.Writer.Written() {
			return
		}

		if kind := errorx.KindOf(err); kind != "" {
			Fail(c, errorx.CodeOf(err), textFor(kind))
			return
		}

		slog.ErrorContext(c.Request.Context(), "请求处理失败", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, Response{Code: 500, Msg: "系统异常"})
	}
}

func textFor(kind string) string {
	if text, ok := entity.RedPacketErrorText[kind]; ok {
		return text
	}

	return "请求失败"
}
