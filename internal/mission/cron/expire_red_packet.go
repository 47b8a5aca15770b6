package cron

import (
	"context"
	"log/slog"

	"github.com/zhangdayeb/go-redpacket/internal/pkg/core/crontab"
	"github.com/zhangdayeb/go-redpacket/internal/service"
)

var _ crontab.ICrontab = (*ExpireRedPacket)(nil)

type ExpireRedPacket struct {
	RedPacketService service.IRedPacketService
}

func (c *ExpireRedPacket) Name() string {
	return "red_packet.expire"
}

// Spec 配置定时任务规则
// 每小时执行一次，检查并处理过期红包
func (c *ExpireRedPacket) Spec() string {
	return "0 * * * *"
}

func (c *ExpireRedPacket) Enable() bool {
	return true
}

func (c *ExpireRedPacket) Do(ctx context.Context) error {
	count, err := c.RedPacketService.ExpireOverdue(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "红包过期处理失败", "error", err)
		return err
	}

	if count > 0 {
		slog.InfoContext(ctx, "红包过期处理完成", "expired_count", count)
	}

	return nil
}
