package cron

import (
	"github.com/google/wire"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core/crontab"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(ExpireRedPacket), "*"),
	NewJobs,
	crontab.NewCrontab,
)

// NewJobs 汇总全部定时任务
func NewJobs(expireRedPacket *ExpireRedPacket) []crontab.ICrontab {
	return []crontab.ICrontab{
		expireRedPacket,
	}
}
