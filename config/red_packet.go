package config

import "time"

// RedPacket 红包业务配置
type RedPacket struct {
	ExpireHours    int   `yaml:"expire_hours"`    // 红包有效期（小时），0 表示永不过期
	MinUnit        int64 `yaml:"min_unit"`        // 单个红包最小金额（最小货币单位，分）
	ShuffleShares  bool  `yaml:"shuffle_shares"`  // 入队前是否打乱红包金额顺序
	ClaimTimeoutMs int   `yaml:"claim_timeout_ms"` // 领取操作超时时间（毫秒）
}

func (r *RedPacket) init() {
	if r.ExpireHours < 0 {
		r.ExpireHours = 0
	}
	if r.MinUnit <= 0 {
		r.MinUnit = 1
	}
	if r.ClaimTimeoutMs <= 0 {
		r.ClaimTimeoutMs = 2000
	}
}

func (r *RedPacket) ExpireDuration() time.Duration {
	return time.Duration(r.ExpireHours) * time.Hour
}

func (r *RedPacket) ClaimTimeout() time.Duration {
	return time.Duration(r.ClaimTimeoutMs) * time.Millisecond
}
