package entity

import "github.com/zhangdayeb/go-redpacket/internal/pkg/core/errorx"

// 红包业务错误类别（封闭集合）
var (
	ErrInvalidAllocation = errorx.New(400, "invalid_allocation") // 金额不足以按最小单位拆分
	ErrInsufficientFunds = errorx.New(400, "insufficient_funds") // 发送者余额不足
	ErrNotClaimable      = errorx.New(400, "not_claimable")      // 非待领取状态/已过期/已领完
	ErrAlreadyClaimed    = errorx.New(400, "already_claimed")    // 同一用户重复领取
	ErrSelfClaim         = errorx.New(400, "self_claim")         // 发送者领取自己的红包
	ErrNotFound          = errorx.New(404, "not_found")          // 红包不存在
	ErrNotOwner          = errorx.New(403, "not_owner")          // 非发送者撤回
	ErrContention        = errorx.New(409, "contention")         // 锁等待超时，可安全重试
	ErrShareQueueDesync  = errorx.New(500, "share_queue_desync") // 份额队列与计数不一致
	ErrUnavailable       = errorx.New(503, "unavailable")        // 存储/缓存不可用，可退避重试
)

// RedPacketErrorText 错误类别对应文本（展示层使用）
var RedPacketErrorText = map[string]string{
	ErrInvalidAllocation.Kind: "红包金额不足以拆分",
	ErrInsufficientFunds.Kind: "余额不足",
	ErrNotClaimable.Kind:      "红包不可领取",
	ErrAlreadyClaimed.Kind:    "您已领取过该红包",
	ErrSelfClaim.Kind:         "不能领取自己发的红包",
	ErrNotFound.Kind:          "红包不存在",
	ErrNotOwner.Kind:          "仅发送者可撤回红包",
	ErrContention.Kind:        "操作太频繁，请稍后重试",
	ErrShareQueueDesync.Kind:  "红包不可领取",
	ErrUnavailable.Kind:       "服务暂不可用，请稍后重试",
}
