package entity

// 红包类型
const (
	RedPacketTypeRandom  = "random"  // 拼手气红包
	RedPacketTypeAverage = "average" // 平均分配红包
	RedPacketTypeCustom  = "custom"  // 自定义金额红包
)

// 红包状态
const (
	RedPacketStatusActive    = "active"    // 待领取
	RedPacketStatusCompleted = "completed" // 已领完
	RedPacketStatusExpired   = "expired"   // 已过期
	RedPacketStatusRevoked   = "revoked"   // 已撤回
	RedPacketStatusCanceled  = "canceled"  // 已取消（创建补偿）
)

// RedPacketStatusText 红包状态对应文本（展示层使用）
var RedPacketStatusText = map[string]string{
	RedPacketStatusActive:    "待领取",
	RedPacketStatusCompleted: "已领完",
	RedPacketStatusExpired:   "已过期",
	RedPacketStatusRevoked:   "已撤回",
	RedPacketStatusCanceled:  "已取消",
}

// 聊天类型
const (
	ChatTypePrivate = 1 // 私聊
	ChatTypeGroup   = 2 // 群聊
)

// IsTerminalRedPacketStatus 终态红包不再发生资金变动
func IsTerminalRedPacketStatus(status string) bool {
	switch status {
	case RedPacketStatusCompleted, RedPacketStatusExpired,
		RedPacketStatusRevoked, RedPacketStatusCanceled:
		return true
	}

	return false
}
