package model

import "time"

// RedPacket 红包记录
// 金额字段统一使用最小货币单位（分）的整数存储，避免浮点误差
type RedPacket struct {
	Id           int64      `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	PacketId     string     `gorm:"column:packet_id;uniqueIndex" json:"packet_id"`   // 红包唯一ID
	SenderId     int        `gorm:"column:sender_id;index" json:"sender_id"`         // 发送者用户ID
	SenderName   string     `gorm:"column:sender_name" json:"sender_name"`           // 发送者名称
	ChatType     int        `gorm:"column:chat_type" json:"chat_type"`               // 聊天类型 1:私聊 2:群聊
	ChatId       int        `gorm:"column:chat_id" json:"chat_id"`                   // 聊天对象ID（好友/群组）
	Type         string     `gorm:"column:type" json:"type"`                         // 红包类型 random/average/custom
	TotalAmount  int64      `gorm:"column:total_amount" json:"total_amount"`         // 总金额（分）
	TotalCount   int        `gorm:"column:total_count" json:"total_count"`           // 红包总数
	RemainAmount int64      `gorm:"column:remain_amount" json:"remain_amount"`       // 剩余金额（分）
	RemainCount  int        `gorm:"column:remain_count" json:"remain_count"`         // 剩余个数
	Greeting     string     `gorm:"column:greeting" json:"greeting"`                 // 祝福语
	Status       string     `gorm:"column:status;index" json:"status"`               // 状态 active/completed/expired/revoked/canceled
	RefundAmount int64      `gorm:"column:refund_amount" json:"refund_amount"`       // 退款金额（撤回/过期退回，分）
	ExpiredAt    *time.Time `gorm:"column:expired_at;index" json:"expired_at"`       // 过期时间，NULL 表示永不过期
	FinishedAt   *time.Time `gorm:"column:finished_at" json:"finished_at"`           // 终态时间，仅写入一次
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (RedPacket) TableName() string {
	return "red_packet"
}

// IsExpired 是否已过期（未设置过期时间视为永不过期）
func (r *RedPacket) IsExpired(now time.Time) bool {
	return r.ExpiredAt != nil && now.After(*r.ExpiredAt)
}

// RedPacketRecord 红包领取记录
type RedPacketRecord struct {
	Id         int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	PacketId   string    `gorm:"column:packet_id;uniqueIndex:uk_packet_user" json:"packet_id"` // 红包ID
	UserId     int       `gorm:"column:user_id;uniqueIndex:uk_packet_user" json:"user_id"`     // 领取者用户ID
	UserName   string    `gorm:"column:user_name" json:"user_name"`                            // 领取者名称
	Amount     int64     `gorm:"column:amount" json:"amount"`                                  // 领取金额（分）
	ClaimOrder int       `gorm:"column:claim_order" json:"claim_order"`                        // 领取序号，从1开始
	IsBest     bool      `gorm:"column:is_best" json:"is_best"`                                // 是否手气最佳
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (RedPacketRecord) TableName() string {
	return "red_packet_record"
}
