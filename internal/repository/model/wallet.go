package model

import "time"

// Wallet 用户钱包
type Wallet struct {
	Id           int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserId       int       `gorm:"column:user_id;uniqueIndex" json:"user_id"`       // 用户ID
	Balance      int64     `gorm:"column:balance" json:"balance"`                   // 余额（分），不允许为负
	TotalIncome  int64     `gorm:"column:total_income" json:"total_income"`         // 累计收入（分）
	TotalExpense int64     `gorm:"column:total_expense" json:"total_expense"`       // 累计支出（分）
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallet"
}

// WalletTransaction 钱包流水
// 只追加不修改，记录变动前后余额，作为对账依据
type WalletTransaction struct {
	Id            int64     `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	TransactionNo string    `gorm:"column:transaction_no;uniqueIndex" json:"transaction_no"` // 流水号（全局唯一）
	UserId        int       `gorm:"column:user_id;index" json:"user_id"`                     // 用户ID
	Amount        int64     `gorm:"column:amount" json:"amount"`                             // 变动金额（分），入账为正出账为负
	BalanceBefore int64     `gorm:"column:balance_before" json:"balance_before"`             // 变动前余额（分）
	BalanceAfter  int64     `gorm:"column:balance_after" json:"balance_after"`               // 变动后余额（分）
	Reason        string    `gorm:"column:reason" json:"reason"`                             // 变动原因（审计用）
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (WalletTransaction) TableName() string {
	return "wallet_transaction"
}
