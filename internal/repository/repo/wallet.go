package repo

import (
	"context"

	"github.com/zhangdayeb/go-redpacket/internal/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Wallet struct {
	db *gorm.DB
}

func NewWallet(db *gorm.DB) *Wallet {
	return &Wallet{db: db}
}

// FindByUserId 查找用户钱包
func (w *Wallet) FindByUserId(ctx context.Context, userId int) (*model.Wallet, error) {
	var wallet model.Wallet
	err := w.db.WithContext(ctx).
		Where("user_id = ?", userId).
		First(&wallet).Error
	if err != nil {
		return nil, err
	}

	return &wallet, nil
}

// FindByUserIdForUpdate 加行锁查找用户钱包，必须在事务中调用
func (w *Wallet) FindByUserIdForUpdate(tx *gorm.DB, userId int) (*model.Wallet, error) {
	var wallet model.Wallet
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userId).
		First(&wallet).Error
	if err != nil {
		return nil, err
	}

	return &wallet, nil
}

// Create 初始化钱包（针对新用户）
func (w *Wallet) Create(tx *gorm.DB, wallet *model.Wallet) error {
	return tx.Create(wallet).Error
}

// UpdateBalance 原子加减余额
// 出账时带余额条件，返回受影响行数供调用方判断余额是否充足
func (w *Wallet) UpdateBalance(tx *gorm.DB, userId int, delta int64) (int64, error) {
	query := tx.Model(&model.Wallet{}).Where("user_id = ?", userId)

	values := map[string]any{
		"balance": gorm.Expr("balance + ?", delta),
	}

	if delta >= 0 {
		values["total_income"] = gorm.Expr("total_income + ?", delta)
	} else {
		values["total_expense"] = gorm.Expr("total_expense + ?", -delta)
		query = query.Where("balance >= ?", -delta)
	}

	result := query.Updates(values)

	return result.RowsAffected, result.Error
}

// CreateTransaction 追加钱包流水
func (w *Wallet) CreateTransaction(tx *gorm.DB, transaction *model.WalletTransaction) error {
	return tx.Create(transaction).Error
}

// ListTransactions 分页查询钱包流水
func (w *Wallet) ListTransactions(ctx context.Context, userId int, page, pageSize int) ([]*model.WalletTransaction, int64, error) {
	var total int64
	if err := w.db.WithContext(ctx).
		Model(&model.WalletTransaction{}).
		Where("user_id = ?", userId).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.WalletTransaction
	err := w.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}
