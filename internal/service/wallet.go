package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/zhangdayeb/go-redpacket/internal/entity"
	"github.com/zhangdayeb/go-redpacket/internal/repository/model"
	"github.com/zhangdayeb/go-redpacket/internal/repository/repo"
	"gorm.io/gorm"
)

var _ IWalletService = (*WalletService)(nil)
var _ IWalletService = (*InMemoryWalletService)(nil)

// IWalletService 钱包服务接口（红包引擎的记账出口）
//
// 每次出入账都追加一条不可变流水，reason 为审计用途的变动原因。
// 出账以零为下限，余额不足返回 ErrInsufficientFunds。
type IWalletService interface {
	// GetBalance 获取余额（分）
	GetBalance(ctx context.Context, userId int) (int64, error)

	// Debit 出账
	Debit(ctx context.Context, userId int, amount int64, reason string) error

	// Credit 入账
	Credit(ctx context.Context, userId int, amount int64, reason string) error

	// GetTransactionHistory 分页获取钱包流水
	GetTransactionHistory(ctx context.Context, userId int, page, pageSize int) (*TransactionHistoryResult, error)
}

// TransactionHistoryResult 钱包流水查询结果
type TransactionHistoryResult struct {
	Items    []*model.WalletTransaction `json:"items"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}

// WalletService 钱包服务的数据库实现
type WalletService struct {
	DB         *gorm.DB
	WalletRepo *repo.Wallet
	Node       *snowflake.Node
}

func NewWalletService(db *gorm.DB, walletRepo *repo.Wallet, node *snowflake.Node) *WalletService {
	return &WalletService{DB: db, WalletRepo: walletRepo, Node: node}
}

func (s *WalletService) GetBalance(ctx context.Context, userId int) (int64, error) {
	wallet, err := s.WalletRepo.FindByUserId(ctx, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, err
	}

	return wallet.Balance, nil
}

func (s *WalletService) Debit(ctx context.Context, userId int, amount int64, reason string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.DebitTx(tx, userId, amount, reason)
	})
}

func (s *WalletService) Credit(ctx context.Context, userId int, amount int64, reason string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.CreditTx(tx, userId, amount, reason)
	})
}

// DebitTx 在调用方事务内出账
// 红包创建的扣款与红包落库必须同一事务提交或回滚
func (s *WalletService) DebitTx(tx *gorm.DB, userId int, amount int64, reason string) error {
	wallet, err := s.WalletRepo.FindByUserIdForUpdate(tx, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrInsufficientFunds
		}

		return err
	}

	if wallet.Balance < amount {
		return entity.ErrInsufficientFunds
	}

	rows, err := s.WalletRepo.UpdateBalance(tx, userId, -amount)
	if err != nil {
		return err
	}

	// 带余额条件的更新未命中说明余额不足
	if rows == 0 {
		return entity.ErrInsufficientFunds
	}

	return s.WalletRepo.CreateTransaction(tx, &model.WalletTransaction{
		TransactionNo: s.newTransactionNo(),
		UserId:        userId,
		Amount:        -amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance - amount,
		Reason:        reason,
		CreatedAt:     time.Now(),
	})
}

// CreditTx 在调用方事务内入账，钱包不存在时自动开户
func (s *WalletService) CreditTx(tx *gorm.DB, userId int, amount int64, reason string) error {
	wallet, err := s.WalletRepo.FindByUserIdForUpdate(tx, userId)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		wallet = &model.Wallet{
			UserId:    userId,
			Balance:   0,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.WalletRepo.Create(tx, wallet); err != nil {
			return err
		}
	}

	if _, err := s.WalletRepo.UpdateBalance(tx, userId, amount); err != nil {
		return err
	}

	return s.WalletRepo.CreateTransaction(tx, &model.WalletTransaction{
		TransactionNo: s.newTransactionNo(),
		UserId:        userId,
		Amount:        amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance + amount,
		Reason:        reason,
		CreatedAt:     time.Now(),
	})
}

func (s *WalletService) GetTransactionHistory(ctx context.Context, userId int, page, pageSize int) (*TransactionHistoryResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := s.WalletRepo.ListTransactions(ctx, userId, page, pageSize)
	if err != nil {
		return nil, err
	}

	return &TransactionHistoryResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *WalletService) newTransactionNo() string {
	return "TXN" + s.Node.Generate().String()
}

// ------------------------------------------------
// InMemoryWalletService 钱包服务的内存实现（用于开发测试）
// ------------------------------------------------

type InMemoryWalletService struct {
	mu           sync.Mutex
	balances     map[int]int64
	transactions []*model.WalletTransaction
}

func NewInMemoryWalletService() *InMemoryWalletService {
	return &InMemoryWalletService{balances: make(map[int]int64)}
}

// SetBalance 初始化用户余额
func (s *InMemoryWalletService) SetBalance(userId int, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[userId] = balance
}

func (s *InMemoryWalletService) GetBalance(ctx context.Context, userId int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balances[userId], nil
}

func (s *InMemoryWalletService) Debit(ctx context.Context, userId int, amount int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.balances[userId]
	if balance < amount {
		return entity.ErrInsufficientFunds
	}

	s.balances[userId] = balance - amount
	s.append(userId, -amount, balance, reason)

	return nil
}

func (s *InMemoryWalletService) Credit(ctx context.Context, userId int, amount int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.balances[userId]
	s.balances[userId] = balance + amount
	s.append(userId, amount, balance, reason)

	return nil
}

func (s *InMemoryWalletService) GetTransactionHistory(ctx context.Context, userId int, page, pageSize int) (*TransactionHistoryResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*model.WalletTransaction, 0)
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if s.transactions[i].UserId == userId {
			all = append(all, s.transactions[i])
		}
	}

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}

	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	return &TransactionHistoryResult{
		Items:    all[start:end],
		Total:    int64(len(all)),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *InMemoryWalletService) append(userId int, amount, balanceBefore int64, reason string) {
	s.transactions = append(s.transactions, &model.WalletTransaction{
		Id:            int64(len(s.transactions) + 1),
		UserId:        userId,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceBefore + amount,
		Reason:        reason,
		CreatedAt:     time.Now(),
	})
}
