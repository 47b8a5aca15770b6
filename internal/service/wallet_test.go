package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zhangdayeb/go-redpacket/internal/entity"
)

func TestInMemoryWalletService_DebitCredit(t *testing.T) {
	wallet := NewInMemoryWalletService()
	ctx := context.Background()

	wallet.SetBalance(1001, 500)

	if err := wallet.Debit(ctx, 1001, 600, "测试出账"); !errors.Is(err, entity.ErrInsufficientFunds) {
		t.Errorf("Debit() error = %v, want ErrInsufficientFunds", err)
	}

	if err := wallet.Debit(ctx, 1001, 300, "测试出账"); err != nil {
		t.Fatalf("Debit() error = %v", err)
	}

	if err := wallet.Credit(ctx, 1001, 100, "测试入账"); err != nil {
		t.Fatalf("Credit() error = %v", err)
	}

	if balance, _ := wallet.GetBalance(ctx, 1001); balance != 300 {
		t.Errorf("balance = %d, want 300", balance)
	}
}

func TestInMemoryWalletService_TransactionHistoryPagination(t *testing.T) {
	wallet := NewInMemoryWalletService()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := wallet.Credit(ctx, 1001, int64(i*100), fmt.Sprintf("入账 %d", i)); err != nil {
			t.Fatalf("Credit() error = %v", err)
		}
	}

	// 其他用户的流水不应出现在结果中
	if err := wallet.Credit(ctx, 2001, 999, "其他用户入账"); err != nil {
		t.Fatalf("Credit() error = %v", err)
	}

	// 第一页，每页 2 条，按时间倒序
	result, err := wallet.GetTransactionHistory(ctx, 1001, 1, 2)
	if err != nil {
		t.Fatalf("GetTransactionHistory() error = %v", err)
	}

	if result.Total != 5 {
		t.Errorf("Total = %d, want 5", result.Total)
	}
	if result.Page != 1 || result.PageSize != 2 {
		t.Errorf("page = %d/%d, want 1/2", result.Page, result.PageSize)
	}
	if len(result.Items) != 2 {
		t.Fatalf("Items len = %d, want 2", len(result.Items))
	}
	if result.Items[0].Amount != 500 || result.Items[1].Amount != 400 {
		t.Errorf("page 1 amounts = %d/%d, want 500/400", result.Items[0].Amount, result.Items[1].Amount)
	}

	// 末页只剩 1 条
	result, err = wallet.GetTransactionHistory(ctx, 1001, 3, 2)
	if err != nil {
		t.Fatalf("GetTransactionHistory() error = %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Amount != 100 {
		t.Errorf("page 3 = %v, want single item of 100", result.Items)
	}

	// 超出范围的页返回空列表而不是错误
	result, err = wallet.GetTransactionHistory(ctx, 1001, 9, 2)
	if err != nil {
		t.Fatalf("GetTransactionHistory() error = %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("out-of-range page Items len = %d, want 0", len(result.Items))
	}

	// 非法分页参数回落到默认值
	result, err = wallet.GetTransactionHistory(ctx, 1001, 0, -1)
	if err != nil {
		t.Fatalf("GetTransactionHistory() error = %v", err)
	}
	if result.Page != 1 || result.PageSize != 20 {
		t.Errorf("normalized page = %d/%d, want 1/20", result.Page, result.PageSize)
	}
	if len(result.Items) != 5 {
		t.Errorf("Items len = %d, want 5", len(result.Items))
	}
}
