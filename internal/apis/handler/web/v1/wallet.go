package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core/middleware"
	"github.com/zhangdayeb/go-redpacket/internal/service"
)

type Wallet struct {
	WalletService service.IWalletService
}

func (h *Wallet) RegisterRouter(r gin.IRouter) {
	group := r.Group("/api/v1/wallet", middleware.Identity())
	{
		group.GET("/balance", core.Wrap(h.Balance))
		group.GET("/transactions", core.Wrap(h.Transactions))
	}
}

type WalletBalanceResponse struct {
	Balance int64 `json:"balance"` // 余额（分）
}

// Balance 获取余额
//
//	@Summary		获取余额
//	@Description	获取用户钱包余额（最小货币单位）
//	@Tags			钱包
//	@Produce		json
//	@Success		200	{object}	WalletBalanceResponse
//	@Router			/api/v1/wallet/balance [get]
func (h *Wallet) Balance(c *gin.Context) error {
	session, _ := middleware.FromContext(c)

	balance, err := h.WalletService.GetBalance(c.Request.Context(), session.UserId)
	if err != nil {
		return err
	}

	core.Success(c, &WalletBalanceResponse{Balance: balance})

	return nil
}

type WalletTransactionsRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// Transactions 获取钱包流水
//
//	@Summary		获取钱包流水
//	@Description	分页获取用户钱包流水记录
//	@Tags			钱包
//	@Produce		json
//	@Param			page		query		int	false	"页码"
//	@Param			page_size	query		int	false	"每页条数"
//	@Success		200			{object}	service.TransactionHistoryResult
//	@Router			/api/v1/wallet/transactions [get]
func (h *Wallet) Transactions(c *gin.Context) error {
	session, _ := middleware.FromContext(c)

	var req WalletTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		core.Fail(c, 400, "参数错误")
		return nil
	}

	result, err := h.WalletService.GetTransactionHistory(c.Request.Context(), session.UserId, req.Page, req.PageSize)
	if err != nil {
		return err
	}

	core.Success(c, result)

	return nil
}
