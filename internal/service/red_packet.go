package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/zhangdayeb/go-redpacket/config"
	"github.com/zhangdayeb/go-redpacket/internal/entity"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/core/errorx"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/strutil"
	"github.com/zhangdayeb/go-redpacket/internal/repository/cache"
	"github.com/zhangdayeb/go-redpacket/internal/repository/model"
	"github.com/zhangdayeb/go-redpacket/internal/repository/repo"
	"gorm.io/gorm"
)

// IRedPacketService 红包服务接口
//
// 红包生命周期的唯一入口：创建、领取、撤回、过期清理与查询。
// 所有方法返回封闭错误集合（internal/entity/errors.go）中的类别，
// 多步转移要么全部落库要么全部回滚，外部观察不到中间状态。
type IRedPacketService interface {
	// Create 创建红包：拆分金额、扣款、落库、份额入队
	Create(ctx context.Context, req *CreateRedPacketRequest) (*RedPacketInfo, error)

	// Claim 领取红包
	Claim(ctx context.Context, packetId string, userId int, userName string) (*ClaimResult, error)

	// Revoke 撤回红包，剩余金额退回发送者
	Revoke(ctx context.Context, packetId string, requesterId int) error

	// ExpireOverdue 过期处理：将超时红包标记为已过期并退款
	ExpireOverdue(ctx context.Context) (int, error)

	// GetDetail 获取红包详情（含领取历史与进度）
	GetDetail(ctx context.Context, packetId string) (*RedPacketInfo, error)

	// GetStatus 获取红包状态（快速查询，用于消息列表展示）
	GetStatus(ctx context.Context, packetId string, userId int) (*RedPacketStatusInfo, error)
}

// CreateRedPacketRequest 创建红包请求
type CreateRedPacketRequest struct {
	SenderId      int     `json:"sender_id"`
	SenderName    string  `json:"sender_name"`
	ChatType      int     `json:"chat_type"` // 1:私聊 2:群聊
	ChatId        int     `json:"chat_id"`
	Type          string  `json:"type"`           // random/average/custom
	TotalAmount   int64   `json:"total_amount"`   // 总金额（分）
	TotalCount    int     `json:"total_count"`    // 红包个数
	Greeting      string  `json:"greeting"`       // 祝福语
	ExpireSeconds int     `json:"expire_seconds"` // 有效期（秒），0 使用全局配置
	CustomAmounts []int64 `json:"custom_amounts"` // custom 模式的明确金额列表（分）
}

// RedPacketInfo 红包详情DTO
type RedPacketInfo struct {
	PacketId     string                    `json:"packet_id"`
	SenderId     int                       `json:"sender_id"`
	SenderName   string                    `json:"sender_name"`
	ChatType     int                       `json:"chat_type"`
	ChatId       int                       `json:"chat_id"`
	Type         string                    `json:"type"`
	TotalAmount  int64                     `json:"total_amount"`
	TotalCount   int                       `json:"total_count"`
	RemainAmount int64                     `json:"remain_amount"`
	RemainCount  int                       `json:"remain_count"`
	Greeting     string                    `json:"greeting"`
	Status       string                    `json:"status"`
	Progress     int                       `json:"progress"` // 领取进度百分比
	RefundAmount int64                     `json:"refund_amount"`
	BestUserId   int                       `json:"best_user_id"`
	BestUserName string                    `json:"best_user_name"`
	BestAmount   int64                     `json:"best_amount"`
	ReceivedList []*RedPacketReceiverInfo  `json:"received_list"`
	CreatedAt    time.Time                 `json:"created_at"`
	ExpiredAt    *time.Time                `json:"expired_at"`
	FinishedAt   *time.Time                `json:"finished_at"`
}

// RedPacketReceiverInfo 红包领取记录DTO
type RedPacketReceiverInfo struct {
	UserId     int       `json:"user_id"`
	UserName   string    `json:"user_name"`
	Amount     int64     `json:"amount"`
	ClaimOrder int       `json:"claim_order"`
	IsBest     bool      `json:"is_best"`
	ReceivedAt time.Time `json:"received_at"`
}

// ClaimResult 领取红包结果
type ClaimResult struct {
	PacketId   string    `json:"packet_id"`
	UserId     int       `json:"user_id"`
	Amount     int64     `json:"amount"`
	ClaimOrder int       `json:"claim_order"`
	Completed  bool      `json:"completed"` // 本次领取后红包是否已领完
	IsBest     bool      `json:"is_best"`   // 是否手气最佳（领完后才确定）
	ReceivedAt time.Time `json:"received_at"`
}

// RedPacketStatusInfo 红包状态简要信息（用于消息展示）
type RedPacketStatusInfo struct {
	PacketId       string `json:"packet_id"`
	Status         string `json:"status"`
	Type           string `json:"type"`
	RemainCount    int    `json:"remain_count"`
	HasReceived    bool   `json:"has_received"`
	ReceivedAmount int64  `json:"received_amount"`
	IsBest         bool   `json:"is_best"`
}

var _ IRedPacketService = (*RedPacketService)(nil)

// RedPacketService 红包服务的数据库实现
//
// 并发控制：同一红包的领取/撤回/过期全部先对红包行加 FOR UPDATE 锁，
// 行锁把三类操作串行化；(packet_id, user_id) 唯一索引与带余量条件的
// 扣减更新作为第二道防线。不同红包之间完全独立，无全局锁。
type RedPacketService struct {
	Conf       *config.Config
	DB         *gorm.DB
	Splitter   *AmountSplitter
	PacketRepo *repo.RedPacket
	ShareQueue *cache.ShareQueueStorage
	Wallet     *WalletService
}

func NewRedPacketService(
	conf *config.Config,
	db *gorm.DB,
	splitter *AmountSplitter,
	packetRepo *repo.RedPacket,
	shareQueue *cache.ShareQueueStorage,
	wallet *WalletService,
) *RedPacketService {
	return &RedPacketService{
		Conf:       conf,
		DB:         db,
		Splitter:   splitter,
		PacketRepo: packetRepo,
		ShareQueue: shareQueue,
		Wallet:     wallet,
	}
}

func (s *RedPacketService) Create(ctx context.Context, req *CreateRedPacketRequest) (*RedPacketInfo, error) {
	if err := validatePacketType(req.Type); err != nil {
		return nil, err
	}

	shares, err := s.generateShares(req)
	if err != nil {
		return nil, err
	}

	packetId, err := s.newPacketId(ctx)
	if err != nil {
		return nil, wrapEngineError(err)
	}

	now := time.Now()

	var expiredAt *time.Time
	if req.ExpireSeconds > 0 {
		t := now.Add(time.Duration(req.ExpireSeconds) * time.Second)
		expiredAt = &t
	} else if s.Conf.RedPacket.ExpireHours > 0 {
		t := now.Add(s.Conf.RedPacket.ExpireDuration())
		expiredAt = &t
	}

	packet := &model.RedPacket{
		PacketId:     packetId,
		SenderId:     req.SenderId,
		SenderName:   req.SenderName,
		ChatType:     req.ChatType,
		ChatId:       req.ChatId,
		Type:         req.Type,
		TotalAmount:  req.TotalAmount,
		TotalCount:   req.TotalCount,
		RemainAmount: req.TotalAmount,
		RemainCount:  req.TotalCount,
		Greeting:     req.Greeting,
		Status:       entity.RedPacketStatusActive,
		ExpiredAt:    expiredAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 扣款与红包落库同一事务，任一步失败整体回滚，不产生红包
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reason := fmt.Sprintf("发红包 %s", packetId)
		if err := s.Wallet.DebitTx(tx, req.SenderId, req.TotalAmount, reason); err != nil {
			return err
		}

		return s.PacketRepo.Create(tx, packet)
	})
	if err != nil {
		return nil, wrapEngineError(err)
	}

	// 份额入队在事务提交后执行，失败走补偿取消：
	// 红包转入 canceled 终态并把扣款退回发送者
	if err := s.seedShares(ctx, packet, shares); err != nil {
		s.cancelPacket(ctx, packet)
		return nil, wrapEngineError(err)
	}

	return s.buildInfo(packet, nil), nil
}

func (s *RedPacketService) Claim(ctx context.Context, packetId string, userId int, userName string) (*ClaimResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Conf.RedPacket.ClaimTimeout())
	defer cancel()

	var (
		result      *ClaimResult
		poppedShare int64
		popped      bool
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		packet, err := s.PacketRepo.FindByPacketIdForUpdate(tx, packetId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrNotFound
			}

			return err
		}

		now := time.Now()

		if packet.Status != entity.RedPacketStatusActive || packet.RemainCount == 0 || packet.IsExpired(now) {
			return entity.ErrNotClaimable
		}

		if packet.SenderId == userId {
			return entity.ErrSelfClaim
		}

		if _, err := s.PacketRepo.FindRecord(tx, packetId, userId); err == nil {
			return entity.ErrAlreadyClaimed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		share, ok, err := s.ShareQueue.PopOne(ctx, packetId)
		if err != nil {
			return err
		}

		if !ok {
			// 队列空但计数未清零，份额队列与红包计数失联
			slog.ErrorContext(ctx, "红包份额队列与计数不一致",
				"packet_id", packetId, "remain_count", packet.RemainCount,
				"error", entity.ErrShareQueueDesync)
			return entity.ErrNotClaimable
		}

		poppedShare, popped = share, true

		rows, err := s.PacketRepo.DecrementRemain(tx, packetId, share)
		if err != nil {
			return err
		}
		if rows == 0 {
			return entity.ErrNotClaimable
		}

		remainCount := packet.RemainCount - 1
		claimOrder := packet.TotalCount - remainCount

		record := &model.RedPacketRecord{
			PacketId:   packetId,
			UserId:     userId,
			UserName:   userName,
			Amount:     share,
			ClaimOrder: claimOrder,
			CreatedAt:  now,
		}
		if err := s.PacketRepo.CreateRecord(tx, record); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entity.ErrAlreadyClaimed
			}

			return err
		}

		reason := fmt.Sprintf("领取红包 %s", packetId)
		if err := s.Wallet.CreditTx(tx, userId, share, reason); err != nil {
			return err
		}

		result = &ClaimResult{
			PacketId:   packetId,
			UserId:     userId,
			Amount:     share,
			ClaimOrder: claimOrder,
			ReceivedAt: now,
		}

		if remainCount == 0 {
			if err := s.PacketRepo.Updates(tx, packetId, map[string]any{
				"status":      entity.RedPacketStatusCompleted,
				"finished_at": now,
			}); err != nil {
				return err
			}

			best, err := s.finalizeBestLuck(tx, packetId)
			if err != nil {
				return err
			}

			result.Completed = true
			result.IsBest = best != nil && best.UserId == userId
		}

		return nil
	})
	if err != nil {
		// 事务回滚后把已弹出的份额放回队首，保持队列与计数一致
		if popped {
			if restoreErr := s.ShareQueue.Restore(context.WithoutCancel(ctx), packetId, poppedShare); restoreErr != nil {
				slog.ErrorContext(ctx, "红包份额回滚失败",
					"packet_id", packetId, "share", poppedShare, "error", restoreErr)
			}
		}

		return nil, wrapEngineError(err)
	}

	return result, nil
}

func (s *RedPacketService) Revoke(ctx context.Context, packetId string, requesterId int) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		packet, err := s.PacketRepo.FindByPacketIdForUpdate(tx, packetId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrNotFound
			}

			return err
		}

		if packet.SenderId != requesterId {
			return entity.ErrNotOwner
		}

		if packet.Status != entity.RedPacketStatusActive || packet.RemainCount == 0 {
			return entity.ErrNotClaimable
		}

		return s.refundRemain(tx, packet, entity.RedPacketStatusRevoked, fmt.Sprintf("红包撤回退款 %s", packetId))
	})
	if err != nil {
		return wrapEngineError(err)
	}

	s.clearShares(ctx, packetId)

	return nil
}

func (s *RedPacketService) ExpireOverdue(ctx context.Context) (int, error) {
	packets, err := s.PacketRepo.FindOverdue(ctx, time.Now(), 100)
	if err != nil {
		return 0, wrapEngineError(err)
	}

	count := 0
	for _, packet := range packets {
		if err := s.expireOne(ctx, packet.PacketId); err != nil {
			slog.ErrorContext(ctx, "红包过期处理失败", "packet_id", packet.PacketId, "error", err)
			continue
		}

		count++
	}

	return count, nil
}

// expireOne 单个红包的过期转移，与撤回共用退款逻辑
func (s *RedPacketService) expireOne(ctx context.Context, packetId string) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		packet, err := s.PacketRepo.FindByPacketIdForUpdate(tx, packetId)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrNotFound
			}

			return err
		}

		// 扫描与处理之间可能已被领完或撤回
		if packet.Status != entity.RedPacketStatusActive || !packet.IsExpired(time.Now()) {
			return entity.ErrNotClaimable
		}

		return s.refundRemain(tx, packet, entity.RedPacketStatusExpired, fmt.Sprintf("红包过期退款 %s", packetId))
	})
	if err != nil {
		return wrapEngineError(err)
	}

	s.clearShares(ctx, packetId)

	return nil
}

// refundRemain 终态转移的公共路径：退款、清零、终态落库、手气最佳结算
func (s *RedPacketService) refundRemain(tx *gorm.DB, packet *model.RedPacket, status string, reason string) error {
	now := time.Now()

	if packet.RemainAmount > 0 {
		if err := s.Wallet.CreditTx(tx, packet.SenderId, packet.RemainAmount, reason); err != nil {
			return err
		}
	}

	if err := s.PacketRepo.Updates(tx, packet.PacketId, map[string]any{
		"status":        status,
		"remain_amount": 0,
		"remain_count":  0,
		"refund_amount": packet.RemainAmount,
		"finished_at":   now,
	}); err != nil {
		return err
	}

	if packet.RemainCount < packet.TotalCount {
		if _, err := s.finalizeBestLuck(tx, packet.PacketId); err != nil {
			return err
		}
	}

	return nil
}

// finalizeBestLuck 手气最佳结算
// 幂等：已有 is_best 记录直接返回；金额最大者胜出，并列时先领取者优先
func (s *RedPacketService) finalizeBestLuck(tx *gorm.DB, packetId string) (*model.RedPacketRecord, error) {
	marked, err := s.PacketRepo.HasBestRecord(tx, packetId)
	if err != nil {
		return nil, err
	}
	if marked {
		return nil, nil
	}

	best, err := s.PacketRepo.FindBestCandidate(tx, packetId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	if err := s.PacketRepo.MarkBest(tx, best.Id); err != nil {
		return nil, err
	}

	best.IsBest = true

	return best, nil
}

func (s *RedPacketService) GetDetail(ctx context.Context, packetId string) (*RedPacketInfo, error) {
	packet, err := s.PacketRepo.FindByPacketId(ctx, packetId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}

		return nil, wrapEngineError(err)
	}

	records, err := s.PacketRepo.FindRecords(ctx, packetId)
	if err != nil {
		return nil, wrapEngineError(err)
	}

	return s.buildInfo(packet, records), nil
}

func (s *RedPacketService) GetStatus(ctx context.Context, packetId string, userId int) (*RedPacketStatusInfo, error) {
	packet, err := s.PacketRepo.FindByPacketId(ctx, packetId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}

		return nil, wrapEngineError(err)
	}

	info := &RedPacketStatusInfo{
		PacketId:    packetId,
		Status:      displayStatus(packet),
		Type:        packet.Type,
		RemainCount: packet.RemainCount,
	}

	record, err := s.PacketRepo.FindRecord(s.DB.WithContext(ctx), packetId, userId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return info, nil
		}

		return nil, wrapEngineError(err)
	}

	info.HasReceived = true
	info.ReceivedAmount = record.Amount
	info.IsBest = record.IsBest

	return info, nil
}

// generateShares 按请求模式生成份额列表，随机红包可按配置打乱顺序
func (s *RedPacketService) generateShares(req *CreateRedPacketRequest) ([]int64, error) {
	minUnit := s.Conf.RedPacket.MinUnit

	if req.Type == entity.RedPacketTypeCustom && len(req.CustomAmounts) > 0 {
		if len(req.CustomAmounts) != req.TotalCount {
			return nil, entity.ErrInvalidAllocation
		}

		return s.Splitter.GenerateCustom(req.TotalAmount, req.CustomAmounts, minUnit)
	}

	shares, err := s.Splitter.Generate(req.TotalAmount, req.TotalCount, req.Type, minUnit)
	if err != nil {
		return nil, err
	}

	if s.Conf.RedPacket.ShuffleShares && req.Type == entity.RedPacketTypeRandom {
		if err := s.Splitter.Shuffle(shares); err != nil {
			return nil, err
		}
	}

	return shares, nil
}

// newPacketId 生成红包ID并做碰撞检查
func (s *RedPacketService) newPacketId(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		packetId := strutil.NewPacketId()

		exists, err := s.PacketRepo.ExistsPacketId(ctx, packetId)
		if err != nil {
			return "", err
		}

		if !exists {
			return packetId, nil
		}
	}

	return "", fmt.Errorf("红包ID生成碰撞次数超限")
}

// seedShares 份额入队，TTL 与红包生命周期对齐
func (s *RedPacketService) seedShares(ctx context.Context, packet *model.RedPacket, shares []int64) error {
	var ttl time.Duration
	if packet.ExpiredAt != nil {
		ttl = time.Until(*packet.ExpiredAt)
	}

	return s.ShareQueue.Seed(ctx, packet.PacketId, shares, ttl)
}

// cancelPacket 创建补偿：份额入队失败后红包转入 canceled 并退款
func (s *RedPacketService) cancelPacket(ctx context.Context, packet *model.RedPacket) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.PacketRepo.Updates(tx, packet.PacketId, map[string]any{
			"status":        entity.RedPacketStatusCanceled,
			"remain_amount": 0,
			"remain_count":  0,
			"refund_amount": packet.TotalAmount,
			"finished_at":   time.Now(),
		}); err != nil {
			return err
		}

		reason := fmt.Sprintf("红包创建失败退款 %s", packet.PacketId)
		return s.Wallet.CreditTx(tx, packet.SenderId, packet.TotalAmount, reason)
	})
	if err != nil {
		slog.ErrorContext(ctx, "红包创建补偿失败", "packet_id", packet.PacketId, "error", err)
	}
}

func (s *RedPacketService) clearShares(ctx context.Context, packetId string) {
	if err := s.ShareQueue.Clear(ctx, packetId); err != nil {
		slog.ErrorContext(ctx, "红包份额队列清理失败", "packet_id", packetId, "error", err)
	}
}

func (s *RedPacketService) buildInfo(packet *model.RedPacket, records []*model.RedPacketRecord) *RedPacketInfo {
	info := &RedPacketInfo{
		PacketId:     packet.PacketId,
		SenderId:     packet.SenderId,
		SenderName:   packet.SenderName,
		ChatType:     packet.ChatType,
		ChatId:       packet.ChatId,
		Type:         packet.Type,
		TotalAmount:  packet.TotalAmount,
		TotalCount:   packet.TotalCount,
		RemainAmount: packet.RemainAmount,
		RemainCount:  packet.RemainCount,
		Greeting:     packet.Greeting,
		Status:       displayStatus(packet),
		RefundAmount: packet.RefundAmount,
		CreatedAt:    packet.CreatedAt,
		ExpiredAt:    packet.ExpiredAt,
		FinishedAt:   packet.FinishedAt,
	}

	if packet.TotalCount > 0 {
		info.Progress = (packet.TotalCount - packet.RemainCount) * 100 / packet.TotalCount
	}

	info.ReceivedList = lo.Map(records, func(record *model.RedPacketRecord, _ int) *RedPacketReceiverInfo {
		return &RedPacketReceiverInfo{
			UserId:     record.UserId,
			UserName:   record.UserName,
			Amount:     record.Amount,
			ClaimOrder: record.ClaimOrder,
			IsBest:     record.IsBest,
			ReceivedAt: record.CreatedAt,
		}
	})

	if best, ok := lo.Find(records, func(record *model.RedPacketRecord) bool { return record.IsBest }); ok {
		info.BestUserId = best.UserId
		info.BestUserName = best.UserName
		info.BestAmount = best.Amount
	}

	return info
}

// displayStatus 查询视图里把已过期但尚未被清理任务处理的红包显示为过期
func displayStatus(packet *model.RedPacket) string {
	if packet.Status == entity.RedPacketStatusActive && packet.IsExpired(time.Now()) {
		return entity.RedPacketStatusExpired
	}

	return packet.Status
}

// wrapEngineError 引擎边界的错误归一化
// 业务错误原样返回；超时/取消视为可重试竞争；其余归入 Unavailable
func wrapEngineError(err error) error {
	if err == nil {
		return nil
	}

	var ex *errorx.Error
	if errors.As(err, &ex) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errorx.Wrap(entity.ErrContention, err)
	}

	return errorx.Wrap(entity.ErrUnavailable, err)
}

func validatePacketType(packetType string) error {
	switch packetType {
	case entity.RedPacketTypeRandom, entity.RedPacketTypeAverage, entity.RedPacketTypeCustom:
		return nil
	}

	return entity.ErrInvalidAllocation
}
