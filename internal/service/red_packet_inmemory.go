package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/zhangdayeb/go-redpacket/internal/entity"
	"github.com/zhangdayeb/go-redpacket/internal/pkg/strutil"
	"github.com/zhangdayeb/go-redpacket/internal/repository/model"
)

var _ IRedPacketService = (*InMemoryRedPacketService)(nil)

// InMemoryRedPacketService 红包服务的内存实现（用于开发测试）
//
// 与数据库实现共用拆分器、错误集合与状态机语义，互斥锁替代行锁
// 承担每个操作的原子性。
type InMemoryRedPacketService struct {
	mu       sync.Mutex
	packets  map[string]*memoryPacket
	splitter *AmountSplitter
	wallet   IWalletService

	minUnit       int64
	expireHours   int
	shuffleShares bool
	seedFault     error
}

type memoryPacket struct {
	packet  model.RedPacket
	shares  []int64
	records []*model.RedPacketRecord
}

func NewInMemoryRedPacketService(splitter *AmountSplitter, wallet IWalletService, minUnit int64, expireHours int) *InMemoryRedPacketService {
	if minUnit <= 0 {
		minUnit = 1
	}

	return &InMemoryRedPacketService{
		packets:     make(map[string]*memoryPacket),
		splitter:    splitter,
		wallet:      wallet,
		minUnit:     minUnit,
		expireHours: expireHours,
	}
}

// SetShuffleShares 入队前是否打乱随机红包份额顺序
func (s *InMemoryRedPacketService) SetShuffleShares(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shuffleShares = enabled
}

func (s *InMemoryRedPacketService) shuffleEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.shuffleShares
}

// SetSeedFault 注入份额入队故障，模拟缓存在扣款提交后不可用
func (s *InMemoryRedPacketService) SetSeedFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seedFault = err
}

func (s *InMemoryRedPacketService) Create(ctx context.Context, req *CreateRedPacketRequest) (*RedPacketInfo, error) {
	if err := validatePacketType(req.Type); err != nil {
		return nil, err
	}

	var (
		shares []int64
		err    error
	)

	if req.Type == entity.RedPacketTypeCustom && len(req.CustomAmounts) > 0 {
		if len(req.CustomAmounts) != req.TotalCount {
			return nil, entity.ErrInvalidAllocation
		}
		shares, err = s.splitter.GenerateCustom(req.TotalAmount, req.CustomAmounts, s.minUnit)
	} else {
		shares, err = s.splitter.Generate(req.TotalAmount, req.TotalCount, req.Type, s.minUnit)
	}
	if err != nil {
		return nil, err
	}

	if s.shuffleEnabled() && req.Type == entity.RedPacketTypeRandom {
		if err := s.splitter.Shuffle(shares); err != nil {
			return nil, err
		}
	}

	reason := "发红包"
	if err := s.wallet.Debit(ctx, req.SenderId, req.TotalAmount, reason); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	var expiredAt *time.Time
	if req.ExpireSeconds > 0 {
		t := now.Add(time.Duration(req.ExpireSeconds) * time.Second)
		expiredAt = &t
	} else if s.expireHours > 0 {
		t := now.Add(time.Duration(s.expireHours) * time.Hour)
		expiredAt = &t
	}

	packetId := strutil.NewPacketId()
	for s.packets[packetId] != nil {
		packetId = strutil.NewPacketId()
	}

	mem := &memoryPacket{
		packet: model.RedPacket{
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
		},
		shares: shares,
	}
	s.packets[packetId] = mem

	// 份额入队在扣款之后执行，失败走补偿取消：
	// 红包转入 canceled 终态并把扣款退回发送者
	if s.seedFault != nil {
		packet := &mem.packet
		packet.Status = entity.RedPacketStatusCanceled
		packet.RemainAmount = 0
		packet.RemainCount = 0
		packet.RefundAmount = packet.TotalAmount
		packet.FinishedAt = &now
		mem.shares = nil

		reason := fmt.Sprintf("红包创建失败退款 %s", packetId)
		if err := s.wallet.Credit(ctx, req.SenderId, packet.TotalAmount, reason); err != nil {
			slog.ErrorContext(ctx, "红包创建补偿失败", "packet_id", packetId, "error", err)
		}

		return nil, wrapEngineError(s.seedFault)
	}

	return buildMemoryInfo(mem), nil
}

func (s *InMemoryRedPacketService) Claim(ctx context.Context, packetId string, userId int, userName string) (*ClaimResult, error) {
	// 超时/取消与数据库实现一致，归一化为可重试的竞争错误
	if err := ctx.Err(); err != nil {
		return nil, wrapEngineError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mem, ok := s.packets[packetId]
	if !ok {
		return nil, entity.ErrNotFound
	}

	now := time.Now()
	packet := &mem.packet

	if packet.Status != entity.RedPacketStatusActive || packet.RemainCount == 0 || packet.IsExpired(now) {
		return nil, entity.ErrNotClaimable
	}

	if packet.SenderId == userId {
		return nil, entity.ErrSelfClaim
	}

	for _, record := range mem.records {
		if record.UserId == userId {
			return nil, entity.ErrAlreadyClaimed
		}
	}

	if len(mem.shares) == 0 {
		// 队列空但计数未清零，份额队列与红包计数失联
		slog.ErrorContext(ctx, "红包份额队列与计数不一致",
			"packet_id", packetId, "remain_count", packet.RemainCount,
			"error", entity.ErrShareQueueDesync)
		return nil, entity.ErrNotClaimable
	}

	share := mem.shares[0]

	reason := fmt.Sprintf("领取红包 %s", packetId)
	if err := s.wallet.Credit(ctx, userId, share, reason); err != nil {
		return nil, err
	}

	mem.shares = mem.shares[1:]
	packet.RemainAmount -= share
	packet.RemainCount--

	record := &model.RedPacketRecord{
		PacketId:   packetId,
		UserId:     userId,
		UserName:   userName,
		Amount:     share,
		ClaimOrder: packet.TotalCount - packet.RemainCount,
		CreatedAt:  now,
	}
	mem.records = append(mem.records, record)

	result := &ClaimResult{
		PacketId:   packetId,
		UserId:     userId,
		Amount:     share,
		ClaimOrder: record.ClaimOrder,
		ReceivedAt: now,
	}

	if packet.RemainCount == 0 {
		packet.Status = entity.RedPacketStatusCompleted
		packet.FinishedAt = &now

		best := finalizeMemoryBestLuck(mem)
		result.Completed = true
		result.IsBest = best != nil && best.UserId == userId
	}

	return result, nil
}

func (s *InMemoryRedPacketService) Revoke(ctx context.Context, packetId string, requesterId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem, ok := s.packets[packetId]
	if !ok {
		return entity.ErrNotFound
	}

	packet := &mem.packet

	if packet.SenderId != requesterId {
		return entity.ErrNotOwner
	}

	if packet.Status != entity.RedPacketStatusActive || packet.RemainCount == 0 {
		return entity.ErrNotClaimable
	}

	reason := fmt.Sprintf("红包撤回退款 %s", packetId)

	return s.settleRemain(ctx, mem, entity.RedPacketStatusRevoked, reason)
}

func (s *InMemoryRedPacketService) ExpireOverdue(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	now := time.Now()

	for packetId, mem := range s.packets {
		packet := &mem.packet
		if packet.Status != entity.RedPacketStatusActive || !packet.IsExpired(now) {
			continue
		}

		reason := fmt.Sprintf("红包过期退款 %s", packetId)
		if err := s.settleRemain(ctx, mem, entity.RedPacketStatusExpired, reason); err != nil {
			return count, err
		}

		count++
	}

	return count, nil
}

// settleRemain 撤回/过期共用：剩余金额退回发送者并转入指定终态
func (s *InMemoryRedPacketService) settleRemain(ctx context.Context, mem *memoryPacket, status string, reason string) error {
	packet := &mem.packet

	if packet.RemainAmount > 0 {
		if err := s.wallet.Credit(ctx, packet.SenderId, packet.RemainAmount, reason); err != nil {
			return err
		}
	}

	now := time.Now()
	packet.RefundAmount = packet.RemainAmount
	packet.RemainAmount = 0
	packet.Status = status
	packet.FinishedAt = &now
	mem.shares = nil

	if packet.RemainCount < packet.TotalCount {
		finalizeMemoryBestLuck(mem)
	}
	packet.RemainCount = 0

	return nil
}

func (s *InMemoryRedPacketService) GetDetail(ctx context.Context, packetId string) (*RedPacketInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem, ok := s.packets[packetId]
	if !ok {
		return nil, entity.ErrNotFound
	}

	return buildMemoryInfo(mem), nil
}

func (s *InMemoryRedPacketService) GetStatus(ctx context.Context, packetId string, userId int) (*RedPacketStatusInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mem, ok := s.packets[packetId]
	if !ok {
		return nil, entity.ErrNotFound
	}

	info := &RedPacketStatusInfo{
		PacketId:    packetId,
		Status:      displayStatus(&mem.packet),
		Type:        mem.packet.Type,
		RemainCount: mem.packet.RemainCount,
	}

	for _, record := range mem.records {
		if record.UserId == userId {
			info.HasReceived = true
			info.ReceivedAmount = record.Amount
			info.IsBest = record.IsBest
			break
		}
	}

	return info, nil
}

// finalizeMemoryBestLuck 幂等的手气最佳结算，金额并列时先领取者优先
func finalizeMemoryBestLuck(mem *memoryPacket) *model.RedPacketRecord {
	if len(mem.records) == 0 {
		return nil
	}

	for _, record := range mem.records {
		if record.IsBest {
			return record
		}
	}

	best := mem.records[0]
	for _, record := range mem.records[1:] {
		if record.Amount > best.Amount {
			best = record
		}
	}

	best.IsBest = true

	return best
}

func buildMemoryInfo(mem *memoryPacket) *RedPacketInfo {
	packet := mem.packet

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
		Status:       displayStatus(&packet),
		RefundAmount: packet.RefundAmount,
		CreatedAt:    packet.CreatedAt,
		ExpiredAt:    packet.ExpiredAt,
		FinishedAt:   packet.FinishedAt,
	}

	if packet.TotalCount > 0 {
		info.Progress = (packet.TotalCount - packet.RemainCount) * 100 / packet.TotalCount
	}

	info.ReceivedList = lo.Map(mem.records, func(record *model.RedPacketRecord, _ int) *RedPacketReceiverInfo {
		return &RedPacketReceiverInfo{
			UserId:     record.UserId,
			UserName:   record.UserName,
			Amount:     record.Amount,
			ClaimOrder: record.ClaimOrder,
			IsBest:     record.IsBest,
			ReceivedAt: record.CreatedAt,
		}
	})

	if best, ok := lo.Find(mem.records, func(record *model.RedPacketRecord) bool { return record.IsBest }); ok {
		info.BestUserId = best.UserId
		info.BestUserName = best.UserName
		info.BestAmount = best.Amount
	}

	return info
}
