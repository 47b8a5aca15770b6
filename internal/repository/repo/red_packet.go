package repo

import (
	"context"
	"time"

	"github.com/zhangdayeb/go-redpacket/internal/entity"
	"github.com/zhangdayeb/go-redpacket/internal/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RedPacket struct {
	db *gorm.DB
}

func NewRedPacket(db *gorm.DB) *RedPacket {
	return &RedPacket{db: db}
}

// Create 创建红包记录
func (r *RedPacket) Create(tx *gorm.DB, packet *model.RedPacket) error {
	return tx.Create(packet).Error
}

// FindByPacketId 根据红包ID查找
func (r *RedPacket) FindByPacketId(ctx context.Context, packetId string) (*model.RedPacket, error) {
	var packet model.RedPacket
	err := r.db.WithContext(ctx).
		Where("packet_id = ?", packetId).
		First(&packet).Error
	if err != nil {
		return nil, err
	}

	return &packet, nil
}

// FindByPacketIdForUpdate 根据红包ID加行锁查找，必须在事务中调用
// 单个红包的领取/撤回/过期操作全部由该行锁串行化
func (r *RedPacket) FindByPacketIdForUpdate(tx *gorm.DB, packetId string) (*model.RedPacket, error) {
	var packet model.RedPacket
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("packet_id = ?", packetId).
		First(&packet).Error
	if err != nil {
		return nil, err
	}

	return &packet, nil
}

// ExistsPacketId 检查红包ID是否已占用
func (r *RedPacket) ExistsPacketId(ctx context.Context, packetId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RedPacket{}).
		Where("packet_id = ?", packetId).
		Count(&count).Error

	return count > 0, err
}

// DecrementRemain 扣减剩余金额与个数
// 带余量条件作为行锁之外的第二道防线，返回受影响行数供调用方校验
func (r *RedPacket) DecrementRemain(tx *gorm.DB, packetId string, amount int64) (int64, error) {
	result := tx.Model(&model.RedPacket{}).
		Where("packet_id = ? AND remain_count > 0 AND remain_amount >= ?", packetId, amount).
		Updates(map[string]any{
			"remain_amount": gorm.Expr("remain_amount - ?", amount),
			"remain_count":  gorm.Expr("remain_count - 1"),
		})

	return result.RowsAffected, result.Error
}

// Updates 更新红包字段
func (r *RedPacket) Updates(tx *gorm.DB, packetId string, values map[string]any) error {
	return tx.Model(&model.RedPacket{}).
		Where("packet_id = ?", packetId).
		Updates(values).Error
}

// FindOverdue 查找已过期但仍处于待领取状态的红包
func (r *RedPacket) FindOverdue(ctx context.Context, now time.Time, limit int) ([]*model.RedPacket, error) {
	var packets []*model.RedPacket
	err := r.db.WithContext(ctx).
		Where("status = ? AND expired_at IS NOT NULL AND expired_at < ?", entity.RedPacketStatusActive, now).
		Order("expired_at ASC").
		Limit(limit).
		Find(&packets).Error

	return packets, err
}

// CreateRecord 插入领取记录
// (packet_id, user_id) 唯一索引兜底并发重复领取
func (r *RedPacket) CreateRecord(tx *gorm.DB, record *model.RedPacketRecord) error {
	return tx.Create(record).Error
}

// FindRecord 查找用户在指定红包下的领取记录
func (r *RedPacket) FindRecord(tx *gorm.DB, packetId string, userId int) (*model.RedPacketRecord, error) {
	var record model.RedPacketRecord
	err := tx.Where("packet_id = ? AND user_id = ?", packetId, userId).
		First(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// FindRecords 查找红包全部领取记录，按领取顺序排列
func (r *RedPacket) FindRecords(ctx context.Context, packetId string) ([]*model.RedPacketRecord, error) {
	var records []*model.RedPacketRecord
	err := r.db.WithContext(ctx).
		Where("packet_id = ?", packetId).
		Order("claim_order ASC").
		Find(&records).Error

	return records, err
}

// HasBestRecord 红包是否已完成手气最佳标记
func (r *RedPacket) HasBestRecord(tx *gorm.DB, packetId string) (bool, error) {
	var count int64
	err := tx.Model(&model.RedPacketRecord{}).
		Where("packet_id = ? AND is_best = ?", packetId, true).
		Count(&count).Error

	return count > 0, err
}

// FindBestCandidate 查找金额最大的领取记录，金额相同时先领取者优先
func (r *RedPacket) FindBestCandidate(tx *gorm.DB, packetId string) (*model.RedPacketRecord, error) {
	var record model.RedPacketRecord
	err := tx.Where("packet_id = ?", packetId).
		Order("amount DESC, claim_order ASC").
		First(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// MarkBest 标记手气最佳，终态后唯一一次对领取记录的变更
func (r *RedPacket) MarkBest(tx *gorm.DB, recordId int64) error {
	return tx.Model(&model.RedPacketRecord{}).
		Where("id = ?", recordId).
		Update("is_best", true).Error
}
