package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShareQueueStorage 红包份额队列
//
// 每个红包一个 Redis List，创建时整单入队，领取时依赖 LPOP 的
// 原子性保证并发领取互不重复。TTL 与红包最大生命周期一致，
// 避免废弃红包残留缓存。
type ShareQueueStorage struct {
	redis *redis.Client
}

func NewShareQueueStorage(redis *redis.Client) *ShareQueueStorage {
	return &ShareQueueStorage{redis}
}

// Seed 整单写入红包份额，覆盖同名队列
func (s *ShareQueueStorage) Seed(ctx context.Context, packetId string, shares []int64, ttl time.Duration) error {
	values := make([]any, 0, len(shares))
	for _, share := range shares {
		values = append(values, strconv.FormatInt(share, 10))
	}

	_, err := s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.name(packetId))
		pipe.RPush(ctx, s.name(packetId), values...)
		if ttl > 0 {
			pipe.Expire(ctx, s.name(packetId), ttl)
		}
		return nil
	})

	return err
}

// PopOne 原子弹出一个份额，队列为空时 ok 为 false
func (s *ShareQueueStorage) PopOne(ctx context.Context, packetId string) (int64, bool, error) {
	value, err := s.redis.LPop(ctx, s.name(packetId)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}

		return 0, false, err
	}

	amount, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("红包份额数据损坏: %w", err)
	}

	return amount, true, nil
}

// Restore 领取事务回滚后把已弹出的份额放回队首
func (s *ShareQueueStorage) Restore(ctx context.Context, packetId string, share int64) error {
	return s.redis.LPush(ctx, s.name(packetId), strconv.FormatInt(share, 10)).Err()
}

// Clear 清空红包份额队列（撤回/过期时调用）
func (s *ShareQueueStorage) Clear(ctx context.Context, packetId string) error {
	return s.redis.Del(ctx, s.name(packetId)).Err()
}

func (s *ShareQueueStorage) name(packetId string) string {
	return fmt.Sprintf("rp:red_packet:share_queue:%s", packetId)
}
